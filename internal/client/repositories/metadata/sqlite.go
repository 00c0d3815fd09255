package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/snackkiosk/internal/dbx"
)

// SQLiteRepository keeps values in the metadata table created by the kiosk
// migrations.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key Key) ([]byte, error) {
	if !key.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value. A nil value is
// stored as an empty one.
func (r *SQLiteRepository) Set(ctx context.Context, key Key, value []byte) error {
	if !key.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, string(key), value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key Key) error {
	if !key.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, string(key)); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}
