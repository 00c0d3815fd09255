package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/dbx"
)

// SQLiteRepository stores the journal in the journal table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Record(ctx context.Context, e models.JournalEntry, keep int) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var userID sql.NullInt64
		if e.UserID != 0 {
			userID = sql.NullInt64{Int64: e.UserID, Valid: true}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO journal (id, at, kind, user_id, barcode, detail)
			VALUES (?, ?, ?, ?, ?, ?)
		`, e.ID, e.At.UTC().UnixMicro(), string(e.Kind), userID, e.Barcode, e.Detail)
		if err != nil {
			return fmt.Errorf("failed to insert journal entry: %w", err)
		}

		if keep <= 0 {
			return nil
		}
		_, err = tx.ExecContext(ctx, `
			DELETE FROM journal
			WHERE seq <= (SELECT seq FROM journal ORDER BY seq DESC LIMIT 1 OFFSET ?)
		`, keep)
		if err != nil {
			return fmt.Errorf("failed to prune journal: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, at, kind, user_id, barcode, detail
		FROM journal
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select journal: %w", err)
	}
	defer rows.Close()

	var out []models.JournalEntry
	for rows.Next() {
		var (
			e      models.JournalEntry
			at     int64
			kind   string
			userID sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &at, &kind, &userID, &e.Barcode, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		e.At = time.UnixMicro(at).UTC()
		e.Kind = models.JournalKind(kind)
		e.UserID = userID.Int64
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal rows: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journal: %w", err)
	}
	return n, nil
}
