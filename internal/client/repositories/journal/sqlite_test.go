package journal

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/snackkiosk/internal/client/client"
	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "kiosk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func entry(i int, kind models.JournalKind) models.JournalEntry {
	return models.JournalEntry{
		ID:     fmt.Sprintf("id-%d", i),
		At:     time.Date(2026, 3, 1, 12, 0, i, 0, time.UTC),
		Kind:   kind,
		UserID: 7,
	}
}

func TestRecord_ThenRecent_NewestFirst(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, entry(1, models.JournalLogin), 0))
	require.NoError(t, r.Record(ctx, models.JournalEntry{
		ID: "id-2", At: time.Date(2026, 3, 1, 12, 0, 2, 0, time.UTC),
		Kind: models.JournalScan, UserID: 7, Barcode: "123", Detail: "Soda $1.50",
	}, 0))

	got, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "id-2", got[0].ID)
	assert.Equal(t, models.JournalScan, got[0].Kind)
	assert.Equal(t, "123", got[0].Barcode)
	assert.Equal(t, "Soda $1.50", got[0].Detail)
	assert.True(t, got[0].At.Equal(time.Date(2026, 3, 1, 12, 0, 2, 0, time.UTC)))
	assert.Equal(t, entry(1, models.JournalLogin), got[1])
}

func TestRecord_NoUserStoredAsNull(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := entry(1, models.JournalRestock)
	e.UserID = 0
	require.NoError(t, r.Record(ctx, e, 0))

	var isNull bool
	require.NoError(t, db.QueryRowContext(ctx, `SELECT user_id IS NULL FROM journal`).Scan(&isNull))
	assert.True(t, isNull)

	got, err := r.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got[0].UserID)
}

func TestRecord_PrunesToNewest(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, r.Record(ctx, entry(i, models.JournalScan), 3))
	}

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"id-5", "id-4", "id-3"}, ids)
}

func TestRecord_DuplicateIDRollsBack(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, entry(1, models.JournalLogin), 0))
	require.Error(t, r.Record(ctx, entry(1, models.JournalLogout), 0))

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecent_Empty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
