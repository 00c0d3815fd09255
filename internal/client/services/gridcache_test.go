package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/snackkiosk/internal/client/client"
	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/client/repositories/metadata"
)

func newGridCache(t *testing.T) (GridCache, *metadata.SQLiteRepository) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "kiosk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := metadata.NewSQLiteRepository(db)
	return NewGridCache(repo), repo
}

func TestGridCache_Empty(t *testing.T) {
	g, _ := newGridCache(t)
	ctx := context.Background()

	users, err := g.Users(ctx)
	require.NoError(t, err)
	assert.Nil(t, users)

	tiles, err := g.Tiles(ctx)
	require.NoError(t, err)
	assert.Nil(t, tiles)
}

func TestGridCache_RoundTrip(t *testing.T) {
	g, _ := newGridCache(t)
	ctx := context.Background()

	users := []models.UserTile{{UserID: 7, Name: "Alice"}, {UserID: 8, Name: "Bob", HasPin: true}}
	require.NoError(t, g.SaveUsers(ctx, users))
	require.NoError(t, g.SaveTiles(ctx, []models.StockTile{
		{Barcode: "123", Label: "Soda", Remaining: 4, Known: true},
	}))

	gotUsers, err := g.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, gotUsers)

	gotTiles, err := g.Tiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.StockTile{{Barcode: "123", Label: "Soda"}}, gotTiles, "counts are not cached")
}

func TestGridCache_CorruptValue(t *testing.T) {
	g, repo := newGridCache(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, metadata.KeyGridUsers, []byte("{not json")))

	_, err := g.Users(ctx)
	require.ErrorContains(t, err, "decode grid.users")
}

func TestNopGridCache(t *testing.T) {
	g := NopGridCache()
	ctx := context.Background()

	require.NoError(t, g.SaveUsers(ctx, []models.UserTile{{UserID: 1}}))
	users, err := g.Users(ctx)
	require.NoError(t, err)
	assert.Nil(t, users)
}
