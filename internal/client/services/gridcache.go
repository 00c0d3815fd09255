package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/client/repositories/metadata"
)

// GridCache remembers the last login grid and quick items so a kiosk that
// starts while the backend is down still shows them.
type GridCache interface {
	SaveUsers(ctx context.Context, users []models.UserTile) error
	// Users returns nil when nothing was saved.
	Users(ctx context.Context) ([]models.UserTile, error)
	SaveTiles(ctx context.Context, tiles []models.StockTile) error
	// Tiles returns the saved tiles with their counts marked unknown.
	Tiles(ctx context.Context) ([]models.StockTile, error)
}

type cachedTile struct {
	Barcode string `json:"barcode"`
	Label   string `json:"label"`
}

// gridCache stores the grid as JSON values in the metadata table.
type gridCache struct {
	repo metadata.Repository
}

// NewGridCache constructs a GridCache over repo.
func NewGridCache(repo metadata.Repository) GridCache {
	return &gridCache{repo: repo}
}

func (g *gridCache) SaveUsers(ctx context.Context, users []models.UserTile) error {
	return g.put(ctx, metadata.KeyGridUsers, users)
}

func (g *gridCache) Users(ctx context.Context) ([]models.UserTile, error) {
	var users []models.UserTile
	if err := g.get(ctx, metadata.KeyGridUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (g *gridCache) SaveTiles(ctx context.Context, tiles []models.StockTile) error {
	out := make([]cachedTile, len(tiles))
	for i, t := range tiles {
		out[i] = cachedTile{Barcode: t.Barcode, Label: t.Label}
	}
	return g.put(ctx, metadata.KeyGridTiles, out)
}

func (g *gridCache) Tiles(ctx context.Context) ([]models.StockTile, error) {
	var cached []cachedTile
	if err := g.get(ctx, metadata.KeyGridTiles, &cached); err != nil {
		return nil, err
	}
	if cached == nil {
		return nil, nil
	}
	tiles := make([]models.StockTile, len(cached))
	for i, t := range cached {
		tiles[i] = models.StockTile{Barcode: t.Barcode, Label: t.Label}
	}
	return tiles, nil
}

func (g *gridCache) put(ctx context.Context, key metadata.Key, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return g.repo.Set(ctx, key, b)
}

func (g *gridCache) get(ctx context.Context, key metadata.Key, v any) error {
	b, err := g.repo.Get(ctx, key)
	if err != nil || b == nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

type nopGridCache struct{}

// NopGridCache is used when the kiosk database is disabled.
func NopGridCache() GridCache { return nopGridCache{} }

func (nopGridCache) SaveUsers(context.Context, []models.UserTile) error { return nil }

func (nopGridCache) Users(context.Context) ([]models.UserTile, error) { return nil, nil }

func (nopGridCache) SaveTiles(context.Context, []models.StockTile) error { return nil }

func (nopGridCache) Tiles(context.Context) ([]models.StockTile, error) { return nil, nil }
