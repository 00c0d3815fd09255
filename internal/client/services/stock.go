package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/snackkiosk/internal/client/client"
	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/common"
)

// StockService backs the admin stocktake screen and the quick-item tiles.
type StockService interface {
	Restock(ctx context.Context, barcode string, qty int) (*models.RestockResult, error)
	QuickItems(ctx context.Context) ([]models.StockTile, error)
}

// stockService is the concrete StockService over a backend Client.
type stockService struct {
	client client.Client
	flight singleflight.Group
}

// NewStockService constructs a StockService bound to the given client.
func NewStockService(client client.Client) StockService {
	return &stockService{client: client}
}

// ParseQuantity accepts a positive decimal integer, surrounding spaces
// allowed. Anything else is common.ErrInvalidQuantity.
func ParseQuantity(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidQuantity, text)
	}
	return n, nil
}

func (s *stockService) Restock(ctx context.Context, barcode string, qty int) (*models.RestockResult, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, common.ErrEmptyBarcode
	}
	if qty <= 0 {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidQuantity, qty)
	}

	key := "restock:" + barcode + ":" + strconv.Itoa(qty)
	res, err := do(&s.flight, key, func() (*models.RestockResult, error) {
		return s.client.Restock(ctx, barcode, qty)
	})
	if err != nil {
		return nil, fmt.Errorf("restock error: %w", err)
	}
	return res, nil
}

func (s *stockService) QuickItems(ctx context.Context) ([]models.StockTile, error) {
	return do(&s.flight, "quick_items", func() ([]models.StockTile, error) {
		return s.client.QuickItems(ctx)
	})
}
