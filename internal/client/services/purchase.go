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

// PurchaseService charges scans to a user and reverses the latest one.
// How many purchases can be undone is decided by the backend.
type PurchaseService interface {
	Scan(ctx context.Context, userID int64, barcode string) (*models.ScanResult, error)
	UndoLast(ctx context.Context, userID int64) (*models.UndoResult, error)
}

// purchaseService is the concrete PurchaseService over a backend Client.
type purchaseService struct {
	client client.Client
	flight singleflight.Group
}

// NewPurchaseService constructs a PurchaseService bound to the given client.
func NewPurchaseService(client client.Client) PurchaseService {
	return &purchaseService{client: client}
}

func (p *purchaseService) Scan(ctx context.Context, userID int64, barcode string) (*models.ScanResult, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, common.ErrEmptyBarcode
	}

	key := "scan:" + strconv.FormatInt(userID, 10) + ":" + barcode
	res, err := do(&p.flight, key, func() (*models.ScanResult, error) {
		return p.client.Scan(ctx, userID, barcode)
	})
	if err != nil {
		return nil, fmt.Errorf("scan error: %w", err)
	}
	return res, nil
}

func (p *purchaseService) UndoLast(ctx context.Context, userID int64) (*models.UndoResult, error) {
	key := "undo:" + strconv.FormatInt(userID, 10)
	res, err := do(&p.flight, key, func() (*models.UndoResult, error) {
		return p.client.UndoLast(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("undo error: %w", err)
	}
	return res, nil
}
