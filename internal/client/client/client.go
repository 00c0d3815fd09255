package client

import (
	"context"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
)

// Client is the kiosk's view of the backend.
type Client interface {
	Close() error
	Login(ctx context.Context, userID int64, pin string) (*models.Session, error)
	SetPin(ctx context.Context, userID int64, pin string) error
	RemovePin(ctx context.Context, userID int64) error
	UndoLast(ctx context.Context, userID int64) (*models.UndoResult, error)
	Scan(ctx context.Context, userID int64, barcode string) (*models.ScanResult, error)
	Restock(ctx context.Context, barcode string, qty int) (*models.RestockResult, error)
	VerifyAdmin(ctx context.Context, code string) error
	Users(ctx context.Context) ([]models.UserTile, error)
	QuickItems(ctx context.Context) ([]models.StockTile, error)
	Ping(ctx context.Context) error
}
