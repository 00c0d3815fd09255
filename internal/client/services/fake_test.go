package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
)

// fakeClient implements client.Client for service tests. Calls are counted
// per operation; gate, when set, blocks every call until closed.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]*atomic.Int32

	gate    chan struct{}
	entered chan struct{}

	LoginRet  *models.Session
	LoginErr  error
	SetPinErr error
	RemoveErr error
	VerifyErr error
	ScanRet   *models.ScanResult
	ScanErr   error
	UndoRet   *models.UndoResult
	UndoErr   error
	RestRet   *models.RestockResult
	RestErr   error
	UsersRet  []models.UserTile
	TilesRet  []models.StockTile
	PingErr   error
	CloseErr  error

	LastUserID  int64
	LastPin     string
	LastBarcode string
	LastQty     int
	LastCode    string
}

func (f *fakeClient) hit(op string) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]*atomic.Int32)
	}
	c, ok := f.calls[op]
	if !ok {
		c = &atomic.Int32{}
		f.calls[op] = c
	}
	f.mu.Unlock()
	c.Add(1)

	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeClient) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.calls[op]; ok {
		return int(c.Load())
	}
	return 0
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Login(ctx context.Context, userID int64, pin string) (*models.Session, error) {
	f.hit("login")
	f.LastUserID, f.LastPin = userID, pin
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet, nil
}

func (f *fakeClient) SetPin(ctx context.Context, userID int64, pin string) error {
	f.hit("set_pin")
	f.LastUserID, f.LastPin = userID, pin
	return f.SetPinErr
}

func (f *fakeClient) RemovePin(ctx context.Context, userID int64) error {
	f.hit("remove_pin")
	f.LastUserID = userID
	return f.RemoveErr
}

func (f *fakeClient) UndoLast(ctx context.Context, userID int64) (*models.UndoResult, error) {
	f.hit("undo")
	f.LastUserID = userID
	if f.UndoErr != nil {
		return nil, f.UndoErr
	}
	return f.UndoRet, nil
}

func (f *fakeClient) Scan(ctx context.Context, userID int64, barcode string) (*models.ScanResult, error) {
	f.hit("scan")
	f.LastUserID, f.LastBarcode = userID, barcode
	if f.ScanErr != nil {
		return nil, f.ScanErr
	}
	return f.ScanRet, nil
}

func (f *fakeClient) Restock(ctx context.Context, barcode string, qty int) (*models.RestockResult, error) {
	f.hit("restock")
	f.LastBarcode, f.LastQty = barcode, qty
	if f.RestErr != nil {
		return nil, f.RestErr
	}
	return f.RestRet, nil
}

func (f *fakeClient) VerifyAdmin(ctx context.Context, code string) error {
	f.hit("verify")
	f.LastCode = code
	return f.VerifyErr
}

func (f *fakeClient) Users(ctx context.Context) ([]models.UserTile, error) {
	f.hit("users")
	return f.UsersRet, nil
}

func (f *fakeClient) QuickItems(ctx context.Context) ([]models.StockTile, error) {
	f.hit("quick_items")
	return f.TilesRet, nil
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.hit("ping")
	return f.PingErr
}
