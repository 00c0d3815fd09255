package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/common"
	"github.com/dmitrijs2005/snackkiosk/internal/logging"
	"github.com/dmitrijs2005/snackkiosk/internal/netx"
)

// HTTPClient is the Client for the kiosk backend's JSON-over-HTTP API.
// Every request carries a fresh request id.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
	newID   func() string
}

// NewHTTPClient validates baseURL and returns a client whose requests time
// out after timeout (zero means no client-side limit).
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server url %q: missing host", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
		newID:   uuid.NewString,
	}, nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// call sends one request and decodes the body into out (when non-nil).
// Non-2xx responses whose body still decodes are returned to the caller so
// that business errors can be surfaced; anything else is ErrUnexpectedStatus.
func (c *HTTPClient) call(ctx context.Context, op, method, path string, in, out any) (int, error) {
	id := c.newID()
	c.log.Debug(ctx, "backend call", "op", op, "request_id", id)

	resp, err := netx.DoJSON(ctx, c.hc, netx.Request{
		Method: method,
		URL:    c.baseURL + path,
		Body:   in,
		Header: http.Header{common.RequestIDHeaderName: []string{id}},
	})
	if err != nil {
		c.log.Warn(ctx, "backend unreachable", "op", op, "request_id", id, "err", err)
		return 0, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	if out == nil {
		if !resp.OK() {
			return resp.StatusCode, fmt.Errorf("%s: %w: %d", op, ErrUnexpectedStatus, resp.StatusCode)
		}
		return resp.StatusCode, nil
	}

	if err := resp.Decode(out); err != nil || (!resp.OK() && len(resp.Body) == 0) {
		if resp.OK() {
			return resp.StatusCode, fmt.Errorf("%s: decode response: %w", op, err)
		}
		c.log.Warn(ctx, "backend error status", "op", op, "request_id", id, "status", resp.StatusCode)
		return resp.StatusCode, fmt.Errorf("%s: %w: %d", op, ErrUnexpectedStatus, resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func ok(status int) bool { return status >= 200 && status < 300 }

// reject builds the error for a response that did not report success.
func reject(op string, status int, msg string) error {
	if msg == "" && !ok(status) {
		return fmt.Errorf("%s: %w: %d", op, ErrUnexpectedStatus, status)
	}
	return &RejectedError{Op: op, Message: msg}
}

func (c *HTTPClient) Login(ctx context.Context, userID int64, pin string) (*models.Session, error) {
	var out models.LoginResponse
	status, err := c.call(ctx, "login", http.MethodPost, "/login", models.LoginRequest{UserID: userID, Pin: pin}, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success || !ok(status) {
		return nil, reject("login", status, out.Error)
	}

	return &models.Session{
		UserID:  out.UserID,
		Name:    out.Name,
		Balance: models.Money(out.Balance),
		HasPin:  out.HasPin,
	}, nil
}

func (c *HTTPClient) SetPin(ctx context.Context, userID int64, pin string) error {
	var out models.SuccessResponse
	status, err := c.call(ctx, "set_pin", http.MethodPost, "/set_pin", models.SetPinRequest{UserID: userID, Pin: pin}, &out)
	if err != nil {
		return err
	}
	if !out.Success || !ok(status) {
		return reject("set_pin", status, out.Error)
	}
	return nil
}

func (c *HTTPClient) RemovePin(ctx context.Context, userID int64) error {
	var out models.SuccessResponse
	status, err := c.call(ctx, "remove_pin", http.MethodPost, "/remove_pin", models.UserRequest{UserID: userID}, &out)
	if err != nil {
		return err
	}
	if !out.Success || !ok(status) {
		return reject("remove_pin", status, out.Error)
	}
	return nil
}

func (c *HTTPClient) UndoLast(ctx context.Context, userID int64) (*models.UndoResult, error) {
	var out models.UndoResponse
	status, err := c.call(ctx, "undo_last", http.MethodPost, "/undo_last", models.UserRequest{UserID: userID}, &out)
	if err != nil {
		return nil, err
	}
	if out.Status != models.ScanStatusSuccess || !ok(status) {
		return nil, reject("undo_last", status, out.Message)
	}

	res := &models.UndoResult{NewBalance: models.Money(out.NewBalance)}
	if out.UndoInfo != nil {
		res.Product = out.UndoInfo.Product
		res.Barcode = out.UndoInfo.Barcode
		res.RestoredStock = out.UndoInfo.RestoredStock
	}
	return res, nil
}

func (c *HTTPClient) Scan(ctx context.Context, userID int64, barcode string) (*models.ScanResult, error) {
	var out models.ScanResponse
	status, err := c.call(ctx, "scan", http.MethodPost, "/scan", models.ScanRequest{UserID: userID, Barcode: barcode}, &out)
	if err != nil {
		return nil, err
	}

	switch {
	case !ok(status):
		return nil, reject("scan", status, out.Message)
	case out.Status == models.ScanStatusSuccess:
		return &models.ScanResult{
			Status:     out.Status,
			Product:    out.Product,
			Price:      models.Money(out.Price),
			NewBalance: models.Money(out.NewBalance),
			NewStock:   out.NewStock,
		}, nil
	case out.Status == models.ScanStatusNewItem:
		return &models.ScanResult{Status: out.Status, Product: out.Product}, nil
	default:
		return nil, reject("scan", status, out.Message)
	}
}

// Restock ignores the body when it is not the expected JSON shape.
func (c *HTTPClient) Restock(ctx context.Context, barcode string, qty int) (*models.RestockResult, error) {
	var out models.RestockResponse
	_, err := c.call(ctx, "restock", http.MethodPost, "/restock", models.RestockRequest{Barcode: barcode, Qty: qty}, &out)
	if err != nil && (errors.Is(err, ErrUnavailable) || errors.Is(err, ErrUnexpectedStatus)) {
		return nil, err
	}
	if err != nil {
		c.log.Debug(ctx, "restock body ignored", "err", err)
		return &models.RestockResult{}, nil
	}
	return &models.RestockResult{Message: out.Message, NewStock: out.NewStock}, nil
}

func (c *HTTPClient) VerifyAdmin(ctx context.Context, code string) error {
	var out models.SuccessResponse
	status, err := c.call(ctx, "admin_verify", http.MethodPost, "/admin/verify", models.AdminVerifyRequest{Code: code}, &out)
	if err != nil {
		return err
	}
	if !out.Success || !ok(status) {
		return reject("admin_verify", status, out.Error)
	}
	return nil
}

func (c *HTTPClient) Users(ctx context.Context) ([]models.UserTile, error) {
	var out []models.UserTile
	status, err := c.call(ctx, "users", http.MethodGet, "/users", nil, &out)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, fmt.Errorf("users: %w: %d", ErrUnexpectedStatus, status)
	}
	return out, nil
}

func (c *HTTPClient) QuickItems(ctx context.Context) ([]models.StockTile, error) {
	var out []models.QuickItem
	status, err := c.call(ctx, "quick_items", http.MethodGet, "/quick_items", nil, &out)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, fmt.Errorf("quick_items: %w: %d", ErrUnexpectedStatus, status)
	}

	tiles := make([]models.StockTile, 0, len(out))
	for _, q := range out {
		tiles = append(tiles, q.Tile())
	}
	return tiles, nil
}

// Ping fetches the root page. Any response below 500 means the backend is up.
func (c *HTTPClient) Ping(ctx context.Context) error {
	status, err := c.call(ctx, "ping", http.MethodGet, "/", nil, nil)
	if err == nil || (errors.Is(err, ErrUnexpectedStatus) && status < 500) {
		return nil
	}
	return err
}
