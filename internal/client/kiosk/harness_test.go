package kiosk

import (
	"context"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/snackkiosk/internal/client/client"
	"github.com/dmitrijs2005/snackkiosk/internal/client/client/clienttest"
	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/client/repositories/journal"
	"github.com/dmitrijs2005/snackkiosk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/snackkiosk/internal/client/services"
	"github.com/dmitrijs2005/snackkiosk/internal/clock"
	"github.com/dmitrijs2005/snackkiosk/internal/logging"
)

const logoutDelay = 10 * time.Second

var (
	alice = models.UserTile{UserID: 7, Name: "Alice", HasPin: false}
	bob   = models.UserTile{UserID: 8, Name: "Bob", HasPin: true}
)

type countBeeper struct{ n atomic.Int32 }

func (b *countBeeper) Beep() { b.n.Add(1) }

type harness struct {
	srv     *clienttest.Server
	clk     *clock.FakeClock
	beeper  *countBeeper
	journal services.JournalService
	cache   services.GridCache
	ctrl    *Controller

	mu    sync.Mutex
	views []View
}

// newHarness wires a controller to a scripted backend. Alice has no PIN and
// logs in with balance 12.50; Bob has a PIN.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	srv := clienttest.New(t)
	srv.Reply(http.MethodGet, "/users", http.StatusOK, []models.UserTile{alice, bob})
	srv.Reply(http.MethodGet, "/quick_items", http.StatusOK, []map[string]any{
		{"barcode": "123", "label": "Soda", "stock": 5},
		{"barcode": "456", "label": "Chips", "stock": 2},
	})
	srv.Reply(http.MethodPost, "/login", http.StatusOK, map[string]any{
		"success": true, "user_id": 7, "name": "Alice", "balance": 12.5, "has_pin": false,
	})

	hc, err := client.NewHTTPClient(srv.URL, 2*time.Second, logging.Discard())
	require.NoError(t, err)

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "kiosk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clk := clock.Fake(time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC))
	h := &harness{
		srv:     srv,
		clk:     clk,
		beeper:  &countBeeper{},
		journal: services.NewJournalService(journal.NewSQLiteRepository(db), 100, clk),
		cache:   services.NewGridCache(metadata.NewSQLiteRepository(db)),
	}
	h.ctrl = New(Deps{
		Auth:     services.NewAuthService(hc, ""),
		Purchase: services.NewPurchaseService(hc),
		Stock:    services.NewStockService(hc),
		Journal:  h.journal,
		Cache:    h.cache,
		Clock:    clk,
		Beeper:   h.beeper,
		Log:      logging.Discard(),
	}, logoutDelay)
	h.ctrl.Subscribe(func(v View) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.views = append(h.views, v)
	})

	require.NoError(t, h.ctrl.Refresh(ctx))
	return h
}

func (h *harness) loginAlice(t *testing.T) {
	t.Helper()
	require.NoError(t, h.ctrl.SelectUser(context.Background(), alice))
	require.NotNil(t, h.ctrl.Snapshot().Session)
}

func (h *harness) published() []View {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]View(nil), h.views...)
}

// kinds lists journaled kinds, newest first.
func (h *harness) kinds(t *testing.T) []models.JournalKind {
	t.Helper()
	entries, err := h.journal.Recent(context.Background(), 100)
	require.NoError(t, err)
	out := make([]models.JournalKind, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Kind)
	}
	return out
}

func (h *harness) press(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_ = h.ctrl.PressKey(context.Background(), k)
	}
}
