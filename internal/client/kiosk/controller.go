package kiosk

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/snackkiosk/internal/client/client"
	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/client/services"
	"github.com/dmitrijs2005/snackkiosk/internal/clock"
	"github.com/dmitrijs2005/snackkiosk/internal/logging"
)

// DefaultLogoutDelay is the idle time after which a session ends.
const DefaultLogoutDelay = 10 * time.Second

// Deps are the collaborators of a Controller. Journal, Cache, Clock, Beeper
// and Log may be nil.
type Deps struct {
	Auth     services.AuthService
	Purchase services.PurchaseService
	Stock    services.StockService
	Journal  services.JournalService
	Cache    services.GridCache
	Clock    clock.Clock
	Beeper   Beeper
	Log      logging.Logger
}

// Controller owns the kiosk session: who is logged in, the keypad, the
// inactivity timer and the view frontends render. It is safe for concurrent
// use; its lock is never held during a backend call.
type Controller struct {
	auth     services.AuthService
	purchase services.PurchaseService
	stock    services.StockService
	journal  services.JournalService
	cache    services.GridCache
	clock    clock.Clock
	beeper   Beeper
	log      logging.Logger
	delay    time.Duration

	mu       sync.Mutex
	session  *models.Session
	sessGen  uint64
	keypad   keypad
	screen   Screen
	users    []models.UserTile
	tiles    []models.StockTile
	status   Status
	alert    string
	stockMsg string
	online   bool
	version  uint64

	timer    *clock.Timer
	timerGen uint64

	subs []func(View)
}

// New returns a controller on the login screen. A non-positive logoutDelay
// means DefaultLogoutDelay.
func New(d Deps, logoutDelay time.Duration) *Controller {
	if logoutDelay <= 0 {
		logoutDelay = DefaultLogoutDelay
	}
	c := &Controller{
		auth:     d.Auth,
		purchase: d.Purchase,
		stock:    d.Stock,
		journal:  d.Journal,
		cache:    d.Cache,
		clock:    d.Clock,
		beeper:   d.Beeper,
		log:      d.Log,
		delay:    logoutDelay,
		screen:   ScreenLogin,
		status:   Status{Kind: StatusNone},
	}
	if c.journal == nil {
		c.journal = services.NopJournal()
	}
	if c.cache == nil {
		c.cache = services.NopGridCache()
	}
	if c.clock == nil {
		c.clock = clock.Real()
	}
	if c.beeper == nil {
		c.beeper = nopBeeper{}
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	return c
}

// Subscribe registers fn to receive a snapshot after every change. fn is
// called without the controller's lock held and must not block for long.
func (c *Controller) Subscribe(fn func(View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Snapshot returns the current view.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	v := View{
		Version:          c.version,
		Screen:           c.screen,
		Users:            append([]models.UserTile(nil), c.users...),
		Tiles:            append([]models.StockTile(nil), c.tiles...),
		Keypad:           c.keypad.view(),
		Status:           c.status,
		Alert:            c.alert,
		StocktakeMessage: c.stockMsg,
		Online:           c.online,
	}
	if s := c.session; s != nil {
		cp := *s
		v.Session = &cp
		v.Welcome = welcomeText(s.Name)
		v.Balance = s.Balance.String()
		v.BalanceNegative = s.Balance.Negative()
		v.PinButton = pinButton(s.HasPin)
	}
	return v
}

// changedLocked bumps the version and returns the snapshot plus the subscribers to
// hand it to. Callers hold c.mu and call publish after unlocking.
func (c *Controller) changedLocked() (View, []func(View)) {
	c.version++
	return c.viewLocked(), slices.Clone(c.subs)
}

func publish(v View, subs []func(View)) {
	for _, fn := range subs {
		fn(v)
	}
}

// update runs fn under the lock and publishes the result.
func (c *Controller) update(fn func()) {
	c.mu.Lock()
	fn()
	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)
}

// SetOnline records the backend reachability reported by the watcher.
func (c *Controller) SetOnline(online bool) {
	c.mu.Lock()
	if c.online == online {
		c.mu.Unlock()
		return
	}
	c.online = online
	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)
}

// DismissAlert hides the modal alert.
func (c *Controller) DismissAlert() {
	c.update(func() { c.alert = "" })
}

// Refresh reloads the login grid and the quick-item tiles. Whatever loads is
// applied even when the other request fails. When a list fails to load and
// none is shown yet, the last cached one is shown instead.
func (c *Controller) Refresh(ctx context.Context) error {
	users, uerr := c.auth.Users(ctx)
	tiles, terr := c.stock.QuickItems(ctx)

	if uerr == nil {
		if err := c.cache.SaveUsers(ctx, users); err != nil {
			c.log.Warn(ctx, "grid cache write failed", "err", err)
		}
	} else if users, _ = c.cache.Users(ctx); users != nil {
		c.log.Info(ctx, "showing cached users", "count", len(users))
	}
	if terr == nil {
		if err := c.cache.SaveTiles(ctx, tiles); err != nil {
			c.log.Warn(ctx, "grid cache write failed", "err", err)
		}
	} else {
		tiles, _ = c.cache.Tiles(ctx)
	}

	c.update(func() {
		if uerr == nil || len(c.users) == 0 {
			c.users = users
		}
		if terr == nil || len(c.tiles) == 0 {
			c.tiles = tiles
		}
	})

	err := errors.Join(uerr, terr)
	if err != nil {
		c.log.Warn(ctx, "refresh failed", "err", err)
	}
	return err
}

// RecentActivity returns the newest journal entries.
func (c *Controller) RecentActivity(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	return c.journal.Recent(ctx, limit)
}

func (c *Controller) record(ctx context.Context, e models.JournalEntry) {
	if err := c.journal.Record(ctx, e); err != nil {
		c.log.Warn(ctx, "journal write failed", "kind", e.Kind, "err", err)
	}
}

// setTileLocked updates the count of the tile for barcode, if there is one.
func (c *Controller) setTileLocked(barcode string, remaining int) {
	for i := range c.tiles {
		if c.tiles[i].Barcode == barcode {
			c.tiles[i].Remaining = remaining
			c.tiles[i].Known = true
			return
		}
	}
}

func isTransport(err error) bool {
	return errors.Is(err, client.ErrUnavailable) ||
		errors.Is(err, client.ErrUnexpectedStatus) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

// failureMessage picks the server's text for a rejection, fallback otherwise.
func failureMessage(err error, fallback string) string {
	if isTransport(err) {
		return textNetworkError
	}
	if msg, ok := client.RejectionMessage(err); ok && msg != "" {
		return msg
	}
	return fallback
}
