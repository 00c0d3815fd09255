package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/dmitrijs2005/snackkiosk/internal/client/cli"
	"github.com/dmitrijs2005/snackkiosk/internal/client/client"
	"github.com/dmitrijs2005/snackkiosk/internal/client/config"
	"github.com/dmitrijs2005/snackkiosk/internal/client/kiosk"
	"github.com/dmitrijs2005/snackkiosk/internal/client/repositories/journal"
	"github.com/dmitrijs2005/snackkiosk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/snackkiosk/internal/client/services"
	"github.com/dmitrijs2005/snackkiosk/internal/client/tui"
	"github.com/dmitrijs2005/snackkiosk/internal/clock"
	"github.com/dmitrijs2005/snackkiosk/internal/filex"
	"github.com/dmitrijs2005/snackkiosk/internal/logging"
)

// pingTimeout bounds a single online check.
const pingTimeout = 3 * time.Second

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// Frontend is a user interface driving the controller. Run blocks until the
// user quits or ctx is cancelled.
type Frontend interface {
	Run(ctx context.Context) error
}

// App holds the wired kiosk components and the resources Close releases.
type App struct {
	config *config.Config
	ui     string
	log    logging.Logger
	clock  clock.Clock

	client client.Client
	auth   services.AuthService
	db     *sql.DB
	ctrl   *kiosk.Controller

	closers []io.Closer
	online  bool
}

// NewApp builds every component from c. stdout receives the terminal bell
// and, for the CLI, log lines when no log file is configured.
func NewApp(ctx context.Context, c *config.Config, stdout io.Writer) (*App, error) {
	a := &App{config: c, ui: ResolveUI(c.UI), clock: clock.Real()}

	logOut, err := a.logWriter(stdout)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logOut, c.LogLevel, c.LogFormat)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.log = log

	hc, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, log.With("component", "client"))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.client = hc
	a.closers = append(a.closers, closerFunc(hc.Close))

	journalSvc := services.NopJournal()
	cache := services.NopGridCache()
	if c.JournalPath != "" {
		db, err := client.InitDatabase(ctx, c.JournalPath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("journal: %w", err)
		}
		a.db = db
		a.closers = append(a.closers, db)
		journalSvc = services.NewJournalService(journal.NewSQLiteRepository(db), c.JournalMaxEntries, a.clock)
		cache = services.NewGridCache(metadata.NewSQLiteRepository(db))
	}

	a.auth = services.NewAuthService(hc, c.AdminCodeHash)
	a.ctrl = kiosk.New(kiosk.Deps{
		Auth:     a.auth,
		Purchase: services.NewPurchaseService(hc),
		Stock:    services.NewStockService(hc),
		Journal:  journalSvc,
		Cache:    cache,
		Clock:    a.clock,
		Beeper:   &kiosk.TerminalBeeper{W: stdout},
		Log:      log.With("component", "kiosk"),
	}, c.LogoutDelay)

	return a, nil
}

// ResolveUI turns "auto" into "tui" when stdin and stdout are terminals and
// "cli" otherwise.
func ResolveUI(ui string) string {
	if ui != config.UIAuto {
		return ui
	}
	if isTerminal(int(os.Stdin.Fd())) && isTerminal(int(os.Stdout.Fd())) {
		return config.UITUI
	}
	return config.UICLI
}

// logWriter picks the log destination. The TUI owns the terminal, so
// without a log file it logs to kiosk.log beside the journal.
func (a *App) logWriter(stdout io.Writer) (io.Writer, error) {
	path := a.config.LogFile
	if path == "" && a.ui == config.UITUI {
		dir := "."
		if a.config.JournalPath != "" {
			dir = filepath.Dir(a.config.JournalPath)
		}
		path = filepath.Join(dir, "kiosk.log")
	}
	if path == "" {
		return stdout, nil
	}

	f, err := filex.OpenAppend(path)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	a.closers = append(a.closers, f)
	return f, nil
}

func (a *App) Controller() *kiosk.Controller { return a.ctrl }

func (a *App) Logger() logging.Logger { return a.log }

// UI returns the resolved frontend name.
func (a *App) UI() string { return a.ui }

// Frontend builds the configured frontend over stdin and stdout.
func (a *App) Frontend(stdin io.Reader, stdout io.Writer) Frontend {
	if a.ui == config.UITUI {
		return tui.New(a.ctrl, a.log.With("component", "tui"))
	}
	return cli.New(a.ctrl, stdin, stdout, a.log.With("component", "cli"))
}

// Run loads the login grid, then runs fe next to the online watcher until
// fe returns, ctx is cancelled or the process receives SIGINT or SIGTERM.
// Resources are released on return.
func (a *App) Run(ctx context.Context, fe Frontend) error {
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.log.Info(ctx, "kiosk starting", "server", a.config.ServerURL, "ui", a.ui)
	if err := a.ctrl.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "initial load failed", "err", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.watchOnline(gctx, a.clock, a.config.OnlineCheckInterval)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return fe.Run(gctx)
	})

	err := g.Wait()
	a.log.Info(context.Background(), "kiosk stopped", "err", err)
	return err
}

// watchOnline pings the backend once, then on every tick, and mirrors the
// result into the controller.
func (a *App) watchOnline(ctx context.Context, clk clock.Clock, interval time.Duration) {
	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	a.checkOnline(ctx)
	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.auth.Ping(pingCtx)
	cancel()
	if ctx.Err() != nil {
		return
	}

	online := err == nil
	if online != a.online {
		a.online = online
		if online {
			a.log.Info(ctx, "switched to online mode")
		} else {
			a.log.Warn(ctx, "switched to offline mode", "err", err)
		}
	}
	a.ctrl.SetOnline(online)
}

// Close releases the client, the journal database and the log file. It is
// safe to call more than once.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
