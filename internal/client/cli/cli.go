package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/snackkiosk/internal/client/kiosk"
	"github.com/dmitrijs2005/snackkiosk/internal/logging"
)

// CLI runs the kiosk in a plain terminal.
type CLI struct {
	ctrl   *kiosk.Controller
	log    logging.Logger
	reader *bufio.Reader

	mu         sync.Mutex
	out        io.Writer
	hadSession bool

	manualLogout atomic.Bool
}

// New builds a CLI reading commands from in and writing to out.
func New(ctrl *kiosk.Controller, in io.Reader, out io.Writer, log logging.Logger) *CLI {
	c := &CLI{
		ctrl:   ctrl,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}
	ctrl.Subscribe(c.onView)
	return c
}

// Run blocks until the user exits, input ends or ctx is cancelled.
func (c *CLI) Run(ctx context.Context) error {
	c.println("Snack kiosk (type 'help' for commands)")

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, c, c.status, c.reader, c.writer())
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		c.println()
		return nil
	}
}

// onView prints a notice when the session ends without a logout command,
// which only the inactivity timer does.
func (c *CLI) onView(v kiosk.View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ended := c.hadSession && v.Session == nil
	c.hadSession = v.Session != nil
	if ended && !c.manualLogout.Load() {
		fmt.Fprintln(c.out, "\nLogged out after inactivity.")
	}
}

func (c *CLI) touch() { c.ctrl.Touch() }

func (c *CLI) isLoggedIn() bool { return c.ctrl.Snapshot().Session != nil }

func (c *CLI) isAdmin() bool { return c.ctrl.Snapshot().Screen == kiosk.ScreenStocktake }

func (c *CLI) status() string {
	v := c.ctrl.Snapshot()
	net := "offline"
	if v.Online {
		net = "online"
	}
	switch {
	case v.Screen == kiosk.ScreenStocktake:
		return fmt.Sprintf("(stocktake %s)", net)
	case v.Session != nil:
		return fmt.Sprintf("(%s %s %s)", v.Session.Name, v.Balance, net)
	default:
		return fmt.Sprintf("(%s)", net)
	}
}

// writer serialises REPL output with the inactivity notice.
func (c *CLI) writer() io.Writer { return lockedWriter{c} }

type lockedWriter struct{ c *CLI }

func (l lockedWriter) Write(p []byte) (int, error) {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	return l.c.out.Write(p)
}

func (c *CLI) println(args ...any) {
	fmt.Fprintln(c.writer(), args...)
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.writer(), format, args...)
}
