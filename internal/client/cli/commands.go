package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/snackkiosk/internal/client/kiosk"
	"github.com/dmitrijs2005/snackkiosk/internal/common"
)

const defaultJournalLimit = 20

func (c *CLI) Users(ctx context.Context, _ []string) error {
	if err := c.ctrl.Refresh(ctx); err != nil {
		c.log.Warn(ctx, "refresh failed", "err", err)
	}
	v := c.ctrl.Snapshot()
	if len(v.Users) == 0 {
		c.println("No users. Is the server reachable?")
		return nil
	}
	for _, u := range v.Users {
		lock := ""
		if u.HasPin {
			lock = " 🔒"
		}
		c.printf("%d\t%s%s\n", u.UserID, u.Name, lock)
	}
	return nil
}

func (c *CLI) Items(_ context.Context, _ []string) error {
	v := c.ctrl.Snapshot()
	if len(v.Tiles) == 0 {
		c.println("No quick items.")
		return nil
	}
	for _, t := range v.Tiles {
		c.printf("%s\t%s\t%s\n", t.Barcode, t.Label, t.Text())
	}
	return nil
}

func (c *CLI) Select(ctx context.Context, args []string) error {
	if len(args) != 1 {
		c.println("Usage: select <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		c.println("Usage: select <id>")
		return err
	}

	var found bool
	v := c.ctrl.Snapshot()
	for _, u := range v.Users {
		if u.UserID != id {
			continue
		}
		found = true
		err = c.ctrl.SelectUser(ctx, u)
		break
	}
	if !found {
		c.println("Unknown user:", args[0], "(try 'users')")
		return nil
	}
	if errors.Is(err, common.ErrSessionActive) {
		c.println("Log out first.")
		return err
	}

	if c.ctrl.Snapshot().Keypad.Open {
		err = c.enterKeypad(ctx)
	}
	c.report()
	return err
}

func (c *CLI) Pin(ctx context.Context, _ []string) error {
	if !c.ctrl.Snapshot().Keypad.Open {
		c.println("Keypad is closed.")
		return nil
	}
	err := c.enterKeypad(ctx)
	c.report()
	return err
}

// Keypad presses keys one by one. A run of digits such as "1234" presses
// each digit.
func (c *CLI) Keypad(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.println("Usage: keypad <digits|clear|enter|close>...")
		return nil
	}

	var err error
	for _, arg := range args {
		keys := []string{arg}
		if isDigits(arg) {
			keys = strings.Split(arg, "")
		}
		for _, k := range keys {
			if err = c.ctrl.PressKey(ctx, k); err != nil {
				break
			}
		}
		if err != nil {
			break
		}
	}

	switch {
	case errors.Is(err, common.ErrKeypadClosed):
		c.println("Keypad is closed.")
	case errors.Is(err, common.ErrUnknownKeypadKey):
		c.println("Unknown key. Use digits, clear, enter or close.")
	}

	if v := c.ctrl.Snapshot(); v.Keypad.Open {
		c.printf("%s [%s]\n", v.Keypad.Title, v.Keypad.Mask)
	}
	c.report()
	return err
}

func (c *CLI) Scan(ctx context.Context, args []string) error {
	if len(args) != 1 {
		c.println("Usage: scan <barcode>")
		return nil
	}
	err := c.ctrl.Scan(ctx, args[0])
	if errors.Is(err, common.ErrNoSession) {
		c.println("Select a user first.")
		return err
	}
	c.report()
	return err
}

func (c *CLI) Undo(ctx context.Context, _ []string) error {
	err := c.ctrl.UndoLast(ctx)
	if errors.Is(err, common.ErrNoSession) {
		c.println("Select a user first.")
		return err
	}
	c.report()
	return err
}

func (c *CLI) SetPin(ctx context.Context, _ []string) error {
	confirm := func(prompt string) bool { return Confirm(c.reader, prompt, c.writer()) }

	err := c.ctrl.HandlePinButton(ctx, confirm)
	if errors.Is(err, common.ErrNoSession) {
		c.println("Select a user first.")
		return err
	}
	if err == nil && c.ctrl.Snapshot().Keypad.Mode == kiosk.ModeSetPin {
		err = c.enterKeypad(ctx)
	}
	c.report()
	return err
}

func (c *CLI) Balance(_ context.Context, _ []string) error {
	v := c.ctrl.Snapshot()
	if v.Session == nil {
		c.println("Select a user first.")
		return common.ErrNoSession
	}
	c.println(v.Welcome)
	c.println("Balance:", v.Balance)
	c.println("PIN:", v.PinButton.Label, "(setpin)")
	return nil
}

func (c *CLI) Admin(ctx context.Context, _ []string) error {
	if err := c.ctrl.OpenAdmin(); err != nil {
		c.println("Log out first.")
		return err
	}
	err := c.enterKeypad(ctx)
	c.report()
	if c.isAdmin() {
		c.println("Stocktake mode. " + helpAdmin)
	}
	return err
}

func (c *CLI) Stock(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		c.println("Usage: stock <barcode> [qty]")
		return nil
	}
	qty := kiosk.DefaultQuantity
	if len(args) == 2 {
		qty = args[1]
	}

	err := c.ctrl.SubmitStock(ctx, args[0], qty)
	if errors.Is(err, common.ErrAdminRequired) {
		c.println("Stocktake is locked. Use 'admin' first.")
		return err
	}
	if msg := c.ctrl.Snapshot().StocktakeMessage; msg != "" {
		c.println(msg)
	}
	return err
}

func (c *CLI) Journal(ctx context.Context, args []string) error {
	if !c.isAdmin() {
		c.println("Stocktake is locked. Use 'admin' first.")
		return common.ErrAdminRequired
	}
	limit := defaultJournalLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			c.println("Usage: journal [n]")
			return nil
		}
		limit = n
	}

	entries, err := c.ctrl.RecentActivity(ctx, limit)
	if err != nil {
		c.println("Journal unavailable:", err)
		return err
	}
	if len(entries) == 0 {
		c.println("Journal is empty.")
		return nil
	}
	for _, e := range entries {
		line := e.At.Local().Format("2006-01-02 15:04:05") + "  " + string(e.Kind)
		if e.UserID != 0 {
			line += "  user=" + strconv.FormatInt(e.UserID, 10)
		}
		if e.Barcode != "" {
			line += "  barcode=" + e.Barcode
		}
		if e.Detail != "" {
			line += "  " + e.Detail
		}
		c.println(line)
	}
	return nil
}

func (c *CLI) ExitAdmin(_ context.Context, _ []string) error {
	c.ctrl.ExitStocktake()
	return nil
}

func (c *CLI) Logout(ctx context.Context, _ []string) error {
	if !c.isLoggedIn() {
		c.println("Nobody is logged in.")
		return nil
	}
	c.manualLogout.Store(true)
	c.ctrl.Logout(ctx, kiosk.ReasonManual)
	c.manualLogout.Store(false)
	c.println("Logged out.")
	return nil
}

// enterKeypad reads the keypad value without echo, presses its digits and
// submits it. When stdin is not a terminal the read fails and the keypad
// stays open for the keypad command.
func (c *CLI) enterKeypad(ctx context.Context) error {
	v := c.ctrl.Snapshot()
	if !v.Keypad.Open {
		return nil
	}

	secret, err := GetSecret(c.writer(), v.Keypad.Title)
	if err != nil {
		c.log.Debug(ctx, "masked input unavailable", "err", err)
		return err
	}
	defer common.WipeByteArray(secret)

	digits, skipped := 0, false
	for _, b := range secret {
		if b < '0' || b > '9' {
			skipped = true
			continue
		}
		digits++
		_ = c.ctrl.PressKey(ctx, string(rune(b)))
	}
	if skipped {
		c.println("Ignored characters other than digits.")
	}
	if digits > common.KeypadMaxDigits {
		c.printf("Only the first %d digits were used.\n", common.KeypadMaxDigits)
	}
	return c.ctrl.PressKey(ctx, "enter")
}

// report prints the alert (dismissing it) and the status line.
func (c *CLI) report() {
	v := c.ctrl.Snapshot()
	if v.Alert != "" {
		c.println("!", v.Alert)
		c.ctrl.DismissAlert()
	}
	if v.Status.Text != "" {
		line := v.Status.Text
		if v.Status.Undo {
			line += "  (undo)"
		}
		c.println(line)
	}
	if v.Session != nil && v.Status.Kind != kiosk.StatusNone {
		c.println("Balance:", v.Balance)
	}
	if v.Session != nil && v.Status.Kind == kiosk.StatusNone && v.Alert == "" {
		c.println(v.Welcome + ". Balance: " + v.Balance)
	}
	if v.Keypad.Open {
		c.println("Keypad open: type 'pin', or 'keypad <digits>' then 'keypad enter'; 'keypad close' cancels.")
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
