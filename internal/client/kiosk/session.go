package kiosk

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/common"
)

// SelectUser handles a tap on a login tile: users with a PIN get the keypad,
// the others are logged in straight away with an empty PIN.
func (c *Controller) SelectUser(ctx context.Context, tile models.UserTile) error {
	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		return common.ErrSessionActive
	}
	c.alert = ""
	if tile.HasPin {
		c.keypad.open(ModeLogin, tile.UserID)
		v, subs := c.changedLocked()
		c.mu.Unlock()
		publish(v, subs)
		return nil
	}
	c.mu.Unlock()

	return c.AttemptLogin(ctx, tile.UserID, "")
}

// AttemptLogin authenticates userID. On success the scan screen opens and
// the idle countdown starts. On failure an alert is raised and the keypad,
// if open, is cleared for another try.
func (c *Controller) AttemptLogin(ctx context.Context, userID int64, pin string) error {
	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		return common.ErrSessionActive
	}
	gen := c.sessGen
	c.mu.Unlock()

	s, err := c.auth.Login(ctx, userID, pin)

	c.mu.Lock()
	if c.sessGen != gen || c.session != nil {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.alert = failureMessage(err, textLoginFailed)
		if c.keypad.mode == ModeLogin {
			c.keypad.clear()
		}
		v, subs := c.changedLocked()
		c.mu.Unlock()
		publish(v, subs)

		c.log.Info(ctx, "login failed", "user_id", userID, "err", err)
		c.record(ctx, models.JournalEntry{Kind: models.JournalLoginFailed, UserID: userID, Detail: err.Error()})
		return err
	}

	c.keypad.close()
	c.session = s
	c.sessGen++
	c.screen = ScreenScan
	c.status = Status{Kind: StatusNone}
	c.alert = ""
	c.stockMsg = ""
	c.rearmLocked()
	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)

	c.log.Info(ctx, "login", "user_id", s.UserID)
	c.record(ctx, models.JournalEntry{Kind: models.JournalLogin, UserID: s.UserID})
	return nil
}

// Logout ends the session, if any, returns to the login screen and reloads
// the login grid.
func (c *Controller) Logout(ctx context.Context, reason LogoutReason) {
	c.mu.Lock()
	ended := c.resetLocked()
	v, subs := c.changedLocked()
	c.mu.Unlock()

	publish(v, subs)
	c.afterLogout(ctx, ended, reason)
}

// resetLocked drops all per-user state and returns the ended session.
func (c *Controller) resetLocked() *models.Session {
	ended := c.session
	c.stopTimerLocked()
	c.session = nil
	c.sessGen++
	c.keypad.close()
	c.screen = ScreenLogin
	c.status = Status{Kind: StatusNone}
	c.alert = ""
	c.stockMsg = ""
	return ended
}

func (c *Controller) afterLogout(ctx context.Context, ended *models.Session, reason LogoutReason) {
	if ended != nil {
		c.log.Info(ctx, "logout", "user_id", ended.UserID, "reason", string(reason))
		c.record(ctx, models.JournalEntry{Kind: models.JournalLogout, UserID: ended.UserID, Detail: string(reason)})
	}
	_ = c.Refresh(ctx)
}

// OpenKeypad opens the keypad in mode with an empty buffer. userID is used
// by ModeLogin only.
func (c *Controller) OpenKeypad(mode KeypadMode, userID int64) error {
	c.mu.Lock()
	switch mode {
	case ModeSetPin:
		if c.session == nil {
			c.mu.Unlock()
			return common.ErrNoSession
		}
	case ModeLogin, ModeAdmin:
		if c.session != nil {
			c.mu.Unlock()
			return common.ErrSessionActive
		}
	default:
		c.mu.Unlock()
		return common.ErrKeypadClosed
	}
	c.alert = ""
	c.keypad.open(mode, userID)
	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)
	return nil
}

// OpenAdmin opens the keypad for the admin code.
func (c *Controller) OpenAdmin() error {
	return c.OpenKeypad(ModeAdmin, 0)
}

// CloseKeypad closes the keypad and discards its buffer.
func (c *Controller) CloseKeypad() {
	c.update(func() { c.keypad.close() })
}

// PressKey feeds one keypad key: a digit, "clear", "enter" or "close".
// A digit beyond the eighth is ignored.
func (c *Controller) PressKey(ctx context.Context, key string) error {
	c.mu.Lock()
	if !c.keypad.isOpen() {
		c.mu.Unlock()
		return common.ErrKeypadClosed
	}

	switch {
	case isDigit(key):
		if !c.keypad.press(key[0]) {
			c.mu.Unlock()
			return nil
		}
	case key == "clear":
		c.keypad.clear()
	case key == "close":
		c.keypad.close()
	case key == "enter":
		mode, userID, value := c.keypad.mode, c.keypad.pendingUserID, c.keypad.value()
		c.mu.Unlock()
		return c.submitKeypad(ctx, mode, userID, value)
	default:
		c.mu.Unlock()
		return common.ErrUnknownKeypadKey
	}

	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)
	return nil
}

func (c *Controller) submitKeypad(ctx context.Context, mode KeypadMode, userID int64, value string) error {
	switch mode {
	case ModeLogin:
		return c.AttemptLogin(ctx, userID, value)
	case ModeAdmin:
		return c.submitAdmin(ctx, value)
	case ModeSetPin:
		return c.SetUserPin(ctx, value)
	}
	return common.ErrKeypadClosed
}

func (c *Controller) submitAdmin(ctx context.Context, code string) error {
	err := c.auth.VerifyAdmin(ctx, code)

	c.mu.Lock()
	if c.keypad.mode != ModeAdmin {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		if errors.Is(err, common.ErrIncorrectAdmin) {
			c.alert = textIncorrectCode
		} else if isTransport(err) {
			c.alert = textNetworkError
		} else {
			c.alert = textAdminFailed
		}
		c.keypad.clear()
		v, subs := c.changedLocked()
		c.mu.Unlock()
		publish(v, subs)

		c.log.Warn(ctx, "admin unlock denied", "err", err)
		c.record(ctx, models.JournalEntry{Kind: models.JournalAdminDenied})
		return err
	}

	c.keypad.close()
	c.screen = ScreenStocktake
	c.stockMsg = ""
	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)

	c.log.Info(ctx, "admin unlocked")
	c.record(ctx, models.JournalEntry{Kind: models.JournalAdminUnlock})
	return nil
}

// HandlePinButton removes the PIN after confirm approves the prompt, or
// opens the keypad to create one when the user has none.
func (c *Controller) HandlePinButton(ctx context.Context, confirm func(prompt string) bool) error {
	c.mu.Lock()
	s := c.session
	if s == nil {
		c.mu.Unlock()
		return common.ErrNoSession
	}
	if !s.HasPin {
		c.alert = ""
		c.keypad.open(ModeSetPin, 0)
		v, subs := c.changedLocked()
		c.mu.Unlock()
		publish(v, subs)
		return nil
	}
	userID, gen := s.UserID, c.sessGen
	c.mu.Unlock()

	if confirm == nil || !confirm(textRemovePrompt) {
		return nil
	}

	err := c.auth.RemovePin(ctx, userID)

	c.mu.Lock()
	if c.sessGen != gen {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		// a rejected removal leaves the button as it was
		if isTransport(err) {
			c.alert = textNetworkError
		}
		v, subs := c.changedLocked()
		c.mu.Unlock()
		publish(v, subs)
		c.log.Warn(ctx, "remove pin failed", "user_id", userID, "err", err)
		return err
	}
	c.session.HasPin = false
	c.alert = textPinRemoved
	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)

	c.log.Info(ctx, "pin removed", "user_id", userID)
	c.record(ctx, models.JournalEntry{Kind: models.JournalPinRemoved, UserID: userID})
	return nil
}

// SetUserPin sets a new PIN for the logged-in user. PINs shorter than four
// digits raise an alert and never reach the backend.
func (c *Controller) SetUserPin(ctx context.Context, pin string) error {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return common.ErrNoSession
	}
	userID, gen := c.session.UserID, c.sessGen
	c.mu.Unlock()

	err := c.auth.SetPin(ctx, userID, pin)

	c.mu.Lock()
	if c.sessGen != gen {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		switch {
		case errors.Is(err, common.ErrPinTooShort):
			c.alert = textPinTooShort
		case isTransport(err):
			c.alert = textNetworkError
			c.keypad.clear()
		default:
			c.alert = "Error: " + failureMessage(err, "could not set PIN")
			c.keypad.clear()
		}
		v, subs := c.changedLocked()
		c.mu.Unlock()
		publish(v, subs)
		c.log.Warn(ctx, "set pin failed", "user_id", userID, "err", err)
		return err
	}

	c.session.HasPin = true
	c.alert = textPinSet
	if c.keypad.mode == ModeSetPin {
		c.keypad.close()
	}
	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)

	c.log.Info(ctx, "pin set", "user_id", userID)
	c.record(ctx, models.JournalEntry{Kind: models.JournalPinSet, UserID: userID})
	return nil
}
