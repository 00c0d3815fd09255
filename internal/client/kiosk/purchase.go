package kiosk

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/common"
)

// Scan charges barcode to the logged-in user. The status shows
// "Processing..." until the backend answers; balance and stock change only
// after it confirms.
func (c *Controller) Scan(ctx context.Context, barcode string) error {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return common.ErrNoSession
	}
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		c.mu.Unlock()
		return common.ErrEmptyBarcode
	}
	userID, gen := c.session.UserID, c.sessGen
	c.status = Status{Kind: StatusProcessing, Text: textProcessing}
	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)

	res, err := c.purchase.Scan(ctx, userID, barcode)

	c.mu.Lock()
	if c.sessGen != gen {
		c.mu.Unlock()
		return nil
	}

	var entry models.JournalEntry
	beep := false
	switch {
	case err != nil:
		c.status = Status{Kind: StatusError, Text: errorText(failureMessage(err, textScanFailed))}
		entry = models.JournalEntry{Kind: models.JournalScanFailed, UserID: userID, Barcode: barcode, Detail: err.Error()}
	case res.NewItem():
		c.status = Status{Kind: StatusNewItem, Text: newItemText(res.Product)}
		entry = models.JournalEntry{Kind: models.JournalScanNewItem, UserID: userID, Barcode: barcode, Detail: res.Product}
	default:
		beep = true
		c.status = Status{Kind: StatusSuccess, Text: scanSuccessText(res.Product, res.Price), Undo: true}
		c.session.Balance = res.NewBalance
		if res.NewStock != nil {
			c.setTileLocked(barcode, *res.NewStock)
		}
		entry = models.JournalEntry{Kind: models.JournalScan, UserID: userID, Barcode: barcode, Detail: res.Product + " " + res.Price.String()}
	}
	v, subs = c.changedLocked()
	c.mu.Unlock()

	if beep {
		c.beeper.Beep()
	}
	publish(v, subs)

	if err != nil {
		c.log.Warn(ctx, "scan failed", "user_id", userID, "barcode", barcode, "err", err)
	} else {
		c.log.Info(ctx, "scan", "user_id", userID, "barcode", barcode, "status", res.Status)
	}
	if entry.Kind != "" {
		c.record(ctx, entry)
	}
	return err
}

// TriggerScan is a scan started by the kiosk itself, such as a tap on a
// quick-item tile. It counts as user activity.
func (c *Controller) TriggerScan(ctx context.Context, barcode string) error {
	c.Touch()
	return c.Scan(ctx, barcode)
}

// UndoLast reverses the user's most recent purchase. Without a session it
// returns common.ErrNoSession and sends nothing.
func (c *Controller) UndoLast(ctx context.Context) error {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return common.ErrNoSession
	}
	userID, gen := c.session.UserID, c.sessGen
	c.mu.Unlock()

	res, err := c.purchase.UndoLast(ctx, userID)

	c.mu.Lock()
	if c.sessGen != gen {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.alert = "Undo Failed: " + failureMessage(err, "nothing to undo")
		v, subs := c.changedLocked()
		c.mu.Unlock()
		publish(v, subs)
		c.log.Warn(ctx, "undo failed", "user_id", userID, "err", err)
		return err
	}

	c.session.Balance = res.NewBalance
	c.status = Status{Kind: StatusUndone, Text: undoneText(res.Product)}
	if res.Barcode != "" {
		c.setTileLocked(res.Barcode, res.RestoredStock)
	}
	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)

	c.log.Info(ctx, "undo", "user_id", userID, "barcode", res.Barcode)
	c.record(ctx, models.JournalEntry{Kind: models.JournalUndo, UserID: userID, Barcode: res.Barcode, Detail: res.Product})
	return nil
}
