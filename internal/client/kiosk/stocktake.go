package kiosk

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
	"github.com/dmitrijs2005/snackkiosk/internal/client/services"
	"github.com/dmitrijs2005/snackkiosk/internal/common"
)

// DefaultQuantity is what the quantity field resets to after a submit.
const DefaultQuantity = "1"

// SubmitStock adds qtyText units of barcode. The quantity must parse as a
// positive integer; otherwise nothing is sent and common.ErrInvalidQuantity
// is returned. A nil error means the frontend should clear the barcode field
// and reset the quantity to DefaultQuantity.
func (c *Controller) SubmitStock(ctx context.Context, barcode, qtyText string) error {
	c.mu.Lock()
	if c.screen != ScreenStocktake {
		c.mu.Unlock()
		return common.ErrAdminRequired
	}
	c.mu.Unlock()

	barcode = strings.TrimSpace(barcode)
	qty, err := services.ParseQuantity(qtyText)
	if err != nil {
		c.update(func() { c.stockMsg = textBadQuantity })
		return err
	}

	res, err := c.stock.Restock(ctx, barcode, qty)

	c.mu.Lock()
	if err != nil {
		if c.screen == ScreenStocktake {
			if errors.Is(err, common.ErrEmptyBarcode) {
				c.stockMsg = textNoBarcode
			} else {
				c.stockMsg = errorText(failureMessage(err, "restock failed"))
			}
		}
		v, subs := c.changedLocked()
		c.mu.Unlock()
		publish(v, subs)
		c.log.Warn(ctx, "restock failed", "barcode", barcode, "err", err)
		return err
	}

	if c.screen == ScreenStocktake {
		c.stockMsg = textStockAdded
	}
	if res.NewStock != nil {
		c.setTileLocked(barcode, *res.NewStock)
	}
	v, subs := c.changedLocked()
	c.mu.Unlock()
	publish(v, subs)

	c.log.Info(ctx, "restock", "barcode", barcode, "qty", qty)
	c.record(ctx, models.JournalEntry{Kind: models.JournalRestock, Barcode: barcode, Detail: "qty " + strconv.Itoa(qty)})
	return nil
}

// ExitStocktake leaves admin mode for the login screen.
func (c *Controller) ExitStocktake() {
	c.update(func() {
		if c.screen == ScreenStocktake {
			c.screen = ScreenLogin
		}
		c.stockMsg = ""
	})
}
