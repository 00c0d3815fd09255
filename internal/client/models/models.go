// Package models defines the kiosk's client-side data: the session, money
// amounts, login and stock tiles, and the JSON bodies exchanged with the
// backend.
package models

import (
	"fmt"
	"strconv"
)

// Money is a balance or price in dollars. The backend owns the arithmetic;
// the kiosk only displays it.
type Money float64

// String formats m as "$12.50". Negative amounts keep the sign after the
// dollar sign ("$-3.00").
func (m Money) String() string {
	return "$" + strconv.FormatFloat(float64(m), 'f', 2, 64)
}

// Negative reports whether the balance is overdrawn.
func (m Money) Negative() bool { return m < 0 }

// Session is the authenticated kiosk user. Balance and HasPin are mutated in
// place by purchases, undo and PIN changes.
type Session struct {
	UserID  int64
	Name    string
	Balance Money
	HasPin  bool
}

// UserTile is one entry of the login grid.
type UserTile struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	HasPin bool   `json:"has_pin"`
}

// StockTile is the last known remaining count of a quick item. It is not
// authoritative.
type StockTile struct {
	Barcode   string
	Label     string
	Remaining int
	Known     bool
}

// OutOfStock reports a known count of zero or less.
func (t StockTile) OutOfStock() bool { return t.Known && t.Remaining <= 0 }

// Text renders the count tag: "(3 left)", "EMPTY" or "" when unknown.
func (t StockTile) Text() string {
	switch {
	case !t.Known:
		return ""
	case t.Remaining > 0:
		return fmt.Sprintf("(%d left)", t.Remaining)
	default:
		return "EMPTY"
	}
}

// ScanStatus values accepted by the kiosk. Anything else is a failure.
const (
	ScanStatusSuccess = "success"
	ScanStatusNewItem = "new_item"
)

// ScanResult is the accepted outcome of a scan.
type ScanResult struct {
	Status     string
	Product    string
	Price      Money
	NewBalance Money
	// NewStock is nil when the backend did not report a count.
	NewStock *int
}

// NewItem reports the "not in catalog yet" outcome.
func (r *ScanResult) NewItem() bool { return r.Status == ScanStatusNewItem }

// UndoResult is the accepted outcome of undo_last.
type UndoResult struct {
	NewBalance    Money
	Product       string
	Barcode       string
	RestoredStock int
}

// RestockResult carries whatever the backend chose to report. Both fields
// are optional.
type RestockResult struct {
	Message  string
	NewStock *int
}
