package kiosk

import (
	"strings"

	"github.com/dmitrijs2005/snackkiosk/internal/client/models"
)

// Screen is the page a frontend shows.
type Screen string

const (
	ScreenLogin     Screen = "login"
	ScreenScan      Screen = "scan"
	ScreenStocktake Screen = "stocktake"
)

// KeypadMode is what the keypad's digits are for. ModeNone means closed.
type KeypadMode string

const (
	ModeNone   KeypadMode = ""
	ModeLogin  KeypadMode = "login"
	ModeAdmin  KeypadMode = "admin"
	ModeSetPin KeypadMode = "setpin"
)

// StatusKind classifies the status line; frontends color by it.
type StatusKind string

const (
	StatusNone       StatusKind = "none"
	StatusProcessing StatusKind = "processing"
	StatusSuccess    StatusKind = "success"
	StatusNewItem    StatusKind = "new_item"
	StatusUndone     StatusKind = "undone"
	StatusError      StatusKind = "error"
)

// Status is the line under the barcode field. Undo marks a status that
// offers the inline undo action.
type Status struct {
	Kind StatusKind
	Text string
	Undo bool
}

// PinButton is the PIN toggle of the scan screen. Remove is set when the
// user has a PIN and pressing the button removes it.
type PinButton struct {
	Label  string
	Remove bool
}

// KeypadView is the keypad modal. Mask holds one '*' per entered digit.
type KeypadView struct {
	Open  bool
	Mode  KeypadMode
	Title string
	Mask  string
}

// View is an immutable snapshot of everything a frontend renders. Version
// grows with every change, so a frontend can drop stale snapshots.
type View struct {
	Version uint64

	Screen  Screen
	Users   []models.UserTile
	Tiles   []models.StockTile
	Session *models.Session

	Welcome         string
	Balance         string
	BalanceNegative bool
	PinButton       PinButton

	Keypad           KeypadView
	Status           Status
	Alert            string
	StocktakeMessage string
	Online           bool
}

// Tile returns the stock tile for barcode.
func (v View) Tile(barcode string) (models.StockTile, bool) {
	for _, t := range v.Tiles {
		if t.Barcode == barcode {
			return t, true
		}
	}
	return models.StockTile{}, false
}

func pinButton(hasPin bool) PinButton {
	if hasPin {
		return PinButton{Label: "🔓 Remove PIN", Remove: true}
	}
	return PinButton{Label: "🔒 Set PIN"}
}

func keypadTitle(mode KeypadMode) string {
	switch mode {
	case ModeAdmin:
		return "Enter Admin Code"
	case ModeSetPin:
		return "Create New PIN"
	case ModeLogin:
		return "Enter PIN"
	}
	return ""
}

func mask(n int) string { return strings.Repeat("*", n) }
