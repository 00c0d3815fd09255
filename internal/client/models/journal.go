package models

import "time"

// JournalKind names a kiosk event in the local activity journal.
type JournalKind string

const (
	JournalLogin       JournalKind = "login"
	JournalLoginFailed JournalKind = "login_failed"
	JournalLogout      JournalKind = "logout"
	JournalScan        JournalKind = "scan"
	JournalScanNewItem JournalKind = "scan_new_item"
	JournalScanFailed  JournalKind = "scan_failed"
	JournalUndo        JournalKind = "undo"
	JournalPinSet      JournalKind = "pin_set"
	JournalPinRemoved  JournalKind = "pin_removed"
	JournalRestock     JournalKind = "restock"
	JournalAdminUnlock JournalKind = "admin_unlock"
	JournalAdminDenied JournalKind = "admin_denied"
)

// JournalEntry is one troubleshooting record. It never holds PINs, admin
// codes or authoritative balances. UserID is zero when no user applies.
type JournalEntry struct {
	ID      string
	At      time.Time
	Kind    JournalKind
	UserID  int64
	Barcode string
	Detail  string
}
