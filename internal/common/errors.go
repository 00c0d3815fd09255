package common

import "errors"

var (
	// Validation errors, detected before any backend call.
	ErrPinTooShort     = errors.New("pin too short")
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")
	ErrEmptyBarcode    = errors.New("barcode is empty")

	ErrIncorrectAdmin = errors.New("incorrect admin code")

	// Controller state errors.
	ErrNoSession        = errors.New("no active session")
	ErrSessionActive    = errors.New("a user is logged in")
	ErrAdminRequired    = errors.New("admin unlock required")
	ErrKeypadClosed     = errors.New("keypad is closed")
	ErrUnknownKeypadKey = errors.New("unknown keypad key")
)
