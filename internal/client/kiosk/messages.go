package kiosk

import "github.com/dmitrijs2005/snackkiosk/internal/client/models"

// Texts shown to kiosk users.
const (
	textProcessing    = "Processing..."
	textNetworkError  = "Network error, please try again"
	textLoginFailed   = "Login Failed"
	textPinTooShort   = "PIN must be 4 digits"
	textPinSet        = "PIN Set!"
	textPinRemoved    = "PIN Removed."
	textRemovePrompt  = "Remove PIN?"
	textIncorrectCode = "Incorrect Admin Code"
	textAdminFailed   = "Admin check failed, please try again"
	textScanFailed    = "Scan failed"
	textStockAdded    = "✅ Stock Added!"
	textBadQuantity   = "❌ Quantity must be a positive whole number"
	textNoBarcode     = "❌ Enter a barcode"
)

func scanSuccessText(product string, price models.Money) string {
	return "✅ " + product + " (" + price.String() + ")"
}

func newItemText(product string) string { return "🆕 New: " + product }

func undoneText(product string) string { return "↩ UNDONE: " + product }

func errorText(msg string) string { return "❌ " + msg }

func welcomeText(name string) string { return "Hi " + name }
