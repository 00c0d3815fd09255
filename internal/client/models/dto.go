package models

// Request and response bodies of the backend JSON API.

type LoginRequest struct {
	UserID int64  `json:"user_id"`
	Pin    string `json:"pin"`
}

type LoginResponse struct {
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
	UserID  int64   `json:"user_id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	HasPin  bool    `json:"has_pin"`
}

type SetPinRequest struct {
	UserID int64  `json:"user_id"`
	Pin    string `json:"pin"`
}

type UserRequest struct {
	UserID int64 `json:"user_id"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ScanRequest struct {
	UserID  int64  `json:"user_id"`
	Barcode string `json:"barcode"`
}

type ScanResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message,omitempty"`
	Product    string  `json:"product,omitempty"`
	Price      float64 `json:"price,omitempty"`
	NewBalance float64 `json:"new_balance,omitempty"`
	NewStock   *int    `json:"new_stock,omitempty"`
}

type UndoInfo struct {
	Product       string `json:"product"`
	Barcode       string `json:"barcode"`
	RestoredStock int    `json:"restored_stock"`
}

type UndoResponse struct {
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
	NewBalance float64   `json:"new_balance,omitempty"`
	UndoInfo   *UndoInfo `json:"undo_info,omitempty"`
}

type RestockRequest struct {
	Barcode string `json:"barcode"`
	Qty     int    `json:"qty"`
}

type RestockResponse struct {
	Message  string `json:"message,omitempty"`
	NewStock *int   `json:"new_stock,omitempty"`
}

type AdminVerifyRequest struct {
	Code string `json:"code"`
}

type QuickItem struct {
	Barcode  string `json:"barcode"`
	Label    string `json:"label"`
	ImageURL string `json:"image_url,omitempty"`
	Stock    *int   `json:"stock,omitempty"`
}

// Tile converts a quick item into its stock tile.
func (q QuickItem) Tile() StockTile {
	t := StockTile{Barcode: q.Barcode, Label: q.Label}
	if q.Stock != nil {
		t.Remaining = *q.Stock
		t.Known = true
	}
	return t
}
