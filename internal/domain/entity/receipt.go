package entity

// ReceiptRow is a single rendered line item.
type ReceiptRow struct {
	Name   string `json:"name"`
	Qty    string `json:"qty"`
	Amount string `json:"amount"`
}

// Receipt is a value object holding the display strings of a receipt.
// It is NOT a database entity: it is composed from an Order at render time.
type Receipt struct {
	ShopName string       `json:"shopName"`
	OrderID  string       `json:"orderId"`
	Channel  string       `json:"channel"`
	Branch   string       `json:"branch,omitempty"`
	Rows     []ReceiptRow `json:"rows"`
	Total    string       `json:"total"`
	SoldAt   string       `json:"soldAt"`
}
