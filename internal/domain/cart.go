package domain

// CartLine is a product snapshot with its quantity. Quantity is always >= 1.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity in cents.
func (l CartLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// CartSnapshot is a consistent, read-only view of a cart for rendering.
type CartSnapshot struct {
	Lines      []CartLine `json:"lines"`
	TotalCount int        `json:"total_count"`
	// TotalCents is the exact total; TotalPrice is the same amount rounded
	// to 2 decimals for display.
	TotalCents int64   `json:"total_cents"`
	TotalPrice float64 `json:"total_price"`
}
