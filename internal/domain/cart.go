package domain

// CartItem is a snapshot of a book taken at add-to-cart time. The cart is an
// ordered, append-only sequence: duplicates are allowed and there is no
// removal operation.
type CartItem struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// CartItemFor snapshots a record into a cart entry. A non-finite price is
// stored as zero rather than propagated.
func CartItemFor(b BookRecord) CartItem {
	price := b.Price
	if !isFinite(price) {
		price = 0
	}
	return CartItem{
		ID:    b.ID,
		Title: b.Title,
		Price: price,
	}
}
