package domain

// BookMeta holds the locally-owned enrichment fields for one book.
// Keyed by book ID in the local store; created on first sight of a book,
// removed only when the owning book is deleted remotely.
type BookMeta struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Rating   float64  `json:"rating"`
	Favorite bool     `json:"favorite"`
	Stock    int      `json:"stock"`
}

// FallbackMeta is the hard-coded metadata used when a book is rendered before
// its BookMeta entry exists.
func FallbackMeta() BookMeta {
	return BookMeta{
		Category: "Technology",
		Tags:     []string{"General"},
		Rating:   4,
		Favorite: false,
		Stock:    0,
	}
}

// StockStatus is a display label derived from a stock count.
type StockStatus string

// Stock status labels.
const (
	StockOut     StockStatus = "Out of stock"
	StockLimited StockStatus = "Limited"
	StockIn      StockStatus = "In stock"
)

// lowStockThreshold marks the boundary between limited and healthy stock.
const lowStockThreshold = 5

// StatusForStock maps a stock count to its display label.
func StatusForStock(count int) StockStatus {
	switch {
	case count <= 0:
		return StockOut
	case count <= lowStockThreshold:
		return StockLimited
	default:
		return StockIn
	}
}

// LowStock reports whether a count falls at or below the low-stock threshold.
func LowStock(count int) bool {
	return count <= lowStockThreshold
}
