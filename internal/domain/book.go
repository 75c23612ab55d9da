// Package domain contains the core business entities and domain logic for the Shelfline catalog.
package domain

import "math"

// BookRecord is a book row as owned by the remote record store.
// The catalog treats it as read-mostly: it is refreshed by a full reload, or
// patched in place after a known-successful mutation.
type BookRecord struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Desc  string  `json:"desc"`
	Price float64 `json:"price"`
	Cover string  `json:"cover"`
}

// BookDraft carries the editable fields of a book for create and update calls.
type BookDraft struct {
	Title string  `json:"title"`
	Desc  string  `json:"desc"`
	Price float64 `json:"price"`
	Cover string  `json:"cover"`
}

// Draft returns the record's editable fields, used when an update must carry
// the existing values alongside a changed one.
func (b BookRecord) Draft() BookDraft {
	return BookDraft{
		Title: b.Title,
		Desc:  b.Desc,
		Price: b.Price,
		Cover: b.Cover,
	}
}

// EnrichedBook is a BookRecord merged with its locally-owned metadata.
// Ephemeral: recomputed per view, never persisted.
type EnrichedBook struct {
	BookRecord
	Meta BookMeta `json:"meta"`
}

// maxValidPrice is the upper bound for a price to count toward catalog statistics.
const maxValidPrice = 5000

// ValidPrice reports whether p is usable for aggregate statistics: finite,
// non-negative, and at most 5000. Invalid prices are still displayed; they
// are only excluded from sums and averages.
func ValidPrice(p float64) bool {
	return isFinite(p) && p >= 0 && p <= maxValidPrice
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Round2 rounds to two decimal places, matching price arithmetic everywhere.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
