package domain

// SortKey selects the catalog sort order.
type SortKey string

// Supported sort orders.
const (
	SortLatest    SortKey = "latest"     // newest first, by descending ID
	SortPriceLow  SortKey = "price-low"  // price ascending
	SortPriceHigh SortKey = "price-high" // price descending
	SortTitle     SortKey = "title"      // title A to Z
	SortRating    SortKey = "rating"     // derived rating descending
)

// Valid reports whether k is a recognized sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortLatest, SortPriceLow, SortPriceHigh, SortTitle, SortRating:
		return true
	}
	return false
}

// ParseSortKey maps raw input to a SortKey, falling back to SortLatest.
func ParseSortKey(raw string) SortKey {
	if k := SortKey(raw); k.Valid() {
		return k
	}
	return SortLatest
}

// CategoryAll is the category filter value that matches every book.
const CategoryAll = "all"

// FilterState drives the view pipeline. Transient per request; Reset returns
// every field to its default.
type FilterState struct {
	Query         string  `json:"query"`
	Sort          SortKey `json:"sort"`
	Category      string  `json:"category"`
	FavoritesOnly bool    `json:"favorites_only"`
	Page          int     `json:"page"`
}

// DefaultFilterState returns the cleared filter: no query, latest-first,
// all categories, favorites off, first page.
func DefaultFilterState() FilterState {
	return FilterState{
		Query:         "",
		Sort:          SortLatest,
		Category:      CategoryAll,
		FavoritesOnly: false,
		Page:          1,
	}
}

// Reset clears all fields to their defaults.
func (f *FilterState) Reset() {
	*f = DefaultFilterState()
}

// Normalize fills unset fields so the pipeline always sees usable values.
func (f *FilterState) Normalize() {
	if !f.Sort.Valid() {
		f.Sort = SortLatest
	}
	if f.Category == "" {
		f.Category = CategoryAll
	}
	if f.Page < 1 {
		f.Page = 1
	}
}
