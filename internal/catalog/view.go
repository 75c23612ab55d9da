package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shelfline/shelfline-server/internal/domain"
)

// pageSize is the fixed number of books per page.
const pageSize = 9

// Stats are read-only aggregates over the filtered set. Prices outside the
// valid range contribute to neither the average nor the total.
type Stats struct {
	Count        int     `json:"count"`
	AveragePrice float64 `json:"average_price"`
	TotalValue   float64 `json:"total_value"`
	LowStock     int     `json:"low_stock"`
}

// View is one page of the catalog plus its pagination and aggregate context.
type View struct {
	Books      []domain.EnrichedBook `json:"books"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
	Total      int                   `json:"total"`
	Stats      Stats                 `json:"stats"`
}

// BuildView runs the filter, sort, and paginate pipeline. Pure: it never
// fails, and an out-of-range page is clamped rather than rejected.
func BuildView(books []domain.EnrichedBook, f domain.FilterState) View {
	filtered := filterBooks(books, f)
	sortBooks(filtered, f.Sort)

	total := len(filtered)
	totalPages := max(1, (total+pageSize-1)/pageSize)

	page := min(max(f.Page, 1), totalPages)

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	if start > total {
		start = total
	}

	return View{
		Books:      filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		Stats:      computeStats(filtered),
	}
}

// filterBooks applies the favorite, category, and query predicates, ANDed.
func filterBooks(books []domain.EnrichedBook, f domain.FilterState) []domain.EnrichedBook {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]domain.EnrichedBook, 0, len(books))
	for _, b := range books {
		if f.FavoritesOnly && !b.Meta.Favorite {
			continue
		}
		if f.Category != domain.CategoryAll && b.Meta.Category != f.Category {
			continue
		}
		if query != "" && !matchesQuery(b, query) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// matchesQuery reports whether the query is a substring of the title, the
// description, or the joined tag list, case-insensitively.
func matchesQuery(b domain.EnrichedBook, query string) bool {
	if strings.Contains(strings.ToLower(b.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Desc), query) {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(b.Meta.Tags, " ")), query)
}

// sortBooks orders the slice in place. Stable: equal keys keep their prior
// relative order.
func sortBooks(books []domain.EnrichedBook, key domain.SortKey) {
	switch key {
	case domain.SortPriceLow:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Price < books[j].Price
		})
	case domain.SortPriceHigh:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Price > books[j].Price
		})
	case domain.SortTitle:
		c := collate.New(language.English)
		sort.SliceStable(books, func(i, j int) bool {
			return c.CompareString(books[i].Title, books[j].Title) < 0
		})
	case domain.SortRating:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Meta.Rating > books[j].Meta.Rating
		})
	default: // latest
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].ID > books[j].ID
		})
	}
}

// computeStats aggregates over the filtered set.
func computeStats(books []domain.EnrichedBook) Stats {
	s := Stats{Count: len(books)}

	validCount := 0
	sum := 0.0
	for _, b := range books {
		if domain.ValidPrice(b.Price) {
			validCount++
			sum += b.Price
		}
		if domain.LowStock(b.Meta.Stock) {
			s.LowStock++
		}
	}

	if validCount > 0 {
		s.AveragePrice = domain.Round2(sum / float64(validCount))
	}
	s.TotalValue = domain.Round2(sum)

	return s
}
