package enrich

import (
	"context"
	"log/slog"

	"github.com/shelfline/shelfline-server/internal/domain"
)

// LCG constants shared with the original catalog UI so that existing stored
// metadata stays consistent with freshly synthesized defaults.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Default value ranges.
const (
	minDefaultRating = 3
	maxDefaultRating = 5
	minDefaultStock  = 2
	maxDefaultStock  = 40
)

// randFromID maps a book ID into [min, max] via a fixed linear-congruential
// step. Pure: the same ID always yields the same value.
func randFromID(id int64, min, max int) int {
	if id == 0 {
		id = 1
	}
	seed := id*lcgMultiplier + lcgIncrement
	frac := float64(seed%lcgModulus) / lcgModulus
	return min + int(frac*float64(max-min+1))
}

// DefaultRating returns the deterministic default rating for a book ID,
// an integer value in [3, 5].
func DefaultRating(id int64) float64 {
	return float64(randFromID(id, minDefaultRating, maxDefaultRating))
}

// DefaultStock returns the deterministic default stock for a book ID,
// in [2, 40].
func DefaultStock(id int64) int {
	return randFromID(id, minDefaultStock, maxDefaultStock)
}

// DefaultMeta synthesizes the full metadata entry for a never-seen book.
func DefaultMeta(b domain.BookRecord) domain.BookMeta {
	return domain.BookMeta{
		Category: GuessCategory(b.Title, b.Desc),
		Tags:     GuessTags(b.Title, b.Desc),
		Rating:   DefaultRating(b.ID),
		Favorite: false,
		Stock:    DefaultStock(b.ID),
	}
}

// MetaWriter persists synthesized metadata entries.
type MetaWriter interface {
	SetMeta(ctx context.Context, bookID int64, meta domain.BookMeta) error
}

// Engine fills metadata gaps after each record store fetch.
type Engine struct {
	store  MetaWriter
	logger *slog.Logger
}

// NewEngine creates an enrichment engine writing through the given store.
func NewEngine(store MetaWriter, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
	}
}

// Apply synthesizes metadata for every record whose ID is missing from
// existing and writes it through the store. Existing entries are never
// touched: enrichment is additive-only. Returns the newly created entries
// keyed by book ID.
//
// Persistence failures are local-storage failures, so they are swallowed:
// the synthesized entry still takes effect in memory.
func (e *Engine) Apply(ctx context.Context, records []domain.BookRecord, existing map[int64]domain.BookMeta) map[int64]domain.BookMeta {
	created := make(map[int64]domain.BookMeta)

	for _, rec := range records {
		if _, ok := existing[rec.ID]; ok {
			continue
		}
		if _, ok := created[rec.ID]; ok {
			continue
		}

		meta := DefaultMeta(rec)
		if err := e.store.SetMeta(ctx, rec.ID, meta); err != nil {
			e.logger.Debug("failed to persist synthesized metadata",
				"book_id", rec.ID,
				"error", err,
			)
		}
		created[rec.ID] = meta

		e.logger.Debug("synthesized book metadata",
			"book_id", rec.ID,
			"category", meta.Category,
			"tags", meta.Tags,
		)
	}

	return created
}
