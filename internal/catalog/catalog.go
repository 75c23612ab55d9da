// Package catalog implements the bookstore catalog view-model: remote records
// merged with local metadata, the filter/sort/paginate pipeline, bulk
// mutations against the record store, reviews, and the cart.
package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/shelfline/shelfline-server/internal/domain"
	"github.com/shelfline/shelfline-server/internal/enrich"
	"github.com/shelfline/shelfline-server/internal/errors"
	"github.com/shelfline/shelfline-server/internal/metrics"
)

// Remote is the record store surface the catalog consumes.
type Remote interface {
	List(ctx context.Context) ([]domain.BookRecord, error)
	Create(ctx context.Context, draft domain.BookDraft) error
	Update(ctx context.Context, id int64, draft domain.BookDraft) error
	Delete(ctx context.Context, id int64) error
}

// Persistence is the local store surface the catalog reads at construction
// and rewrites on every change.
type Persistence interface {
	AllMeta(ctx context.Context) map[int64]domain.BookMeta
	SetMeta(ctx context.Context, bookID int64, meta domain.BookMeta) error
	DeleteMeta(ctx context.Context, bookID int64) error
	AllReviews(ctx context.Context) map[int64][]domain.Review
	SetReviews(ctx context.Context, bookID int64, reviews []domain.Review) error
	GetCart(ctx context.Context) []domain.CartItem
	SetCart(ctx context.Context, items []domain.CartItem) error
}

// Catalog is the view-model service. All state lives behind one mutex; views
// are recomputed from the full state on every call, never patched
// incrementally.
type Catalog struct {
	remote   Remote
	store    Persistence
	enricher *enrich.Engine
	metrics  *metrics.Registry
	logger   *slog.Logger

	mu        sync.Mutex
	books     []domain.BookRecord
	meta      map[int64]domain.BookMeta
	reviews   map[int64][]domain.Review
	cart      []domain.CartItem
	selection domain.SelectionSet
	quickView int64 // open detail book ID, 0 when closed
}

// New creates the catalog and loads the persisted local state. The remote
// book list starts empty; call Refresh to populate it.
func New(ctx context.Context, remote Remote, store Persistence, enricher *enrich.Engine, reg *metrics.Registry, logger *slog.Logger) *Catalog {
	return &Catalog{
		remote:    remote,
		store:     store,
		enricher:  enricher,
		metrics:   reg,
		logger:    logger,
		meta:      store.AllMeta(ctx),
		reviews:   store.AllReviews(ctx),
		cart:      store.GetCart(ctx),
		selection: domain.NewSelectionSet(),
	}
}

// Refresh reloads the full book list from the record store and enriches any
// book seen for the first time. Selection entries for books that no longer
// exist remotely are dropped.
func (c *Catalog) Refresh(ctx context.Context) error {
	books, err := c.remote.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	created := c.enricher.Apply(ctx, books, c.meta)
	for id, m := range created {
		c.meta[id] = m
	}

	c.books = books

	present := make(map[int64]bool, len(books))
	for _, b := range books {
		present[b.ID] = true
	}
	for id := range c.selection {
		if !present[id] {
			c.selection.Remove(id)
		}
	}

	c.logger.Debug("catalog refreshed", "books", len(books), "enriched", len(created))
	return nil
}

// enriched merges every book with its metadata. Caller must hold c.mu.
func (c *Catalog) enriched() []domain.EnrichedBook {
	out := make([]domain.EnrichedBook, 0, len(c.books))
	for _, b := range c.books {
		m, ok := c.meta[b.ID]
		if !ok {
			m = domain.FallbackMeta()
		}
		out = append(out, domain.EnrichedBook{BookRecord: b, Meta: m})
	}
	return out
}

// View runs the pipeline over the current state for the given filter.
func (c *Catalog) View(filter domain.FilterState) View {
	filter.Normalize()

	c.mu.Lock()
	books := c.enriched()
	c.mu.Unlock()

	return BuildView(books, filter)
}

// Categories returns "all" followed by every distinct category currently
// observed, sorted.
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool)
	for _, b := range c.books {
		if m, ok := c.meta[b.ID]; ok {
			seen[m.Category] = true
		}
	}

	cats := make([]string, 0, len(seen)+1)
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	return append([]string{domain.CategoryAll}, cats...)
}

// spotlightSize is how many books each spotlight strip shows.
const spotlightSize = 3

// TopPicks returns the highest-rated books, at most three, stable on ties.
func (c *Catalog) TopPicks() []domain.EnrichedBook {
	c.mu.Lock()
	books := c.enriched()
	c.mu.Unlock()

	sort.SliceStable(books, func(i, j int) bool {
		return books[i].Meta.Rating > books[j].Meta.Rating
	})
	return firstN(books, spotlightSize)
}

// NewArrivals returns the newest books by descending ID, at most three.
func (c *Catalog) NewArrivals() []domain.EnrichedBook {
	c.mu.Lock()
	books := c.enriched()
	c.mu.Unlock()

	sort.SliceStable(books, func(i, j int) bool {
		return books[i].ID > books[j].ID
	})
	return firstN(books, spotlightSize)
}

func firstN(books []domain.EnrichedBook, n int) []domain.EnrichedBook {
	if len(books) > n {
		books = books[:n]
	}
	return books
}

// ShareText builds the share snippet for one book.
func (c *Catalog) ShareText(id int64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.findBook(id)
	if !ok {
		return "", errors.NotFoundf("book %d not found", id)
	}

	var sb strings.Builder
	sb.WriteString("Check out ")
	sb.WriteString(b.Title)
	sb.WriteString(" at Shelfline - $")
	sb.WriteString(domain.FormatPrice(b.Price))
	return sb.String(), nil
}

// ToggleFavorite flips the favorite flag for one book and persists it.
// Returns the new state.
func (c *Catalog) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.findBook(id); !ok {
		return false, errors.NotFoundf("book %d not found", id)
	}

	m, ok := c.meta[id]
	if !ok {
		m = domain.FallbackMeta()
	}
	m.Favorite = !m.Favorite
	c.meta[id] = m

	if err := c.store.SetMeta(ctx, id, m); err != nil {
		c.logger.Debug("failed to persist favorite toggle", "book_id", id, "error", err)
	}

	return m.Favorite, nil
}

// Detail is the quick-view payload for one book.
type Detail struct {
	domain.EnrichedBook
	StockStatus domain.StockStatus `json:"stock_status"`
	Reviews     []domain.Review    `json:"reviews"`
}

// OpenDetail marks a book's quick view as open and returns its detail.
func (c *Catalog) OpenDetail(id int64) (Detail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.findBook(id)
	if !ok {
		return Detail{}, errors.NotFoundf("book %d not found", id)
	}

	m, ok := c.meta[id]
	if !ok {
		m = domain.FallbackMeta()
	}

	c.quickView = id

	return Detail{
		EnrichedBook: domain.EnrichedBook{BookRecord: b, Meta: m},
		StockStatus:  domain.StatusForStock(m.Stock),
		Reviews:      append([]domain.Review(nil), c.reviews[id]...),
	}, nil
}

// CloseDetail closes any open quick view.
func (c *Catalog) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quickView = 0
}

// OpenDetailID returns the book ID of the open quick view, 0 when closed.
func (c *Catalog) OpenDetailID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quickView
}

// ToggleSelect flips the bulk-selection state for one book.
func (c *Catalog) ToggleSelect(id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.findBook(id); !ok {
		return false, errors.NotFoundf("book %d not found", id)
	}
	return c.selection.Toggle(id), nil
}

// Selection returns the selected book IDs in ascending order.
func (c *Catalog) Selection() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.IDs()
}

// ClearSelection deselects everything.
func (c *Catalog) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.Clear()
}

// findBook looks up a book record by ID. Caller must hold c.mu.
func (c *Catalog) findBook(id int64) (domain.BookRecord, bool) {
	for _, b := range c.books {
		if b.ID == id {
			return b, true
		}
	}
	return domain.BookRecord{}, false
}
