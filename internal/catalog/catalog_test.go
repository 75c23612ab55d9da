package catalog

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfline/shelfline-server/internal/domain"
	"github.com/shelfline/shelfline-server/internal/enrich"
	"github.com/shelfline/shelfline-server/internal/errors"
	"github.com/shelfline/shelfline-server/internal/metrics"
	"github.com/shelfline/shelfline-server/internal/store"
)

// fakeRemote is an in-memory record store with per-ID failure injection.
type fakeRemote struct {
	mu         sync.Mutex
	books      []domain.BookRecord
	failDelete map[int64]bool
	failUpdate map[int64]bool
	updates    map[int64]domain.BookDraft
	deletes    []int64
	created    []domain.BookDraft
}

func newFakeRemote(books ...domain.BookRecord) *fakeRemote {
	return &fakeRemote{
		books:      books,
		failDelete: make(map[int64]bool),
		failUpdate: make(map[int64]bool),
		updates:    make(map[int64]domain.BookDraft),
	}
}

func (f *fakeRemote) List(ctx context.Context) ([]domain.BookRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.BookRecord(nil), f.books...), nil
}

func (f *fakeRemote) Create(ctx context.Context, draft domain.BookDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, draft)
	f.books = append(f.books, domain.BookRecord{
		ID:    int64(len(f.books) + 100),
		Title: draft.Title,
		Desc:  draft.Desc,
		Price: draft.Price,
		Cover: draft.Cover,
	})
	return nil
}

func (f *fakeRemote) Update(ctx context.Context, id int64, draft domain.BookDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpdate[id] {
		return errors.Remote("ER_LOCK_WAIT_TIMEOUT")
	}
	f.updates[id] = draft
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failDelete[id] {
		return errors.Remote("ER_ROW_IS_REFERENCED")
	}
	f.deletes = append(f.deletes, id)
	for i, b := range f.books {
		if b.ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			break
		}
	}
	return nil
}

func setupCatalog(t *testing.T, remote Remote) *Catalog {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return New(context.Background(), remote, s, enrich.NewEngine(s, logger), metrics.NewRegistry(), logger)
}

func demoBooks() []domain.BookRecord {
	return []domain.BookRecord{
		{ID: 1, Title: "AWS Basics", Desc: "cloud intro", Price: 20},
		{ID: 2, Title: "Zen", Desc: "calm", Price: 10},
	}
}

func TestRefreshEnrichesNewBooks(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	require.NoError(t, c.Refresh(context.Background()))

	v := c.View(domain.DefaultFilterState())
	require.Len(t, v.Books, 2)

	for _, b := range v.Books {
		switch b.ID {
		case 1:
			assert.Equal(t, "Cloud", b.Meta.Category)
			assert.Contains(t, b.Meta.Tags, "AWS")
		case 2:
			assert.Equal(t, "Technology", b.Meta.Category)
			assert.Equal(t, []string{"General"}, b.Meta.Tags)
		}
		assert.Equal(t, enrich.DefaultRating(b.ID), b.Meta.Rating)
		assert.Equal(t, enrich.DefaultStock(b.ID), b.Meta.Stock)
	}
}

func TestRefreshLeavesExistingMetaUntouched(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.ToggleFavorite(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, c.Refresh(ctx))

	v := c.View(domain.DefaultFilterState())
	for _, b := range v.Books {
		if b.ID == 1 {
			assert.True(t, b.Meta.Favorite)
		}
	}
}

func TestEndToEndViewAndDelete(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	f := domain.DefaultFilterState()
	f.Sort = domain.SortPriceLow
	v := c.View(f)
	require.Len(t, v.Books, 2)
	assert.Equal(t, int64(2), v.Books[0].ID)
	assert.Equal(t, int64(1), v.Books[1].ID)

	f = domain.DefaultFilterState()
	f.Category = "Cloud"
	v = c.View(f)
	require.Len(t, v.Books, 1)
	assert.Equal(t, int64(1), v.Books[0].ID)

	_, err := c.ToggleSelect(1)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, 1))

	v = c.View(domain.DefaultFilterState())
	require.Len(t, v.Books, 1)
	assert.Equal(t, int64(2), v.Books[0].ID)
	assert.Empty(t, c.Selection())
}

func TestDeleteFailureLeavesStateUnchanged(t *testing.T) {
	remote := newFakeRemote(demoBooks()...)
	remote.failDelete[1] = true

	c := setupCatalog(t, remote)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	err := c.Delete(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRemote))

	v := c.View(domain.DefaultFilterState())
	assert.Len(t, v.Books, 2)
}

func TestDeleteClosesOpenQuickView(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.OpenDetail(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.OpenDetailID())

	require.NoError(t, c.Delete(ctx, 1))
	assert.Zero(t, c.OpenDetailID())
}

func TestDeleteUnknownBook(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	err := c.Delete(ctx, 999)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestInlineEdit(t *testing.T) {
	remote := newFakeRemote(demoBooks()...)
	c := setupCatalog(t, remote)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	draft := domain.BookDraft{Title: "AWS Basics 2e", Desc: "updated", Price: 25.5, Cover: "aws2.png"}
	require.NoError(t, c.InlineEdit(ctx, 1, draft))

	assert.Equal(t, draft, remote.updates[1])

	v := c.View(domain.DefaultFilterState())
	for _, b := range v.Books {
		if b.ID == 1 {
			assert.Equal(t, "AWS Basics 2e", b.Title)
			assert.Equal(t, 25.5, b.Price)
		}
	}
}

func TestInlineEditFailureLeavesRecordUnchanged(t *testing.T) {
	remote := newFakeRemote(demoBooks()...)
	remote.failUpdate[1] = true

	c := setupCatalog(t, remote)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	err := c.InlineEdit(ctx, 1, domain.BookDraft{Title: "Nope", Price: 99})
	require.Error(t, err)

	v := c.View(domain.DefaultFilterState())
	for _, b := range v.Books {
		if b.ID == 1 {
			assert.Equal(t, "AWS Basics", b.Title)
			assert.Equal(t, 20.0, b.Price)
		}
	}
}

func TestCreateRefreshesList(t *testing.T) {
	remote := newFakeRemote(demoBooks()...)
	c := setupCatalog(t, remote)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	draft := domain.BookDraft{Title: "Terraform in Action", Desc: "infra as code", Price: 30}
	require.NoError(t, c.Create(ctx, draft))

	require.Len(t, remote.created, 1)
	v := c.View(domain.DefaultFilterState())
	assert.Len(t, v.Books, 3)
}

func TestBulkDeleteAllOrNothing(t *testing.T) {
	remote := newFakeRemote(demoBooks()...)
	remote.failDelete[2] = true

	c := setupCatalog(t, remote)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.ToggleSelect(1)
	require.NoError(t, err)
	_, err = c.ToggleSelect(2)
	require.NoError(t, err)

	err = c.BulkDelete(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRemote))

	// One remote delete may have committed, but local state is untouched.
	v := c.View(domain.DefaultFilterState())
	assert.Len(t, v.Books, 2)
	assert.Len(t, c.Selection(), 2)
}

func TestBulkDeleteSuccess(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.ToggleSelect(1)
	require.NoError(t, err)
	_, err = c.ToggleSelect(2)
	require.NoError(t, err)

	require.NoError(t, c.BulkDelete(ctx))

	v := c.View(domain.DefaultFilterState())
	assert.Empty(t, v.Books)
	assert.Empty(t, c.Selection())
}

func TestBulkDeleteRejectsEmptySelection(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	err := c.BulkDelete(ctx)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestBulkPriceAdjust(t *testing.T) {
	remote := newFakeRemote(domain.BookRecord{ID: 1, Title: "Ten", Desc: "d", Price: 10, Cover: "c"})
	c := setupCatalog(t, remote)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.ToggleSelect(1)
	require.NoError(t, err)

	require.NoError(t, c.BulkPriceAdjust(ctx, "10"))

	// The update carries the existing fields with the new price.
	sent := remote.updates[1]
	assert.Equal(t, "Ten", sent.Title)
	assert.Equal(t, 11.0, sent.Price)

	v := c.View(domain.DefaultFilterState())
	require.Len(t, v.Books, 1)
	assert.Equal(t, 11.0, v.Books[0].Price)
}

func TestBulkPriceAdjustNegativePercent(t *testing.T) {
	remote := newFakeRemote(domain.BookRecord{ID: 1, Title: "Ten", Price: 10})
	c := setupCatalog(t, remote)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.ToggleSelect(1)
	require.NoError(t, err)

	require.NoError(t, c.BulkPriceAdjust(ctx, "-5"))

	v := c.View(domain.DefaultFilterState())
	assert.Equal(t, 9.5, v.Books[0].Price)
}

func TestBulkPriceAdjustAllOrNothing(t *testing.T) {
	remote := newFakeRemote(demoBooks()...)
	remote.failUpdate[2] = true

	c := setupCatalog(t, remote)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.ToggleSelect(1)
	require.NoError(t, err)
	_, err = c.ToggleSelect(2)
	require.NoError(t, err)

	err = c.BulkPriceAdjust(ctx, "10")
	require.Error(t, err)

	v := c.View(domain.DefaultFilterState())
	for _, b := range v.Books {
		switch b.ID {
		case 1:
			assert.Equal(t, 20.0, b.Price)
		case 2:
			assert.Equal(t, 10.0, b.Price)
		}
	}
}

func TestBulkPriceAdjustRejectsBadPercent(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.ToggleSelect(1)
	require.NoError(t, err)

	for _, percent := range []string{"", "abc", "NaN", "+Inf"} {
		err := c.BulkPriceAdjust(ctx, percent)
		assert.True(t, errors.Is(err, errors.ErrValidation), "percent %q", percent)
	}
}

func TestSubmitReviewRecomputesRating(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.SubmitReview(ctx, 1, "Ana", 5, "excellent")
	require.NoError(t, err)
	_, err = c.SubmitReview(ctx, 1, "Ben", 3, "decent")
	require.NoError(t, err)

	v := c.View(domain.DefaultFilterState())
	for _, b := range v.Books {
		if b.ID == 1 {
			assert.Equal(t, 4.0, b.Meta.Rating)
		}
	}
	assert.Len(t, c.Reviews(1), 2)
}

func TestSubmitReviewValidation(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.SubmitReview(ctx, 1, "   ", 5, "text")
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = c.SubmitReview(ctx, 1, "Ana", 5, "  ")
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = c.SubmitReview(ctx, 1, "Ana", 6, "text")
	assert.True(t, errors.Is(err, errors.ErrValidation))

	assert.Empty(t, c.Reviews(1))
}

func TestAddToCartAllowsDuplicates(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	n, err := c.AddToCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = c.AddToCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items := c.Cart()
	require.Len(t, items, 2)
	assert.Equal(t, "AWS Basics", items[0].Title)
	assert.Equal(t, 20.0, items[0].Price)
	assert.Equal(t, 2, c.CartCount())
}

func TestFavoritePersistsAcrossRestart(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dbPath := filepath.Join(t.TempDir(), "test.db")
	remote := newFakeRemote(demoBooks()...)
	ctx := context.Background()

	s, err := store.New(dbPath, logger)
	require.NoError(t, err)

	c := New(ctx, remote, s, enrich.NewEngine(s, logger), metrics.NewRegistry(), logger)
	require.NoError(t, c.Refresh(ctx))
	on, err := c.ToggleFavorite(ctx, 1)
	require.NoError(t, err)
	require.True(t, on)
	require.NoError(t, s.Close())

	reopened, err := store.New(dbPath, logger)
	require.NoError(t, err)
	defer reopened.Close()

	c2 := New(ctx, remote, reopened, enrich.NewEngine(reopened, logger), metrics.NewRegistry(), logger)
	require.NoError(t, c2.Refresh(ctx))

	v := c2.View(domain.DefaultFilterState())
	for _, b := range v.Books {
		if b.ID == 1 {
			assert.True(t, b.Meta.Favorite)
		}
	}
}

func TestCategories(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, []string{"all", "Cloud", "Technology"}, c.Categories())
}

func TestSpotlights(t *testing.T) {
	books := []domain.BookRecord{
		{ID: 1, Title: "A", Price: 1},
		{ID: 2, Title: "B", Price: 2},
		{ID: 3, Title: "C", Price: 3},
		{ID: 4, Title: "D", Price: 4},
	}
	c := setupCatalog(t, newFakeRemote(books...))
	require.NoError(t, c.Refresh(context.Background()))

	arrivals := c.NewArrivals()
	require.Len(t, arrivals, 3)
	assert.Equal(t, int64(4), arrivals[0].ID)
	assert.Equal(t, int64(3), arrivals[1].ID)
	assert.Equal(t, int64(2), arrivals[2].ID)

	picks := c.TopPicks()
	require.Len(t, picks, 3)
	for i := 1; i < len(picks); i++ {
		assert.GreaterOrEqual(t, picks[i-1].Meta.Rating, picks[i].Meta.Rating)
	}
}

func TestShareText(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(domain.BookRecord{ID: 1, Title: "AWS Basics", Price: 1234.5}))
	require.NoError(t, c.Refresh(context.Background()))

	text, err := c.ShareText(1)
	require.NoError(t, err)
	assert.Equal(t, "Check out AWS Basics at Shelfline - $1,234.50", text)

	_, err = c.ShareText(99)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestOpenDetail(t *testing.T) {
	c := setupCatalog(t, newFakeRemote(demoBooks()...))
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.SubmitReview(ctx, 1, "Ana", 4, "good")
	require.NoError(t, err)

	d, err := c.OpenDetail(1)
	require.NoError(t, err)
	assert.Equal(t, "AWS Basics", d.Title)
	assert.Len(t, d.Reviews, 1)
	assert.NotEmpty(t, d.StockStatus)

	c.CloseDetail()
	assert.Zero(t, c.OpenDetailID())
}

func TestRefreshPrunesStaleSelection(t *testing.T) {
	remote := newFakeRemote(demoBooks()...)
	c := setupCatalog(t, remote)
	ctx := context.Background()
	require.NoError(t, c.Refresh(ctx))

	_, err := c.ToggleSelect(1)
	require.NoError(t, err)

	// Book 1 disappears remotely between refreshes.
	remote.mu.Lock()
	remote.books = remote.books[1:]
	remote.mu.Unlock()

	require.NoError(t, c.Refresh(ctx))
	assert.Empty(t, c.Selection())
}
