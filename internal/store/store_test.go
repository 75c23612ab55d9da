package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shelfline/shelfline-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := New(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestMetaRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	// Missing entry.
	_, ok := s.GetMeta(ctx, 1)
	assert.False(t, ok)

	meta := domain.BookMeta{
		Category: "Cloud",
		Tags:     []string{"AWS", "Cloud"},
		Rating:   4.5,
		Favorite: true,
		Stock:    12,
	}
	require.NoError(t, s.SetMeta(ctx, 1, meta))

	got, ok := s.GetMeta(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, meta, got)

	// Different ID is a separate entry.
	_, ok = s.GetMeta(ctx, 2)
	assert.False(t, ok)
}

func TestDeleteMeta(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetMeta(ctx, 7, domain.BookMeta{Category: "Data"}))
	require.NoError(t, s.DeleteMeta(ctx, 7))

	_, ok := s.GetMeta(ctx, 7)
	assert.False(t, ok)

	// Deleting a missing entry is a no-op.
	require.NoError(t, s.DeleteMeta(ctx, 7))
}

func TestAllMeta(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetMeta(ctx, 1, domain.BookMeta{Category: "Cloud"}))
	require.NoError(t, s.SetMeta(ctx, 2, domain.BookMeta{Category: "Data"}))

	// Review entries must not leak into the metadata snapshot.
	require.NoError(t, s.SetReviews(ctx, 1, []domain.Review{{ID: "rev-1", Name: "Ana", Stars: 5, Text: "great"}}))

	metas := s.AllMeta(ctx)
	require.Len(t, metas, 2)
	assert.Equal(t, "Cloud", metas[1].Category)
	assert.Equal(t, "Data", metas[2].Category)
}

func TestReviewsRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	assert.Empty(t, s.GetReviews(ctx, 1))

	reviews := []domain.Review{
		{ID: "rev-a", Name: "Ana", Stars: 5, Text: "great", SubmittedAt: time.Now().UTC().Truncate(time.Second)},
		{ID: "rev-b", Name: "Ben", Stars: 3, Text: "fine", SubmittedAt: time.Now().UTC().Truncate(time.Second)},
	}
	require.NoError(t, s.SetReviews(ctx, 1, reviews))

	got := s.GetReviews(ctx, 1)
	require.Len(t, got, 2)
	assert.Equal(t, "rev-a", got[0].ID)
	assert.Equal(t, "rev-b", got[1].ID)

	all := s.AllReviews(ctx)
	require.Len(t, all, 1)
	assert.Len(t, all[1], 2)
}

func TestCartRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	assert.Empty(t, s.GetCart(ctx))

	// Duplicates are allowed: the cart is an append-only sequence.
	items := []domain.CartItem{
		{ID: 1, Title: "AWS Basics", Price: 20},
		{ID: 1, Title: "AWS Basics", Price: 20},
		{ID: 2, Title: "Zen", Price: 10},
	}
	require.NoError(t, s.SetCart(ctx, items))

	got := s.GetCart(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, items, got)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	s, err := New(dbPath, logger)
	require.NoError(t, err)
	require.NoError(t, s.SetMeta(ctx, 1, domain.BookMeta{Category: "Design", Stock: 3}))
	require.NoError(t, s.Close())

	reopened, err := New(dbPath, logger)
	require.NoError(t, err)
	defer reopened.Close()

	meta, ok := reopened.GetMeta(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "Design", meta.Category)
	assert.Equal(t, 3, meta.Stock)
}

func TestCanceledContextFallsBackToDefaults(t *testing.T) {
	s := setupTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := s.GetMeta(ctx, 1)
	assert.False(t, ok)
	assert.Empty(t, s.GetReviews(ctx, 1))
	assert.Empty(t, s.GetCart(ctx))
	assert.Error(t, s.SetMeta(ctx, 1, domain.BookMeta{}))
}
