package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/shelfline/shelfline-server/internal/domain"
	"github.com/shelfline/shelfline-server/internal/errors"
	"github.com/shelfline/shelfline-server/internal/id"
)

// SubmitReview appends a review to a book and recomputes its derived rating
// as the mean over the full review list, rounded to one decimal. Purely
// local; no record store call is made.
func (c *Catalog) SubmitReview(ctx context.Context, bookID int64, name string, stars int, text string) (domain.Review, error) {
	name = strings.TrimSpace(name)
	text = strings.TrimSpace(text)
	if name == "" || text == "" {
		return domain.Review{}, errors.Validation("review name and text are required")
	}
	if stars < 1 || stars > 5 {
		return domain.Review{}, errors.Validationf("stars must be between 1 and 5, got %d", stars)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.findBook(bookID); !ok {
		return domain.Review{}, errors.NotFoundf("book %d not found", bookID)
	}

	review := domain.Review{
		ID:          id.MustGenerate("rev"),
		Name:        name,
		Stars:       stars,
		Text:        text,
		SubmittedAt: time.Now().UTC(),
	}

	reviews := append(c.reviews[bookID], review)
	c.reviews[bookID] = reviews
	if err := c.store.SetReviews(ctx, bookID, reviews); err != nil {
		c.logger.Debug("failed to persist reviews", "book_id", bookID, "error", err)
	}

	m, ok := c.meta[bookID]
	if !ok {
		m = domain.FallbackMeta()
	}
	m.Rating = domain.MeanRating(reviews)
	c.meta[bookID] = m
	if err := c.store.SetMeta(ctx, bookID, m); err != nil {
		c.logger.Debug("failed to persist rating", "book_id", bookID, "error", err)
	}

	return review, nil
}

// Reviews returns the review list for one book, oldest first.
func (c *Catalog) Reviews(bookID int64) []domain.Review {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Review(nil), c.reviews[bookID]...)
}
