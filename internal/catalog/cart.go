package catalog

import (
	"context"

	"github.com/shelfline/shelfline-server/internal/domain"
	"github.com/shelfline/shelfline-server/internal/errors"
)

// AddToCart appends a snapshot of the book to the cart and returns the new
// cart size. Repeated adds create repeated entries; there is no removal.
func (c *Catalog) AddToCart(ctx context.Context, bookID int64) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.findBook(bookID)
	if !ok {
		return 0, errors.NotFoundf("book %d not found", bookID)
	}

	c.cart = append(c.cart, domain.CartItemFor(b))
	if err := c.store.SetCart(ctx, c.cart); err != nil {
		c.logger.Debug("failed to persist cart", "error", err)
	}

	return len(c.cart), nil
}

// Cart returns the cart sequence in insertion order.
func (c *Catalog) Cart() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.CartItem(nil), c.cart...)
}

// CartCount returns the number of cart entries.
func (c *Catalog) CartCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cart)
}
