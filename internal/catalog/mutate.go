package catalog

import (
	"context"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/shelfline/shelfline-server/internal/domain"
	"github.com/shelfline/shelfline-server/internal/errors"
)

// Create inserts a new book into the record store, then reloads the list so
// the new row is enriched and visible.
func (c *Catalog) Create(ctx context.Context, draft domain.BookDraft) error {
	if err := c.remote.Create(ctx, draft); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Delete removes one book from the record store. On success the local record,
// its metadata, and its selection entry are dropped, and an open quick view
// on it is closed. On failure state is left unchanged; there is no retry.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	_, ok := c.findBook(id)
	c.mu.Unlock()
	if !ok {
		return errors.NotFoundf("book %d not found", id)
	}

	if err := c.remote.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeBookLocked(ctx, id)
	return nil
}

// InlineEdit replaces one book's editable fields in the record store. On
// success the local record is patched in place; on failure the caller keeps
// its draft for resubmission.
func (c *Catalog) InlineEdit(ctx context.Context, id int64, draft domain.BookDraft) error {
	c.mu.Lock()
	_, ok := c.findBook(id)
	c.mu.Unlock()
	if !ok {
		return errors.NotFoundf("book %d not found", id)
	}

	if err := c.remote.Update(ctx, id, draft); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, b := range c.books {
		if b.ID == id {
			c.books[i] = domain.BookRecord{
				ID:    id,
				Title: draft.Title,
				Desc:  draft.Desc,
				Price: draft.Price,
				Cover: draft.Cover,
			}
			break
		}
	}
	return nil
}

// BulkDelete deletes every selected book, dispatching one remote call per ID
// in parallel. The batch is all-or-nothing locally: if any call fails, no
// local removal is applied and a single failure is reported with the failed
// IDs in its details.
func (c *Catalog) BulkDelete(ctx context.Context) error {
	c.mu.Lock()
	ids := c.selection.IDs()
	c.mu.Unlock()

	if len(ids) == 0 {
		return errors.Validation("no books selected")
	}

	failed := c.dispatch(ctx, ids, func(ctx context.Context, id int64) error {
		return c.remote.Delete(ctx, id)
	})
	if len(failed) > 0 {
		c.metrics.BatchesFailed.Inc()
		return errors.Remote("bulk delete failed").WithDetails(map[string]any{"failed_ids": failed})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		c.removeBookLocked(ctx, id)
	}
	c.metrics.BatchesApplied.Inc()
	return nil
}

// BulkPriceAdjust applies a percentage change to every selected book's price,
// negative percentages included. Each update carries the book's existing
// title, desc, and cover with the new price, dispatched in parallel. Local
// prices advance only after every call succeeds.
//
// The percent arrives as raw text and is rejected before any call is issued
// when it does not parse.
func (c *Catalog) BulkPriceAdjust(ctx context.Context, percent string) error {
	pct, err := strconv.ParseFloat(percent, 64)
	if err != nil || math.IsNaN(pct) || math.IsInf(pct, 0) {
		return errors.Validationf("invalid percent %q", percent)
	}

	c.mu.Lock()
	ids := c.selection.IDs()
	targets := make(map[int64]domain.BookDraft, len(ids))
	for _, id := range ids {
		if b, ok := c.findBook(id); ok {
			draft := b.Draft()
			draft.Price = domain.Round2(b.Price * (1 + pct/100))
			targets[id] = draft
		}
	}
	c.mu.Unlock()

	if len(ids) == 0 {
		return errors.Validation("no books selected")
	}

	failed := c.dispatch(ctx, ids, func(ctx context.Context, id int64) error {
		draft, ok := targets[id]
		if !ok {
			return errors.NotFoundf("book %d not found", id)
		}
		return c.remote.Update(ctx, id, draft)
	})
	if len(failed) > 0 {
		c.metrics.BatchesFailed.Inc()
		return errors.Remote("bulk price adjustment failed").WithDetails(map[string]any{"failed_ids": failed})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, b := range c.books {
		if draft, ok := targets[b.ID]; ok {
			c.books[i].Price = draft.Price
		}
	}
	c.metrics.BatchesApplied.Inc()
	return nil
}

// dispatch fires one call per ID in parallel and joins the whole batch before
// returning. Calls are never cancelled mid-batch: a dispatched batch runs to
// completion, and the outcome is the set of IDs whose call failed.
func (c *Catalog) dispatch(ctx context.Context, ids []int64, call func(context.Context, int64) error) []int64 {
	results := make([]error, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			results[i] = call(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	var failed []int64
	for i, err := range results {
		if err != nil {
			c.logger.Warn("bulk call failed", "book_id", ids[i], "error", err)
			failed = append(failed, ids[i])
		}
	}
	return failed
}

// removeBookLocked drops one book from every local structure after a
// confirmed remote delete. Caller must hold c.mu.
func (c *Catalog) removeBookLocked(ctx context.Context, id int64) {
	for i, b := range c.books {
		if b.ID == id {
			c.books = append(c.books[:i], c.books[i+1:]...)
			break
		}
	}

	c.selection.Remove(id)
	delete(c.meta, id)
	if err := c.store.DeleteMeta(ctx, id); err != nil {
		c.logger.Debug("failed to delete metadata", "book_id", id, "error", err)
	}

	if c.quickView == id {
		c.quickView = 0
	}
}
