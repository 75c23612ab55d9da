package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/shelfline/shelfline-server/internal/domain"
)

// GetReviews retrieves the review list for one book, oldest first.
// Returns an empty list when no entry exists or the blob cannot be read.
func (s *Store) GetReviews(ctx context.Context, bookID int64) []domain.Review {
	if ctx.Err() != nil {
		return nil
	}

	key := fmt.Appendf(nil, "%s%d", reviewsKeyPrefix, bookID)

	var reviews []domain.Review
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &reviews)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Debug("reviews read failed, using empty list", "book_id", bookID, "error", err)
		return nil
	}

	return reviews
}

// SetReviews replaces the stored review list for one book.
func (s *Store) SetReviews(ctx context.Context, bookID int64, reviews []domain.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("marshal reviews: %w", err)
	}

	key := fmt.Appendf(nil, "%s%d", reviewsKeyPrefix, bookID)

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// AllReviews loads every stored review list, keyed by book ID.
// Unreadable entries are skipped.
func (s *Store) AllReviews(ctx context.Context) map[int64][]domain.Review {
	all := make(map[int64][]domain.Review)
	if ctx.Err() != nil {
		return all
	}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(reviewsKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			bookID, err := bookIDFromKey(string(item.Key()), reviewsKeyPrefix)
			if err != nil {
				s.logger.Debug("skipping malformed reviews key", "key", string(item.Key()))
				continue
			}

			var reviews []domain.Review
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &reviews)
			}); err != nil {
				s.logger.Debug("skipping unreadable reviews entry", "book_id", bookID, "error", err)
				continue
			}

			all[bookID] = reviews
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("reviews scan failed, using empty snapshot", "error", err)
		return make(map[int64][]domain.Review)
	}

	return all
}
