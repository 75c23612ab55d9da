package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/shelfline/shelfline-server/internal/domain"
)

// GetMeta retrieves the metadata entry for one book.
// Returns ok=false when no entry exists or the stored blob cannot be read.
func (s *Store) GetMeta(ctx context.Context, bookID int64) (domain.BookMeta, bool) {
	if ctx.Err() != nil {
		return domain.BookMeta{}, false
	}

	key := fmt.Appendf(nil, "%s%d", metaKeyPrefix, bookID)

	var meta domain.BookMeta
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.BookMeta{}, false
	}
	if err != nil {
		s.logger.Debug("metadata read failed, using defaults", "book_id", bookID, "error", err)
		return domain.BookMeta{}, false
	}

	return meta, true
}

// SetMeta stores the metadata entry for one book.
func (s *Store) SetMeta(ctx context.Context, bookID int64, meta domain.BookMeta) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal book meta: %w", err)
	}

	key := fmt.Appendf(nil, "%s%d", metaKeyPrefix, bookID)

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// DeleteMeta removes the metadata entry for one book. Called only when the
// owning book has been deleted remotely. Idempotent.
func (s *Store) DeleteMeta(ctx context.Context, bookID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := fmt.Appendf(nil, "%s%d", metaKeyPrefix, bookID)

	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// AllMeta loads the full metadata snapshot, keyed by book ID.
// Unreadable entries are skipped.
func (s *Store) AllMeta(ctx context.Context) map[int64]domain.BookMeta {
	metas := make(map[int64]domain.BookMeta)
	if ctx.Err() != nil {
		return metas
	}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(metaKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			bookID, err := bookIDFromKey(string(item.Key()), metaKeyPrefix)
			if err != nil {
				s.logger.Debug("skipping malformed metadata key", "key", string(item.Key()))
				continue
			}

			var meta domain.BookMeta
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			}); err != nil {
				s.logger.Debug("skipping unreadable metadata entry", "book_id", bookID, "error", err)
				continue
			}

			metas[bookID] = meta
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("metadata scan failed, using empty snapshot", "error", err)
		return make(map[int64]domain.BookMeta)
	}

	return metas
}

// bookIDFromKey extracts the numeric book ID suffix from a namespaced key.
func bookIDFromKey(key, prefix string) (int64, error) {
	raw := strings.TrimPrefix(key, prefix)
	return strconv.ParseInt(raw, 10, 64)
}
