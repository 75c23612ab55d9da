package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/shelfline/shelfline-server/internal/domain"
)

// GetCart retrieves the cart sequence in insertion order.
// Returns an empty cart when no entry exists or the blob cannot be read.
func (s *Store) GetCart(ctx context.Context) []domain.CartItem {
	if ctx.Err() != nil {
		return nil
	}

	var items []domain.CartItem
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cartKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &items)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Debug("cart read failed, using empty cart", "error", err)
		return nil
	}

	return items
}

// SetCart replaces the stored cart sequence.
func (s *Store) SetCart(ctx context.Context, items []domain.CartItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(cartKey), data)
	})
}
