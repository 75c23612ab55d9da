// Package store provides local persistence for catalog enrichment state.
//
// Three independent namespaces live in one Badger database: book metadata
// keyed by book ID, review lists keyed by book ID, and the cart sequence.
// Reads that fail for any reason fall back to empty defaults instead of
// returning errors: local-storage failures are not user-actionable, so they
// are logged at debug level and swallowed.
package store

import (
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Key namespaces. Every key is prefix + book ID except the cart, which is a
// single sequence under one key.
const (
	metaKeyPrefix    = "meta:book:"
	reviewsKeyPrefix = "reviews:book:"
	cartKey          = "cart:items"
)

// Store wraps a Badger database instance holding all locally-owned state.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New opens the database at path and returns a ready store.
func New(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync writes to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	logger.Info("local metadata database opened", "path", path)

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Ping verifies the database is open and readable.
func (s *Store) Ping() error {
	return s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(cartKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
