// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

// Package catalog persists finished room batches in Badger so the voting
// layer can page through a room's ordered candidate list by index.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/reelmatch/reelmatch/internal/config"
	"github.com/reelmatch/reelmatch/internal/metrics"
	"github.com/reelmatch/reelmatch/internal/models"
)

// ErrBatchNotFound is returned when a room has no stored batch, either
// because none was built or because the entry's TTL expired.
var ErrBatchNotFound = errors.New("no catalog batch stored for room")

const keyPrefix = "catalog:"

// Store is the Badger-backed room catalog store. One entry per room holds
// the full ordered batch; Badger's native TTL expires stale catalogs.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens (or creates) the store at the configured path. InMemory mode
// keeps everything off disk and is used by tests and ephemeral deploys.
func Open(cfg config.CatalogConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory || cfg.Path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog store: %w", err)
	}
	return &Store{db: db, ttl: cfg.TTL}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StoreBatch persists a room's batch, replacing any previous one. The
// entry carries the store TTL so abandoned rooms clean themselves up.
func (s *Store) StoreBatch(ctx context.Context, roomID string, batch *models.Batch) error {
	start := time.Now()
	err := s.storeBatch(ctx, roomID, batch)
	metrics.RecordCatalogOp("store", time.Since(start), err)
	return err
}

func (s *Store) storeBatch(ctx context.Context, roomID string, batch *models.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if roomID == "" {
		return errors.New("room id is required")
	}

	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode batch for room %s: %w", roomID, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(batchKey(roomID), data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// GetBatch returns a room's stored batch, or ErrBatchNotFound.
func (s *Store) GetBatch(ctx context.Context, roomID string) (*models.Batch, error) {
	start := time.Now()
	batch, err := s.getBatch(ctx, roomID)
	if errors.Is(err, ErrBatchNotFound) {
		metrics.RecordCatalogOp("get", time.Since(start), nil)
	} else {
		metrics.RecordCatalogOp("get", time.Since(start), err)
	}
	return batch, err
}

func (s *Store) getBatch(ctx context.Context, roomID string) (*models.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var batch models.Batch
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(batchKey(roomID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &batch)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read batch for room %s: %w", roomID, err)
	}
	return &batch, nil
}

// GetPage returns candidates [offset, offset+limit) of a room's stored
// order. An offset at or past the end yields an empty page, not an error;
// the voting layer treats that as "catalog exhausted".
func (s *Store) GetPage(ctx context.Context, roomID string, offset, limit int) ([]models.Candidate, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("invalid page bounds offset=%d limit=%d", offset, limit)
	}

	batch, err := s.GetBatch(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if offset >= batch.Len() {
		return []models.Candidate{}, nil
	}
	end := offset + limit
	if end > batch.Len() {
		end = batch.Len()
	}
	return models.CloneCandidates(batch.Candidates[offset:end]), nil
}

// ClearBatch removes a room's stored batch. Clearing an absent room is a
// no-op.
func (s *Store) ClearBatch(ctx context.Context, roomID string) error {
	start := time.Now()
	err := s.clearBatch(ctx, roomID)
	metrics.RecordCatalogOp("clear", time.Since(start), err)
	return err
}

func (s *Store) clearBatch(ctx context.Context, roomID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(batchKey(roomID))
	})
}

// RunValueLogGC triggers one Badger value log garbage collection cycle.
// Returns badger.ErrNoRewrite when there was nothing to reclaim.
func (s *Store) RunValueLogGC() error {
	return s.db.RunValueLogGC(0.5)
}

func batchKey(roomID string) []byte {
	return []byte(keyPrefix + roomID)
}
