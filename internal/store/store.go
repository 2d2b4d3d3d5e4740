// Package store implements the persistent key-value store behind the WeeklyBite core.
//
// Records live in named collections on a single Badger database. Each
// collection has a primary-key function and stores JSON values under
// "<collection>:<primary key>".
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/weeklybite/weeklybite/internal/domain"
	"github.com/weeklybite/weeklybite/internal/errors"
)

// Collection names as persisted.
const (
	CollectionRecipes       = "recipes"
	CollectionMealPlans     = "mealPlans"
	CollectionShoppingLists = "shoppingLists"
)

// Options configures the store.
type Options struct {
	Path     string       // Directory for the Badger files
	InMemory bool         // Keep everything in memory; Path is ignored
	Logger   *slog.Logger // Uses a discard logger if nil
}

// Store wraps a lazily opened Badger database instance.
type Store struct {
	opts   Options
	logger *slog.Logger

	mu sync.Mutex
	db *badger.DB

	Recipes       *Collection[domain.Recipe]
	MealPlans     *Collection[domain.WeekPlan]
	ShoppingLists *Collection[domain.ShoppingList]
}

// New creates a store. The database is not opened until Init or the first
// collection operation.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Store{
		opts:   opts,
		logger: logger,
	}

	s.Recipes = NewCollection(s, CollectionRecipes, func(r *domain.Recipe) string {
		return r.ID
	})
	s.MealPlans = NewCollection(s, CollectionMealPlans, func(p *domain.WeekPlan) string {
		return p.WeekStart
	})
	s.ShoppingLists = NewCollection(s, CollectionShoppingLists, func(l *domain.ShoppingList) string {
		return l.WeekStart
	})

	return s
}

// Init opens the database if it is not open yet. It is safe to call repeatedly.
// A failed open is not remembered; the next call tries again.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.handle(ctx)
	return err
}

// handle returns the open database, opening it on first use.
func (s *Store) handle(ctx context.Context) (*badger.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	var opts badger.Options
	switch {
	case s.opts.InMemory:
		opts = badger.DefaultOptions("").WithInMemory(true)
	case s.opts.Path != "":
		opts = badger.DefaultOptions(s.opts.Path)
		opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
		opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup
	default:
		return nil, ErrUnavailable.WithCause(errors.New("no storage path configured"))
	}
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		s.logger.Error("failed to open badger db", "path", s.opts.Path, "error", err)
		return nil, ErrUnavailable.WithCause(err)
	}

	s.db = db
	s.logger.Info("Badger database opened", "path", s.opts.Path, "in_memory", s.opts.InMemory)
	return db, nil
}

// Close closes the database if it was opened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	s.logger.Info("Closing database connection")
	err := s.db.Close()
	s.db = nil
	return err
}

// Collections returns the names of all collections in a stable order.
func (s *Store) Collections() []string {
	return []string{CollectionRecipes, CollectionMealPlans, CollectionShoppingLists}
}
