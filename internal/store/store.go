// Package store owns the four entity collections and keeps them in sync with
// a service.KeyValueStore.
//
// Every mutation validates first, then writes the whole collection to its
// slot, and only then replaces the in-memory copy. A failed write leaves the
// store exactly as it was.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/moneyflow/internal/aggregate"
	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/service"
)

// Slot keys. The names match what earlier versions of the application wrote.
const (
	TransactionsKey = "moneyManager_transactions"
	CategoriesKey   = "moneyManager_categories"
	BudgetsKey      = "moneyManager_budgets"
	SavingsGoalsKey = "moneyManager_savingsGoals"
)

// MalformedPolicy decides what Open does with a slot that is not valid JSON.
type MalformedPolicy int

const (
	// FailOnMalformed makes Open return common.ErrMalformedSlot.
	FailOnMalformed MalformedPolicy = iota
	// ResetMalformed logs a warning and starts that collection empty
	// (categories fall back to the defaults). The slot is left untouched
	// until the next write to that collection.
	ResetMalformed
)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp CreatedAt.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithIDGenerator sets the function used to mint ids for new records.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithMalformedPolicy sets how unreadable slots are handled on Open.
func WithMalformedPolicy(policy MalformedPolicy) Option {
	return func(s *Store) {
		s.malformed = policy
	}
}

// Store is the single source of truth for categories, transactions, budgets
// and savings goals. It is safe for concurrent use; writes to one collection
// are serialized, and writes to different collections do not block each other.
type Store struct {
	kv           service.KeyValueStore
	clock        func() time.Time
	newID        func() string
	categories   *collection[model.Category]
	transactions *collection[model.Transaction]
	budgets      *collection[model.Budget]
	goals        *collection[model.SavingsGoal]
	malformed    MalformedPolicy
}

// Open loads every slot from kv. A missing category slot is seeded with
// model.DefaultCategories and written back; other missing slots start empty.
func Open(ctx context.Context, kv service.KeyValueStore, opts ...Option) (*Store, error) {
	s := &Store{
		kv:           kv,
		clock:        time.Now,
		newID:        uuid.NewString,
		categories:   newCollection(CategoriesKey, func(c model.Category) string { return c.ID }),
		transactions: newCollection(TransactionsKey, func(t model.Transaction) string { return t.ID }),
		budgets:      newCollection(BudgetsKey, func(b model.Budget) string { return b.ID }),
		goals:        newCollection(SavingsGoalsKey, func(g model.SavingsGoal) string { return g.ID }),
	}
	for _, opt := range opts {
		opt(s)
	}

	seeded, err := load(ctx, s, s.categories, model.DefaultCategories)
	if err != nil {
		return nil, err
	}
	if seeded {
		s.categories.mu.Lock()
		err = s.categories.commit(ctx, kv, s.categories.items)
		s.categories.mu.Unlock()
		if err != nil {
			return nil, err
		}
		slog.Info("Seeded default categories", "count", len(s.categories.items))
	}

	if _, err := load(ctx, s, s.transactions, nil); err != nil {
		return nil, err
	}
	if _, err := load(ctx, s, s.budgets, nil); err != nil {
		return nil, err
	}
	if _, err := load(ctx, s, s.goals, nil); err != nil {
		return nil, err
	}

	slog.Debug("Store loaded",
		"categories", len(s.categories.items),
		"transactions", len(s.transactions.items),
		"budgets", len(s.budgets.items),
		"savings_goals", len(s.goals.items))

	return s, nil
}

// load reads one slot into c. It reports true when the slot was missing and
// defaults were used, meaning the caller should write them.
func load[T any](ctx context.Context, s *Store, c *collection[T], defaults func() []T) (bool, error) {
	fallback := func() []T {
		if defaults == nil {
			return []T{}
		}
		return defaults()
	}

	data, ok, err := s.kv.Get(ctx, c.key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", c.key, err)
	}
	if !ok {
		c.items = fallback()
		return defaults != nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		if s.malformed != ResetMalformed {
			return false, fmt.Errorf("%w: %s: %w", common.ErrMalformedSlot, c.key, err)
		}
		slog.Warn("Discarding malformed slot", "key", c.key, "error", err)
		c.items = fallback()
		return false, nil
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	return false, nil
}

// Snapshot returns a consistent copy of all four collections.
func (s *Store) Snapshot() aggregate.Collections {
	s.categories.mu.RLock()
	defer s.categories.mu.RUnlock()
	s.transactions.mu.RLock()
	defer s.transactions.mu.RUnlock()
	s.budgets.mu.RLock()
	defer s.budgets.mu.RUnlock()
	s.goals.mu.RLock()
	defer s.goals.mu.RUnlock()

	return aggregate.Collections{
		Categories:   cloneItems(s.categories.items),
		Transactions: cloneItems(s.transactions.items),
		Budgets:      cloneItems(s.budgets.items),
		SavingsGoals: cloneGoals(s.goals.items),
	}
}

func (s *Store) assignID(id string) string {
	if id == "" {
		return s.newID()
	}
	return id
}
