// Package testutil provides test helpers that run the store against a real
// in-memory SQLite database.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/moneyflow/internal/model"
	"github.com/Veraticus/moneyflow/internal/storage"
	"github.com/Veraticus/moneyflow/internal/store"
)

// FixedNow is the clock used by test stores unless overridden.
var FixedNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

// TestStore is a store backed by its own in-memory database.
type TestStore struct {
	*store.Store
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// TestStoreOptions provides configuration options for test store setup.
type TestStoreOptions struct {
	CustomSetup  func(context.Context, *storage.SQLiteStorage) error
	StoreOptions []store.Option
}

// SetupTestStore creates a migrated in-memory database and opens a store on it.
// The default categories are seeded; cleanup is registered on t.
func SetupTestStore(t *testing.T) *TestStore {
	t.Helper()
	return SetupTestStoreWithOptions(t, TestStoreOptions{})
}

// SetupTestStoreWithOptions is SetupTestStore with custom setup run on the
// database before the store loads it.
func SetupTestStoreWithOptions(t *testing.T, opts TestStoreOptions) *TestStore {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		db.Close()
	})

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, db); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	storeOpts := append([]store.Option{store.WithClock(func() time.Time { return FixedNow })}, opts.StoreOptions...)
	s, err := store.Open(ctx, db, storeOpts...)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	return &TestStore{Store: s, Storage: db, t: t}
}

// MustAddTransaction adds txn or fails the test.
func (ts *TestStore) MustAddTransaction(txn model.Transaction) model.Transaction {
	ts.t.Helper()
	added, err := ts.AddTransaction(context.Background(), txn)
	if err != nil {
		ts.t.Fatalf("failed to add transaction %q: %v", txn.Description, err)
	}
	return added
}

// MustAddBudget adds b or fails the test.
func (ts *TestStore) MustAddBudget(b model.Budget) model.Budget {
	ts.t.Helper()
	added, err := ts.AddBudget(context.Background(), b)
	if err != nil {
		ts.t.Fatalf("failed to add budget for %q: %v", b.CategoryID, err)
	}
	return added
}

// MustAddSavingsGoal adds g or fails the test.
func (ts *TestStore) MustAddSavingsGoal(g model.SavingsGoal) model.SavingsGoal {
	ts.t.Helper()
	added, err := ts.AddSavingsGoal(context.Background(), g)
	if err != nil {
		ts.t.Fatalf("failed to add goal %q: %v", g.Name, err)
	}
	return added
}

// Reopen loads a second store from the same database, as a restart would.
func (ts *TestStore) Reopen(opts ...store.Option) *store.Store {
	ts.t.Helper()
	s, err := store.Open(context.Background(), ts.Storage, opts...)
	if err != nil {
		ts.t.Fatalf("failed to reopen store: %v", err)
	}
	return s
}
