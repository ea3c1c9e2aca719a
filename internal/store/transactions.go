package store

import (
	"context"
	"log/slog"
	"slices"

	"github.com/Veraticus/moneyflow/internal/model"
)

// Transactions returns the transactions newest-added first.
func (s *Store) Transactions() []model.Transaction {
	return s.transactions.list()
}

// AddTransaction stores t at the front of the list and returns it with its
// id and CreatedAt assigned.
func (s *Store) AddTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	if err := t.Validate(); err != nil {
		return model.Transaction{}, err
	}

	s.transactions.mu.Lock()
	defer s.transactions.mu.Unlock()

	t.ID = s.assignID(t.ID)
	if err := s.transactions.checkNewID(t.ID); err != nil {
		return model.Transaction{}, err
	}
	t.CreatedAt = s.clock()

	next := make([]model.Transaction, 0, len(s.transactions.items)+1)
	next = append(next, t)
	next = append(next, s.transactions.items...)
	if err := s.transactions.commit(ctx, s.kv, next); err != nil {
		return model.Transaction{}, err
	}

	slog.Debug("Added transaction", "id", t.ID, "type", t.Type, "amount", t.Amount)
	return t, nil
}

// ImportTransactions adds a batch in one write. Transactions whose id is
// already stored are skipped so re-importing the same file is harmless.
// Nothing is stored if any transaction in the batch is invalid. The batch keeps its
// order and lands in front of the existing list.
func (s *Store) ImportTransactions(ctx context.Context, txns []model.Transaction) ([]model.Transaction, error) {
	s.transactions.mu.Lock()
	defer s.transactions.mu.Unlock()

	now := s.clock()
	seen := make(map[string]bool, len(s.transactions.items)+len(txns))
	for _, t := range s.transactions.items {
		seen[t.ID] = true
	}

	added := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		t.ID = s.assignID(t.ID)
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		t.CreatedAt = now
		added = append(added, t)
	}
	if len(added) == 0 {
		return added, nil
	}

	next := slices.Concat(added, s.transactions.items)
	if err := s.transactions.commit(ctx, s.kv, next); err != nil {
		return nil, err
	}

	slog.Info("Imported transactions", "added", len(added), "skipped", len(txns)-len(added))
	return added, nil
}

// UpdateTransaction merges patch into the transaction with the given id.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch) (model.Transaction, error) {
	s.transactions.mu.Lock()
	defer s.transactions.mu.Unlock()

	i := s.transactions.indexOf(id)
	if i < 0 {
		return model.Transaction{}, notFound("transaction", id)
	}

	updated := patch.Apply(s.transactions.items[i])
	if err := updated.Validate(); err != nil {
		return model.Transaction{}, err
	}
	if err := s.transactions.commit(ctx, s.kv, s.transactions.replace(i, updated)); err != nil {
		return model.Transaction{}, err
	}

	slog.Debug("Updated transaction", "id", id)
	return updated, nil
}

// RemoveTransaction deletes the transaction with the given id. Removing an
// unknown id does nothing.
func (s *Store) RemoveTransaction(ctx context.Context, id string) error {
	removed, err := s.transactions.remove(ctx, s.kv, id)
	if removed {
		slog.Debug("Removed transaction", "id", id)
	}
	return err
}
