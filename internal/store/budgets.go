package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/model"
)

// Budgets returns the budgets in insertion order.
func (s *Store) Budgets() []model.Budget {
	return s.budgets.list()
}

// checkBudgetCategory rejects a second budget for categoryID. The budget
// with id exceptID is ignored. Callers hold the budgets lock.
func (s *Store) checkBudgetCategory(categoryID, exceptID string) error {
	for _, b := range s.budgets.items {
		if b.CategoryID == categoryID && b.ID != exceptID {
			return fmt.Errorf("%w: category %s already has budget %s", common.ErrDuplicateBudget, categoryID, b.ID)
		}
	}
	return nil
}

// AddBudget stores a new budget. Each category may have at most one budget.
func (s *Store) AddBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	if err := b.Validate(); err != nil {
		return model.Budget{}, err
	}

	s.budgets.mu.Lock()
	defer s.budgets.mu.Unlock()

	b.ID = s.assignID(b.ID)
	if err := s.budgets.checkNewID(b.ID); err != nil {
		return model.Budget{}, err
	}
	if err := s.checkBudgetCategory(b.CategoryID, b.ID); err != nil {
		return model.Budget{}, err
	}
	b.CreatedAt = s.clock()

	next := append(cloneItems(s.budgets.items), b)
	if err := s.budgets.commit(ctx, s.kv, next); err != nil {
		return model.Budget{}, err
	}

	slog.Debug("Added budget", "id", b.ID, "category_id", b.CategoryID, "amount", b.Amount)
	return b, nil
}

// UpdateBudget merges patch into the budget with the given id.
func (s *Store) UpdateBudget(ctx context.Context, id string, patch model.BudgetPatch) (model.Budget, error) {
	s.budgets.mu.Lock()
	defer s.budgets.mu.Unlock()

	i := s.budgets.indexOf(id)
	if i < 0 {
		return model.Budget{}, notFound("budget", id)
	}

	updated := patch.Apply(s.budgets.items[i])
	if err := updated.Validate(); err != nil {
		return model.Budget{}, err
	}
	if err := s.checkBudgetCategory(updated.CategoryID, id); err != nil {
		return model.Budget{}, err
	}
	if err := s.budgets.commit(ctx, s.kv, s.budgets.replace(i, updated)); err != nil {
		return model.Budget{}, err
	}

	slog.Debug("Updated budget", "id", id)
	return updated, nil
}

// RemoveBudget deletes the budget with the given id. Removing an unknown id
// does nothing.
func (s *Store) RemoveBudget(ctx context.Context, id string) error {
	removed, err := s.budgets.remove(ctx, s.kv, id)
	if removed {
		slog.Debug("Removed budget", "id", id)
	}
	return err
}
