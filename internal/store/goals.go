package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/model"
)

// Adjustment is the direction of a goal balance change.
type Adjustment string

// Adjustments.
const (
	Deposit  Adjustment = "deposit"
	Withdraw Adjustment = "withdraw"
)

// SavingsGoals returns the goals in insertion order.
func (s *Store) SavingsGoals() []model.SavingsGoal {
	s.goals.mu.RLock()
	defer s.goals.mu.RUnlock()
	return cloneGoals(s.goals.items)
}

// AddSavingsGoal stores a new goal.
func (s *Store) AddSavingsGoal(ctx context.Context, g model.SavingsGoal) (model.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return model.SavingsGoal{}, err
	}

	s.goals.mu.Lock()
	defer s.goals.mu.Unlock()

	g.ID = s.assignID(g.ID)
	if err := s.goals.checkNewID(g.ID); err != nil {
		return model.SavingsGoal{}, err
	}
	g.CreatedAt = s.clock()
	g = cloneGoal(g)

	next := append(cloneItems(s.goals.items), g)
	if err := s.goals.commit(ctx, s.kv, next); err != nil {
		return model.SavingsGoal{}, err
	}

	slog.Debug("Added savings goal", "id", g.ID, "name", g.Name, "target", g.TargetAmount)
	return cloneGoal(g), nil
}

// UpdateSavingsGoal merges patch into the goal with the given id.
func (s *Store) UpdateSavingsGoal(ctx context.Context, id string, patch model.SavingsGoalPatch) (model.SavingsGoal, error) {
	s.goals.mu.Lock()
	defer s.goals.mu.Unlock()

	i := s.goals.indexOf(id)
	if i < 0 {
		return model.SavingsGoal{}, notFound("savings goal", id)
	}

	updated := cloneGoal(patch.Apply(s.goals.items[i]))
	if err := updated.Validate(); err != nil {
		return model.SavingsGoal{}, err
	}
	if err := s.goals.commit(ctx, s.kv, s.goals.replace(i, updated)); err != nil {
		return model.SavingsGoal{}, err
	}

	slog.Debug("Updated savings goal", "id", id)
	return cloneGoal(updated), nil
}

// AdjustGoal deposits into or withdraws from a goal's current amount.
// Withdrawals never take the balance below zero.
func (s *Store) AdjustGoal(ctx context.Context, id string, amount float64, mode Adjustment) (model.SavingsGoal, error) {
	if amount <= 0 {
		return model.SavingsGoal{}, fmt.Errorf("%w: adjustment amount must be greater than zero", common.ErrValidation)
	}

	s.goals.mu.Lock()
	defer s.goals.mu.Unlock()

	i := s.goals.indexOf(id)
	if i < 0 {
		return model.SavingsGoal{}, notFound("savings goal", id)
	}

	goal := cloneGoal(s.goals.items[i])
	current := decimal.NewFromFloat(goal.CurrentAmount)
	delta := decimal.NewFromFloat(amount)

	switch mode {
	case Deposit:
		current = current.Add(delta)
	case Withdraw:
		current = decimal.Max(decimal.Zero, current.Sub(delta))
	default:
		return model.SavingsGoal{}, fmt.Errorf("%w: unknown adjustment %q", common.ErrValidation, mode)
	}
	goal.CurrentAmount = current.InexactFloat64()

	if err := s.goals.commit(ctx, s.kv, s.goals.replace(i, goal)); err != nil {
		return model.SavingsGoal{}, err
	}

	slog.Debug("Adjusted savings goal", "id", id, "mode", mode, "amount", amount, "current", goal.CurrentAmount)
	return cloneGoal(goal), nil
}

// RemoveSavingsGoal deletes the goal with the given id. Removing an unknown
// id does nothing.
func (s *Store) RemoveSavingsGoal(ctx context.Context, id string) error {
	removed, err := s.goals.remove(ctx, s.kv, id)
	if removed {
		slog.Debug("Removed savings goal", "id", id)
	}
	return err
}

// cloneGoal copies g so the result shares no pointers with it.
func cloneGoal(g model.SavingsGoal) model.SavingsGoal {
	if g.TargetDate != nil {
		d := *g.TargetDate
		g.TargetDate = &d
	}
	return g
}

func cloneGoals(goals []model.SavingsGoal) []model.SavingsGoal {
	out := make([]model.SavingsGoal, len(goals))
	for i, g := range goals {
		out[i] = cloneGoal(g)
	}
	return out
}
