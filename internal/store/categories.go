package store

import (
	"context"
	"log/slog"

	"github.com/Veraticus/moneyflow/internal/model"
)

// Categories returns the categories in insertion order.
func (s *Store) Categories() []model.Category {
	return s.categories.list()
}

// AddCategory stores a new category and returns it with its id assigned.
func (s *Store) AddCategory(ctx context.Context, c model.Category) (model.Category, error) {
	if err := c.Validate(); err != nil {
		return model.Category{}, err
	}

	s.categories.mu.Lock()
	defer s.categories.mu.Unlock()

	c.ID = s.assignID(c.ID)
	if err := s.categories.checkNewID(c.ID); err != nil {
		return model.Category{}, err
	}

	next := append(cloneItems(s.categories.items), c)
	if err := s.categories.commit(ctx, s.kv, next); err != nil {
		return model.Category{}, err
	}

	slog.Debug("Added category", "id", c.ID, "name", c.Name)
	return c, nil
}

// UpdateCategory merges patch into the category with the given id.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) (model.Category, error) {
	s.categories.mu.Lock()
	defer s.categories.mu.Unlock()

	i := s.categories.indexOf(id)
	if i < 0 {
		return model.Category{}, notFound("category", id)
	}

	updated := patch.Apply(s.categories.items[i])
	if err := updated.Validate(); err != nil {
		return model.Category{}, err
	}
	if err := s.categories.commit(ctx, s.kv, s.categories.replace(i, updated)); err != nil {
		return model.Category{}, err
	}

	slog.Debug("Updated category", "id", id)
	return updated, nil
}

// RemoveCategory deletes the category with the given id. Transactions and
// budgets that reference it are left alone. Removing an unknown id does nothing.
func (s *Store) RemoveCategory(ctx context.Context, id string) error {
	removed, err := s.categories.remove(ctx, s.kv, id)
	if removed {
		slog.Debug("Removed category", "id", id)
	}
	return err
}
