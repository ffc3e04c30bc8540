package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.t.categoryNameTaken(c.Name, 0) {
		return domain.ErrConflict("category name is already taken")
	}
	c.ID = s.t.next("categories")
	s.t.categories[c.ID] = *c
	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.t.categories[c.ID]; !ok {
		return domain.ErrNotFound(fmt.Sprintf("category with id=%d was not found", c.ID))
	}
	if s.t.categoryNameTaken(c.Name, c.ID) {
		return domain.ErrConflict("category name is already taken")
	}
	s.t.categories[c.ID] = *c
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.t.categories[id]; !ok {
		return domain.ErrNotFound(fmt.Sprintf("category with id=%d was not found", id))
	}
	for _, e := range s.t.events {
		if e.Category.ID == id {
			return domain.ErrConflict("the category is not empty")
		}
	}
	delete(s.t.categories, id)
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.t.categories[id]
	if !ok {
		return nil, domain.ErrNotFound(fmt.Sprintf("category with id=%d was not found", id))
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.t.categories))
	for _, c := range s.t.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b domain.Category) int { return cmpID(a.ID, b.ID) })
	return page(out, offset, limit), nil
}

func (t *tables) categoryNameTaken(name string, except int64) bool {
	for _, c := range t.categories {
		if c.ID != except && c.Name == name {
			return true
		}
	}
	return false
}
