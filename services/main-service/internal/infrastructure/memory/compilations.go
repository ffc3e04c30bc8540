package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (s *Store) CreateCompilation(ctx context.Context, c *domain.Compilation, eventIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.t.next("compilations")
	s.t.compilations[c.ID] = compilationRow{
		ID:       c.ID,
		Title:    c.Title,
		Pinned:   c.Pinned,
		EventIDs: slices.Compact(slices.Sorted(slices.Values(eventIDs))),
	}
	return nil
}

func (s *Store) UpdateCompilation(ctx context.Context, c *domain.Compilation, eventIDs *[]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.t.compilations[c.ID]
	if !ok {
		return domain.ErrNotFound(fmt.Sprintf("compilation with id=%d was not found", c.ID))
	}
	row.Title = c.Title
	row.Pinned = c.Pinned
	if eventIDs != nil {
		row.EventIDs = slices.Compact(slices.Sorted(slices.Values(*eventIDs)))
	}
	s.t.compilations[c.ID] = row
	return nil
}

func (s *Store) DeleteCompilation(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.t.compilations[id]; !ok {
		return domain.ErrNotFound(fmt.Sprintf("compilation with id=%d was not found", id))
	}
	delete(s.t.compilations, id)
	return nil
}

func (s *Store) GetCompilation(ctx context.Context, id int64) (*domain.Compilation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.t.compilations[id]
	if !ok {
		return nil, domain.ErrNotFound(fmt.Sprintf("compilation with id=%d was not found", id))
	}
	c := s.t.compilation(row)
	return &c, nil
}

func (s *Store) ListCompilations(ctx context.Context, pinned *bool, offset, limit int) ([]domain.Compilation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Compilation, 0)
	for _, row := range s.t.compilations {
		if pinned != nil && row.Pinned != *pinned {
			continue
		}
		out = append(out, s.t.compilation(row))
	}
	slices.SortFunc(out, func(a, b domain.Compilation) int { return cmpID(a.ID, b.ID) })
	return page(out, offset, limit), nil
}

func (t *tables) compilation(row compilationRow) domain.Compilation {
	c := domain.Compilation{ID: row.ID, Title: row.Title, Pinned: row.Pinned, Events: []domain.Event{}}
	for _, id := range row.EventIDs {
		if e, err := t.event(id); err == nil {
			c.Events = append(c.Events, e)
		}
	}
	return c
}
