package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.t.events[c.EventID]; !ok {
		return domain.ErrNotFound(fmt.Sprintf("event with id=%d was not found", c.EventID))
	}
	c.ID = s.t.next("comments")
	s.t.comments[c.ID] = *c
	return nil
}

func (s *Store) GetComment(ctx context.Context, id int64) (*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.t.comments[id]
	if !ok {
		return nil, domain.ErrNotFound(fmt.Sprintf("comment with id=%d was not found", id))
	}
	if u, ok := s.t.users[c.Author.ID]; ok {
		c.Author = u.Short()
	}
	return &c, nil
}

func (s *Store) UpdateComment(ctx context.Context, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.t.comments[c.ID]
	if !ok {
		return domain.ErrNotFound(fmt.Sprintf("comment with id=%d was not found", c.ID))
	}
	cur.Text = c.Text
	cur.UpdatedOn = c.UpdatedOn
	s.t.comments[c.ID] = cur
	return nil
}

func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.t.comments[id]; !ok {
		return domain.ErrNotFound(fmt.Sprintf("comment with id=%d was not found", id))
	}
	delete(s.t.comments, id)
	return nil
}

func (s *Store) ListCommentsByEvent(ctx context.Context, eventID int64, offset, limit int) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Comment, 0)
	for _, c := range s.t.comments {
		if c.EventID == eventID {
			if u, ok := s.t.users[c.Author.ID]; ok {
				c.Author = u.Short()
			}
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b domain.Comment) int { return cmpID(a.ID, b.ID) })
	return page(out, offset, limit), nil
}
