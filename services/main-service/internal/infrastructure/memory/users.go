package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.t.users {
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrConflict("email is already registered")
		}
	}
	u.ID = s.t.next("users")
	s.t.users[u.ID] = *u
	return nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.t.users[id]
	if !ok {
		return nil, domain.ErrNotFound(fmt.Sprintf("user with id=%d was not found", id))
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, ids []int64, offset, limit int) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0)
	for _, u := range s.t.users {
		if len(ids) > 0 && !slices.Contains(ids, u.ID) {
			continue
		}
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b domain.User) int { return cmpID(a.ID, b.ID) })
	return page(out, offset, limit), nil
}

// DeleteUser cascades to the user's events, requests and comments.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.t.users[id]; !ok {
		return domain.ErrNotFound(fmt.Sprintf("user with id=%d was not found", id))
	}
	for eid, e := range s.t.events {
		if e.Initiator.ID == id {
			s.t.deleteEvent(eid)
		}
	}
	for rid, r := range s.t.requests {
		if r.RequesterID == id {
			delete(s.t.requests, rid)
		}
	}
	for cid, c := range s.t.comments {
		if c.Author.ID == id {
			delete(s.t.comments, cid)
		}
	}
	delete(s.t.users, id)
	return nil
}

func cmpID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
