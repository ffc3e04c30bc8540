package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (s *Store) CreateEvent(ctx context.Context, e *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.t.users[e.Initiator.ID]; !ok {
		return domain.ErrNotFound(fmt.Sprintf("user with id=%d was not found", e.Initiator.ID))
	}
	if _, ok := s.t.categories[e.Category.ID]; !ok {
		return domain.ErrNotFound(fmt.Sprintf("category with id=%d was not found", e.Category.ID))
	}
	e.ID = s.t.next("events")
	s.t.events[e.ID] = *e
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.t.event(id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) UpdateEvent(ctx context.Context, e *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t.updateEvent(e)
}

func (t *tables) updateEvent(e *domain.Event) error {
	cur, ok := t.events[e.ID]
	if !ok {
		return domain.ErrNotFound(fmt.Sprintf("event with id=%d was not found", e.ID))
	}
	if _, ok := t.categories[e.Category.ID]; !ok {
		return domain.ErrNotFound(fmt.Sprintf("category with id=%d was not found", e.Category.ID))
	}
	// counters are owned by admission and stats
	upd := *e
	upd.ConfirmedRequests = cur.ConfirmedRequests
	upd.Views = cur.Views
	t.events[e.ID] = upd
	return nil
}

func (s *Store) SetViews(ctx context.Context, eventID, views int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.t.events[eventID]
	if !ok {
		return domain.ErrNotFound(fmt.Sprintf("event with id=%d was not found", eventID))
	}
	e.Views = views
	s.t.events[eventID] = e
	return nil
}

func (s *Store) ListEventsByInitiator(ctx context.Context, userID int64, offset, limit int) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Event, 0)
	for id, e := range s.t.events {
		if e.Initiator.ID == userID {
			h, _ := s.t.event(id)
			out = append(out, h)
		}
	}
	slices.SortFunc(out, func(a, b domain.Event) int { return cmpID(a.ID, b.ID) })
	return page(out, offset, limit), nil
}

// SearchEvents applies the same predicates and ordering as the SQL search.
func (s *Store) SearchEvents(ctx context.Context, q domain.EventQuery) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Event, 0)
	for id := range s.t.events {
		e, _ := s.t.event(id)
		if matches(e, q) {
			out = append(out, e)
		}
	}

	slices.SortFunc(out, func(a, b domain.Event) int {
		var c int
		switch q.Sort {
		case domain.SortByEventDate:
			c = a.EventDate.Compare(b.EventDate)
		case domain.SortByViews:
			c = -cmpID(a.Views, b.Views)
		case domain.SortByComments:
			c = -cmpID(a.Comments, b.Comments)
		}
		if c != 0 {
			return c
		}
		return cmpID(a.ID, b.ID)
	})
	return page(out, q.Offset, q.Limit), nil
}

func matches(e domain.Event, q domain.EventQuery) bool {
	if q.PublishedOnly && e.State != domain.StatePublished {
		return false
	}
	if len(q.States) > 0 && !slices.Contains(q.States, e.State) {
		return false
	}
	if len(q.Initiators) > 0 && !slices.Contains(q.Initiators, e.Initiator.ID) {
		return false
	}
	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(e.Annotation), needle) &&
			!strings.Contains(strings.ToLower(e.Description), needle) {
			return false
		}
	}
	if len(q.Categories) > 0 && !slices.Contains(q.Categories, e.Category.ID) {
		return false
	}
	if q.Paid != nil && e.Paid != *q.Paid {
		return false
	}
	if q.OnlyAvailable && !e.Available() {
		return false
	}

	switch {
	case q.PublishedOnly && q.RangeStart != nil && q.RangeEnd != nil:
		if e.EventDate.Before(*q.RangeStart) || e.EventDate.After(*q.RangeEnd) {
			return false
		}
	case q.PublishedOnly:
		if !e.EventDate.After(q.Now) {
			return false
		}
	default:
		if q.RangeStart != nil && e.EventDate.Before(*q.RangeStart) {
			return false
		}
		if q.RangeEnd != nil && e.EventDate.After(*q.RangeEnd) {
			return false
		}
	}
	return true
}

// event returns a copy with the joined fields filled in.
func (t *tables) event(id int64) (domain.Event, error) {
	e, ok := t.events[id]
	if !ok {
		return domain.Event{}, domain.ErrNotFound(fmt.Sprintf("event with id=%d was not found", id))
	}
	if u, ok := t.users[e.Initiator.ID]; ok {
		e.Initiator = u.Short()
	}
	if c, ok := t.categories[e.Category.ID]; ok {
		e.Category = c
	}
	e.Comments = 0
	for _, c := range t.comments {
		if c.EventID == id {
			e.Comments++
		}
	}
	return e, nil
}

func (t *tables) deleteEvent(id int64) {
	delete(t.events, id)
	for rid, r := range t.requests {
		if r.EventID == id {
			delete(t.requests, rid)
		}
	}
	for cid, c := range t.comments {
		if c.EventID == id {
			delete(t.comments, cid)
		}
	}
	for cid, c := range t.compilations {
		c.EventIDs = slices.DeleteFunc(c.EventIDs, func(v int64) bool { return v == id })
		t.compilations[cid] = c
	}
}
