package event

import (
	"context"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

const EventsURI = "/events"

// SearchPublic lists published events. Range validation happens before any query.
func (s *Service) SearchPublic(ctx context.Context, q domain.EventQuery, clientIP string) ([]domain.Event, error) {
	now := s.clock.Now().UTC()
	q.PublishedOnly = true
	q.States = nil
	q.Initiators = nil
	q.Now = now
	if err := q.Normalize(); err != nil {
		return nil, err
	}

	out, err := s.events.SearchEvents(ctx, q)
	if err != nil {
		return nil, err
	}
	s.recordHit(ctx, EventsURI, clientIP, now)
	return out, nil
}

// SearchAdmin lists events in any state with the admin filter set.
func (s *Service) SearchAdmin(ctx context.Context, q domain.EventQuery) ([]domain.Event, error) {
	q.PublishedOnly = false
	q.Now = s.clock.Now().UTC()
	if err := q.Normalize(); err != nil {
		return nil, err
	}
	return s.events.SearchEvents(ctx, q)
}
