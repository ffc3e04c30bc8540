package event

import (
	"context"
	"fmt"
	"time"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
	"github.com/baechuer/explore-with-me/services/main-service/internal/logger"
)

// GetPublic returns a published event and refreshes its view counter from stats.
func (s *Service) GetPublic(ctx context.Context, eventID int64, clientIP string) (*domain.Event, error) {
	ev, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.State != domain.StatePublished {
		return nil, domain.ErrNotFound(fmt.Sprintf("event with id=%d was not found", eventID))
	}

	now := s.clock.Now().UTC()
	uri := EventURI(eventID)
	s.recordHit(ctx, uri, clientIP, now)

	views, err := s.stats.ViewCount(ctx, uri, time.Unix(0, 0).UTC(), now)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Int64("event_id", eventID).Msg("view count not refreshed")
		return ev, nil
	}
	if views != ev.Views {
		ev.Views = views
		if err := s.events.SetViews(ctx, eventID, views); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Int64("event_id", eventID).Msg("views not persisted")
		}
	}
	return ev, nil
}

// GetByOwner is the initiator's view of one of their events, in any state.
func (s *Service) GetByOwner(ctx context.Context, userID, eventID int64) (*domain.Event, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	ev, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.Initiator.ID != userID {
		return nil, domain.ErrNotAuthorized("only the initiator can view this event")
	}
	return ev, nil
}

func (s *Service) ListByOwner(ctx context.Context, userID int64, offset, limit int) ([]domain.Event, error) {
	if err := domain.NormalizePage(&offset, &limit); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.events.ListEventsByInitiator(ctx, userID, offset, limit)
}

func EventURI(id int64) string { return fmt.Sprintf("/events/%d", id) }
