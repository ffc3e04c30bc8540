package event

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (s *Service) Create(ctx context.Context, userID int64, in domain.NewEventInput) (*domain.Event, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cat, err := s.categories.GetCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	ev, err := domain.NewEvent(in, u.Short(), *cat, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.events.CreateEvent(ctx, ev); err != nil {
		return nil, err
	}

	zlog.Info().Int64("event_id", ev.ID).Int64("initiator", userID).Msg("event created")
	return ev, nil
}
