package event

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

// UpdateByOwner applies the initiator's patch.
func (s *Service) UpdateByOwner(ctx context.Context, userID, eventID int64, p domain.EventPatch) (*domain.Event, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.update(ctx, eventID, p, func(ev *domain.Event) error {
		if ev.Initiator.ID != userID {
			return domain.ErrNotAuthorized("only the initiator can change this event")
		}
		return ev.ApplyOwnerUpdate(p, s.clock.Now().UTC())
	})
}

// UpdateByAdmin applies a moderator's patch, including publish/reject.
func (s *Service) UpdateByAdmin(ctx context.Context, eventID int64, p domain.EventPatch) (*domain.Event, error) {
	return s.update(ctx, eventID, p, func(ev *domain.Event) error {
		return ev.ApplyAdminUpdate(p, s.clock.Now().UTC())
	})
}

// update holds the event row lock from the read through the write, so state
// checks in apply always see the committed state.
func (s *Service) update(ctx context.Context, eventID int64, p domain.EventPatch, apply func(ev *domain.Event) error) (*domain.Event, error) {
	if p.CategoryID != nil {
		if _, err := s.categories.GetCategory(ctx, *p.CategoryID); err != nil {
			return nil, err
		}
	}

	var ev *domain.Event
	err := s.tx.WithTx(ctx, func(tx domain.TxRepo) error {
		var err error
		if ev, err = tx.GetEventForUpdate(ctx, eventID); err != nil {
			return err
		}
		if err := apply(ev); err != nil {
			return err
		}
		return tx.UpdateEvent(ctx, ev)
	})
	if err != nil {
		return nil, err
	}

	l := zlog.Info().Int64("event_id", ev.ID).Str("state", string(ev.State))
	if p.StateAction != nil {
		l = l.Str("action", string(*p.StateAction))
	}
	l.Msg("event updated")

	// re-read for joined fields (category name, comment count)
	return s.events.GetEvent(ctx, ev.ID)
}
