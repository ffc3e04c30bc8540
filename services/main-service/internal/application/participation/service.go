package participation

import (
	"context"
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
	"github.com/baechuer/explore-with-me/services/main-service/internal/metrics"
)

type Service struct {
	tx       domain.TxRunner
	requests domain.RequestRepo
	users    domain.UserRepo
	events   domain.EventRepo
	clock    domain.Clock
}

func New(tx domain.TxRunner, requests domain.RequestRepo, users domain.UserRepo, events domain.EventRepo, clock domain.Clock) *Service {
	return &Service{tx: tx, requests: requests, users: users, events: events, clock: clock}
}

// Add admits userID to eventID. The event row stays locked for the whole
// check-then-increment so concurrent requests cannot overshoot the limit.
func (s *Service) Add(ctx context.Context, userID, eventID int64) (*domain.ParticipationRequest, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var out *domain.ParticipationRequest
	err := s.tx.WithTx(ctx, func(tx domain.TxRepo) error {
		ev, err := tx.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if err := ev.CheckAdmission(userID); err != nil {
			return err
		}

		existing, err := tx.FindRequestForUpdate(ctx, eventID, userID)
		switch {
		case err == nil && existing.Status != domain.RequestCanceled:
			return domain.ErrRequestAlreadyExists(fmt.Sprintf("user %d already requested event %d", userID, eventID))
		case err != nil && domain.CodeOf(err) != domain.CodeNotFound:
			return err
		case err != nil:
			existing = nil
		}

		if err := ev.CheckCapacity(); err != nil {
			return err
		}

		now := s.clock.Now().UTC()
		status := ev.AdmissionStatus()

		if existing != nil {
			// a canceled request is reopened instead of inserting a duplicate row
			existing.Status = status
			existing.Created = now
			if err := tx.SaveRequest(ctx, existing); err != nil {
				return err
			}
			out = existing
		} else {
			r := &domain.ParticipationRequest{
				EventID:     eventID,
				RequesterID: userID,
				Created:     now,
				Status:      status,
			}
			if err := tx.CreateRequest(ctx, r); err != nil {
				return err
			}
			out = r
		}

		if status == domain.RequestConfirmed {
			return tx.AddConfirmed(ctx, eventID, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ParticipationRequests.WithLabelValues(string(out.Status)).Inc()
	zlog.Info().
		Int64("request_id", out.ID).
		Int64("event_id", eventID).
		Int64("user_id", userID).
		Str("status", string(out.Status)).
		Msg("participation request added")
	return out, nil
}

// ChangeStatus is the initiator's bulk confirm/reject. Requests are confirmed in
// the given order until the limit is hit; the remainder is rejected.
func (s *Service) ChangeStatus(ctx context.Context, ownerID, eventID int64, ids []int64, status domain.RequestStatus) (domain.StatusUpdateResult, error) {
	var res domain.StatusUpdateResult

	if _, err := s.users.GetUser(ctx, ownerID); err != nil {
		return res, err
	}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return res, domain.ErrValidationMeta("invalid request body", map[string]string{
			"requestIds": "must not be empty",
		})
	}

	err := s.tx.WithTx(ctx, func(tx domain.TxRepo) error {
		ev, err := tx.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.Initiator.ID != ownerID {
			return domain.ErrNotAuthorized("only the initiator can moderate requests")
		}
		if !ev.NeedsModeration() {
			return domain.ErrEventNotModifiable("event does not require request moderation")
		}

		locked, err := tx.GetRequestsForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		ordered, err := inOrder(ids, locked)
		if err != nil {
			return err
		}

		res, err = ev.AllocateRequests(ordered, status)
		if err != nil {
			return err
		}

		if len(res.Confirmed) > 0 {
			if err := tx.SetRequestStatus(ctx, idsOf(res.Confirmed), domain.RequestConfirmed); err != nil {
				return err
			}
			if err := tx.AddConfirmed(ctx, eventID, int64(len(res.Confirmed))); err != nil {
				return err
			}
		}
		if len(res.Rejected) > 0 {
			if err := tx.SetRequestStatus(ctx, idsOf(res.Rejected), domain.RequestRejected); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.StatusUpdateResult{}, err
	}

	metrics.ParticipationRequests.WithLabelValues(string(domain.RequestConfirmed)).Add(float64(len(res.Confirmed)))
	metrics.ParticipationRequests.WithLabelValues(string(domain.RequestRejected)).Add(float64(len(res.Rejected)))
	zlog.Info().
		Int64("event_id", eventID).
		Int("confirmed", len(res.Confirmed)).
		Int("rejected", len(res.Rejected)).
		Msg("participation requests moderated")
	return res, nil
}

// Cancel withdraws the caller's own request. The confirmed counter is left as is.
func (s *Service) Cancel(ctx context.Context, userID, requestID int64) (*domain.ParticipationRequest, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var out *domain.ParticipationRequest
	err := s.tx.WithTx(ctx, func(tx domain.TxRepo) error {
		r, err := tx.GetRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if r.RequesterID != userID {
			return domain.ErrNotAuthorized("only the requester can cancel this request")
		}
		r.Status = domain.RequestCanceled
		if err := tx.SaveRequest(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ParticipationRequests.WithLabelValues(string(domain.RequestCanceled)).Inc()
	return out, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]domain.ParticipationRequest, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.requests.ListRequestsByRequester(ctx, userID)
}

// ListForEvent returns every request of an event to its initiator.
func (s *Service) ListForEvent(ctx context.Context, ownerID, eventID int64) ([]domain.ParticipationRequest, error) {
	if _, err := s.users.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	ev, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.Initiator.ID != ownerID {
		return nil, domain.ErrNotAuthorized("only the initiator can view event requests")
	}
	return s.requests.ListRequestsByEvent(ctx, eventID)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func inOrder(ids []int64, reqs []domain.ParticipationRequest) ([]domain.ParticipationRequest, error) {
	byID := make(map[int64]domain.ParticipationRequest, len(reqs))
	for _, r := range reqs {
		byID[r.ID] = r
	}
	out := make([]domain.ParticipationRequest, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, domain.ErrNotFound(fmt.Sprintf("request with id=%d was not found", id))
		}
		out = append(out, r)
	}
	return out, nil
}

func idsOf(reqs []domain.ParticipationRequest) []int64 {
	out := make([]int64, len(reqs))
	for i, r := range reqs {
		out[i] = r.ID
	}
	return out
}
