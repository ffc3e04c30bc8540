package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (s *Store) GetRequest(ctx context.Context, id int64) (*domain.ParticipationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.request(id)
}

func (s *Store) ListRequestsByRequester(ctx context.Context, userID int64) ([]domain.ParticipationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.requestsWhere(func(r domain.ParticipationRequest) bool { return r.RequesterID == userID }), nil
}

func (s *Store) ListRequestsByEvent(ctx context.Context, eventID int64) ([]domain.ParticipationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.t.requestsWhere(func(r domain.ParticipationRequest) bool { return r.EventID == eventID }), nil
}

func (t *tables) request(id int64) (*domain.ParticipationRequest, error) {
	r, ok := t.requests[id]
	if !ok {
		return nil, domain.ErrNotFound(fmt.Sprintf("request with id=%d was not found", id))
	}
	return &r, nil
}

func (t *tables) requestsWhere(keep func(domain.ParticipationRequest) bool) []domain.ParticipationRequest {
	out := make([]domain.ParticipationRequest, 0)
	for _, r := range t.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b domain.ParticipationRequest) int { return cmpID(a.ID, b.ID) })
	return out
}

// txView is the TxRepo handed out by WithTx. The store lock is already held.
type txView struct {
	t *tables
}

func (v *txView) GetEventForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := v.t.event(id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (v *txView) UpdateEvent(ctx context.Context, e *domain.Event) error {
	return v.t.updateEvent(e)
}

func (v *txView) FindRequestForUpdate(ctx context.Context, eventID, requesterID int64) (*domain.ParticipationRequest, error) {
	for _, r := range v.t.requests {
		if r.EventID == eventID && r.RequesterID == requesterID {
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound("request not found")
}

func (v *txView) GetRequestForUpdate(ctx context.Context, id int64) (*domain.ParticipationRequest, error) {
	return v.t.request(id)
}

func (v *txView) GetRequestsForUpdate(ctx context.Context, ids []int64) ([]domain.ParticipationRequest, error) {
	return v.t.requestsWhere(func(r domain.ParticipationRequest) bool { return slices.Contains(ids, r.ID) }), nil
}

func (v *txView) CreateRequest(ctx context.Context, r *domain.ParticipationRequest) error {
	for _, other := range v.t.requests {
		if other.EventID == r.EventID && other.RequesterID == r.RequesterID {
			return domain.ErrRequestAlreadyExists("request already exists")
		}
	}
	r.ID = v.t.next("requests")
	v.t.requests[r.ID] = *r
	return nil
}

func (v *txView) SaveRequest(ctx context.Context, r *domain.ParticipationRequest) error {
	cur, ok := v.t.requests[r.ID]
	if !ok {
		return domain.ErrNotFound(fmt.Sprintf("request with id=%d was not found", r.ID))
	}
	cur.Status = r.Status
	cur.Created = r.Created
	v.t.requests[r.ID] = cur
	return nil
}

func (v *txView) SetRequestStatus(ctx context.Context, ids []int64, status domain.RequestStatus) error {
	for _, id := range ids {
		r, ok := v.t.requests[id]
		if !ok {
			return domain.ErrNotFound(fmt.Sprintf("request with id=%d was not found", id))
		}
		r.Status = status
		v.t.requests[id] = r
	}
	return nil
}

func (v *txView) AddConfirmed(ctx context.Context, eventID int64, delta int64) error {
	e, ok := v.t.events[eventID]
	if !ok {
		return domain.ErrNotFound(fmt.Sprintf("event with id=%d was not found", eventID))
	}
	e.ConfirmedRequests += delta
	v.t.events[eventID] = e
	return nil
}
