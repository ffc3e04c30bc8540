package domain

import "time"

type ParticipationRequest struct {
	ID          int64
	EventID     int64
	RequesterID int64
	Created     time.Time
	Status      RequestStatus
}

// StatusUpdateResult groups the requests touched by a bulk status change.
type StatusUpdateResult struct {
	Confirmed []ParticipationRequest
	Rejected  []ParticipationRequest
}

// CheckAdmission runs the event-side eligibility rules for a new request.
// Existence of the user and event, and uniqueness, are checked by the caller.
func (e *Event) CheckAdmission(requesterID int64) error {
	if e.State != StatePublished {
		return ErrNotAuthorized("cannot participate in an unpublished event")
	}
	if e.Initiator.ID == requesterID {
		return ErrNotAuthorized("initiator cannot request participation in own event")
	}
	return nil
}

// CheckCapacity rejects new requests once the confirmed count reached the limit,
// whether or not moderation is on.
func (e *Event) CheckCapacity() error {
	if !e.Available() {
		return ErrNotAuthorized("the participant limit has been reached")
	}
	return nil
}

// AdmissionStatus is the status a freshly admitted request starts in.
func (e *Event) AdmissionStatus() RequestStatus {
	if e.NeedsModeration() {
		return RequestPending
	}
	return RequestConfirmed
}

// AllocateRequests decides the outcome of a bulk status change. reqs must be the
// targeted requests in the caller's order. On success the event's confirmed counter
// already reflects the confirmations and every request carries its new status.
func (e *Event) AllocateRequests(reqs []ParticipationRequest, target RequestStatus) (StatusUpdateResult, error) {
	var res StatusUpdateResult

	if target != RequestConfirmed && target != RequestRejected {
		return res, ErrValidationMeta("invalid status", map[string]string{
			"status": "must be one of: CONFIRMED, REJECTED",
		})
	}
	if !e.NeedsModeration() {
		return res, ErrEventNotModifiable("event does not require request moderation")
	}
	for _, r := range reqs {
		if r.EventID != e.ID {
			return res, ErrNotFound("request not found for event")
		}
		if r.Status != RequestPending {
			return res, ErrNotAuthorized("request must have status PENDING")
		}
	}

	for _, r := range reqs {
		if target == RequestConfirmed && e.Available() {
			r.Status = RequestConfirmed
			e.ConfirmedRequests++
			res.Confirmed = append(res.Confirmed, r)
			continue
		}
		r.Status = RequestRejected
		res.Rejected = append(res.Rejected, r)
	}
	return res, nil
}
