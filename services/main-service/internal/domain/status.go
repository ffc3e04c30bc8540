package domain

type EventState string

const (
	StatePending   EventState = "PENDING"
	StatePublished EventState = "PUBLISHED"
	StateCanceled  EventState = "CANCELED"
)

func (s EventState) Valid() bool {
	return s == StatePending || s == StatePublished || s == StateCanceled
}

// StateAction is the transition requested inside an event patch.
type StateAction string

const (
	ActionSendToReview StateAction = "SEND_TO_REVIEW"
	ActionCancelReview StateAction = "CANCEL_REVIEW"
	ActionPublishEvent StateAction = "PUBLISH_EVENT"
	ActionRejectEvent  StateAction = "REJECT_EVENT"
)

func (a StateAction) OwnerAction() bool {
	return a == ActionSendToReview || a == ActionCancelReview
}

func (a StateAction) AdminAction() bool {
	return a == ActionPublishEvent || a == ActionRejectEvent
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestConfirmed RequestStatus = "CONFIRMED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestCanceled  RequestStatus = "CANCELED"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestConfirmed, RequestRejected, RequestCanceled:
		return true
	}
	return false
}

type EventSort string

const (
	SortByID        EventSort = "ID"
	SortByEventDate EventSort = "EVENT_DATE"
	SortByViews     EventSort = "VIEWS"
	SortByComments  EventSort = "COMMENTS"
)

func (s EventSort) Valid() bool {
	switch s {
	case SortByID, SortByEventDate, SortByViews, SortByComments:
		return true
	}
	return false
}
