package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinLeadTime is how far ahead of now an initiator must schedule an event.
	MinLeadTime = 2 * time.Hour
	// MinAdminLeadTime applies when an admin moves the event date.
	MinAdminLeadTime = 1 * time.Hour
)

type Location struct {
	Lat float64
	Lon float64
}

type Event struct {
	ID          int64
	Annotation  string
	Description string
	Title       string
	EventDate   time.Time

	Category  Category
	Initiator UserShort
	Location  Location

	Paid              bool
	ParticipantLimit  int // 0 = unlimited
	RequestModeration bool

	State       EventState
	CreatedOn   time.Time
	PublishedOn *time.Time

	ConfirmedRequests int64
	Views             int64
	Comments          int64
}

type NewEventInput struct {
	Annotation  string
	Description string
	Title       string
	EventDate   time.Time
	CategoryID  int64
	Location    Location

	Paid              *bool
	ParticipantLimit  *int
	RequestModeration *bool
}

// EventPatch carries a partial update. Nil fields are left untouched.
type EventPatch struct {
	Annotation        *string
	Description       *string
	Title             *string
	EventDate         *time.Time
	CategoryID        *int64
	Location          *Location
	Paid              *bool
	ParticipantLimit  *int
	RequestModeration *bool
	StateAction       *StateAction
}

func NewEvent(in NewEventInput, initiator UserShort, category Category, now time.Time) (*Event, error) {
	if err := checkText("annotation", in.Annotation, 20, 2000); err != nil {
		return nil, err
	}
	if err := checkText("description", in.Description, 20, 7000); err != nil {
		return nil, err
	}
	if err := checkText("title", in.Title, 3, 120); err != nil {
		return nil, err
	}
	if err := checkEventDate(in.EventDate, now, MinLeadTime); err != nil {
		return nil, err
	}

	ev := &Event{
		Annotation:        strings.TrimSpace(in.Annotation),
		Description:       strings.TrimSpace(in.Description),
		Title:             strings.TrimSpace(in.Title),
		EventDate:         in.EventDate.UTC(),
		Category:          category,
		Initiator:         initiator,
		Location:          in.Location,
		Paid:              false,
		ParticipantLimit:  0,
		RequestModeration: true,
		State:             StatePending,
		CreatedOn:         now.UTC(),
	}
	if in.Paid != nil {
		ev.Paid = *in.Paid
	}
	if in.ParticipantLimit != nil {
		if *in.ParticipantLimit < 0 {
			return nil, ErrValidation("participantLimit must be >= 0")
		}
		ev.ParticipantLimit = *in.ParticipantLimit
	}
	if in.RequestModeration != nil {
		ev.RequestModeration = *in.RequestModeration
	}
	return ev, nil
}

// ApplyOwnerUpdate applies an initiator's patch. Published events are frozen.
func (e *Event) ApplyOwnerUpdate(p EventPatch, now time.Time) error {
	if e.State == StatePublished {
		return ErrEventNotModifiable("only pending or canceled events can be changed")
	}
	if p.StateAction != nil && !p.StateAction.OwnerAction() {
		return ErrValidationMeta("invalid state action", map[string]string{
			"stateAction": "must be one of: SEND_TO_REVIEW, CANCEL_REVIEW",
		})
	}
	if err := p.validate(now, MinLeadTime); err != nil {
		return err
	}

	e.applyFields(p)
	if p.StateAction != nil {
		switch *p.StateAction {
		case ActionCancelReview:
			e.State = StateCanceled
		case ActionSendToReview:
			e.State = StatePending
		}
	}
	return nil
}

// ApplyAdminUpdate applies a moderator's patch. Any field may change in any state;
// only the state transitions are restricted.
func (e *Event) ApplyAdminUpdate(p EventPatch, now time.Time) error {
	if p.StateAction != nil && !p.StateAction.AdminAction() {
		return ErrValidationMeta("invalid state action", map[string]string{
			"stateAction": "must be one of: PUBLISH_EVENT, REJECT_EVENT",
		})
	}
	if err := p.validate(now, MinAdminLeadTime); err != nil {
		return err
	}
	if p.StateAction != nil {
		switch *p.StateAction {
		case ActionPublishEvent:
			if e.State != StatePending {
				return ErrNotAuthorized("cannot publish the event because it's not in the right state: " + string(e.State))
			}
		case ActionRejectEvent:
			if e.State == StatePublished {
				return ErrNotAuthorized("cannot reject the event because it's already published")
			}
		}
	}

	e.applyFields(p)
	if p.StateAction != nil {
		switch *p.StateAction {
		case ActionPublishEvent:
			t := now.UTC()
			e.State = StatePublished
			e.PublishedOn = &t
		case ActionRejectEvent:
			e.State = StateCanceled
		}
	}
	return nil
}

// Available reports whether the event still has free confirmed slots.
func (e *Event) Available() bool {
	return e.ParticipantLimit == 0 || e.ConfirmedRequests < int64(e.ParticipantLimit)
}

// NeedsModeration reports whether new requests wait for the initiator's decision.
func (e *Event) NeedsModeration() bool {
	return e.ParticipantLimit > 0 && e.RequestModeration
}

func (p EventPatch) validate(now time.Time, lead time.Duration) error {
	if p.Annotation != nil {
		if err := checkText("annotation", *p.Annotation, 20, 2000); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := checkText("description", *p.Description, 20, 7000); err != nil {
			return err
		}
	}
	if p.Title != nil {
		if err := checkText("title", *p.Title, 3, 120); err != nil {
			return err
		}
	}
	if p.EventDate != nil {
		if err := checkEventDate(*p.EventDate, now, lead); err != nil {
			return err
		}
	}
	if p.ParticipantLimit != nil && *p.ParticipantLimit < 0 {
		return ErrValidation("participantLimit must be >= 0")
	}
	return nil
}

func (e *Event) applyFields(p EventPatch) {
	if p.Annotation != nil {
		e.Annotation = strings.TrimSpace(*p.Annotation)
	}
	if p.Description != nil {
		e.Description = strings.TrimSpace(*p.Description)
	}
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.EventDate != nil {
		e.EventDate = p.EventDate.UTC()
	}
	if p.CategoryID != nil {
		e.Category = Category{ID: *p.CategoryID}
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Paid != nil {
		e.Paid = *p.Paid
	}
	if p.ParticipantLimit != nil {
		e.ParticipantLimit = *p.ParticipantLimit
	}
	if p.RequestModeration != nil {
		e.RequestModeration = *p.RequestModeration
	}
}

func checkText(field, v string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	if n < min || n > max {
		return ErrValidationMeta("invalid field", map[string]string{
			field: lengthMsg(min, max),
		})
	}
	return nil
}

func checkEventDate(at, now time.Time, lead time.Duration) error {
	if at.Before(now.Add(lead)) {
		return ErrValidationMeta("invalid event date", map[string]string{
			"eventDate": fmt.Sprintf("must be at least %d hour(s) from now", int(lead.Hours())),
		})
	}
	return nil
}

func lengthMsg(min, max int) string {
	return fmt.Sprintf("length must be between %d and %d", min, max)
}
