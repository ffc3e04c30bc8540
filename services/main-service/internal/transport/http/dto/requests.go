package dto

import "github.com/baechuer/explore-with-me/services/main-service/internal/domain"

type LocationDTO struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

type NewEventReq struct {
	Annotation        string       `json:"annotation" validate:"required,notblank,min=20,max=2000"`
	Category          int64        `json:"category" validate:"required,gt=0"`
	Description       string       `json:"description" validate:"required,notblank,min=20,max=7000"`
	EventDate         *DateTime    `json:"eventDate" validate:"required"`
	Location          *LocationDTO `json:"location" validate:"required"`
	Paid              *bool        `json:"paid"`
	ParticipantLimit  *int         `json:"participantLimit" validate:"omitempty,gte=0"`
	RequestModeration *bool        `json:"requestModeration"`
	Title             string       `json:"title" validate:"required,notblank,min=3,max=120"`
}

func (r NewEventReq) ToInput() domain.NewEventInput {
	return domain.NewEventInput{
		Annotation:        r.Annotation,
		Description:       r.Description,
		Title:             r.Title,
		EventDate:         r.EventDate.Time,
		CategoryID:        r.Category,
		Location:          domain.Location{Lat: r.Location.Lat, Lon: r.Location.Lon},
		Paid:              r.Paid,
		ParticipantLimit:  r.ParticipantLimit,
		RequestModeration: r.RequestModeration,
	}
}

// UpdateEventReq serves both the initiator and the admin; the allowed state
// actions differ and are checked by the domain.
type UpdateEventReq struct {
	Annotation        *string      `json:"annotation" validate:"omitempty,notblank,min=20,max=2000"`
	Category          *int64       `json:"category" validate:"omitempty,gt=0"`
	Description       *string      `json:"description" validate:"omitempty,notblank,min=20,max=7000"`
	EventDate         *DateTime    `json:"eventDate"`
	Location          *LocationDTO `json:"location"`
	Paid              *bool        `json:"paid"`
	ParticipantLimit  *int         `json:"participantLimit" validate:"omitempty,gte=0"`
	RequestModeration *bool        `json:"requestModeration"`
	StateAction       *string      `json:"stateAction" validate:"omitempty,oneof=SEND_TO_REVIEW CANCEL_REVIEW PUBLISH_EVENT REJECT_EVENT"`
	Title             *string      `json:"title" validate:"omitempty,notblank,min=3,max=120"`
}

func (r UpdateEventReq) ToPatch() domain.EventPatch {
	p := domain.EventPatch{
		Annotation:        r.Annotation,
		Description:       r.Description,
		Title:             r.Title,
		CategoryID:        r.Category,
		Paid:              r.Paid,
		ParticipantLimit:  r.ParticipantLimit,
		RequestModeration: r.RequestModeration,
	}
	if r.EventDate != nil {
		t := r.EventDate.Time
		p.EventDate = &t
	}
	if r.Location != nil {
		p.Location = &domain.Location{Lat: r.Location.Lat, Lon: r.Location.Lon}
	}
	if r.StateAction != nil {
		a := domain.StateAction(*r.StateAction)
		p.StateAction = &a
	}
	return p
}

type StatusUpdateReq struct {
	RequestIDs []int64 `json:"requestIds" validate:"required,min=1,dive,gt=0"`
	Status     string  `json:"status" validate:"required,oneof=CONFIRMED REJECTED"`
}

type NewUserReq struct {
	Name  string `json:"name" validate:"required,notblank,min=2,max=250"`
	Email string `json:"email" validate:"required,email,min=6,max=254"`
}

type CategoryReq struct {
	Name string `json:"name" validate:"required,notblank,max=50"`
}

type NewCompilationReq struct {
	Events []int64 `json:"events" validate:"omitempty,dive,gt=0"`
	Pinned *bool   `json:"pinned"`
	Title  string  `json:"title" validate:"required,notblank,max=50"`
}

type UpdateCompilationReq struct {
	Events *[]int64 `json:"events" validate:"omitempty,dive,gt=0"`
	Pinned *bool    `json:"pinned"`
	Title  *string  `json:"title" validate:"omitempty,notblank,max=50"`
}

func (r UpdateCompilationReq) ToPatch() domain.CompilationPatch {
	return domain.CompilationPatch{Title: r.Title, Pinned: r.Pinned, EventIDs: r.Events}
}

type CommentReq struct {
	Text string `json:"text" validate:"required,notblank,max=2000"`
}
