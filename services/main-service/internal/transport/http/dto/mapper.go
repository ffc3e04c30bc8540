package dto

import "github.com/baechuer/explore-with-me/services/main-service/internal/domain"

func ToUserResp(u *domain.User) UserResp {
	return UserResp{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ToUserResps(us []domain.User) []UserResp {
	out := make([]UserResp, 0, len(us))
	for i := range us {
		out = append(out, ToUserResp(&us[i]))
	}
	return out
}

func ToCategoryResp(c *domain.Category) CategoryResp {
	return CategoryResp{ID: c.ID, Name: c.Name}
}

func ToCategoryResps(cs []domain.Category) []CategoryResp {
	out := make([]CategoryResp, 0, len(cs))
	for i := range cs {
		out = append(out, ToCategoryResp(&cs[i]))
	}
	return out
}

func toUserShort(u domain.UserShort) UserShortResp {
	return UserShortResp{ID: u.ID, Name: u.Name}
}

func ToEventFullResp(e *domain.Event) EventFullResp {
	return EventFullResp{
		ID:                e.ID,
		Annotation:        e.Annotation,
		Category:          ToCategoryResp(&e.Category),
		ConfirmedRequests: e.ConfirmedRequests,
		CreatedOn:         NewDateTime(e.CreatedOn),
		Description:       e.Description,
		EventDate:         NewDateTime(e.EventDate),
		Initiator:         toUserShort(e.Initiator),
		Location:          LocationDTO{Lat: e.Location.Lat, Lon: e.Location.Lon},
		Paid:              e.Paid,
		ParticipantLimit:  e.ParticipantLimit,
		PublishedOn:       optDateTime(e.PublishedOn),
		RequestModeration: e.RequestModeration,
		State:             string(e.State),
		Title:             e.Title,
		Views:             e.Views,
		Comments:          e.Comments,
	}
}

func ToEventFullResps(es []domain.Event) []EventFullResp {
	out := make([]EventFullResp, 0, len(es))
	for i := range es {
		out = append(out, ToEventFullResp(&es[i]))
	}
	return out
}

func ToEventShortResp(e *domain.Event) EventShortResp {
	return EventShortResp{
		ID:                e.ID,
		Annotation:        e.Annotation,
		Category:          ToCategoryResp(&e.Category),
		ConfirmedRequests: e.ConfirmedRequests,
		EventDate:         NewDateTime(e.EventDate),
		Initiator:         toUserShort(e.Initiator),
		Paid:              e.Paid,
		Title:             e.Title,
		Views:             e.Views,
		Comments:          e.Comments,
	}
}

func ToEventShortResps(es []domain.Event) []EventShortResp {
	out := make([]EventShortResp, 0, len(es))
	for i := range es {
		out = append(out, ToEventShortResp(&es[i]))
	}
	return out
}

func ToRequestResp(r *domain.ParticipationRequest) RequestResp {
	return RequestResp{
		ID:        r.ID,
		Event:     r.EventID,
		Requester: r.RequesterID,
		Created:   NewDateTime(r.Created),
		Status:    string(r.Status),
	}
}

func ToRequestResps(rs []domain.ParticipationRequest) []RequestResp {
	out := make([]RequestResp, 0, len(rs))
	for i := range rs {
		out = append(out, ToRequestResp(&rs[i]))
	}
	return out
}

func ToStatusUpdateResp(res domain.StatusUpdateResult) StatusUpdateResp {
	return StatusUpdateResp{
		ConfirmedRequests: ToRequestResps(res.Confirmed),
		RejectedRequests:  ToRequestResps(res.Rejected),
	}
}

func ToCompilationResp(c *domain.Compilation) CompilationResp {
	return CompilationResp{
		ID:     c.ID,
		Pinned: c.Pinned,
		Title:  c.Title,
		Events: ToEventShortResps(c.Events),
	}
}

func ToCompilationResps(cs []domain.Compilation) []CompilationResp {
	out := make([]CompilationResp, 0, len(cs))
	for i := range cs {
		out = append(out, ToCompilationResp(&cs[i]))
	}
	return out
}

func ToCommentResp(c *domain.Comment) CommentResp {
	return CommentResp{
		ID:        c.ID,
		Text:      c.Text,
		Author:    toUserShort(c.Author),
		EventID:   c.EventID,
		PostedOn:  NewDateTime(c.PostedOn),
		UpdatedOn: optDateTime(c.UpdatedOn),
	}
}

func ToCommentResps(cs []domain.Comment) []CommentResp {
	out := make([]CommentResp, 0, len(cs))
	for i := range cs {
		out = append(out, ToCommentResp(&cs[i]))
	}
	return out
}
