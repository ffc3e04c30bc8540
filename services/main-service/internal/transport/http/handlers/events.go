package handlers

import (
	"net/http"
	"strings"

	"github.com/baechuer/explore-with-me/services/main-service/internal/application/event"
	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/dto"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/middleware"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/response"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/validate"
)

type EventsHandler struct {
	svc *event.Service
}

func NewEventsHandler(svc *event.Service) *EventsHandler {
	return &EventsHandler{svc: svc}
}

// Public

func (h *EventsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := publicQuery(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	events, err := h.svc.SearchPublic(r.Context(), q, middleware.ClientIP(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventShortResps(events))
}

func (h *EventsHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	ev, err := h.svc.GetPublic(r.Context(), id, middleware.ClientIP(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventFullResp(ev))
}

// Private (initiator)

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := validate.PathID(r, "userId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var req dto.NewEventReq
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	ev, err := h.svc.Create(r.Context(), userID, req.ToInput())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToEventFullResp(ev))
}

func (h *EventsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := validate.PathID(r, "userId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	offset, limit, err := page(r.URL.Query())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	events, err := h.svc.ListByOwner(r.Context(), userID, offset, limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventShortResps(events))
}

func (h *EventsHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, eventID, err := userAndID(r, "eventId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	ev, err := h.svc.GetByOwner(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventFullResp(ev))
}

func (h *EventsHandler) UpdateMine(w http.ResponseWriter, r *http.Request) {
	userID, eventID, err := userAndID(r, "eventId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var req dto.UpdateEventReq
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	ev, err := h.svc.UpdateByOwner(r.Context(), userID, eventID, req.ToPatch())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventFullResp(ev))
}

// Admin

func (h *EventsHandler) AdminSearch(w http.ResponseWriter, r *http.Request) {
	q, err := adminQuery(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	events, err := h.svc.SearchAdmin(r.Context(), q)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventFullResps(events))
}

func (h *EventsHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var req dto.UpdateEventReq
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	ev, err := h.svc.UpdateByAdmin(r.Context(), id, req.ToPatch())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToEventFullResp(ev))
}

func userAndID(r *http.Request, name string) (int64, int64, error) {
	userID, err := validate.PathID(r, "userId")
	if err != nil {
		return 0, 0, err
	}
	id, err := validate.PathID(r, name)
	if err != nil {
		return 0, 0, err
	}
	return userID, id, nil
}

func publicQuery(r *http.Request) (domain.EventQuery, error) {
	vals := r.URL.Query()
	q := domain.EventQuery{
		Text: strings.TrimSpace(vals.Get("text")),
		Sort: domain.EventSort(strings.ToUpper(strings.TrimSpace(vals.Get("sort")))),
	}
	var err error
	if q.Categories, err = queryInt64s(vals, "categories"); err != nil {
		return q, err
	}
	if q.Paid, err = queryBool(vals, "paid"); err != nil {
		return q, err
	}
	if q.RangeStart, err = queryTime(vals, "rangeStart"); err != nil {
		return q, err
	}
	if q.RangeEnd, err = queryTime(vals, "rangeEnd"); err != nil {
		return q, err
	}
	avail, err := queryBool(vals, "onlyAvailable")
	if err != nil {
		return q, err
	}
	q.OnlyAvailable = avail != nil && *avail
	q.Offset, q.Limit, err = page(vals)
	return q, err
}

func adminQuery(r *http.Request) (domain.EventQuery, error) {
	vals := r.URL.Query()
	var (
		q   domain.EventQuery
		err error
	)
	if q.Initiators, err = queryInt64s(vals, "users"); err != nil {
		return q, err
	}
	for _, s := range queryStrings(vals, "states") {
		q.States = append(q.States, domain.EventState(strings.ToUpper(s)))
	}
	if q.Categories, err = queryInt64s(vals, "categories"); err != nil {
		return q, err
	}
	if q.RangeStart, err = queryTime(vals, "rangeStart"); err != nil {
		return q, err
	}
	if q.RangeEnd, err = queryTime(vals, "rangeEnd"); err != nil {
		return q, err
	}
	q.Offset, q.Limit, err = page(vals)
	return q, err
}
