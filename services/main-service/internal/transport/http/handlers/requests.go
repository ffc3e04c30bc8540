package handlers

import (
	"net/http"

	"github.com/baechuer/explore-with-me/services/main-service/internal/application/participation"
	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/dto"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/response"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/validate"
)

type RequestsHandler struct {
	svc *participation.Service
}

func NewRequestsHandler(svc *participation.Service) *RequestsHandler {
	return &RequestsHandler{svc: svc}
}

// Add handles POST /users/{userId}/requests?eventId=
func (h *RequestsHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := validate.PathID(r, "userId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	eventID, err := requiredInt64(r.URL.Query(), "eventId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	req, err := h.svc.Add(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToRequestResp(req))
}

func (h *RequestsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := validate.PathID(r, "userId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	reqs, err := h.svc.ListMine(r.Context(), userID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToRequestResps(reqs))
}

func (h *RequestsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, requestID, err := userAndID(r, "requestId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	req, err := h.svc.Cancel(r.Context(), userID, requestID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToRequestResp(req))
}

// ListForEvent is the initiator's view of the requests to one of their events.
func (h *RequestsHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	userID, eventID, err := userAndID(r, "eventId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	reqs, err := h.svc.ListForEvent(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToRequestResps(reqs))
}

func (h *RequestsHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	userID, eventID, err := userAndID(r, "eventId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var body dto.StatusUpdateReq
	if err := validate.Body(r, &body); err != nil {
		response.Err(w, r, err)
		return
	}
	res, err := h.svc.ChangeStatus(r.Context(), userID, eventID, body.RequestIDs, domain.RequestStatus(body.Status))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToStatusUpdateResp(res))
}
