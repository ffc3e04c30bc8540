package handlers

import (
	"net/http"

	"github.com/baechuer/explore-with-me/services/main-service/internal/application/comment"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/dto"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/response"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/validate"
)

type CommentsHandler struct {
	svc *comment.Service
}

func NewCommentsHandler(svc *comment.Service) *CommentsHandler {
	return &CommentsHandler{svc: svc}
}

func (h *CommentsHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	offset, limit, err := page(r.URL.Query())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	cs, err := h.svc.ListByEvent(r.Context(), eventID, offset, limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCommentResps(cs))
}

func (h *CommentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCommentResp(c))
}

func (h *CommentsHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, eventID, err := userAndID(r, "eventId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var body dto.CommentReq
	if err := validate.Body(r, &body); err != nil {
		response.Err(w, r, err)
		return
	}
	c, err := h.svc.Add(r.Context(), userID, eventID, body.Text)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToCommentResp(c))
}

func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, commentID, err := userAndID(r, "commentId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var body dto.CommentReq
	if err := validate.Body(r, &body); err != nil {
		response.Err(w, r, err)
		return
	}
	c, err := h.svc.Update(r.Context(), userID, commentID, body.Text)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCommentResp(c))
}

func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, commentID, err := userAndID(r, "commentId")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), userID, commentID); err != nil {
		response.Err(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *CommentsHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	if err := h.svc.DeleteByAdmin(r.Context(), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.NoContent(w)
}
