package handlers

import (
	"net/http"

	"github.com/baechuer/explore-with-me/services/main-service/internal/application/catalog"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/dto"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/response"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/validate"
)

// CatalogHandler serves users, categories and compilations.
type CatalogHandler struct {
	svc *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Users (admin)

func (h *CatalogHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body dto.NewUserReq
	if err := validate.Body(r, &body); err != nil {
		response.Err(w, r, err)
		return
	}
	u, err := h.svc.CreateUser(r.Context(), body.Name, body.Email)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToUserResp(u))
}

func (h *CatalogHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids, err := queryInt64s(q, "ids")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	offset, limit, err := page(q)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	users, err := h.svc.ListUsers(r.Context(), ids, offset, limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToUserResps(users))
}

func (h *CatalogHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteUser)
}

// Categories

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body dto.CategoryReq
	if err := validate.Body(r, &body); err != nil {
		response.Err(w, r, err)
		return
	}
	c, err := h.svc.CreateCategory(r.Context(), body.Name)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToCategoryResp(c))
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var body dto.CategoryReq
	if err := validate.Body(r, &body); err != nil {
		response.Err(w, r, err)
		return
	}
	c, err := h.svc.UpdateCategory(r.Context(), id, body.Name)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCategoryResp(c))
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteCategory)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	c, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCategoryResp(c))
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := page(r.URL.Query())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	cs, err := h.svc.ListCategories(r.Context(), offset, limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCategoryResps(cs))
}

// Compilations

func (h *CatalogHandler) CreateCompilation(w http.ResponseWriter, r *http.Request) {
	var body dto.NewCompilationReq
	if err := validate.Body(r, &body); err != nil {
		response.Err(w, r, err)
		return
	}
	pinned := body.Pinned != nil && *body.Pinned
	c, err := h.svc.CreateCompilation(r.Context(), body.Title, pinned, body.Events)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToCompilationResp(c))
}

func (h *CatalogHandler) UpdateCompilation(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var body dto.UpdateCompilationReq
	if err := validate.Body(r, &body); err != nil {
		response.Err(w, r, err)
		return
	}
	c, err := h.svc.UpdateCompilation(r.Context(), id, body.ToPatch())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCompilationResp(c))
}

func (h *CatalogHandler) DeleteCompilation(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteCompilation)
}

func (h *CatalogHandler) GetCompilation(w http.ResponseWriter, r *http.Request) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	c, err := h.svc.GetCompilation(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCompilationResp(c))
}

func (h *CatalogHandler) ListCompilations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pinned, err := queryBool(q, "pinned")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	offset, limit, err := page(q)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	cs, err := h.svc.ListCompilations(r.Context(), pinned, offset, limit)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCompilationResps(cs))
}
