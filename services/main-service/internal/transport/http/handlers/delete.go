package handlers

import (
	"context"
	"net/http"

	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/response"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/validate"
)

// delete runs fn for the {id} path param and answers 204.
func (h *CatalogHandler) delete(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) error) {
	id, err := validate.PathID(r, "id")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	if err := fn(r.Context(), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.NoContent(w)
}
