package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
	reqctx "github.com/baechuer/explore-with-me/services/main-service/internal/pkg/context"
)

func TestErr(t *testing.T) {
	t.Run("maps_domain_error_to_correct_status", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{"not_found", domain.ErrNotFound("event missing"), http.StatusNotFound, "not_found"},
			{"validation", domain.ErrValidation("invalid title"), http.StatusBadRequest, "validation_error"},
			{"date_range", domain.ErrIncorrectDateRange("bad range"), http.StatusBadRequest, "incorrect_date_range"},
			{"not_authorized", domain.ErrNotAuthorized("limit reached"), http.StatusConflict, "not_authorized"},
			{"duplicate_request", domain.ErrRequestAlreadyExists("dup"), http.StatusConflict, "request_already_exists"},
			{"not_modifiable", domain.ErrEventNotModifiable("published"), http.StatusConflict, "event_not_modifiable"},
			{"conflict", domain.ErrConflict("email taken"), http.StatusConflict, "conflict"},
			{"generic_error", errors.New("db crash"), http.StatusInternalServerError, "internal_error"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rr := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
				Err(rr, req, tt.err)

				assert.Equal(t, tt.wantStatus, rr.Code)
				var body ErrorBody
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Error.Code)
			})
		}
	})

	t.Run("hides_internal_details", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		Err(rr, req, errors.New("pq: password authentication failed"))

		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("carries_meta_and_request_id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(reqctx.WithRequestID(req.Context(), "rid-1"))
		Err(rr, req, domain.ErrValidationMeta("invalid field", map[string]string{"title": "required"}))

		var body ErrorBody
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "rid-1", body.Error.RequestID)
		assert.Equal(t, map[string]string{"title": "required"}, body.Error.Meta)
	})
}

func TestData(t *testing.T) {
	t.Run("wraps_payload_in_data_envelope", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Data(rr, http.StatusCreated, map[string]int64{"id": 123})

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"data":{"id":123}}`, rr.Body.String())
	})

	t.Run("empty_list_stays_an_array", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Data(rr, http.StatusOK, []int{})
		assert.JSONEq(t, `{"data":[]}`, rr.Body.String())
	})
}

func TestNoContent(t *testing.T) {
	rr := httptest.NewRecorder()
	NoContent(rr)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}
