package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/explore-with-me/services/stats-service/internal/domain"
)

// HitStore persists hits and aggregates them.
type HitStore interface {
	Save(ctx context.Context, h *domain.EndpointHit) error
	Stats(ctx context.Context, q domain.StatsQuery) ([]domain.ViewStats, error)
}

type HitRequest struct {
	App       string `json:"app" validate:"required,max=255"`
	URI       string `json:"uri" validate:"required,max=512"`
	IP        string `json:"ip" validate:"required,ip"`
	Timestamp string `json:"timestamp" validate:"required"`
}

type HitsHandler struct {
	store    HitStore
	validate *validator.Validate
}

func NewHitsHandler(store HitStore) *HitsHandler {
	return &HitsHandler{store: store, validate: validator.New()}
}

// Hit handles POST /hit.
func (h *HitsHandler) Hit(w http.ResponseWriter, r *http.Request) {
	var req HitRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		fail(w, http.StatusBadRequest, "validation_error", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			fail(w, http.StatusBadRequest, "validation_error", strings.ToLower(ve[0].Field())+": failed "+ve[0].Tag())
			return
		}
		fail(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	ts, err := time.ParseInLocation(domain.TimeLayout, req.Timestamp, time.UTC)
	if err != nil {
		fail(w, http.StatusBadRequest, "validation_error", "timestamp: expected "+domain.TimeLayout)
		return
	}

	hit := &domain.EndpointHit{App: req.App, URI: req.URI, IP: req.IP, Timestamp: ts}
	if err := h.store.Save(r.Context(), hit); err != nil {
		zlog.Error().Err(err).Str("uri", req.URI).Msg("save hit failed")
		fail(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, nil)
}

// Stats handles GET /stats?start&end[&uris][&unique].
func (h *HitsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	q, err := parseStatsQuery(r)
	if err == nil {
		err = q.Validate()
	}
	if err != nil {
		fail(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	stats, err := h.store.Stats(r.Context(), q)
	if err != nil {
		zlog.Error().Err(err).Msg("stats query failed")
		fail(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func parseStatsQuery(r *http.Request) (domain.StatsQuery, error) {
	vals := r.URL.Query()
	var q domain.StatsQuery

	for _, f := range []struct {
		name string
		dst  *time.Time
	}{{"start", &q.Start}, {"end", &q.End}} {
		raw := strings.TrimSpace(vals.Get(f.name))
		if raw == "" {
			continue
		}
		t, err := time.ParseInLocation(domain.TimeLayout, raw, time.UTC)
		if err != nil {
			return q, &domain.ValidationError{Field: f.name, Msg: "expected " + domain.TimeLayout}
		}
		*f.dst = t
	}

	for _, raw := range vals["uris"] {
		for _, u := range strings.Split(raw, ",") {
			if u = strings.TrimSpace(u); u != "" {
				q.URIs = append(q.URIs, u)
			}
		}
	}

	if raw := vals.Get("unique"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return q, &domain.ValidationError{Field: "unique", Msg: "must be a boolean"}
		}
		q.Unique = b
	}
	return q, nil
}
