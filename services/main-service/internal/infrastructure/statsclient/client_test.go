package statsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reqctx "github.com/baechuer/explore-with-me/services/main-service/internal/pkg/context"
)

func TestClient_RecordHit(t *testing.T) {
	var got hitBody
	var gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hit", r.URL.Path)
		gotRequestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, "ewm-main-service", time.Second)
	ctx := reqctx.WithRequestID(context.Background(), "req-1")
	at := time.Date(2030, 3, 4, 5, 6, 7, 0, time.UTC)

	require.NoError(t, c.RecordHit(ctx, "/events/1", "10.0.0.1", at))
	assert.Equal(t, hitBody{App: "ewm-main-service", URI: "/events/1", IP: "10.0.0.1", Timestamp: "2030-03-04 05:06:07"}, got)
	assert.Equal(t, "req-1", gotRequestID)
}

func TestClient_RecordHit_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New(srv.URL, "app", time.Second).RecordHit(context.Background(), "/events", "1.1.1.1", time.Now())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestClient_ViewCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1970-01-01 00:00:00", q.Get("start"))
		assert.Equal(t, "2030-01-01 00:00:00", q.Get("end"))
		assert.Equal(t, []string{"/events/7"}, q["uris"])
		assert.Equal(t, "true", q.Get("unique"))

		_ = json.NewEncoder(w).Encode([]viewStats{
			{App: "ewm-main-service", URI: "/events/7", Hits: 3},
			{App: "other-app", URI: "/events/7", Hits: 2},
			{App: "ewm-main-service", URI: "/events/70", Hits: 9},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "ewm-main-service", time.Second)
	n, err := c.ViewCount(context.Background(), "/events/7",
		time.Unix(0, 0), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, "app", 50*time.Millisecond)
	_, err := c.ViewCount(context.Background(), "/events/1", time.Unix(0, 0), time.Now())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url, "app", time.Second).RecordHit(context.Background(), "/events", "1.1.1.1", time.Now())
	assert.ErrorIs(t, err, ErrUnavailable)
}
