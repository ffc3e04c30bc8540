//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live stats-service; STATS_BASE_URL defaults to localhost:9090.
func TestStatsEndpoints(t *testing.T) {
	baseURL := os.Getenv("STATS_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9090"
	}

	resp, err := http.Get(baseURL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	uri := "/events/it-" + time.Now().Format("150405.000000")
	ts := time.Now().UTC().Format("2006-01-02 15:04:05")
	for _, ip := range []string{"10.1.0.1", "10.1.0.1", "10.1.0.2"} {
		body := `{"app":"it","uri":"` + uri + `","ip":"` + ip + `","timestamp":"` + ts + `"}`
		resp, err := http.Post(baseURL+"/hit", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	q := url.Values{}
	q.Set("start", time.Now().UTC().Add(-time.Hour).Format("2006-01-02 15:04:05"))
	q.Set("end", time.Now().UTC().Add(time.Hour).Format("2006-01-02 15:04:05"))
	q.Add("uris", uri)

	for unique, want := range map[string]int64{"false": 3, "true": 2} {
		q.Set("unique", unique)
		resp, err := http.Get(baseURL + "/stats?" + q.Encode())
		require.NoError(t, err)

		var stats []struct {
			URI  string `json:"uri"`
			Hits int64  `json:"hits"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		resp.Body.Close()
		require.Len(t, stats, 1)
		assert.Equal(t, want, stats[0].Hits, "unique=%s", unique)
	}

	q.Set("start", "2030-01-02 00:00:00")
	q.Set("end", "2030-01-01 00:00:00")
	resp, err = http.Get(baseURL + "/stats?" + q.Encode())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
