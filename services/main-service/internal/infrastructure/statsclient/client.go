package statsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/baechuer/explore-with-me/services/main-service/internal/logger"
	"github.com/baechuer/explore-with-me/services/main-service/internal/metrics"
	reqctx "github.com/baechuer/explore-with-me/services/main-service/internal/pkg/context"
)

// TimeLayout is the date format of the stats service API.
const TimeLayout = "2006-01-02 15:04:05"

var (
	ErrTimeout     = errors.New("stats_timeout")
	ErrUnavailable = errors.New("stats_unavailable")
)

// StatusError is a non-2xx answer from the stats service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stats service answered %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL string
	app     string
	timeout time.Duration
	http    *http.Client
}

// New builds a client for the stats service at baseURL. Every call is bounded by timeout.
func New(baseURL, app string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		app:     app,
		timeout: timeout,
		// per-call deadlines come from the context
		http: &http.Client{Timeout: 0},
	}
}

type hitBody struct {
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

type viewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

func (c *Client) RecordHit(ctx context.Context, uri, ip string, at time.Time) error {
	body, err := json.Marshal(hitBody{
		App:       c.app,
		URI:       uri,
		IP:        ip,
		Timestamp: at.UTC().Format(TimeLayout),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(ctx, req)
	if err != nil {
		metrics.StatsCallErrors.WithLabelValues("hit").Inc()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		metrics.StatsCallErrors.WithLabelValues("hit").Inc()
		return statusError(resp)
	}
	return nil
}

// ViewCount returns the number of distinct IPs that hit uri in [start, end].
func (c *Client) ViewCount(ctx context.Context, uri string, start, end time.Time) (int64, error) {
	q := url.Values{}
	q.Set("start", start.UTC().Format(TimeLayout))
	q.Set("end", end.UTC().Format(TimeLayout))
	q.Add("uris", uri)
	q.Set("unique", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		metrics.StatsCallErrors.WithLabelValues("views").Inc()
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.StatsCallErrors.WithLabelValues("views").Inc()
		return 0, statusError(resp)
	}

	var stats []viewStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		metrics.StatsCallErrors.WithLabelValues("views").Inc()
		return 0, fmt.Errorf("decode stats: %w", err)
	}

	var hits int64
	for _, s := range stats {
		if s.URI == uri {
			hits += s.Hits
		}
	}
	return hits, nil
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if id := reqctx.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	req = req.WithContext(ctx)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		logger.Ctx(ctx).Warn().
			Err(err).
			Str("method", req.Method).
			Str("url", req.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("stats_request_failed")
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrTimeout
		}
		return nil, ErrUnavailable
	}

	logger.Ctx(ctx).Debug().
		Str("method", req.Method).
		Str("url", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("stats_request_completed")

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func statusError(resp *http.Response) error {
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(io.LimitReader(resp.Body, 512))
	return &StatusError{StatusCode: resp.StatusCode, Body: buf.String()}
}
