package domain

import (
	"errors"
	"fmt"
	"time"
)

// TimeLayout is the wire format of every timestamp the service accepts or emits.
const TimeLayout = "2006-01-02 15:04:05"

// EndpointHit is one recorded request to a service endpoint.
type EndpointHit struct {
	ID        int64
	App       string
	URI       string
	IP        string
	Timestamp time.Time
}

// ViewStats is the hit count of one (app, uri) pair.
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

type StatsQuery struct {
	Start  time.Time
	End    time.Time
	URIs   []string // empty means all
	Unique bool     // count distinct ips
}

var ErrInvalidRange = errors.New("start must not be after end")

// ValidationError is a client mistake in a request parameter.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (q StatsQuery) Validate() error {
	if q.Start.IsZero() {
		return &ValidationError{Field: "start", Msg: "is required"}
	}
	if q.End.IsZero() {
		return &ValidationError{Field: "end", Msg: "is required"}
	}
	if q.Start.After(q.End) {
		return ErrInvalidRange
	}
	return nil
}
