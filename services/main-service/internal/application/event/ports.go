package event

import (
	"context"
	"time"
)

// StatsClient talks to the stats service.
type StatsClient interface {
	RecordHit(ctx context.Context, uri, ip string, at time.Time) error
	// ViewCount returns the number of unique visitors of uri in [start, end].
	ViewCount(ctx context.Context, uri string, start, end time.Time) (int64, error)
}

// NoopStats is used when no stats service is configured.
type NoopStats struct{}

func (NoopStats) RecordHit(context.Context, string, string, time.Time) error { return nil }
func (NoopStats) ViewCount(context.Context, string, time.Time, time.Time) (int64, error) {
	return 0, nil
}
