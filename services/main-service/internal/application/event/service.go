package event

import (
	"context"
	"time"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
	"github.com/baechuer/explore-with-me/services/main-service/internal/logger"
)

type Service struct {
	events     domain.EventRepo
	users      domain.UserRepo
	categories domain.CategoryRepo
	tx         domain.TxRunner
	stats      StatsClient
	clock      domain.Clock
}

func New(
	events domain.EventRepo,
	users domain.UserRepo,
	categories domain.CategoryRepo,
	tx domain.TxRunner,
	stats StatsClient,
	clock domain.Clock,
) *Service {
	if stats == nil {
		stats = NoopStats{}
	}
	return &Service{
		events:     events,
		users:      users,
		categories: categories,
		tx:         tx,
		stats:      stats,
		clock:      clock,
	}
}

// recordHit is best-effort: a stats outage never fails the read.
func (s *Service) recordHit(ctx context.Context, uri, ip string, at time.Time) {
	if err := s.stats.RecordHit(ctx, uri, ip, at); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("uri", uri).Msg("stats hit not recorded")
	}
}
