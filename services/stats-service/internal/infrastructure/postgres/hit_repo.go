package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baechuer/explore-with-me/services/stats-service/internal/domain"
)

// dbtx is the part of pgxpool.Pool the repo needs.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type HitRepo struct {
	db dbtx
}

func NewHitRepo(pool *pgxpool.Pool) *HitRepo {
	return &HitRepo{db: pool}
}

const (
	insertHitSQL = `
		INSERT INTO hits (app, uri, ip, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	statsSQL = `
		SELECT app, uri, %s AS hits
		FROM hits
		WHERE created BETWEEN $1 AND $2
		  AND (cardinality($3::text[]) = 0 OR uri = ANY($3))
		GROUP BY app, uri
		ORDER BY hits DESC, app, uri`
)

func (r *HitRepo) Save(ctx context.Context, h *domain.EndpointHit) error {
	if err := r.db.QueryRow(ctx, insertHitSQL, h.App, h.URI, h.IP, h.Timestamp.UTC()).Scan(&h.ID); err != nil {
		return fmt.Errorf("insert hit: %w", err)
	}
	return nil
}

// Stats groups hits in [Start, End] by (app, uri), busiest first.
func (r *HitRepo) Stats(ctx context.Context, q domain.StatsQuery) ([]domain.ViewStats, error) {
	count := "COUNT(*)"
	if q.Unique {
		count = "COUNT(DISTINCT ip)"
	}
	uris := q.URIs
	if uris == nil {
		uris = []string{}
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(statsSQL, count), q.Start.UTC(), q.End.UTC(), uris)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ViewStats, error) {
		var v domain.ViewStats
		err := row.Scan(&v.App, &v.URI, &v.Hits)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan stats: %w", err)
	}
	if out == nil {
		out = []domain.ViewStats{}
	}
	return out, nil
}

// Ping reports whether the database answers.
func (r *HitRepo) Ping(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "SELECT 1")
	return err
}
