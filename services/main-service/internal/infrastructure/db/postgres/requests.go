package postgres

import (
	"context"
	"fmt"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (r *Repo) GetRequest(ctx context.Context, id int64) (*domain.ParticipationRequest, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx, getRequestSQL, id))
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("request with id=%d", id))
	}
	return req, nil
}

func (r *Repo) ListRequestsByRequester(ctx context.Context, userID int64) ([]domain.ParticipationRequest, error) {
	rows, err := r.db.QueryContext(ctx, listRequestsByRequesterSQL, userID)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

func (r *Repo) ListRequestsByEvent(ctx context.Context, eventID int64) ([]domain.ParticipationRequest, error) {
	rows, err := r.db.QueryContext(ctx, listRequestsByEventSQL, eventID)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}
