package postgres

import (
	"context"
	"fmt"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (r *Repo) CreateEvent(ctx context.Context, e *domain.Event) error {
	err := r.db.QueryRowContext(ctx, insertEventSQL,
		e.Annotation, e.Description, e.Title, e.EventDate, e.Category.ID, e.Initiator.ID,
		e.Location.Lat, e.Location.Lon, e.Paid, e.ParticipantLimit, e.RequestModeration,
		string(e.State), e.CreatedOn, e.PublishedOn,
	).Scan(&e.ID)
	return mapErr(err, "event")
}

func (r *Repo) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return getEvent(ctx, r.db, id)
}

func getEvent(ctx context.Context, q querier, id int64) (*domain.Event, error) {
	e, err := scanEvent(q.QueryRowContext(ctx, getEventSQL, id))
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("event with id=%d", id))
	}
	return e, nil
}

func (r *Repo) UpdateEvent(ctx context.Context, e *domain.Event) error {
	return updateEvent(ctx, r.db, e)
}

func updateEvent(ctx context.Context, q querier, e *domain.Event) error {
	res, err := q.ExecContext(ctx, updateEventSQL,
		e.ID,
		e.Annotation, e.Description, e.Title, e.EventDate, e.Category.ID,
		e.Location.Lat, e.Location.Lon, e.Paid, e.ParticipantLimit, e.RequestModeration,
		string(e.State), e.PublishedOn,
	)
	if err != nil {
		return mapErr(err, "event")
	}
	return mustAffect(res, fmt.Sprintf("event with id=%d", e.ID))
}

func (r *Repo) SetViews(ctx context.Context, eventID, views int64) error {
	_, err := r.db.ExecContext(ctx, setViewsSQL, eventID, views)
	return err
}

func (r *Repo) ListEventsByInitiator(ctx context.Context, userID int64, offset, limit int) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, listEventsByInitiatorSQL, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *Repo) SearchEvents(ctx context.Context, q domain.EventQuery) ([]domain.Event, error) {
	query, args := buildSearch(q)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return scanEvents(rows)
}
