package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	requestUniqueConstraint = "uq_requests_event_requester"
)

// Repo implements every storage port of the main service on top of database/sql.
type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var (
	_ domain.UserRepo        = (*Repo)(nil)
	_ domain.CategoryRepo    = (*Repo)(nil)
	_ domain.EventRepo       = (*Repo)(nil)
	_ domain.RequestRepo     = (*Repo)(nil)
	_ domain.CommentRepo     = (*Repo)(nil)
	_ domain.CompilationRepo = (*Repo)(nil)
	_ domain.TxRunner        = (*Repo)(nil)
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// mapErr turns driver errors into domain errors. what names the missing entity.
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound(what + " not found")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			if pqErr.Constraint == requestUniqueConstraint {
				return domain.ErrRequestAlreadyExists("participation request already exists")
			}
			return domain.ErrConflict("integrity constraint has been violated: " + pqErr.Constraint)
		case pgForeignKeyViolation:
			return domain.ErrConflict("integrity constraint has been violated: " + pqErr.Constraint)
		}
	}
	return err
}

// mustAffect reports NotFound when an UPDATE or DELETE matched nothing.
func mustAffect(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound(what + " not found")
	}
	return nil
}

func scanEvent(s scanner, extra ...any) (*domain.Event, error) {
	var (
		e     domain.Event
		state string
	)
	dest := append(extra,
		&e.ID, &e.Annotation, &e.Description, &e.Title, &e.EventDate,
		&e.Category.ID, &e.Category.Name, &e.Initiator.ID, &e.Initiator.Name,
		&e.Location.Lat, &e.Location.Lon,
		&e.Paid, &e.ParticipantLimit, &e.RequestModeration, &state,
		&e.CreatedOn, &e.PublishedOn, &e.ConfirmedRequests, &e.Views, &e.Comments,
	)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	e.State = domain.EventState(state)
	e.EventDate = e.EventDate.UTC()
	e.CreatedOn = e.CreatedOn.UTC()
	if e.PublishedOn != nil {
		t := e.PublishedOn.UTC()
		e.PublishedOn = &t
	}
	return &e, nil
}

func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	defer rows.Close()
	out := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func scanRequest(s scanner) (*domain.ParticipationRequest, error) {
	var (
		r      domain.ParticipationRequest
		status string
	)
	if err := s.Scan(&r.ID, &r.EventID, &r.RequesterID, &r.Created, &status); err != nil {
		return nil, err
	}
	r.Status = domain.RequestStatus(status)
	r.Created = r.Created.UTC()
	return &r, nil
}

func scanRequests(rows *sql.Rows) ([]domain.ParticipationRequest, error) {
	defer rows.Close()
	out := []domain.ParticipationRequest{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}
