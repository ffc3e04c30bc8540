package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (r *Repo) WithTx(ctx context.Context, fn func(tx domain.TxRepo) error) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return fn(&txRepo{tx: tx})
	})
}

func (r *Repo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// txRepo runs inside a single transaction. Row locks taken by the *ForUpdate
// reads are released on commit or rollback.
type txRepo struct {
	tx *sql.Tx
}

func (t *txRepo) GetEventForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	var locked int64
	if err := t.tx.QueryRowContext(ctx, lockEventSQL, id).Scan(&locked); err != nil {
		return nil, mapErr(err, fmt.Sprintf("event with id=%d", id))
	}
	return getEvent(ctx, t.tx, id)
}

func (t *txRepo) UpdateEvent(ctx context.Context, e *domain.Event) error {
	return updateEvent(ctx, t.tx, e)
}

func (t *txRepo) FindRequestForUpdate(ctx context.Context, eventID, requesterID int64) (*domain.ParticipationRequest, error) {
	req, err := scanRequest(t.tx.QueryRowContext(ctx, findRequestForUpdateSQL, eventID, requesterID))
	if err != nil {
		return nil, mapErr(err, "request")
	}
	return req, nil
}

func (t *txRepo) GetRequestForUpdate(ctx context.Context, id int64) (*domain.ParticipationRequest, error) {
	req, err := scanRequest(t.tx.QueryRowContext(ctx, getRequestForUpdateSQL, id))
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("request with id=%d", id))
	}
	return req, nil
}

// GetRequestsForUpdate locks in id order. Missing ids are simply absent from the result.
func (t *txRepo) GetRequestsForUpdate(ctx context.Context, ids []int64) ([]domain.ParticipationRequest, error) {
	rows, err := t.tx.QueryContext(ctx, getRequestsForUpdateSQL, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

func (t *txRepo) CreateRequest(ctx context.Context, r *domain.ParticipationRequest) error {
	err := t.tx.QueryRowContext(ctx, insertRequestSQL,
		r.EventID, r.RequesterID, r.Created, string(r.Status),
	).Scan(&r.ID)
	return mapErr(err, "request")
}

func (t *txRepo) SaveRequest(ctx context.Context, r *domain.ParticipationRequest) error {
	res, err := t.tx.ExecContext(ctx, saveRequestSQL, r.ID, string(r.Status), r.Created)
	if err != nil {
		return err
	}
	return mustAffect(res, fmt.Sprintf("request with id=%d", r.ID))
}

func (t *txRepo) SetRequestStatus(ctx context.Context, ids []int64, status domain.RequestStatus) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := t.tx.ExecContext(ctx, setRequestStatusSQL, pq.Array(ids), string(status))
	return err
}

func (t *txRepo) AddConfirmed(ctx context.Context, eventID int64, delta int64) error {
	if delta == 0 {
		return nil
	}
	res, err := t.tx.ExecContext(ctx, addConfirmedSQL, eventID, delta)
	if err != nil {
		return mapErr(err, "event")
	}
	return mustAffect(res, fmt.Sprintf("event with id=%d", eventID))
}
