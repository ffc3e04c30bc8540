package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (r *Repo) CreateCompilation(ctx context.Context, c *domain.Compilation, eventIDs []int64) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, insertCompilationSQL, c.Title, c.Pinned).Scan(&c.ID); err != nil {
			return mapErr(err, "compilation")
		}
		return linkEvents(ctx, tx, c.ID, eventIDs)
	})
}

// UpdateCompilation writes title and pinned. A non-nil eventIDs replaces the event set.
func (r *Repo) UpdateCompilation(ctx context.Context, c *domain.Compilation, eventIDs *[]int64) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateCompilationSQL, c.ID, c.Title, c.Pinned)
		if err != nil {
			return mapErr(err, "compilation")
		}
		if err := mustAffect(res, fmt.Sprintf("compilation with id=%d", c.ID)); err != nil {
			return err
		}
		if eventIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, unlinkCompilationEventsSQL, c.ID); err != nil {
			return err
		}
		return linkEvents(ctx, tx, c.ID, *eventIDs)
	})
}

func linkEvents(ctx context.Context, tx *sql.Tx, compilationID int64, eventIDs []int64) error {
	if len(eventIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, linkCompilationEventsSQL, compilationID, pq.Array(eventIDs))
	return mapErr(err, "event")
}

func (r *Repo) DeleteCompilation(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteCompilationSQL, id)
	if err != nil {
		return err
	}
	return mustAffect(res, fmt.Sprintf("compilation with id=%d", id))
}

func (r *Repo) GetCompilation(ctx context.Context, id int64) (*domain.Compilation, error) {
	var c domain.Compilation
	err := r.db.QueryRowContext(ctx, getCompilationSQL, id).Scan(&c.ID, &c.Title, &c.Pinned)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("compilation with id=%d", id))
	}
	out := []domain.Compilation{c}
	if err := r.attachEvents(ctx, out); err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (r *Repo) ListCompilations(ctx context.Context, pinned *bool, offset, limit int) ([]domain.Compilation, error) {
	rows, err := r.db.QueryContext(ctx, listCompilationsSQL, pinned, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Compilation{}
	for rows.Next() {
		var c domain.Compilation
		if err := rows.Scan(&c.ID, &c.Title, &c.Pinned); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachEvents(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachEvents loads the events of all given compilations with one query.
func (r *Repo) attachEvents(ctx context.Context, comps []domain.Compilation) error {
	if len(comps) == 0 {
		return nil
	}
	ids := make([]int64, len(comps))
	idx := make(map[int64]int, len(comps))
	for i, c := range comps {
		ids[i] = c.ID
		idx[c.ID] = i
		comps[i].Events = []domain.Event{}
	}

	rows, err := r.db.QueryContext(ctx, compilationEventsSQL, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var compID int64
		e, err := scanEvent(rows, &compID)
		if err != nil {
			return err
		}
		i := idx[compID]
		comps[i].Events = append(comps[i].Events, *e)
	}
	return rows.Err()
}
