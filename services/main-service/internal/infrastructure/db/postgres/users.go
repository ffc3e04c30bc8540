package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (r *Repo) CreateUser(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRowContext(ctx, insertUserSQL, u.Name, u.Email).Scan(&u.ID)
	return mapErr(err, "user")
}

func (r *Repo) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, getUserSQL, id).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("user with id=%d", id))
	}
	return &u, nil
}

func (r *Repo) ListUsers(ctx context.Context, ids []int64, offset, limit int) ([]domain.User, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if len(ids) > 0 {
		rows, err = r.db.QueryContext(ctx, listUsersByIDSQL, pq.Array(ids), limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx, listUsersSQL, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// DeleteUser removes the user; owned events, requests and comments go with it.
func (r *Repo) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return mapErr(err, "user")
	}
	return mustAffect(res, fmt.Sprintf("user with id=%d", id))
}
