package postgres

import (
	"context"
	"fmt"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func scanComment(s scanner) (*domain.Comment, error) {
	var c domain.Comment
	if err := s.Scan(&c.ID, &c.Text, &c.Author.ID, &c.Author.Name, &c.EventID, &c.PostedOn, &c.UpdatedOn); err != nil {
		return nil, err
	}
	c.PostedOn = c.PostedOn.UTC()
	if c.UpdatedOn != nil {
		t := c.UpdatedOn.UTC()
		c.UpdatedOn = &t
	}
	return &c, nil
}

func (r *Repo) CreateComment(ctx context.Context, c *domain.Comment) error {
	err := r.db.QueryRowContext(ctx, insertCommentSQL, c.Text, c.Author.ID, c.EventID, c.PostedOn).Scan(&c.ID)
	return mapErr(err, "comment")
}

func (r *Repo) GetComment(ctx context.Context, id int64) (*domain.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, getCommentSQL, id))
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("comment with id=%d", id))
	}
	return c, nil
}

func (r *Repo) UpdateComment(ctx context.Context, c *domain.Comment) error {
	res, err := r.db.ExecContext(ctx, updateCommentSQL, c.ID, c.Text, c.UpdatedOn)
	if err != nil {
		return err
	}
	return mustAffect(res, fmt.Sprintf("comment with id=%d", c.ID))
}

func (r *Repo) DeleteComment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteCommentSQL, id)
	if err != nil {
		return err
	}
	return mustAffect(res, fmt.Sprintf("comment with id=%d", id))
}

func (r *Repo) ListCommentsByEvent(ctx context.Context, eventID int64, offset, limit int) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, listCommentsByEventSQL, eventID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
