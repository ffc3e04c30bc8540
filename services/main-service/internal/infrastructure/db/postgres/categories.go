package postgres

import (
	"context"
	"fmt"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (r *Repo) CreateCategory(ctx context.Context, c *domain.Category) error {
	err := r.db.QueryRowContext(ctx, insertCategorySQL, c.Name).Scan(&c.ID)
	return mapErr(err, "category")
}

func (r *Repo) UpdateCategory(ctx context.Context, c *domain.Category) error {
	res, err := r.db.ExecContext(ctx, updateCategorySQL, c.ID, c.Name)
	if err != nil {
		return mapErr(err, "category")
	}
	return mustAffect(res, fmt.Sprintf("category with id=%d", c.ID))
}

// DeleteCategory fails with Conflict while events still reference the category.
func (r *Repo) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteCategorySQL, id)
	if err != nil {
		return mapErr(err, "category")
	}
	return mustAffect(res, fmt.Sprintf("category with id=%d", id))
}

func (r *Repo) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx, getCategorySQL, id).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("category with id=%d", id))
	}
	return &c, nil
}

func (r *Repo) ListCategories(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
