package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}
	c := &domain.Category{Name: name}
	if err := s.categories.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}
	c, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	if err := s.categories.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory fails with Conflict while any event references the category.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.categories.DeleteCategory(ctx, id)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	if err := domain.NormalizePage(&offset, &limit); err != nil {
		return nil, err
	}
	return s.categories.ListCategories(ctx, offset, limit)
}

func categoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 1 || n > 50 {
		return "", domain.ErrValidationMeta("invalid category", map[string]string{
			"name": "length must be between 1 and 50",
		})
	}
	return name, nil
}
