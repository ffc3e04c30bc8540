package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (s *Service) CreateCompilation(ctx context.Context, title string, pinned bool, eventIDs []int64) (*domain.Compilation, error) {
	title, err := compilationTitle(title)
	if err != nil {
		return nil, err
	}
	if err := s.checkEvents(ctx, eventIDs); err != nil {
		return nil, err
	}

	c := &domain.Compilation{Title: title, Pinned: pinned}
	if err := s.compilations.CreateCompilation(ctx, c, eventIDs); err != nil {
		return nil, err
	}
	return s.compilations.GetCompilation(ctx, c.ID)
}

func (s *Service) UpdateCompilation(ctx context.Context, id int64, p domain.CompilationPatch) (*domain.Compilation, error) {
	c, err := s.compilations.GetCompilation(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		t, err := compilationTitle(*p.Title)
		if err != nil {
			return nil, err
		}
		c.Title = t
	}
	if p.Pinned != nil {
		c.Pinned = *p.Pinned
	}
	if p.EventIDs != nil {
		if err := s.checkEvents(ctx, *p.EventIDs); err != nil {
			return nil, err
		}
	}

	if err := s.compilations.UpdateCompilation(ctx, c, p.EventIDs); err != nil {
		return nil, err
	}
	return s.compilations.GetCompilation(ctx, id)
}

func (s *Service) DeleteCompilation(ctx context.Context, id int64) error {
	if _, err := s.compilations.GetCompilation(ctx, id); err != nil {
		return err
	}
	return s.compilations.DeleteCompilation(ctx, id)
}

func (s *Service) GetCompilation(ctx context.Context, id int64) (*domain.Compilation, error) {
	return s.compilations.GetCompilation(ctx, id)
}

func (s *Service) ListCompilations(ctx context.Context, pinned *bool, offset, limit int) ([]domain.Compilation, error) {
	if err := domain.NormalizePage(&offset, &limit); err != nil {
		return nil, err
	}
	return s.compilations.ListCompilations(ctx, pinned, offset, limit)
}

func (s *Service) checkEvents(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := s.events.GetEvent(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func compilationTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n < 1 || n > 50 {
		return "", domain.ErrValidationMeta("invalid compilation", map[string]string{
			"title": "length must be between 1 and 50",
		})
	}
	return title, nil
}
