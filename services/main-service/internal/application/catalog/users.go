package catalog

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

func (s *Service) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	meta := map[string]string{}
	if n := utf8.RuneCountInString(name); n < 2 || n > 250 {
		meta["name"] = "length must be between 2 and 250"
	}
	if n := utf8.RuneCountInString(email); n < 6 || n > 254 {
		meta["email"] = "length must be between 6 and 254"
	} else if _, err := mail.ParseAddress(email); err != nil {
		meta["email"] = "must be a valid email address"
	}
	if len(meta) > 0 {
		return nil, domain.ErrValidationMeta("invalid user", meta)
	}

	u := &domain.User{Name: name, Email: email}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	zlog.Info().Int64("user_id", u.ID).Msg("user created")
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context, ids []int64, offset, limit int) ([]domain.User, error) {
	if err := domain.NormalizePage(&offset, &limit); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx, ids, offset, limit)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.users.GetUser(ctx, id); err != nil {
		return err
	}
	return s.users.DeleteUser(ctx, id)
}
