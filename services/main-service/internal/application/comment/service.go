package comment

import (
	"context"
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

type Service struct {
	comments domain.CommentRepo
	users    domain.UserRepo
	events   domain.EventRepo
	clock    domain.Clock
}

func New(comments domain.CommentRepo, users domain.UserRepo, events domain.EventRepo, clock domain.Clock) *Service {
	return &Service{comments: comments, users: users, events: events, clock: clock}
}

func (s *Service) Add(ctx context.Context, userID, eventID int64, text string) (*domain.Comment, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.events.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	c, err := domain.NewComment(text, u.Short(), eventID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.comments.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	zlog.Info().Int64("comment_id", c.ID).Int64("event_id", eventID).Msg("comment added")
	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, commentID int64, text string) (*domain.Comment, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	c, err := s.comments.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := c.Edit(userID, text, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.comments.UpdateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, commentID int64) error {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return err
	}
	c, err := s.comments.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := c.CheckAuthor(userID); err != nil {
		return err
	}
	return s.comments.DeleteComment(ctx, commentID)
}

// DeleteByAdmin removes any comment.
func (s *Service) DeleteByAdmin(ctx context.Context, commentID int64) error {
	if _, err := s.comments.GetComment(ctx, commentID); err != nil {
		return err
	}
	zlog.Info().Int64("comment_id", commentID).Msg("comment removed by admin")
	return s.comments.DeleteComment(ctx, commentID)
}

func (s *Service) Get(ctx context.Context, commentID int64) (*domain.Comment, error) {
	return s.comments.GetComment(ctx, commentID)
}

// ListByEvent is public, so only comments of published events are visible.
func (s *Service) ListByEvent(ctx context.Context, eventID int64, offset, limit int) ([]domain.Comment, error) {
	if err := domain.NormalizePage(&offset, &limit); err != nil {
		return nil, err
	}
	ev, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.State != domain.StatePublished {
		return nil, domain.ErrNotFound(fmt.Sprintf("event with id=%d was not found", eventID))
	}
	return s.comments.ListCommentsByEvent(ctx, eventID, offset, limit)
}
