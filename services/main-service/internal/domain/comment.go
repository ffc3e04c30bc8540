package domain

import (
	"time"
)

type Comment struct {
	ID        int64
	Text      string
	Author    UserShort
	EventID   int64
	PostedOn  time.Time
	UpdatedOn *time.Time
}

func NewComment(text string, author UserShort, eventID int64, now time.Time) (*Comment, error) {
	if err := checkText("text", text, 1, 2000); err != nil {
		return nil, err
	}
	return &Comment{
		Text:     text,
		Author:   author,
		EventID:  eventID,
		PostedOn: now.UTC(),
	}, nil
}

// Edit replaces the text. Only the author may edit.
func (c *Comment) Edit(userID int64, text string, now time.Time) error {
	if err := c.CheckAuthor(userID); err != nil {
		return err
	}
	if err := checkText("text", text, 1, 2000); err != nil {
		return err
	}
	t := now.UTC()
	c.Text = text
	c.UpdatedOn = &t
	return nil
}

func (c *Comment) CheckAuthor(userID int64) error {
	if c.Author.ID != userID {
		return ErrNotAuthorized("only the author can change this comment")
	}
	return nil
}
