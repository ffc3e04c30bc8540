package domain

import (
	"context"
	"time"
)

type Clock interface{ Now() time.Time }

type UserRepo interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context, ids []int64, offset, limit int) ([]User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type CategoryRepo interface {
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error
	GetCategory(ctx context.Context, id int64) (*Category, error)
	ListCategories(ctx context.Context, offset, limit int) ([]Category, error)
}

type EventRepo interface {
	CreateEvent(ctx context.Context, e *Event) error
	GetEvent(ctx context.Context, id int64) (*Event, error)
	UpdateEvent(ctx context.Context, e *Event) error
	SearchEvents(ctx context.Context, q EventQuery) ([]Event, error)
	ListEventsByInitiator(ctx context.Context, userID int64, offset, limit int) ([]Event, error)
	SetViews(ctx context.Context, eventID, views int64) error
}

type RequestRepo interface {
	GetRequest(ctx context.Context, id int64) (*ParticipationRequest, error)
	ListRequestsByRequester(ctx context.Context, userID int64) ([]ParticipationRequest, error)
	ListRequestsByEvent(ctx context.Context, eventID int64) ([]ParticipationRequest, error)
}

type CommentRepo interface {
	CreateComment(ctx context.Context, c *Comment) error
	GetComment(ctx context.Context, id int64) (*Comment, error)
	UpdateComment(ctx context.Context, c *Comment) error
	DeleteComment(ctx context.Context, id int64) error
	ListCommentsByEvent(ctx context.Context, eventID int64, offset, limit int) ([]Comment, error)
}

type CompilationRepo interface {
	CreateCompilation(ctx context.Context, c *Compilation, eventIDs []int64) error
	UpdateCompilation(ctx context.Context, c *Compilation, eventIDs *[]int64) error
	DeleteCompilation(ctx context.Context, id int64) error
	GetCompilation(ctx context.Context, id int64) (*Compilation, error)
	ListCompilations(ctx context.Context, pinned *bool, offset, limit int) ([]Compilation, error)
}

// TxRepo is the view of storage available inside a transaction. The *ForUpdate
// reads take row locks held until the transaction ends. Lock order is always the
// event row first, then request rows.
type TxRepo interface {
	GetEventForUpdate(ctx context.Context, id int64) (*Event, error)
	// UpdateEvent writes the editable columns and state. Counters are not touched.
	UpdateEvent(ctx context.Context, e *Event) error
	// FindRequestForUpdate returns NotFound when the user has never asked to join.
	FindRequestForUpdate(ctx context.Context, eventID, requesterID int64) (*ParticipationRequest, error)
	GetRequestForUpdate(ctx context.Context, id int64) (*ParticipationRequest, error)
	GetRequestsForUpdate(ctx context.Context, ids []int64) ([]ParticipationRequest, error)
	CreateRequest(ctx context.Context, r *ParticipationRequest) error
	// SaveRequest writes status and created time of an existing request.
	SaveRequest(ctx context.Context, r *ParticipationRequest) error
	SetRequestStatus(ctx context.Context, ids []int64, status RequestStatus) error
	AddConfirmed(ctx context.Context, eventID int64, delta int64) error
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx TxRepo) error) error
}
