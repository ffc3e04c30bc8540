package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

// Store keeps every entity in process memory. It implements all storage ports and
// is used for APP_ENV=dev without a database and by service tests.
type Store struct {
	mu sync.RWMutex
	t  tables
}

type tables struct {
	seq          map[string]int64
	users        map[int64]domain.User
	categories   map[int64]domain.Category
	events       map[int64]domain.Event
	requests     map[int64]domain.ParticipationRequest
	comments     map[int64]domain.Comment
	compilations map[int64]compilationRow
}

type compilationRow struct {
	ID       int64
	Title    string
	Pinned   bool
	EventIDs []int64
}

func New() *Store {
	return &Store{t: tables{
		seq:          map[string]int64{},
		users:        map[int64]domain.User{},
		categories:   map[int64]domain.Category{},
		events:       map[int64]domain.Event{},
		requests:     map[int64]domain.ParticipationRequest{},
		comments:     map[int64]domain.Comment{},
		compilations: map[int64]compilationRow{},
	}}
}

func (t *tables) next(table string) int64 {
	t.seq[table]++
	return t.seq[table]
}

func (t tables) clone() tables {
	c := tables{
		seq:          maps.Clone(t.seq),
		users:        maps.Clone(t.users),
		categories:   maps.Clone(t.categories),
		events:       maps.Clone(t.events),
		requests:     maps.Clone(t.requests),
		comments:     maps.Clone(t.comments),
		compilations: make(map[int64]compilationRow, len(t.compilations)),
	}
	for k, v := range t.compilations {
		v.EventIDs = append([]int64(nil), v.EventIDs...)
		c.compilations[k] = v
	}
	return c
}

// WithTx serializes fn against every other store access. On error, or when ctx
// ends before commit, all writes made through tx are discarded.
func (s *Store) WithTx(ctx context.Context, fn func(tx domain.TxRepo) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.t.clone()
	err := fn(&txView{t: &s.t})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.t = snapshot
		return err
	}
	return nil
}

var (
	_ domain.UserRepo        = (*Store)(nil)
	_ domain.CategoryRepo    = (*Store)(nil)
	_ domain.EventRepo       = (*Store)(nil)
	_ domain.RequestRepo     = (*Store)(nil)
	_ domain.CommentRepo     = (*Store)(nil)
	_ domain.CompilationRepo = (*Store)(nil)
	_ domain.TxRunner        = (*Store)(nil)
	_ domain.TxRepo          = (*txView)(nil)
)
