package domain

import "time"

const (
	DefaultPageSize = 10
	MaxPageSize     = 1000
)

// EventQuery is the full set of search filters. Zero values mean "no filter".
type EventQuery struct {
	Text          string
	Categories    []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool

	// Admin-only filters.
	States     []EventState
	Initiators []int64

	// PublishedOnly restricts results to PUBLISHED events and, without an explicit
	// range, to events after Now.
	PublishedOnly bool
	Now           time.Time

	Sort   EventSort
	Offset int
	Limit  int
}

// Normalize validates the query and fills defaults. It must run before any storage access.
func (q *EventQuery) Normalize() error {
	if q.RangeStart != nil && q.RangeEnd != nil && q.RangeStart.After(*q.RangeEnd) {
		return ErrIncorrectDateRange("rangeStart must not be after rangeEnd")
	}
	if q.Sort == "" {
		q.Sort = SortByID
	}
	if !q.Sort.Valid() {
		return ErrValidationMeta("invalid query param", map[string]string{
			"sort": "must be one of: ID, EVENT_DATE, VIEWS, COMMENTS",
		})
	}
	for _, s := range q.States {
		if !s.Valid() {
			return ErrValidationMeta("invalid query param", map[string]string{
				"states": "must be one of: PENDING, PUBLISHED, CANCELED",
			})
		}
	}
	return NormalizePage(&q.Offset, &q.Limit)
}

func NormalizePage(offset, limit *int) error {
	if *offset < 0 {
		return ErrValidationMeta("invalid query param", map[string]string{"from": "must be >= 0"})
	}
	if *limit == 0 {
		*limit = DefaultPageSize
	}
	if *limit < 0 {
		return ErrValidationMeta("invalid query param", map[string]string{"size": "must be > 0"})
	}
	if *limit > MaxPageSize {
		*limit = MaxPageSize
	}
	return nil
}
