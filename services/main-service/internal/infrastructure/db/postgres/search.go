package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

var orderBy = map[domain.EventSort]string{
	domain.SortByID:        "e.id ASC",
	domain.SortByEventDate: "e.event_date ASC, e.id ASC",
	domain.SortByViews:     "e.views DESC, e.id ASC",
	domain.SortByComments:  "comments DESC, e.id ASC",
}

// predicates collects WHERE conditions written with '?' placeholders and
// renumbers them into $n as they are added.
type predicates struct {
	where []string
	args  []any
}

func (p *predicates) add(cond string, args ...any) {
	var b strings.Builder
	i := 0
	for _, ch := range cond {
		if ch == '?' && i < len(args) {
			p.args = append(p.args, args[i])
			i++
			fmt.Fprintf(&b, "$%d", len(p.args))
			continue
		}
		b.WriteRune(ch)
	}
	p.where = append(p.where, b.String())
}

func (p *predicates) arg(v any) string {
	p.args = append(p.args, v)
	return fmt.Sprintf("$%d", len(p.args))
}

// buildSearch renders an already normalized query.
func buildSearch(q domain.EventQuery) (string, []any) {
	var p predicates

	if q.PublishedOnly {
		p.add("e.state = ?", string(domain.StatePublished))
	}
	if len(q.States) > 0 {
		states := make([]string, len(q.States))
		for i, s := range q.States {
			states[i] = string(s)
		}
		p.add("e.state = ANY(?)", pq.Array(states))
	}
	if len(q.Initiators) > 0 {
		p.add("e.initiator_id = ANY(?)", pq.Array(q.Initiators))
	}
	if q.Text != "" {
		like := "%" + escapeLike(q.Text) + "%"
		p.add("(e.annotation ILIKE ? OR e.description ILIKE ?)", like, like)
	}
	if len(q.Categories) > 0 {
		p.add("e.category_id = ANY(?)", pq.Array(q.Categories))
	}
	if q.Paid != nil {
		p.add("e.paid = ?", *q.Paid)
	}
	if q.OnlyAvailable {
		p.add("(e.participant_limit = 0 OR e.confirmed_requests < e.participant_limit)")
	}

	switch {
	case q.PublishedOnly && q.RangeStart != nil && q.RangeEnd != nil:
		p.add("e.event_date BETWEEN ? AND ?", *q.RangeStart, *q.RangeEnd)
	case q.PublishedOnly:
		p.add("e.event_date > ?", q.Now)
	default:
		if q.RangeStart != nil {
			p.add("e.event_date >= ?", *q.RangeStart)
		}
		if q.RangeEnd != nil {
			p.add("e.event_date <= ?", *q.RangeEnd)
		}
	}

	var b strings.Builder
	b.WriteString(selectEventsSQL)
	if len(p.where) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(p.where, "\n  AND "))
	}
	order, ok := orderBy[q.Sort]
	if !ok {
		order = orderBy[domain.SortByID]
	}
	b.WriteString("\nORDER BY ")
	b.WriteString(order)
	limit := p.arg(q.Limit)
	offset := p.arg(q.Offset)
	fmt.Fprintf(&b, "\nLIMIT %s OFFSET %s", limit, offset)

	return b.String(), p.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
