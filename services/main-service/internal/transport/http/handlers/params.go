package handlers

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
	"github.com/baechuer/explore-with-me/services/main-service/internal/transport/http/dto"
)

func badParam(name, msg string) error {
	return domain.ErrValidationMeta("invalid query param", map[string]string{name: msg})
}

func queryInt(q url.Values, name string, def int) (int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badParam(name, "must be an integer")
	}
	return n, nil
}

// page reads the from/size pair. size=0 is rejected rather than silently defaulted.
func page(q url.Values) (offset, limit int, err error) {
	if offset, err = queryInt(q, "from", 0); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(q, "size", domain.DefaultPageSize); err != nil {
		return 0, 0, err
	}
	if offset < 0 {
		return 0, 0, badParam("from", "must be >= 0")
	}
	if limit <= 0 {
		return 0, 0, badParam("size", "must be > 0")
	}
	return offset, limit, nil
}

// queryStrings accepts both repeated params and comma separated values.
func queryStrings(q url.Values, name string) []string {
	var out []string
	for _, raw := range q[name] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryInt64s(q url.Values, name string) ([]int64, error) {
	parts := queryStrings(q, name)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n <= 0 {
			return nil, badParam(name, "must be a list of positive integers")
		}
		out = append(out, n)
	}
	return out, nil
}

func queryBool(q url.Values, name string) (*bool, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, badParam(name, "must be true or false")
	}
	return &b, nil
}

func queryTime(q url.Values, name string) (*time.Time, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	t, err := dto.ParseTime(v)
	if err != nil {
		return nil, badParam(name, "must be in format "+dto.Layout)
	}
	return &t, nil
}

func requiredInt64(q url.Values, name string) (int64, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return 0, badParam(name, "is required")
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, badParam(name, "must be a positive integer")
	}
	return n, nil
}
