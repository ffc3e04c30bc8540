package dto

import (
	"fmt"
	"strconv"
	"time"
)

// Layout is the wire format of every date in the API, always UTC.
const Layout = "2006-01-02 15:04:05"

type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime { return DateTime{Time: t.UTC()} }

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.UTC().Format(Layout))), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date must be a string in format %q", Layout)
	}
	t, err := ParseTime(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseTime parses a wire date. Query strings use the same layout.
func ParseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in format %q", Layout)
	}
	return t, nil
}

func optDateTime(t *time.Time) *DateTime {
	if t == nil {
		return nil
	}
	d := NewDateTime(*t)
	return &d
}
