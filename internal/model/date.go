package model

import (
	"fmt"
	"strings"
	"time"
)

// wireDateFormat is the day-first format the storefront API has always used
// for product and order dates.
const wireDateFormat = "02-01-2006"

// Date is a date-only value that marshals as dd-MM-yyyy. It accepts either
// dd-MM-yyyy or yyyy-MM-dd on input.
type Date struct {
	time.Time
}

// NewDate creates a Date truncated to the day.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date.
func Today() Date {
	return NewDate(time.Now())
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) String() string {
	return d.Format(wireDateFormat)
}

// MarshalJSON renders the date as "dd-MM-yyyy".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(wireDateFormat) + `"`), nil
}

// UnmarshalJSON parses "dd-MM-yyyy" or "yyyy-MM-dd", and tolerates null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{wireDateFormat, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}
