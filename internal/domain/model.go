package domain

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Wire layouts used by the backend for date and date-time fields.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

// Envelope is the uniform response wrapper returned by the backend.
// Admin and most public endpoints set Code; a few legacy public endpoints
// report Success instead.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// OK reports whether the envelope signals success.
func (e *Envelope[T]) OK() bool {
	if e.Code == http.StatusOK {
		return true
	}
	return e.Code == 0 && e.Success != nil && *e.Success
}

// PageResult mirrors the backend page wrapper. It is passed through as received.
type PageResult[T any] struct {
	Records     []T   `json:"records"`
	Total       int64 `json:"total"`
	PageNum     int   `json:"pageNum"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int   `json:"totalPages"`
	HasPrevious bool  `json:"hasPrevious"`
	HasNext     bool  `json:"hasNext"`
}

// PageQuery holds the common paging parameters of list requests.
type PageQuery struct {
	PageNum  int `json:"pageNum,omitempty" validate:"omitempty,min=1"`
	PageSize int `json:"pageSize,omitempty" validate:"omitempty,min=1,max=500"`
}

// DateTime is a timestamp encoded in the backend's "yyyy-MM-dd HH:mm:ss" form.
// RFC 3339 input is accepted as well.
type DateTime struct {
	time.Time
}

// MarshalJSON encodes the time in DateTimeLayout, or null when zero.
func (t DateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(DateTimeLayout) + `"`), nil
}

// UnmarshalJSON decodes DateTimeLayout, RFC 3339, null and empty strings.
func (t *DateTime) UnmarshalJSON(b []byte) error {
	parsed, err := parseTime(b, DateTimeLayout, time.RFC3339Nano)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Date is a calendar date encoded as "yyyy-MM-dd".
type Date struct {
	time.Time
}

// MarshalJSON encodes the date in DateLayout, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON decodes DateLayout, DateTimeLayout, null and empty strings.
func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := parseTime(b, DateLayout, DateTimeLayout, time.RFC3339Nano)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

func parseTime(b []byte, layouts ...string) (time.Time, error) {
	if bytes.Equal(b, []byte("null")) {
		return time.Time{}, nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range layouts {
		if v, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return v, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", s)
}
