package repository

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// dateValue scans a DATE column, or a text column holding a date, into a
// civil date. Postgres returns time.Time; SQLite returns text.
type dateValue struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (d *dateValue) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		y, m, day := v.Date()
		d.Time, d.Valid = time.Date(y, m, day, 0, 0, 0, 0, time.UTC), true
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("%w: unsupported date type %T", ErrScan, src)
	}
}

func (d *dateValue) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) >= len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("%w: date %q: %w", ErrScan, s, err)
	}
	d.Time, d.Valid = t, true
	return nil
}

// Value implements driver.Valuer so dates are bound as YYYY-MM-DD on both drivers.
func (d dateValue) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.Time.Format(time.DateOnly), nil
}

// dateParam binds the civil date of t.
func dateParam(t time.Time) dateValue {
	y, m, d := t.Date()
	return dateValue{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// rawValue keeps whatever the driver produced so the caller can decide how to
// interpret it.
type rawValue struct {
	V any
}

// Scan implements sql.Scanner.
func (r *rawValue) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		// Drivers may reuse the buffer after Next.
		src = string(b)
	}
	r.V = src
	return nil
}

var placeholder = regexp.MustCompile(`\$\d+`)

// rebind rewrites Postgres placeholders for drivers that only take "?".
// Queries in this package use every placeholder once, in order.
func rebind(driverName, query string) string {
	if driverName == DriverPostgres {
		return query
	}
	return placeholder.ReplaceAllString(query, "?")
}
