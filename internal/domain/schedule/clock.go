package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultStartClock is the start time used when a category has none configured.
const DefaultStartClock = "13:00:00"

// ParseClock anchors a stored start time on day. The stored value may be a
// native time (only hour and minute are used) or an "HH:MM[:SS]" string.
// A nil or empty value resolves to DefaultStartClock.
func ParseClock(value any, day time.Time) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return ParseClock(DefaultStartClock, day)
	case time.Time:
		return atClock(day, v.Hour(), v.Minute()), nil
	case []byte:
		return ParseClock(string(v), day)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return ParseClock(DefaultStartClock, day)
		}
		h, m, err := splitClock(s)
		if err != nil {
			return time.Time{}, err
		}
		return atClock(day, h, m), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrMalformedTime, value)
	}
}

func splitClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	h, ok := clockField(parts[0], 23)
	if !ok {
		return 0, 0, fmt.Errorf("%w: hour in %q", ErrMalformedTime, s)
	}
	m, ok := clockField(parts[1], 59)
	if !ok {
		return 0, 0, fmt.Errorf("%w: minute in %q", ErrMalformedTime, s)
	}
	if len(parts) == 3 {
		if _, ok := clockField(parts[2], 59); !ok {
			return 0, 0, fmt.Errorf("%w: second in %q", ErrMalformedTime, s)
		}
	}
	return h, m, nil
}

// clockField parses one unsigned clock component no greater than limit.
func clockField(s string, limit int) (int, bool) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v > limit {
		return 0, false
	}
	return v, true
}

func atClock(day time.Time, hour, minute int) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, hour, minute, 0, 0, day.Location())
}
