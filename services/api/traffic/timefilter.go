package traffic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TimeFilter is a minute of day in [0, 1439], or NoFilter.
type TimeFilter int

const (
	// NoFilter includes every trip.
	NoFilter TimeFilter = -1
	// MaxMinute is the last minute of the day.
	MaxMinute TimeFilter = 1439
	// Step is the granularity of the time slider exposed to clients.
	Step = 60
)

// ErrInvalidTimeFilter is returned for filter values outside [-1, 1439].
var ErrInvalidTimeFilter = errors.New("invalid time filter")

// Valid reports whether f is NoFilter or a minute of day.
func (f TimeFilter) Valid() bool {
	return f >= NoFilter && f <= MaxMinute
}

// String renders the filter the way the time control label shows it.
func (f TimeFilter) String() string {
	return FormatTimeFilter(f)
}

// ParseTimeFilter parses a query value. The empty string means NoFilter.
func ParseTimeFilter(s string) (TimeFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoFilter, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return NoFilter, fmt.Errorf("%w: %q", ErrInvalidTimeFilter, s)
	}
	f := TimeFilter(v)
	if !f.Valid() {
		return NoFilter, fmt.Errorf("%w: %d outside [-1, 1439]", ErrInvalidTimeFilter, v)
	}
	return f, nil
}

// FormatTimeFilter renders a minute of day as a 12-hour clock string such as
// "8:20 AM". NoFilter renders as "(any time)".
func FormatTimeFilter(f TimeFilter) string {
	if f == NoFilter {
		return "(any time)"
	}
	if !f.Valid() {
		return "(invalid)"
	}

	hours, minutes := int(f)/60, int(f)%60
	suffix := "AM"
	if hours >= 12 {
		suffix = "PM"
	}
	hours %= 12
	if hours == 0 {
		hours = 12
	}
	return fmt.Sprintf("%d:%02d %s", hours, minutes, suffix)
}
