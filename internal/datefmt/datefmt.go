// Package datefmt parses the loosely formatted dates typed into filters and
// checks whether a date falls inside a period.
package datefmt

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slashPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dashPattern  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
)

// isoLayouts are tried in order; layouts without a zone are read as local time.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse interprets input as an ISO-like date, then as D/M/YYYY, then as D-M-YYYY.
// It reports false when input is blank or no interpretation yields a valid calendar date.
func Parse(input string) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t, true
		}
	}
	if t, ok := parseDayFirst(slashPattern, input); ok {
		return t, true
	}
	return parseDayFirst(dashPattern, input)
}

func parseDayFirst(pattern *regexp.Regexp, input string) (time.Time, bool) {
	match := pattern.FindStringSubmatch(input)
	if match == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (31/02 becomes 03/03), which is not a real date.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last millisecond of t's day in its own location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// InRange reports whether target falls inside the inclusive period [start, end].
// Bounds that are blank or unparseable are ignored; an unparseable target is never in range.
func InRange(target, start, end string) bool {
	t, ok := Parse(target)
	if !ok {
		return false
	}
	return InRangeTime(t, start, end)
}

// InRangeTime is InRange for an already parsed target.
func InRangeTime(target time.Time, start, end string) bool {
	day := StartOfDay(target)
	if s, ok := Parse(start); ok && day.Before(StartOfDay(s)) {
		return false
	}
	if e, ok := Parse(end); ok && day.After(EndOfDay(e)) {
		return false
	}
	return true
}
