package datefmt

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	want := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.Local)

	tests := map[string]struct {
		input string
		ok    bool
	}{
		"iso date":          {input: "2023-12-31", ok: true},
		"slash day first":   {input: "31/12/2023", ok: true},
		"dash day first":    {input: "31-12-2023", ok: true},
		"surrounding space": {input: "  31/12/2023 ", ok: true},
		"garbage":           {input: "not-a-date"},
		"empty":             {input: ""},
		"blank":             {input: "   "},
		"impossible day":    {input: "31/02/2023"},
		"month overflow":    {input: "01/13/2023"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v (%s)", tt.ok, ok, got)
			}
			if tt.ok && !got.Equal(want) {
				t.Fatalf("expected %s, got %s", want, got)
			}
		})
	}
}

func TestParse_SingleDigitComponents(t *testing.T) {
	got, ok := Parse("5/6/2023")
	if !ok {
		t.Fatalf("expected single digit day and month to parse")
	}
	if got.Day() != 5 || got.Month() != time.June || got.Year() != 2023 {
		t.Fatalf("unexpected date: %s", got)
	}
}

func TestParse_KeepsTimeOfDay(t *testing.T) {
	got, ok := Parse("2023-06-15T14:30:00Z")
	if !ok {
		t.Fatalf("expected RFC3339 input to parse")
	}
	if got.Hour() != 14 || got.Minute() != 30 {
		t.Fatalf("expected time of day to be preserved, got %s", got)
	}
}

func TestInRange(t *testing.T) {
	tests := map[string]struct {
		target, start, end string
		want               bool
	}{
		"inside":              {target: "2023-06-15", start: "2023-06-01", end: "2023-06-30", want: true},
		"after end":           {target: "2023-07-01", start: "2023-06-01", end: "2023-06-30", want: false},
		"before start":        {target: "2023-05-31", start: "2023-06-01", end: "2023-06-30", want: false},
		"on start":            {target: "2023-06-01", start: "2023-06-01", end: "2023-06-30", want: true},
		"on end":              {target: "30/06/2023", start: "2023-06-01", end: "2023-06-30", want: true},
		"late on end day":     {target: "2023-06-30T23:59:00", end: "2023-06-30", want: true},
		"only start":          {target: "2024-01-01", start: "2023-06-01", want: true},
		"only end":            {target: "2023-01-01", end: "2023-06-30", want: true},
		"no bounds":           {target: "2023-01-01", want: true},
		"bad target":          {target: "not-a-date", start: "2023-06-01", end: "2023-06-30", want: false},
		"unparseable bound":   {target: "2023-06-15", start: "soon", end: "2023-06-30", want: true},
		"mixed input formats": {target: "15-06-2023", start: "01/06/2023", end: "2023-06-30", want: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := InRange(tt.target, tt.start, tt.end); got != tt.want {
				t.Fatalf("InRange(%q, %q, %q) = %v, want %v", tt.target, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestEndOfDay(t *testing.T) {
	day := time.Date(2023, time.June, 30, 10, 0, 0, 0, time.UTC)
	end := EndOfDay(day)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 || end.Nanosecond() != int(999*time.Millisecond) {
		t.Fatalf("unexpected end of day: %s", end)
	}
	if !StartOfDay(day).Equal(time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start of day: %s", StartOfDay(day))
	}
}
