package backend

import (
	"testing"
	"time"
)

func TestParseTimestampAcceptsObservedVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"fractional with offset", "2024-01-15T10:30:00.123456Z"},
		{"fractional with numeric offset", "2024-01-15T05:30:00.123456-05:00"},
		{"fractional without offset", "2024-01-15T10:30:00.123456"},
		{"seconds only", "2024-01-15T10:30:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := parseTimestamp(tc.raw)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.raw, err)
			}
			if parsed.Year() != 2024 || parsed.Month() != time.January || parsed.Day() != 15 {
				t.Fatalf("parse %q: wrong calendar date %v", tc.raw, parsed)
			}
			if parsed.Minute() != 30 {
				t.Fatalf("parse %q: wrong minute %v", tc.raw, parsed)
			}
		})
	}
}

func TestParseTimestampDateOnlyIsMidnight(t *testing.T) {
	parsed, err := parseTimestamp("2024-01-15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Hour() != 0 || parsed.Minute() != 0 || parsed.Second() != 0 || parsed.Nanosecond() != 0 {
		t.Fatalf("date-only value should be midnight, got %v", parsed)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "yesterday", "15/01/2024", "2024-13-40"} {
		if _, err := parseTimestamp(raw); err == nil {
			t.Fatalf("expected an error for %q", raw)
		}
	}
}

func TestFormatTimestampIsUTCWithMicroseconds(t *testing.T) {
	bogota := time.FixedZone("America/Bogota", -5*60*60)
	in := time.Date(2024, time.January, 15, 19, 30, 0, 123456000, bogota)

	got := formatTimestamp(in)
	if got != "2024-01-16T00:30:00.123456Z" {
		t.Fatalf("unexpected encoding %q", got)
	}

	// What the client writes must be readable by its own decoder.
	back, err := parseTimestamp(got)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if !back.Equal(in) {
		t.Fatalf("round-trip drift: %v != %v", back, in)
	}
}
