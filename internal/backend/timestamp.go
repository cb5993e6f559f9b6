package backend

import (
	"time"

	"github.com/pkg/errors"
)

// timestampLayouts are the formats the backend has been observed to
// emit for timestamp columns: fractional seconds with or without a zone
// offset (the .999999 fraction is optional in Go's parser, which also
// covers seconds-only values) and bare dates (treated as midnight).
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999Z07:00",
	"2006-01-02T15:04:05.999999",
	"2006-01-02",
}

// timestampEncodeLayout is used for values the client writes: UTC with
// six fractional digits.
const timestampEncodeLayout = "2006-01-02T15:04:05.000000Z07:00"

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized timestamp %q", raw)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampEncodeLayout)
}
