package normalize

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/invoice-ledger/internal/extract"
)

// dateLayouts are tried in order for string date values.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
	"2.1.2006",
}

// ParseDate resolves a date field in priority order: the explicit `$date` wrapper,
// then the generic `value` wrapper. The first representation that parses wins.
// It returns nil when neither is present or parseable; callers apply their own fallbacks.
func ParseDate(f extract.DateField) *time.Time {
	if len(f.Epoch) > 0 {
		if t, ok := parseEpochWrapper(f.Epoch); ok {
			return &t
		}
	}
	if len(f.Value) > 0 {
		if t, ok := parseScalar(f.Value); ok {
			return &t
		}
	}
	return nil
}

// FirstDate returns the first non-nil date.
func FirstDate(dates ...*time.Time) *time.Time {
	for _, d := range dates {
		if d != nil {
			return d
		}
	}
	return nil
}

// parseEpochWrapper handles the inner value of `$date`: an ISO string, epoch milliseconds,
// or a `{ "$numberLong": "..." }` object.
func parseEpochWrapper(raw json.RawMessage) (time.Time, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var long struct {
			NumberLong json.RawMessage `json:"$numberLong"`
		}
		if err := json.Unmarshal(trimmed, &long); err != nil || len(long.NumberLong) == 0 {
			return time.Time{}, false
		}
		var millis string
		if err := json.Unmarshal(long.NumberLong, &millis); err != nil {
			millis = string(long.NumberLong)
		}
		return fromEpochMillis(millis)
	}
	return parseScalar(trimmed)
}

func parseScalar(raw json.RawMessage) (time.Time, bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case json.Number:
		return fromEpochMillis(t.String())
	case string:
		return ParseDateString(t)
	default:
		return time.Time{}, false
	}
}

// ParseDateString parses a date string in one of the accepted layouts.
// Times without a zone are interpreted as UTC.
func ParseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func fromEpochMillis(s string) (time.Time, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(d.IntPart()).UTC(), true
}
