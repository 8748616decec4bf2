package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is a loosely-typed operational row as fetched from storage. Field
// names vary by record kind and by the client app revision that wrote them, so
// values are looked up through ordered alias lists rather than a fixed schema.
type Record map[string]any

// Number returns the first alias present with a value coercible to float64.
// Non-numeric or absent values fall through to the next alias; if nothing
// matches the result is 0 — missing revenue data must never abort a report.
func (r Record) Number(aliases ...string) float64 {
	for _, name := range aliases {
		value, ok := r[name]
		if !ok || value == nil {
			continue
		}
		if n, ok := coerceNumber(value); ok {
			return n
		}
	}
	return 0
}

// Int behaves like Number but truncates to an integer.
func (r Record) Int(aliases ...string) int {
	return int(r.Number(aliases...))
}

// String returns the first alias present with a non-empty string value,
// falling back to the provided default.
func (r Record) String(fallback string, aliases ...string) string {
	for _, name := range aliases {
		if value, ok := r[name]; ok && value != nil {
			if s, ok := value.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}

// Time decodes a timestamp field. Storage drivers hand timestamps back either
// as native time values, BSON datetimes or ISO-8601 strings.
func (r Record) Time(field string) time.Time {
	value, ok := r[field]
	if !ok || value == nil {
		return time.Time{}
	}

	switch v := value.(type) {
	case time.Time:
		return v
	case primitive.DateTime:
		return v.Time()
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}

	return time.Time{}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case primitive.Decimal128:
		n, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
