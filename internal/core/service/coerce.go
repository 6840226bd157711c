package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

// coerceBudget converts a decoded JSON budget value into a non-negative
// integer. Numbers and numeric strings are accepted; anything else
// defaults to 0, matching the historical lenient policy. Negative values
// clamp to 0.
func coerceBudget(v any) int64 {
	var n int64
	switch t := v.(type) {
	case float64:
		n = int64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		n = int64(f)
	case nil:
		return 0
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// coerceBool applies truthiness to a decoded JSON value: true, non-zero
// numbers, and the strings "true"/"1" count as true.
func coerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1"
	default:
		return false
	}
}

// preferredDateTimeLayouts are the accepted formats for the job schedule
// field. The first is what the datetime-local form control submits.
var preferredDateTimeLayouts = []string{
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parsePreferredDateTime parses the schedule field or fails with
// domain.ErrValidation.
func parsePreferredDateTime(s string) (time.Time, error) {
	for _, layout := range preferredDateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: preferred_date_time %q is not a valid timestamp", domain.ErrValidation, s)
}
