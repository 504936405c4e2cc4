package export

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Upstream sources emit timestamps inconsistently as Unix seconds or Unix
// milliseconds. An interpretation is only accepted when it lands in this
// calendar window.
const (
	minPlausibleYear = 2020
	maxPlausibleYear = 2100
)

// isoLayouts are the string date layouts accepted by NormalizeDate, tried in
// order.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeDate resolves an ambiguous timestamp representation into a
// concrete time. The value may be a time.Time, an integer or float epoch
// value (seconds or milliseconds), a digit-only string holding such an epoch
// value, or an ISO date string. The second return value is false when no
// interpretation yields a plausible date; callers must treat the record's
// date as unknown rather than defaulting to "now".
func NormalizeDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case int:
		return dateFromEpoch(float64(v))
	case int64:
		return dateFromEpoch(float64(v))
	case float64:
		return dateFromEpoch(v)
	case float32:
		return dateFromEpoch(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		if isDigits(s) {
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return time.Time{}, false
			}
			return dateFromEpoch(n)
		}
		for _, layout := range isoLayouts {
			// Zone-less layouts resolve in local time so string dates and
			// epoch dates land in the same zone. Layouts carrying an offset
			// keep the offset from the value.
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// dateFromEpoch disambiguates seconds vs milliseconds. The candidate
// interpretations are tried in order: value as milliseconds, value/1000
// (a milliseconds value mistakenly scaled up once already), value*1000
// (a seconds value). The first one whose calendar year is plausible wins.
func dateFromEpoch(value float64) (time.Time, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return time.Time{}, false
	}
	for _, ms := range []float64{value, value / 1000, value * 1000} {
		if ms > float64(math.MaxInt64) {
			continue
		}
		t := time.UnixMilli(int64(ms))
		if y := t.Year(); y >= minPlausibleYear && y <= maxPlausibleYear {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeAmount coerces a numeric-like value into a fixed two-decimal
// string. Nil, NaN and unparsable values normalize to "0.00". It never fails.
func NormalizeAmount(value any) string {
	f, ok := asFloat(value)
	if !ok {
		return "0.00"
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// asFloat extracts a float from the loose numeric representations seen on
// the wire. NaN and infinities are rejected.
func asFloat(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
