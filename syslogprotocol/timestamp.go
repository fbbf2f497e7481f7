package syslogprotocol

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// TimestampLayout is the RFC 3339 layout of RFC 5424 timestamps, always in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// lenientLayouts are tried in order after the RFC 3339 parser fails
var lenientLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.RFC822,
	time.RFC822Z,
	time.ANSIC,
	time.UnixDate,
	time.RubyDate,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// FormatTimestamp renders the timestamp field of header, or NilValue for zero time
func FormatTimestamp(tm time.Time) string {
	if tm.IsZero() {
		return NilValue
	}
	return tm.UTC().Format(TimestampLayout)
}

// ParseTimestamp converts a time value of log record to time.Time
//
// Accepted values: time.Time, timestamp strings and numbers as milliseconds since epoch.
//
// Returns false for values which cannot be interpreted as time, including false, nil and empty string.
func ParseTimestamp(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		return ParseTimestampString(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return timeFromMillis(f)
	case float64:
		return timeFromMillis(v)
	case float32:
		return timeFromMillis(float64(v))
	case int:
		return time.UnixMilli(int64(v)), true
	case int64:
		return time.UnixMilli(v), true
	case int32:
		return time.UnixMilli(int64(v)), true
	case uint64:
		return time.UnixMilli(int64(v)), true
	case uint32:
		return time.UnixMilli(int64(v)), true
	default:
		return time.Time{}, false
	}
}

// ParseTimestampString parses timestamp in RFC 3339 or one of the lenient layouts
func ParseTimestampString(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return time.Time{}, false
	}
	if tm, err := parseRFC3339Timestamp(value); err == nil {
		return tm, true
	}
	for _, layout := range lenientLayouts {
		if tm, err := time.Parse(layout, value); err == nil {
			return tm, true
		}
	}
	return time.Time{}, false
}

func timeFromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}

// parseRFC3339Timestamp parse timestamp in RFC3339 format with fraction part of variable size
// ex: 2019-08-15T15:50:46.866915+03:00
// ex: 2019-08-15T15:50:46.866Z
func parseRFC3339Timestamp(t string) (time.Time, error) {
	if len(t) < 20 || t[4] != '-' || t[7] != '-' || (t[10] != 'T' && t[10] != 't') || t[13] != ':' || t[16] != ':' {
		return time.Time{}, fmt.Errorf("invalid timestamp")
	}
	if !allDigits(t[0:4]) || !allDigits(t[5:7]) || !allDigits(t[8:10]) ||
		!allDigits(t[11:13]) || !allDigits(t[14:16]) || !allDigits(t[17:19]) {
		return time.Time{}, fmt.Errorf("invalid timestamp")
	}
	year := atoi4(t[0:4])
	month := atoi2(t[5:7])
	date := atoi2(t[8:10])
	hour := atoi2(t[11:13])
	min := atoi2(t[14:16])
	sec := atoi2(t[17:19])
	if month < 1 || month > 12 || date < 1 || date > 31 || hour > 23 || min > 59 || sec > 60 {
		return time.Time{}, fmt.Errorf("invalid timestamp")
	}
	fracStr, tzStr := splitFractionAndTimezone(t[19:])
	nsec, err := parseFractionNanos(fracStr)
	if err != nil {
		return time.Time{}, err
	}
	var location *time.Location
	switch tzStr {
	case "Z", "z":
		location = time.UTC
	case "":
		return time.Time{}, fmt.Errorf("missing timezone")
	default:
		var layout string
		if strings.Contains(tzStr, ":") {
			layout = "Z07:00"
		} else {
			layout = "Z0700"
		}
		z, err := time.Parse(layout, tzStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timezone '%s': %w", tzStr, err)
		}
		tzName, tzOffset := z.Zone()
		location = time.FixedZone(tzName, tzOffset)
	}
	return time.Date(year, time.Month(month), date, hour, min, sec, nsec, location), nil
}

// splitFractionAndTimezone splits e.g. ".123+07:00" to .123 and +07:00
func splitFractionAndTimezone(s string) (string, string) {
	if len(s) >= 1 && s[0] == '.' {
		i := 1
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return s[:i], s[i:]
	}
	return "", s
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func atoi2(s string) int {
	v := int((s[0]-'0'))*10 +
		int((s[1] - '0'))
	return v
}

func atoi4(s string) int {
	v := int((s[0]-'0'))*1000 +
		int((s[1]-'0'))*100 +
		int((s[2]-'0'))*10 +
		int((s[3] - '0'))
	return v
}

// parseFractionNanos converts fraction of second e.g. ".867" into nanoseconds, ignoring digits beyond nanoseconds
func parseFractionNanos(fracStr string) (int, error) {
	if len(fracStr) == 0 {
		return 0, nil
	}
	digits := fracStr[1:]
	if len(digits) == 0 {
		return 0, fmt.Errorf("invalid fraction '%s'", fracStr)
	}
	if len(digits) > 9 {
		digits = digits[:9]
	}
	nsec := 0
	for i := 0; i < 9; i++ {
		nsec *= 10
		if i < len(digits) {
			nsec += int(digits[i] - '0')
		}
	}
	return nsec, nil
}
