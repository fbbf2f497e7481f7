// Package levelmap maps bunyan-style application levels (10 trace ... 60 fatal) to syslog severities
package levelmap

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/syslogprotocol"
	"github.com/spf13/cast"
)

// Application levels
const (
	Trace = 10
	Debug = 20
	Info  = 30
	Warn  = 40
	Error = 50
	Fatal = 60
)

var levelsByName = map[string]int{
	"trace": Trace,
	"debug": Debug,
	"info":  Info,
	"warn":  Warn,
	"error": Error,
	"fatal": Fatal,
}

// MapApplicationLevel converts an application level to syslog severity
//
// The level may be a number or a case-insensitive level name. Anything else is treated as info.
func MapApplicationLevel(level interface{}) syslogprotocol.Severity {
	return SeverityOf(ParseApplicationLevel(level))
}

// SeverityOf maps a numeric application level to syslog severity, first match wins
func SeverityOf(level int) syslogprotocol.Severity {
	switch {
	case level >= Fatal:
		return syslogprotocol.SeverityEmerg
	case level >= Error:
		return syslogprotocol.SeverityErr
	case level >= Warn:
		return syslogprotocol.SeverityWarning
	case level >= Info:
		return syslogprotocol.SeverityNotice
	case level >= Debug:
		return syslogprotocol.SeverityInfo
	default:
		return syslogprotocol.SeverityDebug
	}
}

// ParseApplicationLevel converts the level field of record to number, or defs.DefaultApplicationLevel if impossible
//
// Strings are only looked up as level names: "50" is not a level.
func ParseApplicationLevel(level interface{}) int {
	switch v := level.(type) {
	case nil, bool, time.Time, *time.Time:
		return defs.DefaultApplicationLevel
	case string:
		if named, ok := levelsByName[strings.ToLower(v)]; ok {
			return named
		}
		return defs.DefaultApplicationLevel
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return defs.DefaultApplicationLevel
		}
		level = f
	}
	if f, ok := level.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return defs.DefaultApplicationLevel
	}
	if f, ok := level.(float32); ok && (math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)) {
		return defs.DefaultApplicationLevel
	}
	n, err := cast.ToIntE(level)
	if err != nil {
		return defs.DefaultApplicationLevel
	}
	return n
}
