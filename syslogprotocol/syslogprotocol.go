// Package syslogprotocol provides shared functions and constants of the syslog RFC 5424 protocol
package syslogprotocol

import (
	"fmt"
	"strings"

	"github.com/relex/gotils/logger"
)

// NilValue is the RFC 5424 placeholder for absent header fields and empty structured data
const NilValue = "-"

// Version is the only RFC 5424 protocol version
const Version = 1

// Facility is the numeric syslog facility (0-23)
type Facility int

// Severity is the numeric syslog severity (0-7), 0 being the most severe
type Severity int

// Syslog severities
const (
	SeverityEmerg Severity = iota
	SeverityAlert
	SeverityCrit
	SeverityErr
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

// FacilityNames contains the mapping of facility numbers to readable names
var FacilityNames = []string{
	"kern",     // 0
	"user",     // 1
	"mail",     // 2
	"daemon",   // 3
	"auth",     // 4
	"syslog",   // 5
	"lpr",      // 6
	"news",     // 7
	"uucp",     // 8
	"cron",     // 9
	"authpriv", // 10
	"ftp",      // 11
	"ntp",      // 12
	"audit",    // 13
	"alert",    // 14
	"clock",    // 15
	"local0",   // 16
	"local1",   // 17
	"local2",   // 18
	"local3",   // 19
	"local4",   // 20
	"local5",   // 21
	"local6",   // 22
	"local7",   // 23
}

// SeverityNames contains the mapping of severity (level) numbers to readable names
var SeverityNames = []string{
	"emerg",  // 0
	"alert",  // 1
	"crit",   // 2
	"err",    // 3
	"warn",   // 4
	"notice", // 5
	"info",   // 6
	"debug",  // 7
}

var severityAliases = map[string]Severity{
	"panic":     SeverityEmerg,
	"emergency": SeverityEmerg,
	"critical":  SeverityCrit,
	"error":     SeverityErr,
	"warning":   SeverityWarning,
}

var facilityAliases = map[string]Facility{
	"security":  4,
	"log_audit": 13,
	"log_alert": 14,
}

// FacilityFromName looks up a facility by its case-insensitive name
func FacilityFromName(name string) (Facility, error) {
	lname := strings.ToLower(name)
	for i, n := range FacilityNames {
		if n == lname {
			return Facility(i), nil
		}
	}
	if f, ok := facilityAliases[lname]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("invalid syslog facility '%s'", name)
}

// SeverityFromName looks up a severity by its case-insensitive name
func SeverityFromName(name string) (Severity, error) {
	lname := strings.ToLower(name)
	for i, n := range SeverityNames {
		if n == lname {
			return Severity(i), nil
		}
	}
	if s, ok := severityAliases[lname]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("invalid syslog severity '%s'", name)
}

// MustFacilityFromName looks up a facility by name or panics
func MustFacilityFromName(name string) Facility {
	f, err := FacilityFromName(name)
	if err != nil {
		logger.Panic(err)
	}
	return f
}

// MustSeverityFromName looks up a severity by name or panics
func MustSeverityFromName(name string) Severity {
	s, err := SeverityFromName(name)
	if err != nil {
		logger.Panic(err)
	}
	return s
}

// String returns the name of facility, or its number if out of range
func (f Facility) String() string {
	if f < 0 || int(f) >= len(FacilityNames) {
		return fmt.Sprintf("facility(%d)", int(f))
	}
	return FacilityNames[f]
}

// String returns the name of severity, or its number if out of range
func (s Severity) String() string {
	if s < 0 || int(s) >= len(SeverityNames) {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return SeverityNames[s]
}

// Priority calculates the PRI value of RFC 5424 header
func Priority(facility Facility, severity Severity) int {
	return int(facility)*8 + int(severity)
}
