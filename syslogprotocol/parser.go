package syslogprotocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Line contains the parts of a RFC 5424 line. Header fields are kept in their textual form.
type Line struct {
	Facility       Facility
	Severity       Severity
	Version        int
	Timestamp      string
	Hostname       string
	AppName        string
	ProcID         string
	MsgID          string
	StructuredData string // NilValue or one or more SD-ELEMENT(s)
	Message        string
}

// ParseLine parses a RFC 5424 line produced by AppendLine. The trailing newline is optional.
//
// The message is returned as-is, including any spaces or newlines inside.
func ParseLine(line string) (Line, error) {
	var result Line
	line = strings.TrimSuffix(line, "\n")
	if len(line) == 0 || line[0] != '<' {
		return result, fmt.Errorf("invalid syslog")
	}

	// parse the pri field, e.g. "<163>1"
	ok, val, remaining := nextFieldBySpace(line)
	if !ok {
		return result, fmt.Errorf("unfinished syslog")
	}
	end := strings.IndexByte(val, '>')
	if end == -1 {
		return result, fmt.Errorf("invalid syslog pri '%s'", val)
	}
	priVal, err := strconv.Atoi(val[1:end])
	if err != nil {
		return result, fmt.Errorf("invalid syslog pri value '%s'", val[1:end])
	}
	result.Facility = Facility(priVal >> 3)
	result.Severity = Severity(priVal & 0b111)
	if int(result.Facility) >= len(FacilityNames) {
		return result, fmt.Errorf("invalid syslog facility %d", result.Facility)
	}
	result.Version, err = strconv.Atoi(val[end+1:])
	if err != nil {
		return result, fmt.Errorf("invalid syslog version '%s'", val[end+1:])
	}

	// rest of header fields delimited by whitespace
	for _, field := range []*string{&result.Timestamp, &result.Hostname, &result.AppName, &result.ProcID, &result.MsgID} {
		ok, val, next := nextFieldBySpace(remaining)
		if !ok {
			return result, fmt.Errorf("missing syslog header fields in '%s'", line)
		}
		*field = val
		remaining = next
	}

	sdLen, err := structuredDataLength(remaining)
	if err != nil {
		return result, err
	}
	result.StructuredData = remaining[:sdLen]
	remaining = remaining[sdLen:]
	if len(remaining) > 0 {
		if remaining[0] != ' ' {
			return result, fmt.Errorf("missing space after structured data")
		}
		result.Message = remaining[1:]
	}
	return result, nil
}

// structuredDataLength returns the length of STRUCTURED-DATA at the start of s
func structuredDataLength(s string) (int, error) {
	if strings.HasPrefix(s, NilValue) {
		return len(NilValue), nil
	}
	i := 0
	for i < len(s) && s[i] == '[' {
		inQuotes := false
		closed := false
		i++
		for i < len(s) && !closed {
			switch c := s[i]; {
			case inQuotes && c == '\\':
				i++
			case c == '"':
				inQuotes = !inQuotes
			case !inQuotes && c == ']':
				closed = true
			}
			i++
		}
		if !closed {
			return 0, fmt.Errorf("unterminated structured data element")
		}
	}
	if i == 0 {
		return 0, fmt.Errorf("invalid structured data")
	}
	return i, nil
}

// nextFieldBySpace takes next field value separated by space
// return (ok, value, remaining part not including space)
// Ex: "a b c" will return (true, "a", "b c")
func nextFieldBySpace(s string) (bool, string, string) {
	end := strings.IndexByte(s, ' ')
	if end == -1 {
		return false, "", ""
	}
	return true, s[:end], s[end+1:]
}
