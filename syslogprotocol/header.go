package syslogprotocol

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format selects the layout of output lines
type Format int

const (
	// RFC5424 is the default format: <PRI>1 TIMESTAMP HOSTNAME APP-NAME PROCID MSGID STRUCTURED-DATA MSG
	RFC5424 Format = iota
	// RFC3164 is the legacy BSD format: <PRI>Mmm dd hh:mm:ss HOSTNAME APP-NAME[PROCID]: MSG
	RFC3164
)

// Maximum lengths of header fields defined in RFC 5424
const (
	MaxHostnameLength = 255
	MaxAppNameLength  = 48
	MaxProcIDLength   = 128
	MaxMsgIDLength    = 32
)

const rfc3164TimestampLayout = "Jan _2 15:04:05"

// ParseFormat converts a format selector to Format. Empty selector means RFC5424.
func ParseFormat(name string) (Format, error) {
	switch strings.ToUpper(name) {
	case "", "RFC5424", "5424":
		return RFC5424, nil
	case "BSD", "RFC3164", "3164":
		return RFC3164, nil
	default:
		return RFC5424, fmt.Errorf("unsupported syslog format '%s'", name)
	}
}

func (f Format) String() string {
	if f == RFC3164 {
		return "RFC3164"
	}
	return "RFC5424"
}

// Header contains the fields of syslog header. Zero Timestamp and empty strings are rendered as NilValue.
type Header struct {
	Facility  Facility
	Severity  Severity
	Timestamp time.Time
	Hostname  string
	AppName   string
	ProcID    string
	MsgID     string
}

// AppendLine appends a complete syslog line including the trailing newline to buf
//
// structuredData must be either empty or a sequence of valid SD-ELEMENT(s)
func AppendLine(buf []byte, format Format, header *Header, structuredData string, message string) []byte {
	if format == RFC3164 {
		return appendRFC3164Line(buf, header, structuredData, message)
	}
	buf = append(buf, '<')
	buf = strconv.AppendInt(buf, int64(Priority(header.Facility, header.Severity)), 10)
	buf = append(buf, '>')
	buf = strconv.AppendInt(buf, Version, 10)
	buf = append(buf, ' ')
	buf = append(buf, FormatTimestamp(header.Timestamp)...)
	buf = append(buf, ' ')
	buf = appendHeaderField(buf, header.Hostname, MaxHostnameLength)
	buf = append(buf, ' ')
	buf = appendHeaderField(buf, header.AppName, MaxAppNameLength)
	buf = append(buf, ' ')
	buf = appendHeaderField(buf, header.ProcID, MaxProcIDLength)
	buf = append(buf, ' ')
	buf = appendHeaderField(buf, header.MsgID, MaxMsgIDLength)
	buf = append(buf, ' ')
	if len(structuredData) == 0 {
		buf = append(buf, NilValue...)
	} else {
		buf = append(buf, structuredData...)
	}
	if len(message) > 0 {
		buf = append(buf, ' ')
		buf = append(buf, message...)
	}
	return append(buf, '\n')
}

// FormatLine is AppendLine to a new string
func FormatLine(format Format, header *Header, structuredData string, message string) string {
	return string(AppendLine(make([]byte, 0, 128+len(structuredData)+len(message)), format, header, structuredData, message))
}

func appendRFC3164Line(buf []byte, header *Header, structuredData string, message string) []byte {
	buf = append(buf, '<')
	buf = strconv.AppendInt(buf, int64(Priority(header.Facility, header.Severity)), 10)
	buf = append(buf, '>')
	if header.Timestamp.IsZero() {
		buf = append(buf, NilValue...)
	} else {
		buf = header.Timestamp.UTC().AppendFormat(buf, rfc3164TimestampLayout)
	}
	buf = append(buf, ' ')
	buf = appendHeaderField(buf, header.Hostname, MaxHostnameLength)
	buf = append(buf, ' ')
	buf = appendHeaderField(buf, header.AppName, MaxAppNameLength)
	if len(header.ProcID) > 0 && header.ProcID != NilValue {
		buf = append(buf, '[')
		buf = appendHeaderField(buf, header.ProcID, MaxProcIDLength)
		buf = append(buf, ']')
	}
	buf = append(buf, ':')
	if len(structuredData) > 0 {
		buf = append(buf, ' ')
		buf = append(buf, structuredData...)
	}
	if len(message) > 0 {
		buf = append(buf, ' ')
		buf = append(buf, message...)
	}
	return append(buf, '\n')
}

// appendHeaderField appends a header field as printable US-ASCII, truncated to maxLen
func appendHeaderField(buf []byte, value string, maxLen int) []byte {
	if len(value) == 0 {
		return append(buf, NilValue...)
	}
	if len(value) > maxLen {
		value = value[:maxLen]
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c < 33 || c > 126 {
			c = '_'
		}
		buf = append(buf, c)
	}
	return buf
}
