package classify

import (
	"fmt"
	"math"
	"time"

	"github.com/relex/slog-syslog/levelmap"
	"github.com/relex/slog-syslog/record"
	"github.com/relex/slog-syslog/syslogprotocol"
	"github.com/spf13/cast"
)

const fieldMsg = "msg"

// BunyanFields are the fields consumed by the bunyan path; all other fields form the remainder
var BunyanFields = map[string]bool{
	"v":        true,
	"level":    true,
	"facility": true,
	"hostname": true,
	"name":     true,
	"pid":      true,
	"time":     true,
	fieldMsg:   true,
	"msgId":    true,
}

// BunyanRecord is a log record following the bunyan convention
type BunyanRecord struct {
	Severity  syslogprotocol.Severity
	Facility  *syslogprotocol.Facility // nil if unspecified
	Hostname  string
	Name      string
	PID       *int
	Time      time.Time // zero for the nil timestamp
	TimeGiven bool      // false if "time" is absent and the current time applies
	MsgID     string
	Message   string
	Remainder *record.Object // fields not listed in BunyanFields, in original order
}

type bunyanSchema struct {
	Version  *int        `mapstructure:"v"`
	Facility string      `mapstructure:"facility"`
	Hostname string      `mapstructure:"hostname"`
	Name     string      `mapstructure:"name"`
	PID      *int        `mapstructure:"pid"`
	Time     interface{} `mapstructure:"time"`
	Msg      string      `mapstructure:"msg"`
}

// ClassifyBunyan validates a record against the bunyan log record schema
//
// The level is converted before validation and never fails it. Unknown fields are allowed.
func ClassifyBunyan(obj *record.Object) (*BunyanRecord, error) {
	level, _ := obj.Get("level")
	severity := levelmap.MapApplicationLevel(level)

	schema := bunyanSchema{}
	if err := decodeSchema(obj, &schema, false); err != nil {
		return nil, err
	}
	if len(schema.Msg) == 0 {
		return nil, fmt.Errorf(`"%s" is required`, fieldMsg)
	}
	if err := checkMinInt("v", schema.Version, 0); err != nil {
		return nil, err
	}
	if err := checkMinInt("pid", schema.PID, 0); err != nil {
		return nil, err
	}
	if err := checkHostname("hostname", schema.Hostname); err != nil {
		return nil, err
	}
	facility, err := resolveFacility(schema.Facility)
	if err != nil {
		return nil, fmt.Errorf(`"facility" %w`, err)
	}

	result := &BunyanRecord{
		Severity:  severity,
		Facility:  facility,
		Hostname:  schema.Hostname,
		Name:      schema.Name,
		PID:       schema.PID,
		Message:   schema.Msg,
		Remainder: obj.Without(BunyanFields),
	}
	if obj.Has("time") {
		tm, err := bunyanTime(schema.Time)
		if err != nil {
			return nil, err
		}
		result.Time = tm
		result.TimeGiven = true
	}
	if msgID, ok := obj.Get("msgId"); ok && msgID != nil {
		if s, err := cast.ToStringE(msgID); err == nil {
			result.MsgID = s
		}
	}
	return result, nil
}

// bunyanTime accepts a date or any non-empty string; strings which cannot be parsed as date become the nil
// timestamp, as does an explicit false
func bunyanTime(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case bool:
		if !v {
			return time.Time{}, nil
		}
	case string:
		if len(v) == 0 {
			return time.Time{}, fmt.Errorf(`"time" is not allowed to be empty`)
		}
		tm, _ := syslogprotocol.ParseTimestamp(v)
		return tm, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			break
		}
		tm, _ := syslogprotocol.ParseTimestamp(v)
		return tm, nil
	default:
		if tm, ok := syslogprotocol.ParseTimestamp(v); ok {
			return tm, nil
		}
	}
	return time.Time{}, fmt.Errorf(`"time" must be a date or a string: %v`, value)
}
