package classify

import (
	"fmt"
	"time"

	"github.com/relex/slog-syslog/record"
	"github.com/relex/slog-syslog/syslogprotocol"
)

const fieldMessage = "message"

// GlossyRecord is a log record following the glossy wire record convention
type GlossyRecord struct {
	Facility       *syslogprotocol.Facility // nil if unspecified
	Severity       *syslogprotocol.Severity // nil if unspecified
	Host           string
	AppName        string
	PID            *int
	Date           *time.Time // nil if unspecified
	Message        string
	StructuredData *record.Object // nil if unspecified
}

type glossySchema struct {
	Facility       string      `mapstructure:"facility"`
	Severity       string      `mapstructure:"severity"`
	Host           string      `mapstructure:"host"`
	AppName        string      `mapstructure:"appName"`
	PID            *int        `mapstructure:"pid"`
	Date           *time.Time  `mapstructure:"date"`
	Message        string      `mapstructure:"message"`
	StructuredData interface{} `mapstructure:"structuredData"`
}

// ClassifyGlossy validates a record against the strict glossy wire record schema
//
// Any field outside of the schema fails the validation.
func ClassifyGlossy(obj *record.Object) (*GlossyRecord, error) {
	schema := glossySchema{}
	if err := decodeSchema(obj, &schema, true); err != nil {
		return nil, err
	}
	if len(schema.Message) == 0 {
		return nil, fmt.Errorf(`"%s" is required`, fieldMessage)
	}
	if err := checkMinInt("pid", schema.PID, 0); err != nil {
		return nil, err
	}
	if err := checkHostname("host", schema.Host); err != nil {
		return nil, err
	}
	facility, err := resolveFacility(schema.Facility)
	if err != nil {
		return nil, fmt.Errorf(`"facility" %w`, err)
	}

	result := &GlossyRecord{
		Facility: facility,
		Host:     schema.Host,
		AppName:  schema.AppName,
		PID:      schema.PID,
		Date:     schema.Date,
		Message:  schema.Message,
	}
	if len(schema.Severity) > 0 {
		severity, err := syslogprotocol.SeverityFromName(schema.Severity)
		if err != nil {
			return nil, fmt.Errorf(`"severity" %w`, err)
		}
		result.Severity = &severity
	}
	if schema.StructuredData != nil {
		sd, ok := record.AsObject(schema.StructuredData)
		if !ok {
			return nil, fmt.Errorf(`"structuredData" must be an object`)
		}
		result.StructuredData = sd
	}
	return result, nil
}
