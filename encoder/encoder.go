// Package encoder converts log records of any shape into RFC 5424 syslog lines
//
// Encoding never fails: records which cannot be encoded as text, bunyan or glossy records are rendered as JSON
// in the message part of the line.
package encoder

import (
	"fmt"
	"strconv"
	"time"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-syslog/classify"
	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/record"
	"github.com/relex/slog-syslog/safejson"
	"github.com/relex/slog-syslog/sdata"
	"github.com/relex/slog-syslog/syslogprotocol"
)

// Encoder encodes records to syslog lines
//
// Encoder holds no mutable state besides metrics and can be used from multiple goroutines.
type Encoder struct {
	logger            logger.Logger
	format            syslogprotocol.Format
	decodeBuffers     bool
	decodeJSON        bool
	useStructuredData bool
	validator         sdata.Validator
	identity          identity
	metrics           *Metrics
	now               func() time.Time
}

// encoding is the intermediate result of one record before rendering
type encoding struct {
	header             syslogprotocol.Header
	data               *sdata.Set
	message            string
	extra              *record.Object
	sdValidationFailed bool
}

// NewEncoder creates an Encoder from verified or unverified config
func NewEncoder(parentLogger logger.Logger, config Config, metrics *Metrics) (*Encoder, error) {
	if err := config.VerifyConfig(); err != nil {
		return nil, err
	}
	if metrics == nil {
		return nil, fmt.Errorf("metrics must not be nil")
	}
	format, _ := syslogprotocol.ParseFormat(config.Type)
	enc := &Encoder{
		logger:            parentLogger.WithField(defs.LabelComponent, "SyslogEncoder"),
		format:            format,
		decodeBuffers:     config.DecodeBuffers,
		decodeJSON:        config.DecodeJSON,
		useStructuredData: config.StructuredDataEnabled(),
		validator:         sdata.NewValidator(config.ParsePEN()),
		identity:          config.resolveIdentity(),
		metrics:           metrics,
		now:               time.Now,
	}
	enc.logger.Infof("format=%s structuredData=%t PEN=%d facility=%s defaultSeverity=%s hostname=%s appName=%s",
		enc.format, enc.useStructuredData, enc.validator.PEN(), enc.identity.facility, enc.identity.defaultSeverity,
		enc.identity.hostname, enc.identity.appName)
	return enc, nil
}

// MustNewEncoder creates an Encoder or panics on invalid config
func MustNewEncoder(parentLogger logger.Logger, config Config, metrics *Metrics) *Encoder {
	enc, err := NewEncoder(parentLogger, config, metrics)
	if err != nil {
		logger.Panic(err)
	}
	return enc
}

// Encode encodes a raw record to one newline-terminated syslog line
//
// The raw record is not modified.
func (enc *Encoder) Encode(raw interface{}) string {
	return string(enc.EncodeTo(make([]byte, 0, defs.OutputInitialLineBytes), raw))
}

// EncodeTo appends the syslog line of a raw record to buf
func (enc *Encoder) EncodeTo(buf []byte, raw interface{}) []byte {
	normalized := record.Normalize(raw, enc.decodeBuffers, enc.decodeJSON)
	result := classify.Classify(normalized)
	for _, rej := range result.Rejections {
		enc.logger.Debugf("record rejected as %s: %s", rej.Classification, rej.Reason)
	}

	var e encoding
	switch result.Classification {
	case classify.PlainText:
		e = enc.encodePlainText(result.Text)
	case classify.BunyanStyle:
		e = enc.encodeBunyan(result.Bunyan)
	case classify.GlossyStyle:
		e = enc.encodeGlossy(result.Glossy)
	default:
		e = enc.encodeJSON(raw)
	}

	message := e.message
	if e.extra != nil {
		message = message + " " + safejson.Render(e.extra)
	}
	var sd string
	if e.data != nil {
		sd = e.data.String()
	}
	start := len(buf)
	buf = syslogprotocol.AppendLine(buf, enc.format, &e.header, sd, message)
	enc.metrics.onEncoded(result.Classification, len(buf)-start, e.sdValidationFailed)
	return buf
}

func (enc *Encoder) defaultHeader() syslogprotocol.Header {
	return syslogprotocol.Header{
		Facility:  enc.identity.facility,
		Severity:  enc.identity.defaultSeverity,
		Timestamp: enc.now(),
		Hostname:  enc.identity.hostname,
		AppName:   enc.identity.appName,
		ProcID:    enc.identity.procID,
		MsgID:     enc.identity.msgID,
	}
}

func (enc *Encoder) encodePlainText(text string) encoding {
	return encoding{header: enc.defaultHeader(), message: text}
}

func (enc *Encoder) encodeJSON(raw interface{}) encoding {
	return encoding{header: enc.defaultHeader(), message: safejson.Render(raw)}
}

func (enc *Encoder) encodeBunyan(rec *classify.BunyanRecord) encoding {
	e := encoding{header: enc.defaultHeader(), message: rec.Message}
	e.header.Severity = rec.Severity
	if rec.Facility != nil {
		e.header.Facility = *rec.Facility
	}
	if len(rec.Hostname) > 0 {
		e.header.Hostname = rec.Hostname
	}
	if len(rec.Name) > 0 {
		e.header.AppName = rec.Name
	}
	if rec.PID != nil {
		e.header.ProcID = formatPID(*rec.PID)
	}
	if rec.TimeGiven {
		e.header.Timestamp = rec.Time
	}
	if len(rec.MsgID) > 0 {
		e.header.MsgID = rec.MsgID
	}

	switch {
	case enc.useStructuredData:
		enc.applyStructuredData(&e, rec.Remainder)
	case rec.Remainder.Len() > 0:
		e.extra = rec.Remainder
	}
	return e
}

func (enc *Encoder) encodeGlossy(rec *classify.GlossyRecord) encoding {
	e := encoding{header: enc.defaultHeader(), message: rec.Message}
	if rec.Facility != nil {
		e.header.Facility = *rec.Facility
	}
	if rec.Severity != nil {
		e.header.Severity = *rec.Severity
	}
	if len(rec.Host) > 0 {
		e.header.Hostname = rec.Host
	}
	if len(rec.AppName) > 0 {
		e.header.AppName = rec.AppName
	}
	if rec.PID != nil {
		e.header.ProcID = formatPID(*rec.PID)
	}
	if rec.Date != nil {
		e.header.Timestamp = *rec.Date
	}
	if enc.useStructuredData && rec.StructuredData != nil {
		enc.applyStructuredData(&e, rec.StructuredData)
	}
	return e
}

func (enc *Encoder) applyStructuredData(e *encoding, fields *record.Object) {
	result := enc.validator.Validate(fields)
	e.data = result.Data
	e.extra = result.Extra
	if result.Error != nil {
		e.sdValidationFailed = true
		enc.logger.Debugf("invalid structured data: %s", result.Error.Message)
	}
}

func formatPID(pid int) string {
	return strconv.Itoa(pid)
}
