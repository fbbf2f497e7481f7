package encoder

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/syslogprotocol"
)

// Config defines the options of Encoder, read once at construction
type Config struct {
	DecodeBuffers           bool   `yaml:"decodeBuffers"`           // convert byte records to text
	DecodeJSON              bool   `yaml:"decodeJSON"`              // parse text records as JSON, keeping the text on failure
	UseStructuredData       *bool  `yaml:"useStructuredData"`       // default true unless Type is set
	Type                    string `yaml:"type"`                    // legacy format selector: "BSD" or "RFC3164"; empty for RFC 5424
	DefaultSeverity         string `yaml:"defaultSeverity"`         // severity name for records without their own
	PrivateEnterpriseNumber string `yaml:"privateEnterpriseNumber"` // enables custom SD-ID(s) "<key>@<PEN>" if positive
	Facility                string `yaml:"facility"`
	Hostname                string `yaml:"hostname"`
	AppName                 string `yaml:"appName"`
	MsgID                   string `yaml:"msgId"`
	PID                     string `yaml:"pid"`
}

// VerifyConfig checks the names and selectors in config
func (cfg *Config) VerifyConfig() error {
	if _, err := syslogprotocol.ParseFormat(cfg.Type); err != nil {
		return fmt.Errorf(".type: %w", err)
	}
	if len(cfg.DefaultSeverity) > 0 {
		if _, err := syslogprotocol.SeverityFromName(cfg.DefaultSeverity); err != nil {
			return fmt.Errorf(".defaultSeverity: %w", err)
		}
	}
	if len(cfg.Facility) > 0 {
		if _, err := syslogprotocol.FacilityFromName(cfg.Facility); err != nil {
			return fmt.Errorf(".facility: %w", err)
		}
	}
	return nil
}

// StructuredDataEnabled tells whether the well-known and custom structured data elements are produced
func (cfg *Config) StructuredDataEnabled() bool {
	if cfg.UseStructuredData != nil {
		return *cfg.UseStructuredData
	}
	return len(cfg.Type) == 0
}

// ParsePEN returns the private enterprise number, or 0 if it's unset or invalid
//
// The number is parsed from the leading digits, so "12343.1" gives 12343.
func (cfg *Config) ParsePEN() int {
	text := strings.TrimSpace(cfg.PrivateEnterpriseNumber)
	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	pen, err := strconv.Atoi(text[:end])
	if err != nil || pen <= 0 {
		return 0
	}
	return pen
}

// identity contains the resolved header defaults
type identity struct {
	facility        syslogprotocol.Facility
	defaultSeverity syslogprotocol.Severity
	hostname        string
	appName         string
	procID          string
	msgID           string
}

// resolveIdentity applies the fallback chains of header defaults; config must have been verified
func (cfg *Config) resolveIdentity() identity {
	id := identity{
		facility:        syslogprotocol.MustFacilityFromName(firstNonEmpty(cfg.Facility, defs.DefaultFacility)),
		defaultSeverity: syslogprotocol.MustSeverityFromName(firstNonEmpty(cfg.DefaultSeverity, defs.DefaultSeverity)),
		hostname:        cfg.Hostname,
		appName:         cfg.AppName,
		procID:          cfg.PID,
		msgID:           cfg.MsgID,
	}
	if len(id.hostname) == 0 {
		if hostname, err := os.Hostname(); err == nil {
			id.hostname = hostname
		}
	}
	if len(id.appName) == 0 && len(os.Args) > 0 {
		id.appName = filepath.Base(os.Args[0])
	}
	if len(id.procID) == 0 {
		id.procID = strconv.Itoa(os.Getpid())
	}
	return id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return ""
}
