package stream

import (
	"fmt"

	"github.com/c2h5oh/datasize"
	"github.com/relex/slog-syslog/defs"
	"github.com/relex/slog-syslog/encoder"
	"github.com/relex/slog-syslog/util"
	"gopkg.in/yaml.v3"
)

// InputFormat defines how records are separated in input streams
type InputFormat string

// Supported input formats
const (
	FormatLines   InputFormat = "lines"   // one text record per line
	FormatMsgpack InputFormat = "msgpack" // concatenated msgpack values
)

// Config is the top-level configuration of the encode command
type Config struct {
	Encoder       encoder.Config    `yaml:"encoder"`
	Format        InputFormat       `yaml:"format"`        // default "lines"
	MaxRecordSize datasize.ByteSize `yaml:"maxRecordSize"` // max length of one line in "lines" format, default 1MB
}

// ParseInputFormat checks the name of input format. Empty name means FormatLines.
func ParseInputFormat(name string) (InputFormat, error) {
	switch InputFormat(name) {
	case "", FormatLines:
		return FormatLines, nil
	case FormatMsgpack:
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unsupported input format '%s'", name)
	}
}

// UnmarshalYAML parses and checks the name of input format
func (f *InputFormat) UnmarshalYAML(node *yaml.Node) error {
	format, err := ParseInputFormat(node.Value)
	if err != nil {
		return util.NewYamlError(node, err.Error())
	}
	*f = format
	return nil
}

// LoadConfig loads and verifies configuration from YAML file. Empty path gives the default configuration.
func LoadConfig(path string) (Config, error) {
	cfg := Config{Format: FormatLines}
	if len(path) > 0 {
		if err := util.UnmarshalYamlFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := cfg.VerifyConfig(); err != nil {
		return cfg, fmt.Errorf("config%w", err)
	}
	return cfg, nil
}

// VerifyConfig checks configuration
func (cfg *Config) VerifyConfig() error {
	if err := cfg.Encoder.VerifyConfig(); err != nil {
		return fmt.Errorf(".encoder%w", err)
	}
	if _, err := ParseInputFormat(string(cfg.Format)); err != nil {
		return fmt.Errorf(".format: %w", err)
	}
	return nil
}

// MaxRecordBytes returns the effective max record size in bytes
func (cfg *Config) MaxRecordBytes() int {
	if cfg.MaxRecordSize.Bytes() == 0 {
		return defs.InputMaxRecordBytes
	}
	return int(cfg.MaxRecordSize.Bytes())
}
