// Package cmd provides the command line of slog-syslog
package cmd

import (
	"github.com/relex/gotils/config"
)

func init() {
	config.AddParentCmdWithArgs("", "slog-syslog converts log records of mixed formats to RFC 5424 syslog lines", &rootCmd, rootCmd.preRun, rootCmd.postRun)
	config.AddCmdWithArgs("encode ...", "Encode log records from files or stdin to syslog lines", &encodeCmd, encodeCmd.run)
}

// Execute parses the command line and runs the specified command
func Execute() {
	// trigger init

	config.Execute()
}
