package sdata

import (
	"net"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

const maxHostnameLength = 255

var hostnamePattern = regexp.MustCompile(`^(([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9])\.)*([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9\-]*[A-Za-z0-9])$`)

// IsHostnameOrIP checks if the value is a syntactically valid hostname (RFC 1123), IPv4 or IPv6 address
func IsHostnameOrIP(value string) bool {
	if len(value) == 0 || len(value) > maxHostnameLength {
		return false
	}
	if net.ParseIP(value) != nil {
		return true
	}
	return hostnamePattern.MatchString(value)
}

// IsLanguageTag checks if the value is a well-formed BCP-47 language tag made of registered subtags
func IsLanguageTag(value string) bool {
	if len(value) == 0 || strings.ContainsAny(value, "_ ") {
		return false
	}
	_, err := language.Parse(value)
	return err == nil
}
