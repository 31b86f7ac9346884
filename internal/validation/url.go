// Package validation validates user input before it reaches the queue or the dispatcher.
package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	ipv4Octet = `(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)`
	domain    = `(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}`
	ipv4      = `(?:` + ipv4Octet + `\.){3}` + ipv4Octet
	port      = `(?:6553[0-5]|655[0-2]\d|65[0-4]\d{2}|6[0-4]\d{3}|[1-5]\d{4}|[1-9]\d{0,3})`
)

// urlPattern accepts an optional http(s) scheme, a dotted domain or IPv4 host,
// then optional port (1-65535), path, query and fragment.
var urlPattern = regexp.MustCompile(`(?i)^(?:https?://)?` +
	`(?:` + domain + `|` + ipv4 + `)` +
	`(?::` + port + `)?` +
	`(?:/[-a-z0-9._~%!$&'()*+,;=:@/]*)?` +
	`(?:\?[^\s#]*)?` +
	`(?:#\S*)?$`)

// ValidateURL reports whether the trimmed input is a well-formed URL.
func ValidateURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	return urlPattern.MatchString(raw)
}

// DecodeFully percent-decodes s until a pass no longer changes it.
//
// A string that cannot be decoded (a stray '%' or an escape producing invalid UTF-8)
// is treated as already decoded and returned as is.
func DecodeFully(s string) string {
	for {
		decoded, err := url.PathUnescape(s)
		if err != nil || !utf8.ValidString(decoded) || decoded == s {
			return s
		}
		s = decoded
	}
}
