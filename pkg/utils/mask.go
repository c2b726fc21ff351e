package utils

import "regexp"

var urlPasswordRegex = regexp.MustCompile(`(://[^:/@]+:)([^@]+)(@)`)

// MaskURL hides the password portion of a connection URL before it is logged.
func MaskURL(u string) string {
	return urlPasswordRegex.ReplaceAllString(u, "${1}***${3}")
}
