package helper

import (
	"regexp"
	"strings"
)

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// Underscore converts a StructField name like "OldPassword" to "old_password"
// for validation error keys.
func Underscore(s string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(s, `${1}_${2}`))
}
