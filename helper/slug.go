package helper

import (
	"regexp"
	"strings"
)

const maxSlugLen = 50

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL-safe identifier fragment: lower-cased,
// runs of non-alphanumerics collapsed to single hyphens, trimmed and capped
// at 50 characters. Titles that sanitize to nothing become "topic" so a
// valid filename/slug always results.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "topic"
	}
	return slug
}
