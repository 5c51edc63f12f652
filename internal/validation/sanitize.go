package validation

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeHTML escapes characters that are dangerous in HTML output.
// Ampersand is escaped first so entities produced by the later
// replacements are not themselves re-escaped within a single pass.
// Applying it twice re-escapes the ampersands of existing entities.
func SanitizeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#x27;")
	s = strings.ReplaceAll(s, "/", "&#x2F;")
	return s
}

// SanitizeText strips anything shaped like an HTML tag, then escapes the
// remainder. Stripping happens before escaping so that an escaped
// "&lt;script&gt;" is never mistaken for a tag. Unlike SanitizeHTML the
// forward slash is left alone, since plain text routinely contains it.
func SanitizeText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#x27;")
	return s
}
