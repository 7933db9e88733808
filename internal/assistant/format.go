package assistant

import (
	"regexp"
	"strings"
)

var (
	h3Marker   = regexp.MustCompile(`(?m)^###\s*`)
	h2Marker   = regexp.MustCompile(`(?m)^##\s*`)
	boldMarker = regexp.MustCompile(`\*\*(.*?)\*\*`)
	dashBullet = regexp.MustCompile(`(?m)^\s*-\s+`)
)

// FormatReply turns light Markdown into plain transcript text: heading
// markers and bold markers are dropped and "- " items become "• " items.
// It is for display only; history keeps the raw reply.
func FormatReply(raw string) string {
	if raw == "" {
		return ""
	}

	text := h3Marker.ReplaceAllString(raw, "")
	text = h2Marker.ReplaceAllString(text, "")
	text = boldMarker.ReplaceAllString(text, "${1}")
	text = dashBullet.ReplaceAllString(text, "• ")

	return strings.TrimSpace(text)
}
