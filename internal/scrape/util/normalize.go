package util

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

// UserAgent identifies the tracker to the public APIs it pulls from. RemoteOK
// in particular asks for a descriptive agent string.
const UserAgent = "internship-radar/1.0 (job aggregation; batch; contact via repo)"

// NewHTTPClient is the shared client constructor for adapters.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// CleanText collapses whitespace runs and NBSPs into single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// StripHTML is a crude tag stripper for sources that only ship HTML bodies
// (HN comments, RSS summaries). Good enough for keyword matching; not a
// sanitizer.
func StripHTML(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#x27;", "'")
	s = strings.ReplaceAll(s, "&#39;", "'")
	return CleanText(s)
}

// ParseDate copes with the date shapes the sources actually emit: RFC3339
// with or without zone, bare dates, and RFC1123 (RSS). Zero time means
// unparseable; callers substitute the scrape time.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		time.RFC1123Z,
		time.RFC1123,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
