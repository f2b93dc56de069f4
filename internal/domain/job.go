package domain

import (
	"strings"
	"time"
)

// Job is the canonical record every source adapter normalizes into.
// IDs are source-namespaced ("greenhouse_12345") and stable per run on a
// given source; the same real-world posting gets different IDs on different
// sources, which is what dedup resolves.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PostedDate  time.Time `json:"posted_date"`
	Source      string    `json:"source"`

	Salary    string  `json:"salary,omitempty"`
	SalaryMin float64 `json:"salary_min,omitempty"`
	SalaryMax float64 `json:"salary_max,omitempty"`

	// Attached by the scorer; zero/nil until a job passes through rank.Filter.
	RelevanceScore int        `json:"relevance_score,omitempty"`
	Breakdown      *Breakdown `json:"score_breakdown,omitempty"`
}

// Breakdown explains how a relevance score was computed. Keyword lists keep
// first-match order and are not de-duplicated.
type Breakdown struct {
	TitleMatches       []string `json:"title_matches"`
	TitleExcludes      []string `json:"title_excludes"`
	DescriptionMatches []string `json:"description_matches"`
	TotalScore         int      `json:"total_score"`
}

// sentinel strings that upstream serialization turns missing values into
var sentinels = map[string]bool{
	"nan":  true,
	"none": true,
	"null": true,
}

// NormField trims a raw source field and collapses sentinel-null values
// ("nan", "none", "null") to the empty string. Adapters apply it once at the
// boundary so the scorer and deduplicator only ever see plain strings.
func NormField(s string) string {
	s = strings.TrimSpace(s)
	if sentinels[strings.ToLower(s)] {
		return ""
	}
	return s
}

// MissingField reports whether a field carries no usable data after trimming
// and the sentinel check. Dedup calls this on its comparison keys so that
// lists built without going through an adapter behave the same way.
func MissingField(s string) bool {
	return NormField(s) == ""
}
