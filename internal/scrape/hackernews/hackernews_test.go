package hackernews

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestExtractCompany(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"pipe header", "Figma | San Francisco, CA | ONSITE We need a product design intern", "Figma"},
		{"is hiring", "Linear is hiring a design intern to join our team", "Linear"},
		{"company field", "Company: Tailscale\nLocation: Remote\nWe want a UX intern", "Tailscale"},
		{"no signal", "we are a stealth startup looking for a ux intern", "Startup (via HN)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCompany(tt.text))
		})
	}
}

func TestExtractLocation(t *testing.T) {
	assert.Equal(t, "Remote", extractLocation("fully remote design internship"))
	assert.Equal(t, "Berlin or remote", extractLocation("Location: Berlin or remote\nUX intern wanted"))
	assert.Equal(t, "Portland, OR", extractLocation("Our office in Portland, OR needs an intern"))
	assert.Equal(t, "See posting", extractLocation("design internship, details inside"))
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Product Design Intern", extractTitle("seeking a Product Design Intern for summer"))
	assert.Equal(t, "UX Design Internship", extractTitle("paid UX Design Internship available"))
	assert.Equal(t, "Design Internship", extractTitle("intern wanted for our studio"))
}

func TestParseComment(t *testing.T) {
	now := time.Now()

	comment := gjson.Parse(`{
		"id": 12345,
		"created_at": "2026-08-01T10:30:00Z",
		"text": "Figma | San Francisco, CA | Remote OK<p>We are looking for a <b>Product Design Intern</b> who lives in Figma."
	}`)

	j, ok := parseComment(comment, now)
	require.True(t, ok)
	assert.Equal(t, "hn_12345", j.ID)
	assert.Equal(t, "Figma", j.Company)
	assert.Equal(t, "Product Design Intern", j.Title)
	assert.Equal(t, "Hacker News", j.Source)
	assert.Equal(t, "https://news.ycombinator.com/item?id=12345", j.URL)
	assert.Equal(t, 2026, j.PostedDate.Year())
	assert.NotContains(t, j.Description, "<p>")
}

func TestParseCommentRejectsIrrelevant(t *testing.T) {
	now := time.Now()

	// backend role, no design keywords
	_, ok := parseComment(gjson.Parse(`{"id": 1, "text": "Acme | Remote. Backend engineering intern wanted, Go and Postgres."}`), now)
	assert.False(t, ok)

	// design role but not an internship
	_, ok = parseComment(gjson.Parse(`{"id": 2, "text": "Acme | Remote. Senior product designer, full time."}`), now)
	assert.False(t, ok)

	// deleted comment
	_, ok = parseComment(gjson.Parse(`{"id": 3, "text": ""}`), now)
	assert.False(t, ok)
}
