package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalConfig() Config {
	var cfg Config
	cfg.Scoring.Internship = []string{"intern", "internship", "co-op"}
	cfg.Scoring.IncludeTitle = []string{"design"}
	cfg.Sources.RemoteOK.Enabled = true
	return cfg
}

func TestNormalizeAndValidateDefaults(t *testing.T) {
	cfg, v := NormalizeAndValidate(minimalConfig())
	require.True(t, v.OK(), "errors: %v", v.Errors)

	assert.Equal(t, 3, cfg.Scoring.MinimumMatchScore)
	assert.Equal(t, 0.85, cfg.Dedup.TitleSimilarityThreshold)
	assert.Equal(t, "internships.db", cfg.App.Database)
	assert.Equal(t, "README.md", cfg.App.ReportPath)
	assert.Equal(t, 2.0, cfg.Scrape.RequestsPerSecond)
	assert.Equal(t, 1, cfg.Scrape.Burst)
}

func TestKeywordOrderPreserved(t *testing.T) {
	cfg := minimalConfig()
	cfg.Scoring.Internship = []string{" internship ", "", "intern", "co-op", "intern"}

	out, _ := NormalizeAndValidate(cfg)
	// trimmed, blanks dropped, order and repeats untouched: the scorer's
	// description probe reads the first three as configured
	assert.Equal(t, []string{"internship", "intern", "co-op", "intern"}, out.Scoring.Internship)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"no include keywords",
			func(c *Config) {
				c.Scoring.IncludeTitle = nil
				c.Scoring.IncludeDescription = nil
			},
			"nothing can ever be relevant",
		},
		{
			"no internship keywords",
			func(c *Config) { c.Scoring.Internship = nil },
			"internship_keywords is empty",
		},
		{
			"no sources",
			func(c *Config) { c.Sources.RemoteOK.Enabled = false },
			"no sources enabled",
		},
		{
			"threshold out of range",
			func(c *Config) { c.Dedup.TitleSimilarityThreshold = 1.5 },
			"title_similarity_threshold",
		},
		{
			"company without name",
			func(c *Config) { c.Companies = []Company{{Greenhouse: "figma"}} },
			"empty name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig()
			tt.mutate(&cfg)
			_, v := NormalizeAndValidate(cfg)
			require.False(t, v.OK())
			var found bool
			for _, e := range v.Errors {
				if strings.Contains(e, tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "expected an error containing %q, got %v", tt.wantErr, v.Errors)
		})
	}
}

func TestValidationWarnings(t *testing.T) {
	cfg := minimalConfig()
	cfg.Sources.Greenhouse.Enabled = true // no companies configured
	cfg.Companies = nil

	_, v := NormalizeAndValidate(cfg)
	assert.True(t, v.OK())
	assert.NotEmpty(t, v.Warnings)
}
