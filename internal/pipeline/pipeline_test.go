package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-radar/internal/config"
	"internship-radar/internal/domain"
	"internship-radar/internal/store"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	var cfg config.Config
	cfg.App.ReportPath = filepath.Join(t.TempDir(), "README.md")
	cfg.Scoring.Internship = []string{"intern", "internship", "co-op"}
	cfg.Scoring.IncludeTitle = []string{"design", "ux", "intern"}
	cfg.Scoring.ExcludeTitle = []string{"senior"}
	cfg.Scoring.IncludeDescription = []string{"figma"}
	cfg.Sources.RemoteOK.Enabled = true

	cfg, v := config.NormalizeAndValidate(cfg)
	require.True(t, v.OK(), "errors: %v", v.Errors)
	return cfg
}

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return db
}

func TestRun(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")

	cfg := testConfig(t)
	p := New(cfg, testDB(t))

	scraped := []domain.Job{
		{ID: "gh_1", Title: "Product Design Intern", Company: "Figma", Description: "figma", Source: "greenhouse", PostedDate: time.Now()},
		{ID: "lv_1", Title: "Product Design Internship", Company: "Figma", Source: "lever"},
		{ID: "ro_1", Title: "Senior Designer", Company: "Acme", Source: "remoteok"},
		{ID: "hn_1", Title: "UX Design Intern", Company: "Stripe", Source: "hackernews"},
	}
	p.fetch = func(ctx context.Context, cfg config.Config) ([]domain.Job, map[string]int) {
		return scraped, map[string]int{"greenhouse": 1, "lever": 1, "remoteok": 1, "hackernews": 1}
	}

	counts, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, counts.Scraped)
	// "Senior Designer" is not an internship and scores negative anyway
	assert.Equal(t, 3, counts.Filtered)
	// the two Figma design-intern postings collapse into one
	assert.Equal(t, 2, counts.Unique)
	assert.Equal(t, 2, counts.New)
	assert.Equal(t, 0, counts.Updated)

	md, err := os.ReadFile(cfg.App.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "| Figma |")
	assert.Contains(t, string(md), "| Stripe |")
	assert.NotContains(t, string(md), "Senior Designer")

	// second run over the same input: nothing new, everything refreshed
	counts, err = p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, counts.New)
	assert.Equal(t, 2, counts.Updated)
}

func TestRunEmptyFetch(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "")

	cfg := testConfig(t)
	p := New(cfg, testDB(t))
	p.fetch = func(ctx context.Context, cfg config.Config) ([]domain.Job, map[string]int) {
		return nil, map[string]int{}
	}

	counts, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts.Scraped)
	assert.Zero(t, counts.Unique)

	// the report still gets written, with zeroed stats
	md, err := os.ReadFile(cfg.App.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "| Total Internships | 0 |")
}
