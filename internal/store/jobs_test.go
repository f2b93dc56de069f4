package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-radar/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db.Pool))
}

func TestUpsertJobs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	jobs := []domain.Job{
		{
			ID: "greenhouse_1", Title: "UX Design Intern", Company: "Figma",
			Location: "Remote", URL: "https://example.com/1", Source: "greenhouse",
			PostedDate:     time.Now().Add(-time.Hour),
			RelevanceScore: 7,
			Breakdown:      &domain.Breakdown{TitleMatches: []string{"design", "intern"}, TotalScore: 7},
		},
		{
			ID: "lever_2", Title: "Product Design Intern", Company: "Stripe",
			Source: "lever", RelevanceScore: 6,
		},
	}

	inserted, updated, err := UpsertJobs(ctx, db.Pool, jobs)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 0, updated)

	// same IDs again, one with a changed score: all count as updates
	jobs[0].RelevanceScore = 9
	inserted, updated, err = UpsertJobs(ctx, db.Pool, jobs)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, 2, updated)

	total, err := CountAll(ctx, db.Pool)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	var score int
	var breakdown string
	require.NoError(t, db.Pool.QueryRow(
		`SELECT relevance_score, score_breakdown FROM intern_jobs WHERE id = ?;`,
		"greenhouse_1").Scan(&score, &breakdown))
	assert.Equal(t, 9, score)
	assert.Contains(t, breakdown, `"design"`)
}

func TestUpsertEmptyBatch(t *testing.T) {
	db := openTestDB(t)
	inserted, updated, err := UpsertJobs(context.Background(), db.Pool, nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Zero(t, updated)
}

func TestCounts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, _, err := UpsertJobs(ctx, db.Pool, []domain.Job{
		{ID: "a", Title: "t", Company: "c", PostedDate: time.Now()},
		{ID: "b", Title: "t", Company: "c", PostedDate: time.Now().AddDate(0, 0, -30)},
		{ID: "c", Title: "t", Company: "c"}, // no posted date
	})
	require.NoError(t, err)

	today, err := CountPostedToday(ctx, db.Pool)
	require.NoError(t, err)
	assert.Equal(t, 1, today)

	recent, err := CountFirstSeenSince(ctx, db.Pool, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 3, recent)

	none, err := CountFirstSeenSince(ctx, db.Pool, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, none)
}
