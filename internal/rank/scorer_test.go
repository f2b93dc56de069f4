package rank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-radar/internal/domain"
)

func testKeywords() Keywords {
	return Keywords{
		Internship:         []string{"intern", "internship", "co-op", "apprentice"},
		IncludeTitle:       []string{"design", "intern"},
		ExcludeTitle:       []string{"senior", "manager"},
		IncludeDescription: []string{"figma", "sketch", "wireframe"},
	}
}

func TestScoreUXDesignIntern(t *testing.T) {
	s := NewScorer(testKeywords())

	job := domain.Job{
		Title:       "UX Design Intern",
		Description: "Work in Figma alongside our product team.",
	}

	score, bd := s.Score(job)
	assert.Equal(t, 7, score) // design +3, intern +3, figma +1
	assert.Equal(t, []string{"design", "intern"}, bd.TitleMatches)
	assert.Equal(t, []string{}, bd.TitleExcludes)
	assert.Equal(t, []string{"figma"}, bd.DescriptionMatches)
	assert.Equal(t, 7, bd.TotalScore)
	assert.True(t, s.IsRelevant(job))
}

func TestSeniorRoleExcluded(t *testing.T) {
	s := NewScorer(testKeywords())

	job := domain.Job{
		Title:       "Senior Software Engineer",
		Description: "Ship design systems, live in Figma and Sketch all day.",
	}

	// no internship keyword anywhere: dropped before scoring even though the
	// description would earn points
	assert.False(t, s.IsInternship(job))
	kept := s.Filter([]domain.Job{job}, true)
	assert.Empty(t, kept)
}

func TestScoreDeltas(t *testing.T) {
	s := NewScorer(testKeywords())

	base := domain.Job{Title: "design person", Description: "nothing relevant"}
	baseScore, _ := s.Score(base)

	tests := []struct {
		name  string
		job   domain.Job
		delta int
	}{
		{"include_title adds 3", domain.Job{Title: "design intern person", Description: base.Description}, 3},
		{"exclude_title subtracts 10", domain.Job{Title: "senior design person", Description: base.Description}, -10},
		{"include_description adds 1", domain.Job{Title: base.Title, Description: "we use figma"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := s.Score(tt.job)
			assert.Equal(t, baseScore+tt.delta, got)
		})
	}
}

func TestThresholdBoundaryInclusive(t *testing.T) {
	s := NewScorer(testKeywords())
	require.Equal(t, 3, s.MinimumScore())

	// three description matches: exactly the threshold
	at := domain.Job{Title: "intern role", Description: "figma sketch wireframe"}
	atScore, _ := s.Score(at)
	require.Equal(t, 3+3, atScore) // "intern" title +3 as well

	onlyDesc := domain.Job{Title: "open position", Description: "figma sketch wireframe"}
	score, _ := s.Score(onlyDesc)
	require.Equal(t, 3, score)
	assert.True(t, s.IsRelevant(onlyDesc))

	below := domain.Job{Title: "open position", Description: "figma sketch"}
	score, _ = s.Score(below)
	require.Equal(t, 2, score)
	assert.False(t, s.IsRelevant(below))
}

func TestIsInternship(t *testing.T) {
	s := NewScorer(testKeywords())

	tests := []struct {
		name string
		job  domain.Job
		want bool
	}{
		{"keyword in title", domain.Job{Title: "Design Apprentice"}, true},
		{"case-insensitive title", domain.Job{Title: "SUMMER INTERNSHIP"}, true},
		{"top-3 keyword in description", domain.Job{Title: "Designer", Description: "This is a paid co-op position"}, true},
		{"late keyword not probed in description", domain.Job{Title: "Designer", Description: "apprentice program"}, false},
		{"keyword beyond scan limit", domain.Job{Title: "Designer", Description: strings.Repeat("x", 600) + " intern"}, false},
		{"empty fields", domain.Job{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsInternship(tt.job))
		})
	}
}

func TestFilterSortsByScoreStable(t *testing.T) {
	s := NewScorer(testKeywords())

	jobs := []domain.Job{
		{ID: "a", Title: "design intern", Description: ""},                   // 6
		{ID: "b", Title: "intern", Description: "figma"},                     // 4
		{ID: "c", Title: "design intern", Description: "figma"},              // 7
		{ID: "d", Title: "intern", Description: "sketch"},                    // 4, ties with b
	}

	kept := s.Filter(jobs, true)
	require.Len(t, kept, 4)

	var ids []string
	for _, j := range kept {
		ids = append(ids, j.ID)
	}
	// score descending, stable over input order for the tie
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids)
	assert.Equal(t, 7, kept[0].RelevanceScore)
	require.NotNil(t, kept[0].Breakdown)
	assert.Equal(t, 7, kept[0].Breakdown.TotalScore)
}

func TestFilterEmptyInput(t *testing.T) {
	s := NewScorer(testKeywords())
	assert.Empty(t, s.Filter(nil, true))
	assert.Empty(t, s.Filter([]domain.Job{}, false))
}

func TestNegativeScoresPossible(t *testing.T) {
	s := NewScorer(testKeywords())
	job := domain.Job{Title: "Senior Design Manager Intern"}
	score, bd := s.Score(job)
	assert.Equal(t, 3+3-10-10, score)
	assert.Len(t, bd.TitleExcludes, 2)
}
