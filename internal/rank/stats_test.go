package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-radar/internal/domain"
)

func TestStatisticsEmpty(t *testing.T) {
	st := Statistics(nil)
	assert.Equal(t, 0, st.Total)
	assert.Equal(t, 0.0, st.AverageScore)
	assert.Equal(t, 0, st.ScoreMin)
	assert.Equal(t, 0, st.ScoreMax)
	assert.Empty(t, st.TopKeywords)
	assert.NotNil(t, st.TopKeywords)
}

func TestStatistics(t *testing.T) {
	jobs := []domain.Job{
		{RelevanceScore: 7, Breakdown: &domain.Breakdown{TitleMatches: []string{"design", "intern"}}},
		{RelevanceScore: 3, Breakdown: &domain.Breakdown{TitleMatches: []string{"intern"}}},
		{RelevanceScore: 5, Breakdown: &domain.Breakdown{TitleMatches: []string{"ux", "intern"}}},
		{RelevanceScore: 4}, // scored but breakdown lost; still counts toward the range
	}

	st := Statistics(jobs)
	assert.Equal(t, 4, st.Total)
	assert.InDelta(t, 4.75, st.AverageScore, 1e-9)
	assert.Equal(t, 3, st.ScoreMin)
	assert.Equal(t, 7, st.ScoreMax)

	require.Len(t, st.TopKeywords, 3)
	assert.Equal(t, KeywordCount{Keyword: "intern", Count: 3}, st.TopKeywords[0])
	// tie between design and ux resolves to first-seen order
	assert.Equal(t, KeywordCount{Keyword: "design", Count: 1}, st.TopKeywords[1])
	assert.Equal(t, KeywordCount{Keyword: "ux", Count: 1}, st.TopKeywords[2])
}

func TestStatisticsTopKeywordsCapped(t *testing.T) {
	var jobs []domain.Job
	keywords := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for _, kw := range keywords {
		jobs = append(jobs, domain.Job{
			RelevanceScore: 3,
			Breakdown:      &domain.Breakdown{TitleMatches: []string{kw}},
		})
	}

	st := Statistics(jobs)
	assert.Len(t, st.TopKeywords, 10)
}
