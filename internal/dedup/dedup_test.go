package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-radar/internal/domain"
)

func TestAreDuplicate(t *testing.T) {
	d := New(0)

	tests := []struct {
		name string
		a, b domain.Job
		want bool
	}{
		{
			"exact ID",
			domain.Job{ID: "greenhouse_1", Company: "Figma"},
			domain.Job{ID: "greenhouse_1", Company: "Stripe"},
			true,
		},
		{
			"similar titles same company",
			domain.Job{ID: "a", Company: "Figma", Title: "Product Design Intern"},
			domain.Job{ID: "b", Company: "Figma", Title: "Product Design Internship"},
			true,
		},
		{
			"exact title case-insensitive",
			domain.Job{ID: "a", Company: "figma", Title: "UX INTERN"},
			domain.Job{ID: "b", Company: "Figma", Title: "ux intern"},
			true,
		},
		{
			"dissimilar titles same company",
			domain.Job{ID: "a", Company: "Figma", Title: "Product Design Intern"},
			domain.Job{ID: "b", Company: "Figma", Title: "Engineering Intern"},
			false,
		},
		{
			"different companies",
			domain.Job{ID: "a", Company: "Figma", Title: "Product Design Intern"},
			domain.Job{ID: "b", Company: "Stripe", Title: "Product Design Intern"},
			false,
		},
		{
			"sentinel company never merges",
			domain.Job{ID: "a", Company: "nan", Title: "Product Design Intern"},
			domain.Job{ID: "b", Company: "nan", Title: "Product Design Intern"},
			false,
		},
		{
			"empty company never merges",
			domain.Job{ID: "a", Company: "", Title: "Product Design Intern"},
			domain.Job{ID: "b", Company: "", Title: "Product Design Intern"},
			false,
		},
		{
			"sentinel title never merges",
			domain.Job{ID: "a", Company: "Figma", Title: "None"},
			domain.Job{ID: "b", Company: "Figma", Title: "none"},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := d.AreDuplicate(tt.a, tt.b)
			assert.Equal(t, tt.want, got, reason)

			// symmetric rules: order of arguments never changes the verdict
			rev, _ := d.AreDuplicate(tt.b, tt.a)
			assert.Equal(t, got, rev)
		})
	}
}

func TestDeduplicateKeepsHigherScore(t *testing.T) {
	d := New(0)

	a := domain.Job{ID: "gh_1", Company: "Figma", Title: "Product Design Intern", RelevanceScore: 10}
	b := domain.Job{ID: "lv_2", Company: "Figma", Title: "Product Design Internship", RelevanceScore: 8}

	out := d.Deduplicate([]domain.Job{a, b})
	require.Len(t, out, 1)
	assert.Equal(t, "gh_1", out[0].ID)

	// reversed input: the later, higher-scored record replaces the earlier one
	out = d.Deduplicate([]domain.Job{b, a})
	require.Len(t, out, 1)
	assert.Equal(t, "gh_1", out[0].ID)
}

func TestDeduplicateRetainsDistinctRoles(t *testing.T) {
	d := New(0)

	jobs := []domain.Job{
		{ID: "gh_1", Company: "Figma", Title: "Product Design Intern", RelevanceScore: 10},
		{ID: "gh_2", Company: "Figma", Title: "Engineering Intern", RelevanceScore: 6},
	}
	out := d.Deduplicate(jobs)
	assert.Len(t, out, 2)
}

func TestDeduplicateIdempotent(t *testing.T) {
	d := New(0)

	jobs := []domain.Job{
		{ID: "gh_1", Company: "Figma", Title: "Product Design Intern", RelevanceScore: 10},
		{ID: "lv_1", Company: "Figma", Title: "Product Design Internship", RelevanceScore: 8},
		{ID: "gh_2", Company: "Stripe", Title: "UX Research Intern", RelevanceScore: 7},
		{ID: "rr_1", Company: "nan", Title: "Design Intern", RelevanceScore: 5},
	}

	once := d.Deduplicate(jobs)
	twice := d.Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestDeduplicateEmpty(t *testing.T) {
	d := New(0)
	out := d.Deduplicate(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestFindDuplicates(t *testing.T) {
	d := New(0)

	jobs := []domain.Job{
		{ID: "gh_1", Company: "Figma", Title: "Product Design Intern"},
		{ID: "lv_1", Company: "Figma", Title: "Product Design Internship"},
		{ID: "gh_2", Company: "Stripe", Title: "Product Design Intern"},
	}

	pairs := d.FindDuplicates(jobs)
	require.Len(t, pairs, 1)
	assert.Equal(t, "gh_1", pairs[0].A.ID)
	assert.Equal(t, "lv_1", pairs[0].B.ID)
	assert.Contains(t, pairs[0].Reason, "similar titles")

	// read-only: input order untouched
	assert.Equal(t, "gh_1", jobs[0].ID)
	assert.Len(t, jobs, 3)
}

func TestCustomThreshold(t *testing.T) {
	// a very strict threshold keeps near-identical titles apart
	strict := New(0.99)
	a := domain.Job{ID: "a", Company: "Figma", Title: "Product Design Intern"}
	b := domain.Job{ID: "b", Company: "Figma", Title: "Product Design Internship"}
	dup, _ := strict.AreDuplicate(a, b)
	assert.False(t, dup)

	assert.Equal(t, DefaultTitleThreshold, New(0).titleThreshold)
	assert.Equal(t, DefaultTitleThreshold, New(-1).titleThreshold)
}
