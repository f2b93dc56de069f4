package rank

import (
	"log"
	"sort"
	"strings"

	"internship-radar/internal/domain"
)

// Keywords is the scorer's configuration, loaded once at startup from the
// scoring section of config.yml. Ordering matters: internship_keywords are
// expected to lead with the most reliable synonyms (intern/internship/co-op)
// because only the first three are checked against descriptions.
type Keywords struct {
	Internship         []string `yaml:"internship_keywords"`
	IncludeTitle       []string `yaml:"include_title"`
	ExcludeTitle       []string `yaml:"exclude_title"`
	IncludeDescription []string `yaml:"include_description"`
	MinimumMatchScore  int      `yaml:"minimum_match_score"`
}

const (
	titleMatchWeight   = 3
	titleExcludeWeight = -10
	descMatchWeight    = 1

	// descriptions are noisy; only scan a bounded prefix for internship signals
	descScanLimit = 500
	// and only with the most reliable internship synonyms
	descKeywordLimit = 3
)

// DefaultMinimumScore applies when minimum_match_score is absent from config.
const DefaultMinimumScore = 3

type Scorer struct {
	internship   []string
	includeTitle []string
	excludeTitle []string
	includeDesc  []string
	minScore     int
}

// NewScorer lower-cases every keyword once so matching is a plain
// strings.Contains over lower-cased fields.
func NewScorer(kw Keywords) *Scorer {
	minScore := kw.MinimumMatchScore
	if minScore == 0 {
		minScore = DefaultMinimumScore
	}
	return &Scorer{
		internship:   lowerAll(kw.Internship),
		includeTitle: lowerAll(kw.IncludeTitle),
		excludeTitle: lowerAll(kw.ExcludeTitle),
		includeDesc:  lowerAll(kw.IncludeDescription),
		minScore:     minScore,
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}

// MinimumScore returns the relevance threshold in effect.
func (s *Scorer) MinimumScore() int { return s.minScore }

// IsInternship reports whether a posting looks like an internship. Title
// matches are high-precision and checked against the full keyword list;
// description matches fall back to the first descKeywordLimit keywords over
// the first descScanLimit characters.
func (s *Scorer) IsInternship(j domain.Job) bool {
	title := strings.ToLower(j.Title)
	for _, kw := range s.internship {
		if strings.Contains(title, kw) {
			return true
		}
	}

	desc := strings.ToLower(j.Description)
	if len(desc) > descScanLimit {
		desc = desc[:descScanLimit]
	}
	n := len(s.internship)
	if n > descKeywordLimit {
		n = descKeywordLimit
	}
	for _, kw := range s.internship[:n] {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// Score computes the weighted relevance score for a job together with the
// breakdown of which keywords hit where. Scores are unbounded in both
// directions; a single title exclusion outweighs three title inclusions.
func (s *Scorer) Score(j domain.Job) (int, domain.Breakdown) {
	title := strings.ToLower(j.Title)
	desc := strings.ToLower(j.Description)

	bd := domain.Breakdown{
		TitleMatches:       []string{},
		TitleExcludes:      []string{},
		DescriptionMatches: []string{},
	}
	score := 0

	for _, kw := range s.includeTitle {
		if strings.Contains(title, kw) {
			score += titleMatchWeight
			bd.TitleMatches = append(bd.TitleMatches, kw)
		}
	}
	for _, kw := range s.excludeTitle {
		if strings.Contains(title, kw) {
			score += titleExcludeWeight
			bd.TitleExcludes = append(bd.TitleExcludes, kw)
		}
	}
	for _, kw := range s.includeDesc {
		if strings.Contains(desc, kw) {
			score += descMatchWeight
			bd.DescriptionMatches = append(bd.DescriptionMatches, kw)
		}
	}

	bd.TotalScore = score
	return score, bd
}

// IsRelevant reports whether a job meets the minimum relevance threshold.
func (s *Scorer) IsRelevant(j domain.Job) bool {
	score, _ := s.Score(j)
	return score >= s.minScore
}

// Filter keeps the jobs that meet the relevance threshold (optionally
// requiring them to be internships first, which is the cheap rejection),
// attaches score and breakdown to each kept job, and returns them sorted by
// score descending. The sort is stable: ties keep input order.
func (s *Scorer) Filter(jobs []domain.Job, requireInternship bool) []domain.Job {
	kept := make([]domain.Job, 0, len(jobs))

	for _, j := range jobs {
		if requireInternship && !s.IsInternship(j) {
			continue
		}
		score, bd := s.Score(j)
		if score < s.minScore {
			continue
		}
		j.RelevanceScore = score
		j.Breakdown = &bd
		kept = append(kept, j)
	}

	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].RelevanceScore > kept[b].RelevanceScore
	})

	log.Printf("[rank] filtered %d jobs -> %d relevant (min score %d)", len(jobs), len(kept), s.minScore)
	return kept
}
