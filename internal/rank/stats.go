package rank

import "internship-radar/internal/domain"

// KeywordCount is one entry of the top-keywords ranking. A slice keeps the
// count-descending, first-seen-tiebreak ordering that a map would lose.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Stats summarizes a scored, filtered job list.
type Stats struct {
	Total        int            `json:"total"`
	AverageScore float64        `json:"average_score"`
	ScoreMin     int            `json:"score_min"`
	ScoreMax     int            `json:"score_max"`
	TopKeywords  []KeywordCount `json:"top_keywords"`
}

const topKeywordLimit = 10

// Statistics computes summary stats over jobs that already carry relevance
// scores. An empty input returns the zeroed struct, never an error.
func Statistics(jobs []domain.Job) Stats {
	if len(jobs) == 0 {
		return Stats{TopKeywords: []KeywordCount{}}
	}

	sum := 0
	min, max := jobs[0].RelevanceScore, jobs[0].RelevanceScore

	counts := map[string]int{}
	var order []string // first-seen order for tie-breaking

	for _, j := range jobs {
		score := j.RelevanceScore
		sum += score
		if score < min {
			min = score
		}
		if score > max {
			max = score
		}

		if j.Breakdown == nil {
			continue
		}
		for _, kw := range j.Breakdown.TitleMatches {
			if counts[kw] == 0 {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}

	// count-descending; stable over first-seen order resolves ties
	top := make([]KeywordCount, 0, len(order))
	for _, kw := range order {
		top = append(top, KeywordCount{Keyword: kw, Count: counts[kw]})
	}
	for i := 1; i < len(top); i++ {
		for k := i; k > 0 && top[k].Count > top[k-1].Count; k-- {
			top[k], top[k-1] = top[k-1], top[k]
		}
	}
	if len(top) > topKeywordLimit {
		top = top[:topKeywordLimit]
	}

	return Stats{
		Total:        len(jobs),
		AverageScore: float64(sum) / float64(len(jobs)),
		ScoreMin:     min,
		ScoreMax:     max,
		TopKeywords:  top,
	}
}
