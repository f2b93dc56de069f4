package config

import (
	"fmt"
	"strings"

	"internship-radar/internal/dedup"
	"internship-radar/internal/rank"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg plus everything a
// startup check should complain about. Keyword lists keep their configured
// order — the scorer depends on it — so normalization only trims entries,
// never reorders or de-duplicates them.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimKeep := func(xs []string) []string {
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			ys = append(ys, x)
		}
		return ys
	}

	out.Scoring.Internship = trimKeep(out.Scoring.Internship)
	out.Scoring.IncludeTitle = trimKeep(out.Scoring.IncludeTitle)
	out.Scoring.ExcludeTitle = trimKeep(out.Scoring.ExcludeTitle)
	out.Scoring.IncludeDescription = trimKeep(out.Scoring.IncludeDescription)

	// ---- Defaults ----

	if out.Scoring.MinimumMatchScore == 0 {
		out.Scoring.MinimumMatchScore = rank.DefaultMinimumScore
	}
	if out.Dedup.TitleSimilarityThreshold == 0 {
		out.Dedup.TitleSimilarityThreshold = dedup.DefaultTitleThreshold
	}
	if out.App.Database == "" {
		out.App.Database = "internships.db"
	}
	if out.App.ReportPath == "" {
		out.App.ReportPath = "README.md"
	}
	if out.Scrape.RequestsPerSecond <= 0 {
		out.Scrape.RequestsPerSecond = 2
	}
	if out.Scrape.Burst <= 0 {
		out.Scrape.Burst = 1
	}

	// ---- Validation rules ----

	// scoring is meaningless without keyword configuration
	if len(out.Scoring.IncludeTitle) == 0 && len(out.Scoring.IncludeDescription) == 0 {
		res.addErr("scoring: include_title and include_description are both empty; nothing can ever be relevant")
	}
	if len(out.Scoring.Internship) == 0 {
		res.addErr("scoring: internship_keywords is empty; internship detection cannot work")
	} else if len(out.Scoring.Internship) < 3 {
		res.addWarn("scoring: fewer than 3 internship_keywords; description fallback checks the first 3")
	}
	if out.Scoring.MinimumMatchScore < 0 {
		res.addWarn("scoring: minimum_match_score is negative (%d); almost everything will pass", out.Scoring.MinimumMatchScore)
	}

	if out.Dedup.TitleSimilarityThreshold < 0 || out.Dedup.TitleSimilarityThreshold > 1 {
		res.addErr("dedup: title_similarity_threshold must be in [0,1], got %v", out.Dedup.TitleSimilarityThreshold)
	} else if out.Dedup.TitleSimilarityThreshold < 0.5 {
		res.addWarn("dedup: title_similarity_threshold %.2f is very loose; distinct roles may merge", out.Dedup.TitleSimilarityThreshold)
	}

	companySources := out.Sources.Greenhouse.Enabled || out.Sources.Lever.Enabled ||
		out.Sources.Ashby.Enabled || out.Sources.Workable.Enabled
	if companySources && len(out.Companies) == 0 {
		res.addWarn("companies list is empty; ATS sources will find nothing")
	}

	anyEnabled := companySources ||
		out.Sources.RemoteOK.Enabled || out.Sources.TheMuse.Enabled ||
		out.Sources.Adzuna.Enabled || out.Sources.Jooble.Enabled ||
		out.Sources.HackerNews.Enabled || out.Sources.YCombinator.Enabled ||
		out.Sources.LinkedIn.Enabled || out.Sources.RSS.Enabled
	if !anyEnabled {
		res.addErr("no sources enabled")
	}

	if out.Sources.RSS.Enabled && len(out.Sources.RSS.Feeds) == 0 {
		res.addWarn("sources.rss enabled with no feeds configured")
	}
	if out.Sources.LinkedIn.Enabled && len(out.Sources.LinkedIn.Keywords) == 0 {
		res.addWarn("sources.linkedin enabled with no search keywords")
	}

	for _, c := range out.Companies {
		if strings.TrimSpace(c.Name) == "" {
			res.addErr("companies: entry with empty name")
		}
		if c.Greenhouse == "" && c.Lever == "" && c.Ashby == "" && c.Workable == "" {
			res.addWarn("companies: %q has no ATS handle and will never be scraped", c.Name)
		}
	}

	return out, res
}
