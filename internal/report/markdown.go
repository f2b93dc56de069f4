package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"internship-radar/internal/domain"
)

// Stats feeds the quick-stats header. NewThisWeek comes from the store
// (first_seen cutoff), the rest is derived from the job list.
type Stats struct {
	NewThisWeek int
}

// Markdown renders the full README: quick stats, the listing table sorted by
// relevance score (date breaks ties), and a per-company roll-up.
func Markdown(jobs []domain.Job, stats Stats) string {
	companies := map[string]int{}
	remote := 0
	for _, j := range jobs {
		companies[j.Company]++
		if strings.Contains(strings.ToLower(j.Location), "remote") {
			remote++
		}
	}

	sorted := make([]domain.Job, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, k int) bool {
		if sorted[i].RelevanceScore != sorted[k].RelevanceScore {
			return sorted[i].RelevanceScore > sorted[k].RelevanceScore
		}
		return sorted[i].PostedDate.After(sorted[k].PostedDate)
	})

	var b strings.Builder

	fmt.Fprintf(&b, "# UI/UX Design Internships\n\n")
	fmt.Fprintf(&b, "> Curated list of UI/UX design internships, updated daily.\n\n")
	fmt.Fprintf(&b, "**Last Updated:** %s\n\n", time.Now().Format("2006-01-02 15:04 MST"))

	b.WriteString("## Quick Stats\n\n")
	b.WriteString("| Metric | Count |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Total Internships | %d |\n", len(jobs))
	fmt.Fprintf(&b, "| New This Week | %d |\n", stats.NewThisWeek)
	fmt.Fprintf(&b, "| Companies Hiring | %d |\n", len(companies))
	fmt.Fprintf(&b, "| Remote Opportunities | %d |\n\n", remote)

	b.WriteString("---\n\n## All Internships\n\n")
	b.WriteString("| Company | Role | Location | Salary | Posted | Source | Apply |\n")
	b.WriteString("|---------|------|----------|--------|--------|--------|-------|\n")

	for _, j := range sorted {
		company := orDefault(j.Company, "Unknown")
		title := truncate(orDefault(j.Title, "Untitled"), 50)
		location := truncate(orDefault(j.Location, "N/A"), 30)
		url := j.URL
		if url == "" {
			url = "#"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | [Apply](%s) |\n",
			company, title, location, FormatSalary(j), relativeDate(j.PostedDate),
			orDefault(j.Source, "Unknown"), url)
	}

	b.WriteString("\n---\n\n## Companies Currently Hiring\n\n")
	names := make([]string, 0, len(companies))
	for name := range companies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n := companies[name]
		noun := "positions"
		if n == 1 {
			noun = "position"
		}
		fmt.Fprintf(&b, "- **%s** (%d %s)\n", name, n, noun)
	}

	b.WriteString("\n---\n\n")
	b.WriteString("All listings are filtered for UI/UX design internship relevance " +
		"using keyword scoring, then deduplicated across sources. Always verify " +
		"details on the company's career page before applying.\n\n")
	b.WriteString("Remote jobs powered by [RemoteOK](https://remoteok.com).\n")

	return b.String()
}

func relativeDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	if t.After(time.Now()) {
		return "Just posted"
	}
	return humanize.Time(t)
}

// FormatSalary prefers the source's pre-formatted string (Jooble, LinkedIn)
// and falls back to the min/max pair (Adzuna, RemoteOK). Amounts over $1000
// read as annual, under as hourly.
func FormatSalary(j domain.Job) string {
	if s := strings.TrimSpace(j.Salary); s != "" {
		s = strings.ReplaceAll(s, " USD", "")
		s = strings.ReplaceAll(s, " usd", "")
		if strings.Contains(s, "$") && strings.Contains(s, "-") && !strings.Contains(s, "/") {
			last := s[strings.LastIndex(s, "-")+1:]
			last = strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(last))
			if v, err := strconv.ParseFloat(last, 64); err == nil && v < 100 {
				s += "/hr"
			}
		}
		return s
	}

	lo, hi := j.SalaryMin, j.SalaryMax
	if lo == 0 && hi == 0 {
		return "-"
	}

	if lo == hi {
		return "$" + humanize.Comma(int64(lo)) + unit(lo)
	}

	var parts []string
	if lo > 0 {
		parts = append(parts, "$"+humanize.Comma(int64(lo)))
	}
	if hi > 0 {
		parts = append(parts, "$"+humanize.Comma(int64(hi)))
	}
	ref := hi
	if ref == 0 {
		ref = lo
	}
	return strings.Join(parts, " - ") + unit(ref)
}

func unit(amount float64) string {
	if amount > 1000 {
		return "/yr"
	}
	return "/hr"
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
