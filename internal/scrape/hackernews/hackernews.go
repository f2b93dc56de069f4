// Package hackernews mines the monthly "Ask HN: Who is hiring?" thread via
// the Algolia HN search API. Each top-level comment is one unstructured
// posting; extraction here is heuristic by nature, so the output leans on the
// downstream scorer rather than trying to be precise.
package hackernews

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"internship-radar/internal/domain"
	"internship-radar/internal/scrape/types"
	"internship-radar/internal/scrape/util"
)

const (
	searchURL = "https://hn.algolia.com/api/v1/search"
	itemURL   = "https://hn.algolia.com/api/v1/items/%s"
	hnItemURL = "https://news.ycombinator.com/item"
)

var designKeywords = []string{
	"design", "ux", "ui", "user experience", "user interface",
	"product design", "visual design", "interaction design",
	"figma", "sketch", "adobe xd",
}

var internKeywords = []string{
	"intern", "internship", "co-op", "co op",
}

type Scraper struct {
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		hc:      util.NewHTTPClient(20 * time.Second),
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "hackernews" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	threadID, err := s.findHiringThread(ctx)
	if err != nil {
		return types.ScrapeResult{Source: "Hacker News"}, err
	}
	if threadID == "" {
		log.Printf("[hackernews] no hiring thread found")
		return types.ScrapeResult{Source: "Hacker News"}, nil
	}

	comments, err := s.fetchThread(ctx, threadID)
	if err != nil {
		return types.ScrapeResult{Source: "Hacker News"}, err
	}

	now := time.Now()
	var out []domain.Job
	for _, c := range comments {
		if j, ok := parseComment(c, now); ok {
			out = append(out, j)
		}
	}

	log.Printf("[hackernews] thread=%s comments=%d jobs=%d", threadID, len(comments), len(out))
	return types.ScrapeResult{Source: "Hacker News", Jobs: out}, nil
}

func (s *Scraper) findHiringThread(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("query", "Ask HN: Who is hiring?")
	params.Set("tags", "story")
	params.Set("hitsPerPage", "5")

	body, err := s.get(ctx, searchURL+"?"+params.Encode())
	if err != nil {
		return "", err
	}

	var id string
	gjson.GetBytes(body, "hits").ForEach(func(_, hit gjson.Result) bool {
		title := strings.ToLower(hit.Get("title").String())
		if strings.Contains(title, "who is hiring") && strings.Contains(title, "ask hn") {
			id = hit.Get("objectID").String()
			return false
		}
		return true
	})
	return id, nil
}

func (s *Scraper) fetchThread(ctx context.Context, threadID string) ([]gjson.Result, error) {
	body, err := s.get(ctx, fmt.Sprintf(itemURL, threadID))
	if err != nil {
		return nil, err
	}
	// only the story's direct children are postings; replies are discussion
	return gjson.GetBytes(body, "children").Array(), nil
}

func (s *Scraper) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	req.Header.Set("User-Agent", util.UserAgent)

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, rawURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hackernews get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("hackernews status %d", res.StatusCode)
	}
	return io.ReadAll(res.Body)
}

func parseComment(c gjson.Result, now time.Time) (domain.Job, bool) {
	text := c.Get("text").String()
	if text == "" {
		return domain.Job{}, false
	}

	lower := strings.ToLower(text)
	if !containsAny(lower, designKeywords) || !containsAny(lower, internKeywords) {
		return domain.Job{}, false
	}

	clean := util.StripHTML(text)
	commentID := c.Get("id").String()
	if commentID == "" {
		commentID = c.Get("objectID").String()
	}

	posted := util.ParseDate(c.Get("created_at").String())
	if posted.IsZero() {
		posted = now
	}

	desc := clean
	if len(desc) > 500 {
		desc = desc[:500]
	}

	return domain.Job{
		ID:          "hn_" + commentID,
		Title:       extractTitle(clean),
		Company:     extractCompany(clean),
		Location:    extractLocation(clean),
		Description: desc,
		URL:         hnItemURL + "?id=" + commentID,
		PostedDate:  posted,
		Source:      "Hacker News",
	}, true
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var (
	hiringRe   = regexp.MustCompile(`(?m)^([A-Z][A-Za-z0-9\s&.-]+?)\s+(?:is|are)\s+hiring`)
	companyRe  = regexp.MustCompile(`(?i)Company:\s*([^\n|]+)`)
	locationRe = regexp.MustCompile(`(?i)Location:\s*([^\n|]+)`)
	cityRe     = regexp.MustCompile(`\b([A-Z][a-z]+,\s*(?:CA|NY|TX|MA|WA|OR|CO))\b`)
	remoteRe   = regexp.MustCompile(`(?i)\bremote\b`)
	titleRe    = regexp.MustCompile(`(?i)(?:Product|UX|UI|User Experience|Visual|Interaction)\s+Design(?:er)?\s+Intern(?:ship)?|Design\s+Intern(?:ship)?`)
)

// extractCompany pulls a company name from the conventional "Company | Location |
// Remote" first line, falling back through looser patterns.
func extractCompany(text string) string {
	firstLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		firstLine = text[:i]
	}
	if parts := strings.SplitN(firstLine, "|", 2); len(parts) == 2 {
		if name := strings.TrimSpace(parts[0]); name != "" && len(name) < 50 {
			return name
		}
	}
	if m := hiringRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := companyRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Startup (via HN)"
}

func extractLocation(text string) string {
	if m := locationRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := cityRe.FindString(text); m != "" {
		return m
	}
	if remoteRe.MatchString(text) {
		return "Remote"
	}
	return "See posting"
}

func extractTitle(text string) string {
	if m := titleRe.FindString(text); m != "" {
		return util.CleanText(m)
	}
	if strings.Contains(strings.ToLower(text), "intern") {
		return "Design Internship"
	}
	return "Product Design Intern"
}
