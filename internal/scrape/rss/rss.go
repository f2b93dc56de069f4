// Package rss aggregates remote-job feeds (We Work Remotely, Remotive,
// Himalayas, Jobspresso). Feeds are not queryable, so everything is pulled
// and pre-filtered locally on design keywords before the scorer sees it.
package rss

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"internship-radar/internal/domain"
	"internship-radar/internal/scrape/types"
	"internship-radar/internal/scrape/util"
)

var designKeywords = []string{
	"design", "ux", "ui", "user experience", "user interface",
	"product design", "visual design", "figma", "sketch",
}

type Config struct {
	Feeds map[string]string // display name -> feed URL
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
	parser  *gofeed.Parser
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		cfg:     cfg,
		hc:      util.NewHTTPClient(15 * time.Second),
		limiter: limiter,
		parser:  gofeed.NewParser(),
	}
}

func (s *Scraper) Name() string { return "rss" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	now := time.Now()
	var out []domain.Job

	for feedName, feedURL := range s.cfg.Feeds {
		jobs, err := s.fetchFeed(ctx, feedName, feedURL, now)
		if err != nil {
			log.Printf("[rss] feed=%q err=%v", feedName, err)
			continue
		}
		log.Printf("[rss] feed=%q jobs=%d", feedName, len(jobs))
		out = append(out, jobs...)
	}

	return types.ScrapeResult{Source: "RSS", Jobs: out}, nil
}

func (s *Scraper) fetchFeed(ctx context.Context, feedName, feedURL string, now time.Time) ([]domain.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", util.UserAgent)

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, feedURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rss get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("rss status %d", res.StatusCode)
	}

	feed, err := s.parser.Parse(res.Body)
	if err != nil {
		return nil, fmt.Errorf("rss parse: %w", err)
	}

	var out []domain.Job
	for _, item := range feed.Items {
		if item == nil || !isDesignRelated(item) {
			continue
		}
		out = append(out, normalizeItem(item, feedName, now))
	}
	return out, nil
}

func isDesignRelated(item *gofeed.Item) bool {
	blob := strings.ToLower(item.Title + " " + item.Description)
	for _, kw := range designKeywords {
		if strings.Contains(blob, kw) {
			return true
		}
	}
	return false
}

func normalizeItem(item *gofeed.Item, feedName string, now time.Time) domain.Job {
	posted := now
	if item.PublishedParsed != nil {
		posted = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		posted = *item.UpdatedParsed
	}

	desc := util.StripHTML(item.Description)
	if len(desc) > 500 {
		desc = desc[:500]
	}

	// feed links are the only stable identity these feeds offer
	sum := sha1.Sum([]byte(item.Link))
	id := fmt.Sprintf("rss_%s_%s",
		strings.ToLower(strings.ReplaceAll(feedName, " ", "_")),
		hex.EncodeToString(sum[:8]))

	return domain.Job{
		ID:          id,
		Title:       domain.NormField(item.Title),
		Company:     extractCompany(item),
		Location:    "Remote", // all four feeds are remote-only boards
		Description: desc,
		URL:         item.Link,
		PostedDate:  posted,
		Source:      "RSS (" + feedName + ")",
	}
}

// extractCompany works through the conventions the feeds actually use:
// author field, "Company: Title", "Title at Company", "Company - Title".
func extractCompany(item *gofeed.Item) string {
	if item.Author != nil {
		if name := strings.TrimSpace(item.Author.Name); name != "" && len(name) < 100 {
			return name
		}
	}

	title := item.Title
	if i := strings.Index(title, ":"); i > 0 {
		if company := strings.TrimSpace(title[:i]); company != "" && len(company) < 50 {
			return company
		}
	}
	if i := strings.LastIndex(title, " at "); i > 0 {
		if company := strings.TrimSpace(title[i+4:]); company != "" && len(company) < 50 {
			return company
		}
	}
	if i := strings.Index(title, " - "); i > 0 {
		company := strings.TrimSpace(title[:i])
		lower := strings.ToLower(company)
		if company != "" && len(company) < 50 &&
			!strings.Contains(lower, "remote") && !strings.Contains(lower, "design") {
			return company
		}
	}

	for _, cat := range item.Categories {
		if cat != "" && !strings.Contains(strings.ToLower(cat), "company") {
			return cat
		}
	}
	return "Remote Company"
}
