package ycombinator

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"internship-radar/internal/domain"
	"internship-radar/internal/scrape/types"
	"internship-radar/internal/scrape/util"
)

const jobsURL = "https://news.ycombinator.com/jobs"

// robots.txt on news.ycombinator.com sets Crawl-delay: 30.
const crawlDelay = 30 * time.Second

var internKeywords = []string{
	"intern", "internship", "co-op", "co op", "student",
}

type Scraper struct {
	hc      *http.Client
	limiter *rate.Limiter
}

func New() *Scraper {
	return &Scraper{
		hc:      util.NewHTTPClient(20 * time.Second),
		limiter: rate.NewLimiter(rate.Every(crawlDelay), 1),
	}
}

func (s *Scraper) Name() string { return "ycombinator" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return types.ScrapeResult{Source: "YCombinator"}, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, jobsURL, nil)
	req.Header.Set("User-Agent", util.UserAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return types.ScrapeResult{Source: "YCombinator"}, fmt.Errorf("yc get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return types.ScrapeResult{Source: "YCombinator"}, fmt.Errorf("yc status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return types.ScrapeResult{Source: "YCombinator"}, fmt.Errorf("yc parse: %w", err)
	}

	now := time.Now()
	var out []domain.Job

	doc.Find("tr.athing").Each(func(_ int, row *goquery.Selection) {
		job, ok := parseRow(row, now)
		if !ok {
			return
		}
		if !looksLikeInternship(job) {
			return
		}
		out = append(out, job)
	})

	log.Printf("[ycombinator] internships=%d", len(out))
	return types.ScrapeResult{Source: "YCombinator", Jobs: out}, nil
}

func parseRow(row *goquery.Selection, now time.Time) (domain.Job, bool) {
	rowID, _ := row.Attr("id")
	link := row.Find("span.titleline a").First()
	if link.Length() == 0 {
		return domain.Job{}, false
	}

	title := util.CleanText(link.Text())
	if title == "" {
		return domain.Job{}, false
	}

	href, _ := link.Attr("href")
	if strings.HasPrefix(href, "item?") {
		href = "https://news.ycombinator.com/" + href
	}

	// YC postings are usually titled "Company (YC SXX) is hiring ..."
	company := "Unknown"
	if i := strings.Index(title, "(YC "); i > 0 {
		company = strings.TrimSpace(title[:i])
		for _, sep := range []string{" is ", " Is "} {
			if k := strings.Index(company, sep); k > 0 {
				company = company[:k]
			}
		}
	}

	// posting age lives in the sibling row's span.age title attribute
	posted := now
	if ts, ok := row.Next().Find("span.age").Attr("title"); ok {
		if fields := strings.Fields(ts); len(fields) > 0 {
			if t := util.ParseDate(fields[0]); !t.IsZero() {
				posted = t
			}
		}
	}

	return domain.Job{
		ID:          "yc_" + rowID,
		Title:       title,
		Company:     company,
		Location:    "Varies",
		Description: title, // listing page carries no body text
		URL:         href,
		PostedDate:  posted,
		Source:      "YCombinator",
	}, true
}

func looksLikeInternship(j domain.Job) bool {
	text := strings.ToLower(j.Title + " " + j.URL)
	for _, kw := range internKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
