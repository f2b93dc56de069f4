// Package linkedin pulls from the unauthenticated jobs-guest search endpoint,
// which serves paginated HTML cards. It is the broadest and flakiest source;
// anything it misparses is cheap noise for the scorer to reject.
package linkedin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"internship-radar/internal/domain"
	"internship-radar/internal/scrape/types"
	"internship-radar/internal/scrape/util"
)

const (
	searchURL   = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"
	jobsPerPage = 25
	maxPages    = 4
)

type Config struct {
	Keywords []string // one search per term, e.g. "UX intern", "design intern"
	Location string
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		cfg:     cfg,
		hc:      util.NewHTTPClient(20 * time.Second),
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "linkedin" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	now := time.Now()
	seen := map[string]bool{}
	var out []domain.Job

	for _, term := range s.cfg.Keywords {
		jobs, err := s.search(ctx, term, now)
		if err != nil {
			// guest endpoint throttles aggressively; keep whatever we have
			log.Printf("[linkedin] term=%q err=%v", term, err)
			continue
		}
		for _, j := range jobs {
			if seen[j.ID] {
				continue
			}
			seen[j.ID] = true
			out = append(out, j)
		}
		log.Printf("[linkedin] term=%q jobs=%d", term, len(jobs))
	}

	return types.ScrapeResult{Source: "LinkedIn", Jobs: out}, nil
}

func (s *Scraper) search(ctx context.Context, term string, now time.Time) ([]domain.Job, error) {
	var out []domain.Job

	for page := 0; page < maxPages; page++ {
		params := url.Values{}
		params.Set("keywords", term)
		if s.cfg.Location != "" {
			params.Set("location", s.cfg.Location)
		}
		params.Set("start", strconv.Itoa(page*jobsPerPage))
		params.Set("sortBy", "DD")

		pageURL := searchURL + "?" + params.Encode()
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		req.Header.Set("User-Agent", util.UserAgent)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		if s.limiter != nil {
			if err := s.limiter.WaitURL(ctx, pageURL); err != nil {
				return out, err
			}
		}
		res, err := s.hc.Do(req)
		if err != nil {
			return out, fmt.Errorf("linkedin get: %w", err)
		}
		if res.StatusCode == http.StatusTooManyRequests {
			res.Body.Close()
			return out, fmt.Errorf("linkedin rate limited")
		}
		if res.StatusCode >= 400 {
			res.Body.Close()
			return out, fmt.Errorf("linkedin status %d", res.StatusCode)
		}

		doc, err := goquery.NewDocumentFromReader(res.Body)
		res.Body.Close()
		if err != nil {
			return out, fmt.Errorf("linkedin parse: %w", err)
		}

		cards := doc.Find("div.base-card")
		if cards.Length() == 0 {
			break // past the last page
		}

		cards.Each(func(_ int, card *goquery.Selection) {
			if j, ok := parseCard(card, now); ok {
				out = append(out, j)
			}
		})
	}
	return out, nil
}

func parseCard(card *goquery.Selection, now time.Time) (domain.Job, bool) {
	title := util.CleanText(card.Find("h3.base-search-card__title").Text())
	company := util.CleanText(card.Find("h4.base-search-card__subtitle").Text())
	location := util.CleanText(card.Find("span.job-search-card__location").Text())
	jobURL, _ := card.Find("a.base-card__full-link").Attr("href")

	if title == "" || jobURL == "" {
		return domain.Job{}, false
	}

	// the URN carries the numeric posting id: urn:li:jobPosting:123456
	id := ""
	if urn, ok := card.Attr("data-entity-urn"); ok {
		if i := strings.LastIndexByte(urn, ':'); i >= 0 {
			id = urn[i+1:]
		}
	}
	if id == "" {
		id = jobURL
	}

	posted := now
	if dt, ok := card.Find("time").Attr("datetime"); ok {
		if t := util.ParseDate(dt); !t.IsZero() {
			posted = t
		}
	}

	if location == "" {
		location = "Remote"
	}

	return domain.Job{
		ID:          "linkedin_" + id,
		Title:       domain.NormField(title),
		Company:     domain.NormField(company),
		Location:    location,
		Description: "", // search cards carry no body; scorer works off the title
		URL:         jobURL,
		PostedDate:  posted,
		Source:      "LinkedIn",
	}, true
}
