package themuse

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"internship-radar/internal/domain"
	"internship-radar/internal/scrape/types"
	"internship-radar/internal/scrape/util"
)

const (
	baseURL = "https://www.themuse.com/api/public/jobs"

	// 3600 req/h on the free tier; a handful of pages is plenty
	maxPages = 5
)

type Config struct {
	APIKey   string // from THEMUSE_API_KEY; empty disables the source
	Category string // e.g. "Design"
	Level    string // e.g. "Internship"
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

func (s *Scraper) Name() string { return "themuse" }

type pageResponse struct {
	Results   []museJob `json:"results"`
	PageCount int       `json:"page_count"`
}

type museJob struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Contents string `json:"contents"`
	PubDate  string `json:"publication_date"`
	Company  struct {
		Name string `json:"name"`
	} `json:"company"`
	Locations []struct {
		Name string `json:"name"`
	} `json:"locations"`
	Refs struct {
		LandingPage string `json:"landing_page"`
	} `json:"refs"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	if s.cfg.APIKey == "" {
		log.Printf("[themuse] skipping (no API key)")
		return types.ScrapeResult{Source: "TheMuse"}, nil
	}

	now := time.Now()
	var out []domain.Job

	for page := 0; page < maxPages; page++ {
		results, pageCount, err := s.fetchPage(ctx, page)
		if err != nil {
			return types.ScrapeResult{Source: "TheMuse"}, err
		}
		if len(results) == 0 {
			break
		}
		for _, j := range results {
			out = append(out, s.normalize(j, now))
		}
		if page >= pageCount-1 {
			break
		}
	}

	log.Printf("[themuse] category=%q level=%q jobs=%d", s.cfg.Category, s.cfg.Level, len(out))
	return types.ScrapeResult{Source: "TheMuse", Jobs: out}, nil
}

func (s *Scraper) fetchPage(ctx context.Context, page int) ([]museJob, int, error) {
	params := url.Values{}
	params.Set("category", s.cfg.Category)
	params.Set("level", s.cfg.Level)
	params.Set("page", strconv.Itoa(page))
	params.Set("descending", "true")
	params.Set("api_key", s.cfg.APIKey)

	apiURL := baseURL + "?" + params.Encode()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", util.UserAgent)

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, 0, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("themuse get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, 0, fmt.Errorf("themuse status %d", res.StatusCode)
	}

	var body pageResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("themuse decode: %w", err)
	}
	return body.Results, body.PageCount, nil
}

func (s *Scraper) normalize(j museJob, now time.Time) domain.Job {
	var locs []string
	for _, l := range j.Locations {
		if name := domain.NormField(l.Name); name != "" {
			locs = append(locs, name)
		}
	}
	loc := strings.Join(locs, ", ")
	if loc == "" {
		loc = "Remote"
	}

	posted := util.ParseDate(j.PubDate)
	if posted.IsZero() {
		posted = now
	}

	return domain.Job{
		ID:          fmt.Sprintf("themuse_%d", j.ID),
		Title:       domain.NormField(j.Name),
		Company:     domain.NormField(j.Company.Name),
		Location:    loc,
		Description: domain.NormField(util.StripHTML(j.Contents)),
		URL:         j.Refs.LandingPage,
		PostedDate:  posted,
		Source:      "TheMuse",
	}
}
