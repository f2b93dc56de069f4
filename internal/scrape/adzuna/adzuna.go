package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"internship-radar/internal/domain"
	"internship-radar/internal/scrape/types"
	"internship-radar/internal/scrape/util"
)

const (
	searchURL = "https://api.adzuna.com/v1/api/jobs/us/search/%d"

	// free tier is 1000 calls/month; two pages of 50 keep the quota sane
	maxPages       = 2
	resultsPerPage = 50
)

type Config struct {
	AppID  string // ADZUNA_APP_ID; empty disables the source
	AppKey string // ADZUNA_APP_KEY
	Query  string
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

func (s *Scraper) Name() string { return "adzuna" }

type searchResponse struct {
	Results []adzunaJob `json:"results"`
	Count   int         `json:"count"`
}

type adzunaJob struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Created     string  `json:"created"`
	RedirectURL string  `json:"redirect_url"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		Area []string `json:"area"`
	} `json:"location"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	if s.cfg.AppID == "" || s.cfg.AppKey == "" {
		log.Printf("[adzuna] skipping (no API credentials)")
		return types.ScrapeResult{Source: "Adzuna"}, nil
	}

	now := time.Now()
	var out []domain.Job

	for page := 1; page <= maxPages; page++ {
		results, total, err := s.fetchPage(ctx, page)
		if err != nil {
			return types.ScrapeResult{Source: "Adzuna"}, err
		}
		if len(results) == 0 {
			break
		}
		for _, j := range results {
			out = append(out, s.normalize(j, now))
		}
		if len(out) >= total {
			break
		}
	}

	log.Printf("[adzuna] query=%q jobs=%d", s.cfg.Query, len(out))
	return types.ScrapeResult{Source: "Adzuna", Jobs: out}, nil
}

func (s *Scraper) fetchPage(ctx context.Context, page int) ([]adzunaJob, int, error) {
	params := url.Values{}
	params.Set("app_id", s.cfg.AppID)
	params.Set("app_key", s.cfg.AppKey)
	params.Set("what", s.cfg.Query)
	params.Set("results_per_page", fmt.Sprint(resultsPerPage))
	params.Set("content-type", "application/json")

	apiURL := fmt.Sprintf(searchURL, page) + "?" + params.Encode()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", util.UserAgent)

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, 0, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("adzuna get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, 0, fmt.Errorf("adzuna status %d", res.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("adzuna decode: %w", err)
	}
	return body.Results, body.Count, nil
}

func (s *Scraper) normalize(j adzunaJob, now time.Time) domain.Job {
	loc := "Remote"
	if len(j.Location.Area) > 0 {
		loc = strings.Join(j.Location.Area, ", ")
	}

	posted := util.ParseDate(j.Created)
	if posted.IsZero() {
		posted = now
	}

	company := domain.NormField(j.Company.DisplayName)
	if company == "" {
		company = "Unknown"
	}

	return domain.Job{
		ID:          "adzuna_" + j.ID,
		Title:       domain.NormField(j.Title),
		Company:     company,
		Location:    loc,
		Description: domain.NormField(j.Description),
		URL:         j.RedirectURL,
		PostedDate:  posted,
		Source:      "Adzuna",
		SalaryMin:   j.SalaryMin,
		SalaryMax:   j.SalaryMax,
	}
}
