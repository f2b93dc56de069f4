package workable

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"internship-radar/internal/domain"
	"internship-radar/internal/scrape/types"
	"internship-radar/internal/scrape/util"
)

// Public widget API, no auth.
const widgetURL = "https://apply.workable.com/api/v1/widget/accounts/%s"

type Company struct {
	Handle string
	Name   string
}

type Config struct {
	Companies []Company
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

func (s *Scraper) Name() string { return "workable" }

type widgetResponse struct {
	Jobs []widgetJob `json:"jobs"`
}

type widgetJob struct {
	Shortcode   string `json:"shortcode"`
	Title       string `json:"title"`
	City        string `json:"city"`
	Country     string `json:"country"`
	URL         string `json:"url"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	Department  string `json:"department"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	var out []domain.Job
	for _, co := range s.cfg.Companies {
		jobs, err := s.fetchCompany(ctx, co)
		if err != nil {
			log.Printf("[workable] company=%q err=%v", co.Name, err)
			continue
		}
		log.Printf("[workable] company=%q jobs=%d", co.Name, len(jobs))
		out = append(out, jobs...)
	}
	return types.ScrapeResult{Source: "Workable", Jobs: out}, nil
}

func (s *Scraper) fetchCompany(ctx context.Context, co Company) ([]domain.Job, error) {
	apiURL := fmt.Sprintf(widgetURL, co.Handle)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", util.UserAgent)
	req.Header.Set("Accept", "application/json")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("workable get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("workable status %d", res.StatusCode)
	}

	var body widgetResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("workable decode: %w", err)
	}

	now := time.Now()
	out := make([]domain.Job, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		if j.Shortcode == "" {
			continue
		}
		loc := domain.NormField(j.City)
		if country := domain.NormField(j.Country); country != "" {
			if loc != "" {
				loc = loc + ", " + country
			} else {
				loc = country
			}
		}
		if loc == "" {
			loc = "Remote"
		}
		jobURL := j.URL
		if jobURL == "" {
			jobURL = fmt.Sprintf("https://apply.workable.com/%s/j/%s/", co.Handle, j.Shortcode)
		}
		posted := util.ParseDate(j.CreatedAt)
		if posted.IsZero() {
			posted = now
		}
		out = append(out, domain.Job{
			ID:          fmt.Sprintf("workable_%s", j.Shortcode),
			Title:       domain.NormField(j.Title),
			Company:     co.Name,
			Location:    loc,
			Description: domain.NormField(j.Description),
			URL:         jobURL,
			PostedDate:  posted,
			Source:      "Workable",
		})
	}
	return out, nil
}
