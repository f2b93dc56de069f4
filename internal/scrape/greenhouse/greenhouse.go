package greenhouse

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

// Public board API, no auth. Used by Airbnb, Figma, Stripe, Pinterest, etc.
const boardURL = "https://boards-api.greenhouse.io/v1/boards/%s/jobs?content=true"

type Company struct {
	Handle string // boards-api.greenhouse.io/v1/boards/<handle>
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

func (s *Scraper) Name() string { return "greenhouse" }

type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
}

type boardJob struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"` // HTML description
	URL      string `json:"absolute_url"`
	Updated  string `json:"updated_at"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	var out []domain.Job
	for _, co := range s.cfg.Companies {
		jobs, err := s.fetchCompany(ctx, co)
		if err != nil {
			// one dead board must not fail the whole source
			log.Printf("[greenhouse] company=%q err=%v", co.Name, err)
			continue
		}
		log.Printf("[greenhouse] company=%q jobs=%d", co.Name, len(jobs))
		out = append(out, jobs...)
	}
	return types.ScrapeResult{Source: "Greenhouse", Jobs: out}, nil
}

func (s *Scraper) fetchCompany(ctx context.Context, co Company) ([]domain.Job, error) {
	apiURL := fmt.Sprintf(boardURL, co.Handle)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", util.UserAgent)

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greenhouse get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("greenhouse board not found (check handle %q)", co.Handle)
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("greenhouse status %d", res.StatusCode)
	}

	var body boardResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("greenhouse decode: %w", err)
	}

	now := time.Now()
	out := make([]domain.Job, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		posted := util.ParseDate(j.Updated)
		if posted.IsZero() {
			posted = now
		}
		out = append(out, domain.Job{
			ID:          fmt.Sprintf("greenhouse_%d", j.ID),
			Title:       domain.NormField(j.Title),
			Company:     co.Name,
			Location:    domain.NormField(j.Location.Name),
			Description: domain.NormField(j.Content),
			URL:         j.URL,
			PostedDate:  posted,
			Source:      "Greenhouse",
		})
	}
	return out, nil
}
