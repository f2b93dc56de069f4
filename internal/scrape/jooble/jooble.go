package jooble

import (
	"bytes"
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

// Jooble's search API takes the key as a path segment and a POST body with
// the query. It returns snippets, not full descriptions.
const apiURL = "https://jooble.org/api/%s"

type Config struct {
	APIKey   string // JOOBLE_API_KEY; empty disables the source
	Keywords string
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

func (s *Scraper) Name() string { return "jooble" }

type searchResponse struct {
	Jobs []joobleJob `json:"jobs"`
}

type joobleJob struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Company  string      `json:"company"`
	Location string      `json:"location"`
	Snippet  string      `json:"snippet"`
	Salary   string      `json:"salary"`
	Link     string      `json:"link"`
	Updated  string      `json:"updated"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	if s.cfg.APIKey == "" {
		log.Printf("[jooble] skipping (no API key)")
		return types.ScrapeResult{Source: "Jooble"}, nil
	}

	payload, _ := json.Marshal(map[string]string{
		"keywords": s.cfg.Keywords,
		"page":     "1",
	})

	endpoint := fmt.Sprintf(apiURL, s.cfg.APIKey)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	req.Header.Set("User-Agent", util.UserAgent)
	req.Header.Set("Content-Type", "application/json")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, endpoint); err != nil {
			return types.ScrapeResult{Source: "Jooble"}, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return types.ScrapeResult{Source: "Jooble"}, fmt.Errorf("jooble post: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusUnauthorized {
		return types.ScrapeResult{Source: "Jooble"}, fmt.Errorf("jooble unauthorized (check API key)")
	}
	if res.StatusCode >= 400 {
		return types.ScrapeResult{Source: "Jooble"}, fmt.Errorf("jooble status %d", res.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return types.ScrapeResult{Source: "Jooble"}, fmt.Errorf("jooble decode: %w", err)
	}

	now := time.Now()
	out := make([]domain.Job, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		loc := domain.NormField(j.Location)
		if loc == "" {
			loc = "Remote"
		}
		company := domain.NormField(j.Company)
		if company == "" {
			company = "Unknown"
		}
		posted := util.ParseDate(j.Updated)
		if posted.IsZero() {
			posted = now
		}
		out = append(out, domain.Job{
			ID:          "jooble_" + j.ID.String(),
			Title:       domain.NormField(j.Title),
			Company:     company,
			Location:    loc,
			Description: domain.NormField(util.StripHTML(j.Snippet)),
			URL:         j.Link,
			PostedDate:  posted,
			Source:      "Jooble",
			Salary:      domain.NormField(j.Salary),
		})
	}

	log.Printf("[jooble] keywords=%q jobs=%d", s.cfg.Keywords, len(out))
	return types.ScrapeResult{Source: "Jooble", Jobs: out}, nil
}
