package lever

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"internship-radar/internal/domain"
	"internship-radar/internal/scrape/types"
	"internship-radar/internal/scrape/util"
)

const postingsURL = "https://api.lever.co/v0/postings/%s?mode=json"

type Company struct {
	Handle string // api.lever.co/v0/postings/<handle>
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

func (s *Scraper) Name() string { return "lever" }

type posting struct {
	ID         string `json:"id"`
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	CreatedAt  int64  `json:"createdAt"` // ms epoch
	Categories struct {
		Location   string `json:"location"`
		Team       string `json:"team"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
	Description string `json:"description"` // html
	Additional  string `json:"additional"`  // html
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	const workers = 8

	companies := s.cfg.Companies
	jobsCh := make(chan []domain.Job, len(companies))
	workCh := make(chan Company)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for co := range workCh {
				cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
				jobs, err := s.fetchCompany(cctx, co)
				cancel()

				if err != nil {
					log.Printf("[lever] company=%q err=%v", co.Name, err)
					continue
				}
				log.Printf("[lever] company=%q jobs=%d", co.Name, len(jobs))
				if len(jobs) > 0 {
					jobsCh <- jobs
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, co := range companies {
			select {
			case <-ctx.Done():
				return
			case workCh <- co:
			}
		}
	}()

	wg.Wait()
	close(jobsCh)

	var out []domain.Job
	for batch := range jobsCh {
		out = append(out, batch...)
	}

	return types.ScrapeResult{Source: "Lever", Jobs: out}, nil
}

func (s *Scraper) fetchCompany(ctx context.Context, co Company) ([]domain.Job, error) {
	apiURL := fmt.Sprintf(postingsURL, co.Handle)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", util.UserAgent)

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lever get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("lever status %d", res.StatusCode)
	}

	var postings []posting
	if err := json.NewDecoder(res.Body).Decode(&postings); err != nil {
		return nil, fmt.Errorf("lever decode: %w", err)
	}

	now := time.Now()
	out := make([]domain.Job, 0, len(postings))
	for _, p := range postings {
		if p.ID == "" {
			continue
		}
		posted := now
		if p.CreatedAt > 0 {
			posted = time.UnixMilli(p.CreatedAt)
		}
		loc := domain.NormField(p.Categories.Location)
		if loc == "" {
			loc = "Remote"
		}
		desc := p.Description
		if p.Additional != "" {
			desc += "\n\n" + p.Additional
		}
		out = append(out, domain.Job{
			ID:          fmt.Sprintf("lever_%s", p.ID),
			Title:       domain.NormField(p.Text),
			Company:     co.Name,
			Location:    loc,
			Description: domain.NormField(desc),
			URL:         p.HostedURL,
			PostedDate:  posted,
			Source:      "Lever",
		})
	}
	return out, nil
}
