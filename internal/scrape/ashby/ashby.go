package ashby

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

// Public posting API, no auth. Used by Notion, OpenAI, Ramp, Linear, etc.
const boardURL = "https://api.ashbyhq.com/posting-api/job-board/%s"

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

func (s *Scraper) Name() string { return "ashby" }

type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
}

// Ashby ships location and department as either a bare string or an object
// with a name, depending on board configuration; stringOrName absorbs both.
type boardJob struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Location        stringOrName `json:"location"`
	Department      stringOrName `json:"department"`
	DescriptionHTML string       `json:"descriptionHtml"`
	Description     string       `json:"description"`
	URL             string       `json:"jobUrl"`
	PublishedAt     string       `json:"publishedAt"`
}

type stringOrName string

func (s *stringOrName) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err == nil {
		*s = stringOrName(raw)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		*s = stringOrName(obj.Name)
		return nil
	}
	*s = ""
	return nil
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	var out []domain.Job
	for _, co := range s.cfg.Companies {
		jobs, err := s.fetchCompany(ctx, co)
		if err != nil {
			log.Printf("[ashby] company=%q err=%v", co.Name, err)
			continue
		}
		log.Printf("[ashby] company=%q jobs=%d", co.Name, len(jobs))
		out = append(out, jobs...)
	}
	return types.ScrapeResult{Source: "Ashby", Jobs: out}, nil
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
		return nil, fmt.Errorf("ashby get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("ashby status %d", res.StatusCode)
	}

	var body boardResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ashby decode: %w", err)
	}

	now := time.Now()
	out := make([]domain.Job, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		if j.ID == "" {
			continue
		}
		desc := j.DescriptionHTML
		if desc == "" {
			desc = j.Description
		}
		loc := domain.NormField(string(j.Location))
		if loc == "" {
			loc = "Remote"
		}
		jobURL := j.URL
		if jobURL == "" {
			jobURL = fmt.Sprintf("https://jobs.ashbyhq.com/%s/%s", co.Handle, j.ID)
		}
		posted := util.ParseDate(j.PublishedAt)
		if posted.IsZero() {
			posted = now
		}
		out = append(out, domain.Job{
			ID:          fmt.Sprintf("ashby_%s", j.ID),
			Title:       domain.NormField(j.Title),
			Company:     co.Name,
			Location:    loc,
			Description: domain.NormField(desc),
			URL:         jobURL,
			PostedDate:  posted,
			Source:      "Ashby",
		})
	}
	return out, nil
}
