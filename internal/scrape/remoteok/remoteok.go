package remoteok

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"internship-radar/internal/domain"
	"internship-radar/internal/scrape/types"
	"internship-radar/internal/scrape/util"
)

// RemoteOK asks for attribution and a descriptive user agent. The payload is
// loosely typed (the first array element is a legal notice, dates arrive as
// epoch seconds or ISO strings, salaries as numbers or strings), so fields
// are picked with gjson instead of a rigid struct.
const apiURL = "https://remoteok.com/api"

type Config struct {
	Tag string // filter to jobs carrying this tag, e.g. "design"
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		cfg:     cfg,
		hc:      util.NewHTTPClient(30 * time.Second),
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "remoteok" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", util.UserAgent)

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, apiURL); err != nil {
			return types.ScrapeResult{Source: "RemoteOK"}, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return types.ScrapeResult{Source: "RemoteOK"}, fmt.Errorf("remoteok get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return types.ScrapeResult{Source: "RemoteOK"}, fmt.Errorf("remoteok status %d", res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return types.ScrapeResult{Source: "RemoteOK"}, fmt.Errorf("remoteok read: %w", err)
	}

	now := time.Now()
	var out []domain.Job

	gjson.ParseBytes(raw).ForEach(func(_, item gjson.Result) bool {
		// first element is metadata/legal text, not a job
		if item.Get("legal").Exists() {
			return true
		}
		if s.cfg.Tag != "" && !hasTag(item, s.cfg.Tag) {
			return true
		}
		out = append(out, s.normalize(item, now))
		return true
	})

	log.Printf("[remoteok] tag=%q jobs=%d", s.cfg.Tag, len(out))
	return types.ScrapeResult{Source: "RemoteOK", Jobs: out}, nil
}

func hasTag(item gjson.Result, tag string) bool {
	want := strings.ToLower(tag)
	for _, t := range item.Get("tags").Array() {
		if strings.ToLower(t.String()) == want {
			return true
		}
	}
	return false
}

func (s *Scraper) normalize(item gjson.Result, now time.Time) domain.Job {
	id := item.Get("id").String()
	if id == "" {
		id = item.Get("slug").String()
	}

	// "date" is epoch seconds or an ISO string depending on payload vintage
	posted := now
	if d := item.Get("date"); d.Exists() {
		if d.Type == gjson.Number {
			posted = time.Unix(d.Int(), 0)
		} else if t := util.ParseDate(d.String()); !t.IsZero() {
			posted = t
		}
	}

	loc := domain.NormField(item.Get("location").String())
	if loc == "" || loc == "false" {
		loc = "Remote"
	}

	jobURL := item.Get("url").String()
	if jobURL == "" {
		jobURL = "https://remoteok.com/remote-jobs/" + item.Get("slug").String()
	}

	return domain.Job{
		ID:          "remoteok_" + id,
		Title:       domain.NormField(item.Get("position").String()),
		Company:     domain.NormField(item.Get("company").String()),
		Location:    loc,
		Description: domain.NormField(util.StripHTML(item.Get("description").String())),
		URL:         jobURL,
		PostedDate:  posted,
		Source:      "RemoteOK",
		SalaryMin:   item.Get("salary_min").Float(),
		SalaryMax:   item.Get("salary_max").Float(),
	}
}
