package scrape

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"internship-radar/internal/config"
	"internship-radar/internal/domain"
	"internship-radar/internal/scrape/adzuna"
	"internship-radar/internal/scrape/ashby"
	"internship-radar/internal/scrape/greenhouse"
	"internship-radar/internal/scrape/hackernews"
	"internship-radar/internal/scrape/jooble"
	"internship-radar/internal/scrape/lever"
	"internship-radar/internal/scrape/linkedin"
	"internship-radar/internal/scrape/remoteok"
	"internship-radar/internal/scrape/rss"
	"internship-radar/internal/scrape/themuse"
	"internship-radar/internal/scrape/types"
	"internship-radar/internal/scrape/util"
	"internship-radar/internal/scrape/workable"
	"internship-radar/internal/scrape/ycombinator"
)

// RunAll runs every enabled source concurrently and returns the combined
// jobs once all of them have finished. A failing source logs and yields
// nothing; it never cancels its siblings.
func RunAll(ctx context.Context, cfg config.Config) ([]domain.Job, map[string]int) {
	limiter := util.NewHostLimiter(cfg.Scrape.RequestsPerSecond, cfg.Scrape.Burst)
	fetchers := buildFetchers(cfg, limiter)

	var g errgroup.Group
	results := make(chan types.ScrapeResult, len(fetchers))

	for _, f := range fetchers {
		f := f
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, fetchTimeout(f.Name()))
			defer cancel()

			log.Printf("[%s] running...", f.Name())
			res, err := f.Fetch(fctx)
			if err != nil {
				log.Printf("[%s] error: %v", f.Name(), err)
				return nil // best-effort: don't cancel siblings
			}
			results <- res
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	var all []domain.Job
	counts := make(map[string]int, len(fetchers))
	for res := range results {
		log.Printf("[scrape] source=%s jobs=%d", res.Source, len(res.Jobs))
		counts[res.Source] = len(res.Jobs)
		all = append(all, res.Jobs...)
	}
	return all, counts
}

func fetchTimeout(source string) time.Duration {
	switch source {
	case "greenhouse", "lever", "ashby", "workable", "linkedin":
		// many boards / many pages per run
		return 5 * time.Minute
	case "ycombinator":
		// 30s crawl delay between pages
		return 4 * time.Minute
	default:
		return 2 * time.Minute
	}
}

func buildFetchers(cfg config.Config, limiter *util.HostLimiter) []types.Fetcher {
	var fetchers []types.Fetcher

	if cfg.Sources.Greenhouse.Enabled {
		fetchers = append(fetchers, greenhouse.New(greenhouse.Config{
			Companies: mapGreenhouseCompanies(cfg.Companies),
		}, limiter))
	}
	if cfg.Sources.Lever.Enabled {
		fetchers = append(fetchers, lever.New(lever.Config{
			Companies: mapLeverCompanies(cfg.Companies),
		}, limiter))
	}
	if cfg.Sources.Ashby.Enabled {
		fetchers = append(fetchers, ashby.New(ashby.Config{
			Companies: mapAshbyCompanies(cfg.Companies),
		}, limiter))
	}
	if cfg.Sources.Workable.Enabled {
		fetchers = append(fetchers, workable.New(workable.Config{
			Companies: mapWorkableCompanies(cfg.Companies),
		}, limiter))
	}
	if cfg.Sources.RemoteOK.Enabled {
		fetchers = append(fetchers, remoteok.New(remoteok.Config{
			Tag: cfg.Sources.RemoteOK.Tag,
		}, limiter))
	}
	if cfg.Sources.TheMuse.Enabled {
		fetchers = append(fetchers, themuse.New(themuse.Config{
			APIKey:   os.Getenv("THEMUSE_API_KEY"),
			Category: cfg.Sources.TheMuse.Category,
			Level:    cfg.Sources.TheMuse.Level,
		}, limiter))
	}
	if cfg.Sources.Adzuna.Enabled {
		fetchers = append(fetchers, adzuna.New(adzuna.Config{
			AppID:  os.Getenv("ADZUNA_APP_ID"),
			AppKey: os.Getenv("ADZUNA_APP_KEY"),
			Query:  cfg.Sources.Adzuna.Query,
		}, limiter))
	}
	if cfg.Sources.Jooble.Enabled {
		fetchers = append(fetchers, jooble.New(jooble.Config{
			APIKey:   os.Getenv("JOOBLE_API_KEY"),
			Keywords: cfg.Sources.Jooble.Keywords,
		}, limiter))
	}
	if cfg.Sources.HackerNews.Enabled {
		fetchers = append(fetchers, hackernews.New(limiter))
	}
	if cfg.Sources.YCombinator.Enabled {
		fetchers = append(fetchers, ycombinator.New())
	}
	if cfg.Sources.LinkedIn.Enabled {
		fetchers = append(fetchers, linkedin.New(linkedin.Config{
			Keywords: cfg.Sources.LinkedIn.Keywords,
			Location: cfg.Sources.LinkedIn.Location,
		}, limiter))
	}
	if cfg.Sources.RSS.Enabled {
		fetchers = append(fetchers, rss.New(rss.Config{
			Feeds: cfg.Sources.RSS.Feeds,
		}, limiter))
	}

	return fetchers
}

func mapGreenhouseCompanies(in []config.Company) []greenhouse.Company {
	out := make([]greenhouse.Company, 0, len(in))
	for _, c := range in {
		if c.Greenhouse == "" {
			continue
		}
		out = append(out, greenhouse.Company{Handle: c.Greenhouse, Name: c.Name})
	}
	return out
}

func mapLeverCompanies(in []config.Company) []lever.Company {
	out := make([]lever.Company, 0, len(in))
	for _, c := range in {
		if c.Lever == "" {
			continue
		}
		out = append(out, lever.Company{Handle: c.Lever, Name: c.Name})
	}
	return out
}

func mapAshbyCompanies(in []config.Company) []ashby.Company {
	out := make([]ashby.Company, 0, len(in))
	for _, c := range in {
		if c.Ashby == "" {
			continue
		}
		out = append(out, ashby.Company{Handle: c.Ashby, Name: c.Name})
	}
	return out
}

func mapWorkableCompanies(in []config.Company) []workable.Company {
	out := make([]workable.Company, 0, len(in))
	for _, c := range in {
		if c.Workable == "" {
			continue
		}
		out = append(out, workable.Company{Handle: c.Workable, Name: c.Name})
	}
	return out
}
