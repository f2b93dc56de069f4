package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"internship-radar/internal/config"
	"internship-radar/internal/dedup"
	"internship-radar/internal/domain"
	"internship-radar/internal/notify"
	"internship-radar/internal/rank"
	"internship-radar/internal/report"
	"internship-radar/internal/scrape"
	"internship-radar/internal/store"
)

// Counts summarizes one batch run.
type Counts struct {
	Scraped  int
	Filtered int
	Unique   int
	New      int
	Updated  int
}

type Pipeline struct {
	cfg     config.Config
	db      *store.DB
	scorer  *rank.Scorer
	deduper *dedup.Deduplicator
	discord *notify.Discord

	// fetch is swappable for tests; defaults to scrape.RunAll.
	fetch func(ctx context.Context, cfg config.Config) ([]domain.Job, map[string]int)
}

func New(cfg config.Config, db *store.DB) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		db:      db,
		scorer:  rank.NewScorer(cfg.Scoring),
		deduper: dedup.New(cfg.Dedup.TitleSimilarityThreshold),
		discord: notify.NewDiscord(cfg.Notify.Username),
		fetch:   scrape.RunAll,
	}
}

// Run executes one batch: fetch every enabled source, keep scored
// internships, collapse cross-source duplicates, persist, rewrite the
// report, and ping Discord. Only the fetch phase is concurrent; everything
// after it walks a single in-memory list.
func (p *Pipeline) Run(ctx context.Context) (Counts, error) {
	var c Counts
	start := time.Now()

	log.Printf("[pipeline] === fetch ===")
	jobs, perSource := p.fetch(ctx, p.cfg)
	c.Scraped = len(jobs)
	log.Printf("[pipeline] scraped %d jobs from %d sources", c.Scraped, len(perSource))

	log.Printf("[pipeline] === score + filter ===")
	relevant := p.scorer.Filter(jobs, true)
	c.Filtered = len(relevant)

	st := rank.Statistics(relevant)
	if st.Total > 0 {
		log.Printf("[pipeline] avg score %.1f (min %d, max %d)", st.AverageScore, st.ScoreMin, st.ScoreMax)
		for _, kc := range st.TopKeywords {
			log.Printf("[pipeline]   keyword %q x%d", kc.Keyword, kc.Count)
		}
	}

	log.Printf("[pipeline] === dedup ===")
	unique := p.deduper.Deduplicate(relevant)
	c.Unique = len(unique)

	log.Printf("[pipeline] === persist ===")
	inserted, updated, err := store.UpsertJobs(ctx, p.db.Pool, unique)
	if err != nil {
		err = fmt.Errorf("persist batch: %w", err)
		p.discord.SendError(ctx, err)
		return c, err
	}
	c.New, c.Updated = inserted, updated
	log.Printf("[pipeline] persisted: %d new, %d updated", c.New, c.Updated)

	log.Printf("[pipeline] === report ===")
	newThisWeek, err := store.CountFirstSeenSince(ctx, p.db.Pool, time.Now().AddDate(0, 0, -7))
	if err != nil {
		log.Printf("[pipeline] new-this-week count: %v", err)
	}
	md := report.Markdown(unique, report.Stats{NewThisWeek: newThisWeek})
	if err := os.WriteFile(p.cfg.App.ReportPath, []byte(md), 0o644); err != nil {
		err = fmt.Errorf("write report %s: %w", p.cfg.App.ReportPath, err)
		p.discord.SendError(ctx, err)
		return c, err
	}

	total, err := store.CountAll(ctx, p.db.Pool)
	if err != nil {
		log.Printf("[pipeline] total count: %v", err)
	}
	postedToday, err := store.CountPostedToday(ctx, p.db.Pool)
	if err != nil {
		log.Printf("[pipeline] posted-today count: %v", err)
	}
	p.discord.SendDailyReminder(ctx, total, postedToday)

	log.Printf("[pipeline] done in %s: scraped=%d filtered=%d unique=%d new=%d updated=%d",
		time.Since(start).Round(time.Second), c.Scraped, c.Filtered, c.Unique, c.New, c.Updated)
	return c, nil
}
