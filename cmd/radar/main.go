package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"internship-radar/internal/config"
	"internship-radar/internal/pipeline"
	"internship-radar/internal/scheduler"
	"internship-radar/internal/store"
)

func main() {
	every := flag.Duration("every", 0, "rerun the batch on this interval (0 = run once)")
	defaultCfg := flag.String("config", filepath.Join("config", "config.yml"), "default config seeded into the data dir")
	flag.Parse()

	// API keys and the Discord webhook live in .env; absence is fine.
	_ = godotenv.Load()

	dataDir := os.Getenv("RADAR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One batch at a time: scrapers and the report file don't tolerate a
	// second writer.
	lock := flock.New(filepath.Join(dataDir, "radar.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock: %v", err)
	}
	if !locked {
		log.Fatalf("another instance holds %s", lock.Path())
	}
	defer lock.Unlock()

	userCfgPath, err := config.EnsureUserConfig(dataDir, *defaultCfg)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}

	cfg, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !v.OK() {
		for _, e := range v.Errors {
			log.Printf("[config] error: %s", e)
		}
		log.Fatalf("config invalid (%s)", userCfgPath)
	}

	db, err := store.Open(filepath.Join(dataDir, cfg.App.Database))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg, db)

	run := func(ctx context.Context) error {
		_, err := p.Run(ctx)
		return err
	}

	if *every > 0 {
		log.Printf("[radar] batch mode, every %s", (*every).Round(time.Second))
		// blocks until interrupted
		scheduler.Every(ctx, *every, "radar", run)
		return
	}

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}
