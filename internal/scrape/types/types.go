package types

import (
	"context"

	"internship-radar/internal/domain"
)

type ScrapeResult struct {
	Source string
	Jobs   []domain.Job
}

// Fetcher is the contract every source adapter satisfies: fetch whatever the
// source currently lists and return it as canonical Jobs. Adapters are
// best-effort — a dead board or a malformed page logs and is skipped, and an
// error return means the whole source produced nothing this run.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (ScrapeResult, error)
}
