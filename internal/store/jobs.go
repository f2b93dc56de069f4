package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"internship-radar/internal/domain"
)

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS intern_jobs (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  posted_date TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  salary TEXT NOT NULL DEFAULT '',
  salary_min REAL NOT NULL DEFAULT 0,
  salary_max REAL NOT NULL DEFAULT 0,
  relevance_score INTEGER NOT NULL DEFAULT 0,
  score_breakdown TEXT NOT NULL DEFAULT '{}',
  first_seen TEXT NOT NULL,
  last_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_intern_jobs_score ON intern_jobs (relevance_score DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// UpsertJobs writes the batch keyed by the source-namespaced job ID. An ID
// already on file gets its mutable columns refreshed and keeps first_seen.
func UpsertJobs(ctx context.Context, db *sql.DB, jobs []domain.Job) (inserted, updated int, err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO intern_jobs
  (id, title, company, location, description, url, posted_date, source,
   salary, salary_min, salary_max, relevance_score, score_breakdown,
   first_seen, last_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title = excluded.title,
  company = excluded.company,
  location = excluded.location,
  description = excluded.description,
  url = excluded.url,
  posted_date = excluded.posted_date,
  salary = excluded.salary,
  salary_min = excluded.salary_min,
  salary_max = excluded.salary_max,
  relevance_score = excluded.relevance_score,
  score_breakdown = excluded.score_breakdown,
  last_seen = excluded.last_seen;`)
	if err != nil {
		return 0, 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)

	for _, j := range jobs {
		var existed int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM intern_jobs WHERE id = ?;`, j.ID).Scan(&existed); err != nil {
			return inserted, updated, fmt.Errorf("precheck %s: %w", j.ID, err)
		}

		breakdown := "{}"
		if j.Breakdown != nil {
			if b, err := json.Marshal(j.Breakdown); err == nil {
				breakdown = string(b)
			}
		}

		posted := ""
		if !j.PostedDate.IsZero() {
			posted = j.PostedDate.UTC().Format(time.RFC3339)
		}

		if _, err := stmt.ExecContext(ctx,
			j.ID, j.Title, j.Company, j.Location, j.Description, j.URL,
			posted, j.Source, j.Salary, j.SalaryMin, j.SalaryMax,
			j.RelevanceScore, breakdown, now, now,
		); err != nil {
			return inserted, updated, fmt.Errorf("upsert %s: %w", j.ID, err)
		}

		if existed > 0 {
			updated++
		} else {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, updated, err
	}
	return inserted, updated, nil
}

func CountAll(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM intern_jobs;`).Scan(&n)
	return n, err
}

// CountPostedToday counts jobs whose board posting date falls on the current
// local day. Jobs without a parseable date don't count.
func CountPostedToday(ctx context.Context, db *sql.DB) (int, error) {
	start := time.Now().Truncate(24 * time.Hour).UTC().Format(time.RFC3339)
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM intern_jobs WHERE posted_date != '' AND posted_date >= ?;`,
		start).Scan(&n)
	return n, err
}

// CountFirstSeenSince reports how many jobs entered the table after the cutoff.
func CountFirstSeenSince(ctx context.Context, db *sql.DB, cutoff time.Time) (int, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM intern_jobs WHERE first_seen >= ?;`,
		cutoff.UTC().Format(time.RFC3339)).Scan(&n)
	return n, err
}
