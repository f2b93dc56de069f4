// Package dedup collapses the same real-world posting advertised through
// multiple sources down to one representative record. Identity across sources
// is (company, title-similarity), not ID: IDs are only unique within a source.
package dedup

import (
	"fmt"
	"log"
	"strings"

	"internship-radar/internal/domain"
)

// DefaultTitleThreshold is the minimum title similarity ratio for two
// postings at the same company to be considered the same opening.
const DefaultTitleThreshold = 0.85

type Deduplicator struct {
	titleThreshold float64
}

func New(titleThreshold float64) *Deduplicator {
	if titleThreshold <= 0 {
		titleThreshold = DefaultTitleThreshold
	}
	return &Deduplicator{titleThreshold: titleThreshold}
}

// DuplicatePair is one duplicate relationship found by FindDuplicates.
type DuplicatePair struct {
	A, B   domain.Job
	Reason string
}

// normKey lower-cases and trims a comparison key. The sentinel check is
// repeated here so lists that never went through an adapter boundary still
// compare conservatively.
func normKey(s string) (key string, ok bool) {
	if domain.MissingField(s) {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(s)), true
}

// AreDuplicate applies the duplicate rules in order; the first applicable
// rule wins. A missing or invalid company/title on either side means the pair
// cannot be compared and is treated as not-duplicate (under-merge, never
// over-merge).
func (d *Deduplicator) AreDuplicate(a, b domain.Job) (bool, string) {
	if a.ID == b.ID {
		return true, "exact ID match"
	}

	companyA, okA := normKey(a.Company)
	companyB, okB := normKey(b.Company)
	if !okA || !okB {
		return false, "missing or invalid company"
	}
	if companyA != companyB {
		return false, "different companies"
	}

	titleA, okA := normKey(a.Title)
	titleB, okB := normKey(b.Title)
	if !okA || !okB {
		return false, "missing or invalid title"
	}
	if titleA == titleB {
		return true, fmt.Sprintf("exact title match: %s", companyA)
	}

	if sim := Ratio(titleA, titleB); sim >= d.titleThreshold {
		return true, fmt.Sprintf("similar titles: %s (%.2f)", companyA, sim)
	}
	return false, fmt.Sprintf("different roles at %s", companyA)
}

// Deduplicate is a greedy one-pass collapse: each incoming job is compared
// against the accumulated unique list and the first match wins. On a match
// the better-scored record is kept; a strictly higher-scored incoming job
// replaces the existing entry. Input is normally already sorted by score
// descending, so replacement is a safety net rather than the common path.
func (d *Deduplicator) Deduplicate(jobs []domain.Job) []domain.Job {
	if len(jobs) == 0 {
		return []domain.Job{}
	}

	unique := make([]domain.Job, 0, len(jobs))
	removed := 0

	for _, job := range jobs {
		matched := false

		for i, existing := range unique {
			dup, reason := d.AreDuplicate(job, existing)
			if !dup {
				continue
			}
			matched = true
			removed++

			if job.RelevanceScore > existing.RelevanceScore {
				unique = append(unique[:i], unique[i+1:]...)
				unique = append(unique, job)
				log.Printf("[dedup] replaced duplicate (better score): %s", reason)
			} else {
				log.Printf("[dedup] skipped duplicate: %s", reason)
			}
			break
		}

		if !matched {
			unique = append(unique, job)
		}
	}

	log.Printf("[dedup] %d jobs -> %d unique (%d duplicates removed)", len(jobs), len(unique), removed)
	return unique
}

// FindDuplicates enumerates every pairwise duplicate relationship without
// collapsing anything. Full O(n^2) scan, intended for diagnostics.
func (d *Deduplicator) FindDuplicates(jobs []domain.Job) []DuplicatePair {
	var pairs []DuplicatePair
	for i := 0; i < len(jobs); i++ {
		for k := i + 1; k < len(jobs); k++ {
			if dup, reason := d.AreDuplicate(jobs[i], jobs[k]); dup {
				pairs = append(pairs, DuplicatePair{A: jobs[i], B: jobs[k], Reason: reason})
			}
		}
	}
	return pairs
}
