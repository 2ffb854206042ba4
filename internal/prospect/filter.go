package prospect

import "github.com/sells-group/leadscout/internal/lead"

// FilterOptions selects and orders candidates.
//
// RequireWebsite is tri-state: nil applies no website filter, true keeps
// only candidates with a website, false keeps only candidates without one.
// MinRating and MinReviews are inclusive lower bounds; a zero value means
// no bound (a "rating >= 0" filter would be a no-op anyway).
type FilterOptions struct {
	RequireWebsite      *bool
	MinRating           float64
	MinReviews          int
	PrioritizeNoWebsite bool
}

// DefaultFilterOptions prioritizes candidates without a website.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{PrioritizeNoWebsite: true}
}

// Filter applies the inclusion predicates, then, when PrioritizeNoWebsite
// is set, stably partitions the survivors so every no-website candidate
// precedes every has-website candidate. Relative order within each
// partition is preserved.
func Filter(cands []lead.Candidate, opts FilterOptions) []lead.Candidate {
	kept := make([]lead.Candidate, 0, len(cands))
	for _, c := range cands {
		if opts.RequireWebsite != nil && c.HasWebsite() != *opts.RequireWebsite {
			continue
		}
		if opts.MinRating > 0 && c.Rating < opts.MinRating {
			continue
		}
		if opts.MinReviews > 0 && c.ReviewCount < opts.MinReviews {
			continue
		}
		kept = append(kept, c)
	}

	if !opts.PrioritizeNoWebsite {
		return kept
	}

	ordered := make([]lead.Candidate, 0, len(kept))
	for _, c := range kept {
		if !c.HasWebsite() {
			ordered = append(ordered, c)
		}
	}
	for _, c := range kept {
		if c.HasWebsite() {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
