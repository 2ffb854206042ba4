package prospect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/lead"
)

func boolPtr(b bool) *bool { return &b }

func filterFixtures() []lead.Candidate {
	return []lead.Candidate{
		{ID: "a", Name: "Alpha", Website: "https://alpha.example", Rating: 4.9, ReviewCount: 210},
		{ID: "b", Name: "Bravo", Rating: 4.2, ReviewCount: 35},
		{ID: "c", Name: "Charlie", Website: "https://charlie.example", Rating: 3.1, ReviewCount: 8},
		{ID: "d", Name: "Delta", Rating: 4.8, ReviewCount: 122},
		{ID: "e", Name: "Echo", Rating: 0, ReviewCount: 0},
	}
}

func ids(cands []lead.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.ID
	}
	return out
}

func TestFilter_WebsitePartition(t *testing.T) {
	cands := filterFixtures()

	withSite := Filter(cands, FilterOptions{RequireWebsite: boolPtr(true)})
	withoutSite := Filter(cands, FilterOptions{RequireWebsite: boolPtr(false)})

	assert.Equal(t, []string{"a", "c"}, ids(withSite))
	assert.Equal(t, []string{"b", "d", "e"}, ids(withoutSite))

	// The two outputs partition the input: no overlap, full coverage.
	assert.Len(t, withSite, len(cands)-len(withoutSite))
	for _, c := range withSite {
		assert.True(t, c.HasWebsite())
	}
	for _, c := range withoutSite {
		assert.False(t, c.HasWebsite())
	}
}

func TestFilter_NilRequireWebsiteKeepsAll(t *testing.T) {
	cands := filterFixtures()
	out := Filter(cands, FilterOptions{})
	assert.Len(t, out, len(cands))
}

func TestFilter_MinRatingInclusive(t *testing.T) {
	out := Filter(filterFixtures(), FilterOptions{MinRating: 4.2})
	assert.Equal(t, []string{"a", "b", "d"}, ids(out))
}

func TestFilter_MinReviewsInclusive(t *testing.T) {
	out := Filter(filterFixtures(), FilterOptions{MinReviews: 35})
	assert.Equal(t, []string{"a", "b", "d"}, ids(out))
}

func TestFilter_ZeroBoundsAreIgnored(t *testing.T) {
	// Echo has rating 0 and zero reviews; explicit zero bounds must not
	// drop it.
	out := Filter(filterFixtures(), FilterOptions{MinRating: 0, MinReviews: 0})
	assert.Contains(t, ids(out), "e")
}

func TestFilter_PrioritizeNoWebsite_StablePartition(t *testing.T) {
	out := Filter(filterFixtures(), DefaultFilterOptions())

	// No-website candidates first, each group in original relative order.
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, ids(out))

	// No has-website candidate may precede a no-website candidate.
	seenWebsite := false
	for _, c := range out {
		if c.HasWebsite() {
			seenWebsite = true
		} else {
			require.False(t, seenWebsite, "no-website candidate after a has-website one")
		}
	}
}

func TestFilter_NoPrioritizationPreservesInputOrder(t *testing.T) {
	out := Filter(filterFixtures(), FilterOptions{PrioritizeNoWebsite: false})
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(out))
}

func TestFilter_CombinedPredicatesAndOrdering(t *testing.T) {
	out := Filter(filterFixtures(), FilterOptions{
		MinRating:           4.0,
		MinReviews:          30,
		PrioritizeNoWebsite: true,
	})
	assert.Equal(t, []string{"b", "d", "a"}, ids(out))
}

func TestFilter_EmptyInput(t *testing.T) {
	out := Filter(nil, DefaultFilterOptions())
	assert.Empty(t, out)
}
