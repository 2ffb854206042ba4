package prospect

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/lead"
	"github.com/sells-group/leadscout/internal/resilience"
	"github.com/sells-group/leadscout/pkg/geocode"
	"github.com/sells-group/leadscout/pkg/places"
)

const (
	// maxRadiusMeters is the provider's documented location-bias maximum.
	maxRadiusMeters = 50_000
	// defaultRadiusMeters is used when the caller supplies no radius.
	defaultRadiusMeters = 5_000
	// maxResults is the per-call result cap; pagination is a non-goal.
	maxResults = 20
	// maxReviewSnippets caps the review snippets kept per candidate.
	maxReviewSnippets = 5
)

// SearchRequest describes one place search.
type SearchRequest struct {
	Location     string
	RadiusMeters float64
	Type         string
	Keyword      string
}

// Searcher resolves a location and runs a biased text search, normalizing
// provider results into Candidates.
type Searcher struct {
	geo    geocode.Client
	places places.Client
	retry  resilience.RetryConfig
}

// NewSearcher creates a Searcher over the two provider clients.
func NewSearcher(geo geocode.Client, pl places.Client) *Searcher {
	return &Searcher{
		geo:    geo,
		places: pl,
		retry:  resilience.DefaultRetryConfig(),
	}
}

// Search resolves the location, then runs the text search. A failed
// resolution (including *geocode.ResolutionError) propagates before any
// places call is made; a provider failure propagates as
// *places.ProviderError after transient retries. Individual malformed
// results are skipped, never fatal.
func (s *Searcher) Search(ctx context.Context, req SearchRequest) ([]lead.Candidate, error) {
	if strings.TrimSpace(req.Location) == "" {
		return nil, eris.New("prospect: location is required")
	}

	center, err := s.geo.Resolve(ctx, req.Location)
	if err != nil {
		return nil, err
	}

	resp, err := resilience.DoVal(ctx, s.retry, func(ctx context.Context) (*places.TextSearchResponse, error) {
		return s.places.TextSearch(ctx, places.TextSearchRequest{
			TextQuery:      buildQuery(req),
			MaxResultCount: maxResults,
			LocationBias: &places.LocationBias{
				Circle: places.Circle{
					Center: places.LatLng{Latitude: center.Latitude, Longitude: center.Longitude},
					Radius: clampRadius(req.RadiusMeters),
				},
			},
		})
	})
	if err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("location", req.Location))
	candidates := make([]lead.Candidate, 0, len(resp.Places))
	for _, p := range resp.Places {
		if p.ID == "" {
			log.Warn("skipping place with no id", zap.String("name", p.DisplayName.Text))
			continue
		}
		candidates = append(candidates, normalizeCandidate(p))
	}

	log.Info("place search complete",
		zap.Int("returned", len(resp.Places)),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// buildQuery joins the optional type and keyword tokens with the location.
func buildQuery(req SearchRequest) string {
	parts := make([]string, 0, 3)
	if req.Type != "" {
		parts = append(parts, req.Type)
	}
	if req.Keyword != "" {
		parts = append(parts, req.Keyword)
	}
	parts = append(parts, "in "+req.Location)
	return strings.Join(parts, " ")
}

// clampRadius bounds the bias radius to the provider maximum. Callers
// over-request constantly, so this degrades silently instead of erroring.
// Idempotent: clampRadius(clampRadius(x)) == clampRadius(x).
func clampRadius(r float64) float64 {
	if r <= 0 {
		return defaultRadiusMeters
	}
	if r > maxRadiusMeters {
		return maxRadiusMeters
	}
	return r
}

func normalizeCandidate(p places.Place) lead.Candidate {
	c := lead.Candidate{
		ID:             p.ID,
		Name:           p.DisplayName.Text,
		Address:        p.FormattedAddress,
		Phone:          p.NationalPhoneNumber,
		Website:        p.WebsiteURI,
		Rating:         p.Rating,
		ReviewCount:    p.UserRatingCount,
		Types:          p.Types,
		BusinessStatus: p.BusinessStatus,
		PriceLevel:     p.PriceLevel,
	}
	if p.Location != nil {
		c.Location = &lead.Coordinates{
			Latitude:  p.Location.Latitude,
			Longitude: p.Location.Longitude,
		}
	}
	for i, r := range p.Reviews {
		if i >= maxReviewSnippets {
			break
		}
		c.Reviews = append(c.Reviews, lead.Review{Text: r.Text.Text, Rating: r.Rating})
	}
	return c
}
