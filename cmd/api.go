package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/lead"
	"github.com/sells-group/leadscout/internal/prospect"
	"github.com/sells-group/leadscout/pkg/geocode"
	"github.com/sells-group/leadscout/pkg/places"
)

// candidateSearcher is the slice of Searcher the API depends on.
type candidateSearcher interface {
	Search(ctx context.Context, req prospect.SearchRequest) ([]lead.Candidate, error)
}

// outreachGenerator is the slice of Generator the API depends on.
type outreachGenerator interface {
	Generate(ctx context.Context, c lead.Candidate, s lead.ScoreResult) (string, error)
}

// apiServer exposes the pipeline stages over HTTP.
type apiServer struct {
	searcher  candidateSearcher
	scorer    prospect.CandidateScorer
	generator outreachGenerator
	batch     prospect.BatchOptions
}

func (s *apiServer) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/score", s.handleScore)
		r.Post("/outreach", s.handleOutreach)
	})
	return r
}

// searchPayload is the request body shared by /v1/search and /v1/score.
type searchPayload struct {
	Location            string  `json:"location"`
	RadiusMeters        float64 `json:"radius_meters,omitempty"`
	Type                string  `json:"type,omitempty"`
	Keyword             string  `json:"keyword,omitempty"`
	RequireWebsite      *bool   `json:"require_website,omitempty"`
	MinRating           float64 `json:"min_rating,omitempty"`
	MinReviews          int     `json:"min_reviews,omitempty"`
	PrioritizeNoWebsite *bool   `json:"prioritize_no_website,omitempty"`
}

func (p searchPayload) searchRequest() prospect.SearchRequest {
	return prospect.SearchRequest{
		Location:     p.Location,
		RadiusMeters: p.RadiusMeters,
		Type:         p.Type,
		Keyword:      p.Keyword,
	}
}

func (p searchPayload) filterOptions() prospect.FilterOptions {
	opts := prospect.DefaultFilterOptions()
	opts.RequireWebsite = p.RequireWebsite
	opts.MinRating = p.MinRating
	opts.MinReviews = p.MinReviews
	if p.PrioritizeNoWebsite != nil {
		opts.PrioritizeNoWebsite = *p.PrioritizeNoWebsite
	}
	return opts
}

type outreachPayload struct {
	Candidate lead.Candidate   `json:"candidate"`
	Score     lead.ScoreResult `json:"score"`
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeSearchPayload(w, r)
	if !ok {
		return
	}

	candidates, err := s.searcher.Search(r.Context(), payload.searchRequest())
	if err != nil {
		writeSearchError(w, r, err)
		return
	}
	filtered := prospect.Filter(candidates, payload.filterOptions())

	writeJSON(w, http.StatusOK, map[string]any{
		"count":      len(filtered),
		"candidates": filtered,
	})
}

func (s *apiServer) handleScore(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeSearchPayload(w, r)
	if !ok {
		return
	}

	candidates, err := s.searcher.Search(r.Context(), payload.searchRequest())
	if err != nil {
		writeSearchError(w, r, err)
		return
	}
	filtered := prospect.Filter(candidates, payload.filterOptions())

	results, err := prospect.ScoreBatch(r.Context(), s.scorer, filtered, s.batch)
	if err != nil {
		// Client went away mid-batch; nothing left to answer.
		zap.L().Warn("score request canceled mid-batch", zap.Error(err))
		return
	}

	leads := leadsFromResults(results)
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(leads),
		"leads": leads,
	})
}

func (s *apiServer) handleOutreach(w http.ResponseWriter, r *http.Request) {
	var payload outreachPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Candidate.Name == "" {
		writeError(w, http.StatusBadRequest, "candidate.name is required")
		return
	}

	email, err := s.generator.Generate(r.Context(), payload.Candidate, payload.Score)
	if err != nil {
		var genErr *prospect.GenerationError
		if errors.As(err, &genErr) {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"error":     genErr.Error(),
				"candidate": genErr.Candidate,
				"retryable": true,
			})
			return
		}
		zap.L().Error("outreach handler failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"candidate": payload.Candidate.Name,
		"email":     email,
	})
}

func decodeSearchPayload(w http.ResponseWriter, r *http.Request) (searchPayload, bool) {
	var payload searchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return payload, false
	}
	if payload.Location == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return payload, false
	}
	return payload, true
}

// writeSearchError maps pipeline failures to HTTP statuses: an unresolvable
// location is the client's problem (422), an upstream provider failure is a
// gateway problem (502).
func writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	var resErr *geocode.ResolutionError
	if errors.As(err, &resErr) {
		writeError(w, http.StatusUnprocessableEntity, resErr.Error())
		return
	}
	var provErr *places.ProviderError
	if errors.As(err, &provErr) {
		zap.L().Error("places provider failure",
			zap.Int("status", provErr.StatusCode),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "place search provider unavailable")
		return
	}
	zap.L().Error("search handler failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("write response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
