package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/lead"
	"github.com/sells-group/leadscout/internal/prospect"
	"github.com/sells-group/leadscout/pkg/geocode"
	"github.com/sells-group/leadscout/pkg/places"
)

type fakeSearcher struct {
	candidates []lead.Candidate
	err        error
	gotReq     prospect.SearchRequest
}

func (f *fakeSearcher) Search(_ context.Context, req prospect.SearchRequest) ([]lead.Candidate, error) {
	f.gotReq = req
	return f.candidates, f.err
}

type fakeScorer struct {
	score func(c lead.Candidate) lead.ScoreResult
}

func (f *fakeScorer) Score(_ context.Context, c lead.Candidate) lead.ScoreResult {
	if f.score != nil {
		return f.score(c)
	}
	return lead.FallbackScore()
}

type fakeGenerator struct {
	email string
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, _ lead.Candidate, _ lead.ScoreResult) (string, error) {
	return f.email, f.err
}

func newTestServer(searcher candidateSearcher, scorer prospect.CandidateScorer, gen outreachGenerator) *httptest.Server {
	api := &apiServer{
		searcher:  searcher,
		scorer:    scorer,
		generator: gen,
		batch:     prospect.BatchOptions{MaxConcurrent: 3},
	}
	return httptest.NewServer(api.router())
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeSearcher{}, &fakeScorer{}, &fakeGenerator{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	searcher := &fakeSearcher{candidates: []lead.Candidate{
		{ID: "a", Name: "With Site", Website: "https://a.example"},
		{ID: "b", Name: "No Site"},
	}}
	srv := newTestServer(searcher, &fakeScorer{}, &fakeGenerator{})
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/v1/search",
		`{"location":"Portsmouth, NH","radius_meters":8000,"require_website":false}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Portsmouth, NH", searcher.gotReq.Location)
	assert.InDelta(t, 8000.0, searcher.gotReq.RadiusMeters, 0.001)

	assert.EqualValues(t, 1, body["count"])
	cands := body["candidates"].([]any)
	require.Len(t, cands, 1)
	assert.Equal(t, "No Site", cands[0].(map[string]any)["name"])
}

func TestSearchEndpoint_BadRequests(t *testing.T) {
	srv := newTestServer(&fakeSearcher{}, &fakeScorer{}, &fakeGenerator{})
	defer srv.Close()

	resp, _ := postJSON(t, srv.URL+"/v1/search", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := postJSON(t, srv.URL+"/v1/search", `{"radius_meters":5000}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "location")
}

func TestSearchEndpoint_ResolutionFailure(t *testing.T) {
	searcher := &fakeSearcher{err: &geocode.ResolutionError{Location: "Atlantis"}}
	srv := newTestServer(searcher, &fakeScorer{}, &fakeGenerator{})
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/v1/search", `{"location":"Atlantis"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["error"], "Atlantis")
}

func TestSearchEndpoint_ProviderFailure(t *testing.T) {
	searcher := &fakeSearcher{err: &places.ProviderError{StatusCode: 500}}
	srv := newTestServer(searcher, &fakeScorer{}, &fakeGenerator{})
	defer srv.Close()

	resp, _ := postJSON(t, srv.URL+"/v1/search", `{"location":"Portsmouth, NH"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestScoreEndpoint_RanksLeads(t *testing.T) {
	searcher := &fakeSearcher{candidates: []lead.Candidate{
		{ID: "low", Name: "Low"},
		{ID: "high", Name: "High"},
	}}
	scorer := &fakeScorer{score: func(c lead.Candidate) lead.ScoreResult {
		s := lead.ScoreResult{Urgency: lead.UrgencyLow, Category: "Test", Score: 20}
		if c.ID == "high" {
			s.Score = 95
		}
		return s
	}}
	srv := newTestServer(searcher, scorer, &fakeGenerator{})
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/v1/score", `{"location":"Portsmouth, NH"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	leads := body["leads"].([]any)
	require.Len(t, leads, 2)
	assert.Equal(t, "High", leads[0].(map[string]any)["name"])
	assert.Equal(t, "Low", leads[1].(map[string]any)["name"])
}

func TestOutreachEndpoint(t *testing.T) {
	srv := newTestServer(&fakeSearcher{}, &fakeScorer{}, &fakeGenerator{email: "Hi there"})
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/v1/outreach",
		`{"candidate":{"id":"a","name":"Harbor Plumbing"},"score":{"score":88}}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hi there", body["email"])
	assert.Equal(t, "Harbor Plumbing", body["candidate"])
}

func TestOutreachEndpoint_MissingCandidate(t *testing.T) {
	srv := newTestServer(&fakeSearcher{}, &fakeScorer{}, &fakeGenerator{})
	defer srv.Close()

	resp, _ := postJSON(t, srv.URL+"/v1/outreach", `{"score":{"score":88}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOutreachEndpoint_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: &prospect.GenerationError{
		Candidate: "Harbor Plumbing",
		Err:       eris.New("api: overloaded"),
	}}
	srv := newTestServer(&fakeSearcher{}, &fakeScorer{}, gen)
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/v1/outreach",
		`{"candidate":{"id":"a","name":"Harbor Plumbing"}}`)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, true, body["retryable"])
	assert.Equal(t, "Harbor Plumbing", body["candidate"])
}
