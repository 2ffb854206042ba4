package prospect

import (
	"context"

	"github.com/sells-group/leadscout/internal/lead"
	"github.com/sells-group/leadscout/pkg/anthropic"
	"github.com/sells-group/leadscout/pkg/places"
)

// mockAnthropicClient implements anthropic.Client for testing.
type mockAnthropicClient struct {
	response *anthropic.MessageResponse
	err      error
	calls    int
	lastReq  anthropic.MessageRequest

	// respond, when set, overrides response/err per call.
	respond func(call int, req anthropic.MessageRequest) (*anthropic.MessageResponse, error)
}

func (m *mockAnthropicClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.calls++
	m.lastReq = req
	if m.respond != nil {
		return m.respond(m.calls, req)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

// textResponse builds a single-text-block completion.
func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

// mockGeoClient implements geocode.Client for testing.
type mockGeoClient struct {
	coords lead.Coordinates
	err    error
	calls  int
}

func (m *mockGeoClient) Resolve(_ context.Context, _ string) (lead.Coordinates, error) {
	m.calls++
	if m.err != nil {
		return lead.Coordinates{}, m.err
	}
	return m.coords, nil
}

// mockPlacesClient implements places.Client for testing.
type mockPlacesClient struct {
	response *places.TextSearchResponse
	err      error
	calls    int
	lastReq  places.TextSearchRequest
}

func (m *mockPlacesClient) TextSearch(_ context.Context, req places.TextSearchRequest) (*places.TextSearchResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

// fastBatch removes inter-chunk delays for tests.
func fastBatch(maxConcurrent int) BatchOptions {
	return BatchOptions{MaxConcurrent: maxConcurrent, Delay: 0}
}
