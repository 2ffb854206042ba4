package prospect

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscout/internal/lead"
	"github.com/sells-group/leadscout/internal/resilience"
	"github.com/sells-group/leadscout/pkg/anthropic"
)

const defaultOutreachMaxTokens = 500

// OutreachPersona is the fixed sender identity baked into generated copy.
type OutreachPersona struct {
	SenderName string
	SenderRole string
	Company    string
	SignOff    string
}

// GeneratorConfig configures the outreach generator.
type GeneratorConfig struct {
	Model     string
	MaxTokens int64
	Timeout   time.Duration
	Retry     resilience.RetryConfig
	Persona   OutreachPersona
}

// Generator produces outreach email copy for a scored candidate.
type Generator struct {
	ai  anthropic.Client
	cfg GeneratorConfig
}

// NewGenerator creates a Generator. Zero-value config fields get defaults.
func NewGenerator(ai anthropic.Client, cfg GeneratorConfig) *Generator {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultOutreachMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCallTimeout
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = resilience.DefaultRetryConfig()
	}
	return &Generator{ai: ai, cfg: cfg}
}

// Generate returns the email body verbatim from the completion, with no JSON
// extraction. Failures surface as *GenerationError; there is no fallback
// copy.
func (g *Generator) Generate(ctx context.Context, c lead.Candidate, s lead.ScoreResult) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := resilience.DoVal(ctx, g.cfg.Retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return g.ai.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     g.cfg.Model,
			MaxTokens: g.cfg.MaxTokens,
			Messages:  []anthropic.Message{{Role: "user", Content: buildOutreachPrompt(c, s, g.cfg.Persona)}},
		})
	})
	if err != nil {
		return "", &GenerationError{Candidate: c.Name, Err: err}
	}
	resp.Usage.LogCost(g.cfg.Model, "outreach")

	body := strings.TrimSpace(resp.Text())
	if body == "" {
		return "", &GenerationError{Candidate: c.Name, Err: eris.New("completion has no text content")}
	}
	return body, nil
}
