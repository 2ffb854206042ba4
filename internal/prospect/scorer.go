package prospect

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/lead"
	"github.com/sells-group/leadscout/internal/resilience"
	"github.com/sells-group/leadscout/pkg/anthropic"
)

const (
	defaultScoringMaxTokens = 1500
	defaultCallTimeout      = 30 * time.Second
)

// ScorerConfig configures the lead scorer.
type ScorerConfig struct {
	Model     string
	MaxTokens int64
	Timeout   time.Duration
	Retry     resilience.RetryConfig
}

// Scorer turns one candidate into a ScoreResult via an AI completion.
type Scorer struct {
	ai  anthropic.Client
	cfg ScorerConfig
}

// NewScorer creates a Scorer. Zero-value config fields get defaults.
func NewScorer(ai anthropic.Client, cfg ScorerConfig) *Scorer {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultScoringMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCallTimeout
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = resilience.DefaultRetryConfig()
	}
	return &Scorer{ai: ai, cfg: cfg}
}

// Score never fails: any provider outage or malformed completion degrades
// to the neutral fallback result instead of propagating.
func (s *Scorer) Score(ctx context.Context, c lead.Candidate) lead.ScoreResult {
	result, err := s.analyze(ctx, c)
	if err != nil {
		stage := "unknown"
		var af *AnalysisFailure
		if errors.As(err, &af) {
			stage = af.Stage
		}
		zap.L().Warn("lead scoring failed, using fallback",
			zap.String("candidate", c.Name),
			zap.String("stage", stage),
			zap.Error(err),
		)
		return lead.FallbackScore()
	}
	return result
}

// analyze is the fallible scoring path. It returns *AnalysisFailure so the
// failing stage is assertable before Score substitutes the fallback.
func (s *Scorer) analyze(ctx context.Context, c lead.Candidate) (lead.ScoreResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := resilience.DoVal(ctx, s.cfg.Retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return s.ai.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     s.cfg.Model,
			MaxTokens: s.cfg.MaxTokens,
			System:    scoringSystemPrompt,
			Messages:  []anthropic.Message{{Role: "user", Content: buildScoringPrompt(c)}},
		})
	})
	if err != nil {
		return lead.ScoreResult{}, &AnalysisFailure{Stage: StageRequest, Err: err}
	}
	resp.Usage.LogCost(s.cfg.Model, "score")

	text := resp.Text()
	if text == "" {
		return lead.ScoreResult{}, &AnalysisFailure{Stage: StageEmpty, Err: eris.New("completion has no text content")}
	}

	raw, err := extractJSONObject(text)
	if err != nil {
		return lead.ScoreResult{}, &AnalysisFailure{Stage: StageExtract, Err: err}
	}

	result, err := parseScorePayload(raw)
	if err != nil {
		return lead.ScoreResult{}, &AnalysisFailure{Stage: StageValidate, Err: err}
	}
	return result, nil
}

// scorePayload is the JSON contract the model is instructed to emit.
type scorePayload struct {
	Score           *float64 `json:"score"`
	Reasoning       string   `json:"reasoning"`
	RedFlags        []string `json:"redFlags"`
	Opportunities   []string `json:"opportunities"`
	EstimatedBudget string   `json:"estimatedBudget"`
	UrgencyLevel    string   `json:"urgencyLevel"`
	Category        string   `json:"category"`
	ContactStrategy string   `json:"contactStrategy"`
	KeyInsights     []string `json:"keyInsights"`
}

// parseScorePayload validates the required fields of the extracted JSON:
// numeric score, non-empty reasoning and category, and a recognized urgency.
func parseScorePayload(raw string) (lead.ScoreResult, error) {
	var p scorePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return lead.ScoreResult{}, eris.Wrap(err, "prospect: parse score JSON")
	}

	if p.Score == nil {
		return lead.ScoreResult{}, eris.New("prospect: score missing or not numeric")
	}
	if strings.TrimSpace(p.Reasoning) == "" {
		return lead.ScoreResult{}, eris.New("prospect: reasoning missing")
	}
	if strings.TrimSpace(p.Category) == "" {
		return lead.ScoreResult{}, eris.New("prospect: category missing")
	}

	urgency := lead.Urgency(strings.ToUpper(strings.TrimSpace(p.UrgencyLevel)))
	if !urgency.Valid() {
		return lead.ScoreResult{}, eris.Errorf("prospect: unrecognized urgency %q", p.UrgencyLevel)
	}

	score := *p.Score
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return lead.ScoreResult{
		Score:           score,
		Reasoning:       p.Reasoning,
		RedFlags:        p.RedFlags,
		Opportunities:   p.Opportunities,
		EstimatedBudget: p.EstimatedBudget,
		Urgency:         urgency,
		Category:        p.Category,
		ContactStrategy: p.ContactStrategy,
		KeyInsights:     p.KeyInsights,
	}, nil
}
