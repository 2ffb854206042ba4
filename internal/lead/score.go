package lead

// Urgency classifies how quickly a prospect should be contacted.
type Urgency string

// Urgency levels, from least to most pressing.
const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyHigh   Urgency = "HIGH"
)

// Valid reports whether u is one of the three defined levels.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// ScoreResult is the outcome of scoring one Candidate. It is created once
// per candidate and never mutated; the score is always present and in
// [0, 100], and Urgency is always one of the three defined levels, even
// on the failure paths (see FallbackScore and SkippedScore).
type ScoreResult struct {
	Score           float64  `json:"score"`
	Reasoning       string   `json:"reasoning"`
	RedFlags        []string `json:"redFlags,omitempty"`
	Opportunities   []string `json:"opportunities,omitempty"`
	EstimatedBudget string   `json:"estimatedBudget,omitempty"`
	Urgency         Urgency  `json:"urgencyLevel"`
	Category        string   `json:"category"`
	ContactStrategy string   `json:"contactStrategy,omitempty"`
	KeyInsights     []string `json:"keyInsights,omitempty"`
}

// BatchResult pairs one Candidate with its ScoreResult. Batch output
// ordering matches the input candidate ordering.
type BatchResult struct {
	Candidate Candidate   `json:"candidate"`
	Score     ScoreResult `json:"score"`
}

// FallbackScore is the neutral result substituted when AI scoring fails or
// returns an unvalidatable completion. The candidate stays in the results
// as unscored rather than disappearing.
func FallbackScore() ScoreResult {
	return ScoreResult{
		Score:           50,
		Reasoning:       "Analysis unavailable; manual review required.",
		Urgency:         UrgencyMedium,
		Category:        "Manual review required",
		ContactStrategy: "Review manually before outreach",
	}
}

// SkippedScore is the zero-confidence result recorded when a batch worker
// fails outright for one candidate. Distinct from FallbackScore: a skipped
// candidate produced no analysis at all and should not be contacted.
func SkippedScore() ScoreResult {
	return ScoreResult{
		Score:           0,
		Reasoning:       "Worker failed; candidate skipped.",
		Urgency:         UrgencyLow,
		Category:        "Unknown",
		ContactStrategy: "Skip",
	}
}
