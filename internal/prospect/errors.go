package prospect

import "fmt"

// Analysis failure stages, in pipeline order.
const (
	StageRequest  = "request"  // completion call failed
	StageEmpty    = "empty"    // completion had no text content
	StageExtract  = "extract"  // no JSON object in the completion
	StageValidate = "validate" // JSON missing required fields
)

// AnalysisFailure describes why scoring one candidate failed. It never
// escapes Scorer.Score, which substitutes the neutral fallback, but the
// internal analyze path returns it so tests can assert on the
// failing stage.
type AnalysisFailure struct {
	Stage string
	Err   error
}

func (e *AnalysisFailure) Error() string {
	return fmt.Sprintf("prospect: analysis failed at %s: %v", e.Stage, e.Err)
}

func (e *AnalysisFailure) Unwrap() error {
	return e.Err
}

// GenerationError is a failed outreach generation. There is no fallback
// copy for outreach, so callers must handle this explicitly.
type GenerationError struct {
	Candidate string
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("prospect: outreach generation failed for %q: %v", e.Candidate, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
