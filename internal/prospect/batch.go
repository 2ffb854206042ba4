package prospect

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadscout/internal/lead"
	"github.com/sells-group/leadscout/internal/resilience"
)

// BatchOptions controls chunked batch execution.
type BatchOptions struct {
	// MaxConcurrent is the chunk size; workers within a chunk run
	// concurrently.
	MaxConcurrent int
	// Delay is awaited between chunks, never within one. It is a
	// provider-politeness throttle, not a correctness requirement.
	Delay time.Duration
}

// DefaultBatchOptions matches the provider limits the pipeline was tuned for.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{MaxConcurrent: 3, Delay: time.Second}
}

// BatchItem pairs one input with its worker outcome. Err is the captured
// per-item failure; it never aborts the run.
type BatchItem[In, Out any] struct {
	Input In
	Value Out
	Err   error
}

// RunBatch processes items in fixed-size chunks of MaxConcurrent. Output
// order always matches input order regardless of completion order within a
// chunk. Cancellation is honored only at chunk boundaries so in-flight
// provider calls are never abandoned ambiguously; on cancellation the
// completed prefix is returned together with the context error.
func RunBatch[In, Out any](ctx context.Context, items []In, worker func(ctx context.Context, item In) (Out, error), opts BatchOptions) ([]BatchItem[In, Out], error) {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 3
	}

	results := make([]BatchItem[In, Out], 0, len(items))
	for start := 0; start < len(items); start += opts.MaxConcurrent {
		if start > 0 {
			if err := resilience.Sleep(ctx, opts.Delay); err != nil {
				return results, err
			}
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		end := min(start+opts.MaxConcurrent, len(items))
		chunk := make([]BatchItem[In, Out], end-start)

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				slot := &chunk[i-start]
				slot.Input = items[i]
				defer func() {
					if r := recover(); r != nil {
						slot.Err = eris.Errorf("prospect: batch worker panic: %v", r)
					}
				}()
				slot.Value, slot.Err = worker(ctx, items[i])
				return nil
			})
		}
		_ = g.Wait()

		results = append(results, chunk...)
	}
	return results, nil
}

// CandidateScorer scores one candidate. Implementations must not fail;
// see Scorer.Score.
type CandidateScorer interface {
	Score(ctx context.Context, c lead.Candidate) lead.ScoreResult
}

// ScoreBatch drives a scorer over candidates. A hard per-item failure
// (worker panic) maps to the zero-confidence skipped result so one bad
// candidate never aborts the batch. The returned error is non-nil only on
// cancellation, alongside the completed prefix.
func ScoreBatch(ctx context.Context, scorer CandidateScorer, cands []lead.Candidate, opts BatchOptions) ([]lead.BatchResult, error) {
	items, err := RunBatch(ctx, cands, func(ctx context.Context, c lead.Candidate) (lead.ScoreResult, error) {
		return scorer.Score(ctx, c), nil
	}, opts)

	results := make([]lead.BatchResult, len(items))
	for i, it := range items {
		score := it.Value
		if it.Err != nil {
			zap.L().Warn("batch scoring item failed, recording skip",
				zap.String("candidate", it.Input.Name),
				zap.Error(it.Err),
			)
			score = lead.SkippedScore()
		}
		results[i] = lead.BatchResult{Candidate: it.Input, Score: score}
	}
	return results, err
}

// OutreachBatch drives an outreach generator over scored pairs. Unlike
// scoring there is no fallback copy: a failed generation stays an error on
// its item for the caller to handle.
func OutreachBatch(ctx context.Context, gen *Generator, pairs []lead.BatchResult, opts BatchOptions) ([]BatchItem[lead.BatchResult, string], error) {
	return RunBatch(ctx, pairs, func(ctx context.Context, pair lead.BatchResult) (string, error) {
		return gen.Generate(ctx, pair.Candidate, pair.Score)
	}, opts)
}
