package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/lead"
	"github.com/sells-group/leadscout/internal/prospect"
)

var outreachCmd = &cobra.Command{
	Use:   "outreach",
	Short: "Draft outreach emails for the top-scored candidates",
	Long:  "Runs the full pipeline (search, filter, score) and drafts a personalized outreach email for each of the top N candidates.",
	RunE:  runOutreach,
}

func init() {
	addSearchFlags(outreachCmd)
	outreachCmd.Flags().Int("max-concurrent", 0, "override batch chunk size")
	outreachCmd.Flags().Int("delay-ms", -1, "override delay between batch chunks")
	outreachCmd.Flags().Int("top", 3, "number of top-scored candidates to draft for")
	rootCmd.AddCommand(outreachCmd)
}

// outreachDraft is the printed record for one candidate.
type outreachDraft struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Email string  `json:"email,omitempty"`
	Error string  `json:"error,omitempty"`
}

func runOutreach(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req, err := searchRequestFromFlags(cmd)
	if err != nil {
		return err
	}
	filterOpts, err := filterOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	top, _ := cmd.Flags().GetInt("top")
	if top <= 0 {
		return eris.New("--top must be positive")
	}

	env, err := newPipelineEnv(true)
	if err != nil {
		return err
	}

	candidates, err := env.searcher.Search(ctx, req)
	if err != nil {
		return err
	}
	filtered := prospect.Filter(candidates, filterOpts)

	opts := batchOptions(cmd)
	results, err := prospect.ScoreBatch(ctx, env.scorer, filtered, opts)
	if err != nil {
		return err
	}
	pairs := topPairs(results, top)

	items, err := prospect.OutreachBatch(ctx, env.generator, pairs, opts)
	if err != nil {
		return err
	}

	drafts := make([]outreachDraft, 0, len(items))
	failed := 0
	for _, it := range items {
		d := outreachDraft{Name: it.Input.Candidate.Name, Score: it.Input.Score.Score}
		if it.Err != nil {
			// A failed draft never blocks the others; surface it inline.
			failed++
			d.Error = it.Err.Error()
			zap.L().Error("outreach generation failed",
				zap.String("candidate", d.Name),
				zap.Error(it.Err),
			)
		} else {
			d.Email = it.Value
		}
		drafts = append(drafts, d)
	}

	zap.L().Info("outreach complete",
		zap.Int("drafted", len(drafts)-failed),
		zap.Int("failed", failed),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(drafts); err != nil {
		return err
	}
	if failed == len(drafts) && failed > 0 {
		return eris.Errorf("outreach: all %d drafts failed", failed)
	}
	return nil
}

// topPairs returns the n highest-scoring results, best first. Ties keep
// batch order.
func topPairs(results []lead.BatchResult, n int) []lead.BatchResult {
	sorted := make([]lead.BatchResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score.Score > sorted[j].Score.Score
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
