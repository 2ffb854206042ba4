package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/lead"
	"github.com/sells-group/leadscout/internal/prospect"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Search and score candidates into ranked leads",
	Long:  "Runs the search and filter stages, scores each candidate with Claude, and prints the resulting leads as JSON sorted by score descending.",
	RunE:  runScore,
}

func init() {
	addSearchFlags(scoreCmd)
	scoreCmd.Flags().Int("max-concurrent", 0, "override batch chunk size")
	scoreCmd.Flags().Int("delay-ms", -1, "override delay between batch chunks")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
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

	env, err := newPipelineEnv(true)
	if err != nil {
		return err
	}

	candidates, err := env.searcher.Search(ctx, req)
	if err != nil {
		return err
	}
	filtered := prospect.Filter(candidates, filterOpts)

	results, batchErr := prospect.ScoreBatch(ctx, env.scorer, filtered, batchOptions(cmd))
	if batchErr != nil {
		zap.L().Warn("scoring interrupted, emitting completed prefix",
			zap.Int("scored", len(results)),
			zap.Int("requested", len(filtered)),
			zap.Error(batchErr),
		)
	}

	leads := leadsFromResults(results)
	zap.L().Info("scoring complete", zap.Int("leads", len(leads)))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(leads); err != nil {
		return err
	}
	return batchErr
}

// leadsFromResults converts scored pairs into leads, ranked by score
// descending. The sort is stable so equal scores keep batch order.
func leadsFromResults(results []lead.BatchResult) []lead.Lead {
	leads := make([]lead.Lead, 0, len(results))
	for _, r := range results {
		leads = append(leads, lead.NewLead(r.Candidate, r.Score))
	}
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].Score > leads[j].Score
	})
	return leads
}
