package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/prospect"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find business candidates near a location",
	Long:  "Resolves the location, runs a biased place search, applies the candidate filter, and prints the remaining candidates as JSON.",
	RunE:  runSearch,
}

func init() {
	addSearchFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	env, err := newPipelineEnv(false)
	if err != nil {
		return err
	}

	candidates, err := env.searcher.Search(ctx, req)
	if err != nil {
		return err
	}
	filtered := prospect.Filter(candidates, filterOpts)

	zap.L().Info("search complete",
		zap.Int("found", len(candidates)),
		zap.Int("kept", len(filtered)),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(filtered)
}
