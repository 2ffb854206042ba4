package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadscout/internal/prospect"
	"github.com/sells-group/leadscout/pkg/anthropic"
	"github.com/sells-group/leadscout/pkg/geocode"
	"github.com/sells-group/leadscout/pkg/places"
)

// pipelineEnv bundles the wired pipeline stages for one command invocation.
type pipelineEnv struct {
	searcher  *prospect.Searcher
	scorer    *prospect.Scorer
	generator *prospect.Generator
}

// newPipelineEnv wires provider clients from config. AI stages are only
// built when withAI is set, so search-only commands don't require an
// Anthropic key.
func newPipelineEnv(withAI bool) (*pipelineEnv, error) {
	features := []string{"search"}
	if withAI {
		features = append(features, "ai")
	}
	if err := cfg.Validate(features...); err != nil {
		return nil, err
	}

	geo := geocode.NewClient(cfg.Google.Key, geocode.WithRateLimit(cfg.Google.RateLimit))
	pl := places.NewClient(cfg.Google.Key, places.WithRateLimit(cfg.Google.RateLimit))
	env := &pipelineEnv{searcher: prospect.NewSearcher(geo, pl)}

	if withAI {
		ai := anthropic.NewClient(cfg.Anthropic.Key)
		env.scorer = prospect.NewScorer(ai, prospect.ScorerConfig{Model: cfg.Anthropic.Model})
		env.generator = prospect.NewGenerator(ai, prospect.GeneratorConfig{
			Model: cfg.Anthropic.Model,
			Persona: prospect.OutreachPersona{
				SenderName: cfg.Outreach.SenderName,
				SenderRole: cfg.Outreach.SenderRole,
				Company:    cfg.Outreach.Company,
				SignOff:    cfg.Outreach.SignOff,
			},
		})
	}

	return env, nil
}

// batchOptions derives batch settings from config, with optional flag
// overrides for commands that register them.
func batchOptions(cmd *cobra.Command) prospect.BatchOptions {
	opts := prospect.DefaultBatchOptions()
	if cfg.Batch.MaxConcurrent > 0 {
		opts.MaxConcurrent = cfg.Batch.MaxConcurrent
	}
	if cfg.Batch.DelayMs >= 0 {
		opts.Delay = time.Duration(cfg.Batch.DelayMs) * time.Millisecond
	}

	if cmd.Flags().Changed("max-concurrent") {
		if v, err := cmd.Flags().GetInt("max-concurrent"); err == nil && v > 0 {
			opts.MaxConcurrent = v
		}
	}
	if cmd.Flags().Changed("delay-ms") {
		if v, err := cmd.Flags().GetInt("delay-ms"); err == nil && v >= 0 {
			opts.Delay = time.Duration(v) * time.Millisecond
		}
	}
	return opts
}

// addSearchFlags registers the flags shared by search-driven commands.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("location", "", `search center, e.g. "Portsmouth, NH" (required)`)
	cmd.Flags().Float64("radius", 0, "bias radius in meters (default from config, provider max 50000)")
	cmd.Flags().String("type", "", "business type token, e.g. restaurant")
	cmd.Flags().String("keyword", "", "extra keyword token")
	cmd.Flags().Bool("require-website", false, "keep only candidates with a website")
	cmd.Flags().Bool("no-website", false, "keep only candidates without a website")
	cmd.Flags().Float64("min-rating", 0, "minimum rating, inclusive")
	cmd.Flags().Int("min-reviews", 0, "minimum review count, inclusive")
	cmd.Flags().Bool("keep-order", false, "disable no-website-first ordering")
}

// searchRequestFromFlags builds the search request, applying the config
// radius default.
func searchRequestFromFlags(cmd *cobra.Command) (prospect.SearchRequest, error) {
	location, _ := cmd.Flags().GetString("location")
	if location == "" {
		return prospect.SearchRequest{}, eris.New("--location is required")
	}

	radius, _ := cmd.Flags().GetFloat64("radius")
	if radius <= 0 {
		radius = cfg.Search.RadiusMeters
	}

	searchType, _ := cmd.Flags().GetString("type")
	keyword, _ := cmd.Flags().GetString("keyword")

	return prospect.SearchRequest{
		Location:     location,
		RadiusMeters: radius,
		Type:         searchType,
		Keyword:      keyword,
	}, nil
}

// filterOptionsFromFlags builds filter options. --require-website and
// --no-website are mutually exclusive; neither means no website filter.
func filterOptionsFromFlags(cmd *cobra.Command) (prospect.FilterOptions, error) {
	opts := prospect.DefaultFilterOptions()

	requireChanged := cmd.Flags().Changed("require-website")
	noChanged := cmd.Flags().Changed("no-website")
	if requireChanged && noChanged {
		return opts, eris.New("--require-website and --no-website are mutually exclusive")
	}
	if requireChanged {
		v := true
		opts.RequireWebsite = &v
	}
	if noChanged {
		v := false
		opts.RequireWebsite = &v
	}

	opts.MinRating, _ = cmd.Flags().GetFloat64("min-rating")
	opts.MinReviews, _ = cmd.Flags().GetInt("min-reviews")

	if keep, _ := cmd.Flags().GetBool("keep-order"); keep {
		opts.PrioritizeNoWebsite = false
	}
	return opts, nil
}
