package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"proximity-route-service/internal/app"
	"proximity-route-service/internal/config"
	"proximity-route-service/internal/ports"
)

type rootFlags struct {
	threshold  float64
	seed       string
	source     string
	indexed    bool
	verbose    bool
	parentRule string // search only
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "routefind",
		Short:         "Find routes between nearby locations",
		Long:          "routefind builds a proximity graph over the configured locations and searches it depth-first or breadth-first.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !flags.verbose {
				log.SetOutput(io.Discard)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.Float64Var(&flags.threshold, "threshold", 0, "edge distance cutoff in km (overrides graph.threshold_km)")
	pf.StringVar(&flags.seed, "seed", "", "seed file with locations (overrides registry.path)")
	pf.StringVar(&flags.source, "source", "", "registry source: file, sqlite or postgres")
	pf.BoolVar(&flags.indexed, "indexed", false, "prefilter candidate pairs with an R-tree")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "print timing and build logs")

	root.AddCommand(
		newLocationsCmd(&flags),
		newGraphCmd(&flags),
		newSearchCmd(&flags),
	)
	return root
}

// load applies flag overrides on top of config and builds the graph.
func load(cmd *cobra.Command, flags *rootFlags) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	pf := cmd.Flags()
	if pf.Changed("threshold") {
		cfg.Graph.ThresholdKm = flags.threshold
	}
	if pf.Changed("seed") {
		cfg.Registry.Path = flags.seed
	}
	if pf.Changed("source") {
		cfg.Registry.Source = flags.source
	}
	if pf.Changed("indexed") {
		cfg.Graph.Indexed = flags.indexed
	}
	if pf.Changed("parent-rule") {
		cfg.Search.ParentRule = flags.parentRule
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.New(ctx, cfg)
}

func newLocationsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List registered locations with their coordinates and degree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd, flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, l := range a.Locations {
				fmt.Fprintf(out, "%-4s lat=%.6f lon=%.6f degree=%d\n",
					l.ID, l.Coordinates.Lat, l.Coordinates.Lon, a.Graph.Degree(l.ID))
			}
			return nil
		},
	}
}

func newGraphCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the proximity adjacency list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd, flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "threshold_km=%g nodes=%d edges=%d\n", a.Graph.Threshold(), a.Graph.Len(), a.Graph.EdgeCount())
			for _, id := range a.Graph.IDs() {
				neighbors, _ := a.Graph.Neighbors(id)
				fmt.Fprintf(out, "%s: %s\n", id, strings.Join(neighbors, ", "))
			}
			return nil
		},
	}
}

func newSearchCmd(flags *rootFlags) *cobra.Command {
	var from, to, strategy string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search a path from the origin to a destination",
		Example: `  routefind search --to AC
  routefind search --from B --to Y --strategy dfs
  routefind search --to E --parent-rule last-recorded`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd, flags)
			if err != nil {
				return err
			}

			res, err := a.Finder.Find(cmd.Context(), ports.PathQuery{From: from, To: to, Strategy: strategy})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
			return res.Err()
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination location id")
	cmd.Flags().StringVar(&from, "from", "", "start location id (default search.origin)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "bfs or dfs (default search.strategy)")
	cmd.Flags().StringVar(&flags.parentRule, "parent-rule", "", "frontier or last-recorded (default search.parent_rule)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
