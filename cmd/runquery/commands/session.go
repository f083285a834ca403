package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/runquery/am"
	"github.com/teranos/runquery/internal/ingest"
	"github.com/teranos/runquery/naming"
	"github.com/teranos/runquery/query"
	"github.com/teranos/runquery/store"
)

// addNamingFlags registers overrides for the configured naming strategy.
func addNamingFlags(cmd *cobra.Command) {
	cmd.Flags().String("strategy", "", "Naming length: long, short (default from config)")
	cmd.Flags().String("feature-name", "", "Feature in long names: include, exclude")
	cmd.Flags().String("example-name", "", "Example rows: number, pickle, number_and_pickle_if_parameterized")
}

// addStoreFlags registers overrides for the retained message categories.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("include", nil, "Retain only these optional categories (documents, step-definitions, hooks, attachments, suggestions, undefined-parameter-types)")
}

// strategyFor applies flag overrides on top of the configured strategy.
func strategyFor(cmd *cobra.Command, cfg *am.Config) (naming.Strategy, error) {
	nc := cfg.Naming
	if v, _ := cmd.Flags().GetString("strategy"); v != "" {
		nc.Strategy = v
	}
	if v, _ := cmd.Flags().GetString("feature-name"); v != "" {
		nc.FeatureName = v
	}
	if v, _ := cmd.Flags().GetString("example-name"); v != "" {
		nc.ExampleName = v
	}
	overridden := *cfg
	overridden.Naming = nc
	return overridden.NamingStrategy()
}

// newRepository builds an empty store from config. --include replaces the
// configured categories.
func newRepository(cmd *cobra.Command, cfg *am.Config) (*store.Repository, error) {
	features := cfg.StoreFeatures()
	if cmd.Flags().Changed("include") {
		names, _ := cmd.Flags().GetStringSlice("include")
		features = make([]store.Feature, 0, len(names))
		for _, name := range names {
			f, err := store.ParseFeature(name)
			if err != nil {
				return nil, err
			}
			features = append(features, f)
		}
	}

	opts := []store.Option{store.WithFeatures(features...)}
	constraint, err := cfg.ProtocolConstraint()
	if err != nil {
		return nil, err
	}
	if constraint != nil {
		opts = append(opts, store.WithProtocolConstraint(constraint))
	}
	return store.New(opts...), nil
}

func newQuery(repo *store.Repository, cfg *am.Config) (*query.Query, error) {
	ranking, err := cfg.SeverityRanking()
	if err != nil {
		return nil, err
	}
	return query.New(repo, query.WithSeverityRanking(ranking)), nil
}

// loadRun ingests every file named (or matched) by args.
func loadRun(cmd *cobra.Command, args []string) (*query.Query, error) {
	cfg := configFrom(cmd)
	paths, err := ingest.ExpandPaths(args)
	if err != nil {
		return nil, err
	}
	repo, err := newRepository(cmd, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := ingest.Files(cmd.Context(), repo, paths); err != nil {
		return nil, err
	}
	return newQuery(repo, cfg)
}
