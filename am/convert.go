package am

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/naming"
	"github.com/teranos/runquery/store"
)

// StoreFeatures returns the optional categories the store should retain
func (c *Config) StoreFeatures() []store.Feature {
	var out []store.Feature
	flags := []struct {
		on      bool
		feature store.Feature
	}{
		{c.Store.IncludeDocuments, store.IncludeGherkinDocuments},
		{c.Store.IncludeStepDefinitions, store.IncludeStepDefinitions},
		{c.Store.IncludeHooks, store.IncludeHooks},
		{c.Store.IncludeAttachments, store.IncludeAttachments},
		{c.Store.IncludeSuggestions, store.IncludeSuggestions},
		{c.Store.IncludeUndefinedParameterTypes, store.IncludeUndefinedParameterTypes},
	}
	for _, f := range flags {
		if f.on {
			out = append(out, f.feature)
		}
	}
	return out
}

// NamingStrategy builds the configured naming strategy
func (c *Config) NamingStrategy() (naming.Strategy, error) {
	length, err := naming.ParseLength(c.Naming.Strategy)
	if err != nil {
		return naming.Strategy{}, err
	}
	featureName, err := naming.ParseFeatureName(c.Naming.FeatureName)
	if err != nil {
		return naming.Strategy{}, err
	}
	exampleName, err := naming.ParseExampleName(c.Naming.ExampleName)
	if err != nil {
		return naming.Strategy{}, err
	}
	return naming.New(length,
		naming.WithFeatureName(featureName),
		naming.WithExampleName(exampleName)), nil
}

// SeverityRanking builds the configured status ranking. An empty order
// yields the default ranking.
func (c *Config) SeverityRanking() (messages.SeverityRanking, error) {
	if len(c.Query.SeverityOrder) == 0 {
		return messages.DefaultSeverityRanking(), nil
	}
	statuses, err := parseStatuses(c.Query.SeverityOrder)
	if err != nil {
		return messages.SeverityRanking{}, err
	}
	return messages.NewSeverityRanking(statuses...)
}

// ProtocolConstraint parses messages.protocol_constraint. Nil means any
// version is accepted.
func (c *Config) ProtocolConstraint() (*semver.Constraints, error) {
	if c.Messages.ProtocolConstraint == "" {
		return nil, nil
	}
	constraint, err := semver.NewConstraint(c.Messages.ProtocolConstraint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid protocol constraint %q", c.Messages.ProtocolConstraint)
	}
	return constraint, nil
}

// StoreOptions converts the config into store construction options
func (c *Config) StoreOptions() ([]store.Option, error) {
	opts := []store.Option{store.WithFeatures(c.StoreFeatures()...)}
	constraint, err := c.ProtocolConstraint()
	if err != nil {
		return nil, err
	}
	if constraint != nil {
		opts = append(opts, store.WithProtocolConstraint(constraint))
	}
	return opts, nil
}
