package am

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/runquery/errors"
	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/naming"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := naming.ParseLength(c.Naming.Strategy); err != nil {
		return errors.Wrap(err, "naming.strategy")
	}
	if _, err := naming.ParseFeatureName(c.Naming.FeatureName); err != nil {
		return errors.Wrap(err, "naming.feature_name")
	}
	if _, err := naming.ParseExampleName(c.Naming.ExampleName); err != nil {
		return errors.Wrap(err, "naming.example_name")
	}

	// Empty severity order means the built-in one
	if len(c.Query.SeverityOrder) > 0 {
		if _, err := c.SeverityRanking(); err != nil {
			return errors.Wrap(err, "query.severity_order")
		}
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	// Refresh rate: 0 = unlimited, negative = invalid
	if c.Watch.RefreshPerSecond < 0 {
		return errors.Newf("watch.refresh_per_second must be >= 0, got %g", c.Watch.RefreshPerSecond)
	}
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	if c.Messages.ProtocolConstraint != "" {
		if _, err := semver.NewConstraint(c.Messages.ProtocolConstraint); err != nil {
			return errors.WithHint(
				errors.Wrapf(err, "messages.protocol_constraint %q", c.Messages.ProtocolConstraint),
				"use a semver range such as \">= 19.0.0\", or leave it empty to accept any version")
		}
	}

	return nil
}

func parseStatuses(names []string) ([]messages.TestStepResultStatus, error) {
	out := make([]messages.TestStepResultStatus, 0, len(names))
	for _, name := range names {
		status, err := messages.ParseStatus(name)
		if err != nil {
			return nil, err
		}
		out = append(out, status)
	}
	return out, nil
}
