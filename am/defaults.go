package am

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultSeverityOrder mirrors messages.DefaultSeverityOrder as config strings.
var DefaultSeverityOrder = []string{"UNKNOWN", "PASSED", "SKIPPED", "PENDING", "UNDEFINED", "AMBIGUOUS", "FAILED"}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// The CLI keeps everything; library callers choose their own flags
	v.SetDefault("store.include_documents", true)
	v.SetDefault("store.include_step_definitions", true)
	v.SetDefault("store.include_hooks", true)
	v.SetDefault("store.include_attachments", true)
	v.SetDefault("store.include_suggestions", true)
	v.SetDefault("store.include_undefined_parameter_types", true)

	v.SetDefault("naming.strategy", "long")
	v.SetDefault("naming.feature_name", "include")
	v.SetDefault("naming.example_name", "number_and_pickle_if_parameterized")

	v.SetDefault("query.severity_order", DefaultSeverityOrder)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("watch.refresh_per_second", 4.0)
	v.SetDefault("watch.debounce_ms", 100)

	v.SetDefault("messages.protocol_constraint", ">= 19.0.0")
}

// BindEnvVars binds settings whose env names do not follow the automatic
// RUNQUERY_SECTION_KEY mapping
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("log.verbosity", "RUNQUERY_VERBOSITY")
	v.BindEnv("log.json", "RUNQUERY_LOG_JSON")
}

// Default returns the built-in configuration
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults always unmarshal
		panic(err)
	}
	return cfg
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Naming: %s/%s/%s, SeverityOrder: [%s], Watch: {RefreshPerSecond: %g}}",
		c.Naming.Strategy, c.Naming.FeatureName, c.Naming.ExampleName,
		strings.Join(c.Query.SeverityOrder, " "), c.Watch.RefreshPerSecond)
}
