// Package am loads runquery configuration ("am" as in "I am configured
// like this") from TOML files and RUNQUERY_* environment variables.
package am

// Config represents the runquery configuration
type Config struct {
	Store    StoreConfig    `mapstructure:"store" toml:"store" json:"store" yaml:"store"`
	Naming   NamingConfig   `mapstructure:"naming" toml:"naming" json:"naming" yaml:"naming"`
	Query    QueryConfig    `mapstructure:"query" toml:"query" json:"query" yaml:"query"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
	Messages MessagesConfig `mapstructure:"messages" toml:"messages" json:"messages" yaml:"messages"`
}

// StoreConfig selects which optional message categories are retained
type StoreConfig struct {
	IncludeDocuments               bool `mapstructure:"include_documents" toml:"include_documents" json:"include_documents" yaml:"include_documents"`
	IncludeStepDefinitions         bool `mapstructure:"include_step_definitions" toml:"include_step_definitions" json:"include_step_definitions" yaml:"include_step_definitions"`
	IncludeHooks                   bool `mapstructure:"include_hooks" toml:"include_hooks" json:"include_hooks" yaml:"include_hooks"`
	IncludeAttachments             bool `mapstructure:"include_attachments" toml:"include_attachments" json:"include_attachments" yaml:"include_attachments"`
	IncludeSuggestions             bool `mapstructure:"include_suggestions" toml:"include_suggestions" json:"include_suggestions" yaml:"include_suggestions"`
	IncludeUndefinedParameterTypes bool `mapstructure:"include_undefined_parameter_types" toml:"include_undefined_parameter_types" json:"include_undefined_parameter_types" yaml:"include_undefined_parameter_types"`
}

// NamingConfig configures how scenarios and examples are named in flat output
type NamingConfig struct {
	Strategy    string `mapstructure:"strategy" toml:"strategy" json:"strategy" yaml:"strategy"`             // long, short
	FeatureName string `mapstructure:"feature_name" toml:"feature_name" json:"feature_name" yaml:"feature_name"` // include, exclude
	ExampleName string `mapstructure:"example_name" toml:"example_name" json:"example_name" yaml:"example_name"` // number, pickle, number_and_pickle_if_parameterized
}

// QueryConfig configures derived results
type QueryConfig struct {
	SeverityOrder []string `mapstructure:"severity_order" toml:"severity_order" json:"severity_order" yaml:"severity_order"` // least to most severe
}

// LogConfig configures logging output
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" json:"verbosity" yaml:"verbosity"` // 0 = warnings only, 1 = info, 2 = debug
}

// WatchConfig configures the live summary of a followed message file
type WatchConfig struct {
	RefreshPerSecond float64 `mapstructure:"refresh_per_second" toml:"refresh_per_second" json:"refresh_per_second" yaml:"refresh_per_second"` // 0 = redraw on every message
	DebounceMS       int     `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
}

// MessagesConfig configures checks on incoming messages
type MessagesConfig struct {
	ProtocolConstraint string `mapstructure:"protocol_constraint" toml:"protocol_constraint" json:"protocol_constraint" yaml:"protocol_constraint"` // empty = accept any
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// Config file names, in lookup preference order
const (
	ConfigFileName        = "am.toml"
	ProjectConfigFileName = "runquery.toml"
	EnvPrefix             = "RUNQUERY"
)
