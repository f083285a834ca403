package am

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/naming"
	"github.com/teranos/runquery/store"
)

// isolate points HOME and the working directory at fresh temp dirs
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	Reset()
	t.Cleanup(Reset)

	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(project)
	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.Store.IncludeDocuments)
	assert.True(t, cfg.Store.IncludeUndefinedParameterTypes)
	assert.Equal(t, "long", cfg.Naming.Strategy)
	assert.Equal(t, "number_and_pickle_if_parameterized", cfg.Naming.ExampleName)
	assert.Equal(t, DefaultSeverityOrder, cfg.Query.SeverityOrder)
	assert.Equal(t, 4.0, cfg.Watch.RefreshPerSecond)
	assert.Equal(t, ">= 19.0.0", cfg.Messages.ProtocolConstraint)
}

func TestDefaultSeverityOrderMatchesMessages(t *testing.T) {
	require.Len(t, DefaultSeverityOrder, len(messages.DefaultSeverityOrder))
	for i, status := range messages.DefaultSeverityOrder {
		assert.Equal(t, string(status), DefaultSeverityOrder[i])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "short naming", mutate: func(c *Config) { c.Naming.Strategy = "SHORT" }},
		{name: "unknown naming strategy", mutate: func(c *Config) { c.Naming.Strategy = "medium" }, wantErr: "naming.strategy"},
		{name: "unknown feature name policy", mutate: func(c *Config) { c.Naming.FeatureName = "maybe" }, wantErr: "naming.feature_name"},
		{name: "unknown example name policy", mutate: func(c *Config) { c.Naming.ExampleName = "ordinal" }, wantErr: "naming.example_name"},
		{name: "empty severity order uses default", mutate: func(c *Config) { c.Query.SeverityOrder = nil }},
		{name: "unknown status", mutate: func(c *Config) { c.Query.SeverityOrder = []string{"PASSED", "EXPLODED"} }, wantErr: "query.severity_order"},
		{name: "duplicate status", mutate: func(c *Config) { c.Query.SeverityOrder = []string{"PASSED", "passed"} }, wantErr: "query.severity_order"},
		{name: "negative verbosity", mutate: func(c *Config) { c.Log.Verbosity = -1 }, wantErr: "log.verbosity"},
		{name: "zero refresh rate is unlimited", mutate: func(c *Config) { c.Watch.RefreshPerSecond = 0 }},
		{name: "negative refresh rate", mutate: func(c *Config) { c.Watch.RefreshPerSecond = -1 }, wantErr: "watch.refresh_per_second"},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.DebounceMS = -5 }, wantErr: "watch.debounce_ms"},
		{name: "empty protocol constraint", mutate: func(c *Config) { c.Messages.ProtocolConstraint = "" }},
		{name: "bad protocol constraint", mutate: func(c *Config) { c.Messages.ProtocolConstraint = "newest please" }, wantErr: "messages.protocol_constraint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Store.IncludeHooks = false
	cfg.Store.IncludeSuggestions = false
	cfg.Naming = NamingConfig{Strategy: "short", FeatureName: "exclude", ExampleName: "number"}
	cfg.Query.SeverityOrder = []string{"passed", "failed", "skipped"}

	assert.Equal(t, []store.Feature{
		store.IncludeGherkinDocuments,
		store.IncludeStepDefinitions,
		store.IncludeAttachments,
		store.IncludeUndefinedParameterTypes,
	}, cfg.StoreFeatures())

	strategy, err := cfg.NamingStrategy()
	require.NoError(t, err)
	assert.Equal(t, naming.Short, strategy.Length())
	assert.Equal(t, naming.ExcludeFeature, strategy.FeatureName())
	assert.Equal(t, naming.Number, strategy.ExampleName())

	ranking, err := cfg.SeverityRanking()
	require.NoError(t, err)
	assert.Equal(t, []messages.TestStepResultStatus{messages.StatusPassed, messages.StatusFailed, messages.StatusSkipped}, ranking.Order())

	constraint, err := cfg.ProtocolConstraint()
	require.NoError(t, err)
	require.NotNil(t, constraint)

	opts, err := cfg.StoreOptions()
	require.NoError(t, err)
	r := store.New(opts...)
	assert.True(t, r.Enabled(store.IncludeAttachments))
	assert.False(t, r.Enabled(store.IncludeHooks))
}

func TestLoad_Cascade(t *testing.T) {
	home, project := isolate(t)

	writeFile(t, filepath.Join(home, ".runquery", "am.toml"), `
[naming]
strategy = "short"
example_name = "pickle"

[watch]
refresh_per_second = 10.0
`)
	writeFile(t, filepath.Join(project, "runquery.toml"), `
[naming]
example_name = "number"
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "short", cfg.Naming.Strategy, "user file")
	assert.Equal(t, "number", cfg.Naming.ExampleName, "project file wins over user file")
	assert.Equal(t, "include", cfg.Naming.FeatureName, "default")
	assert.Equal(t, 10.0, cfg.Watch.RefreshPerSecond)

	assert.Equal(t, SourceUser, ConfigSources["naming.strategy"].Source)
	assert.Equal(t, SourceProject, ConfigSources["naming.example_name"].Source)
	assert.Contains(t, ConfigSources["naming.example_name"].Path, "runquery.toml")

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again, "cached until Reset")
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, "am.toml"), "[log]\nverbosity = 2\n")

	sub := filepath.Join(project, "features", "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	t.Chdir(sub)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Log.Verbosity)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, "am.toml"), "[naming]\nstrategy = \"short\"\n")
	t.Setenv("RUNQUERY_NAMING_STRATEGY", "long")
	t.Setenv("RUNQUERY_VERBOSITY", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "long", cfg.Naming.Strategy)
	assert.Equal(t, 1, cfg.Log.Verbosity)

	settings, err := Introspect()
	require.NoError(t, err)
	found := false
	for _, s := range settings {
		if s.Key == "naming.strategy" {
			found = true
			assert.Equal(t, SourceEnvironment, s.Source)
			assert.Equal(t, "RUNQUERY_NAMING_STRATEGY", s.SourcePath)
		}
		if s.Key == "watch.debounce_ms" {
			assert.Equal(t, SourceDefault, s.Source)
		}
	}
	assert.True(t, found)
}

func TestLoad_InvalidFileIsRejected(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, "am.toml"), "[naming]\nstrategy = \"sideways\"\n")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "naming.strategy")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, "[query]\nseverity_order = [\"PASSED\", \"FAILED\"]\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"PASSED", "FAILED"}, cfg.Query.SeverityOrder)
	assert.Equal(t, "long", cfg.Naming.Strategy)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestSaveRoundTripAndBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "am.toml")

	cfg := Default()
	cfg.Naming.Strategy = "short"
	require.NoError(t, Save(path, cfg))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	for i := 0; i < 4; i++ {
		cfg.Log.Verbosity = i
		require.NoError(t, Save(path, cfg))
	}
	for _, suffix := range []string{".back1", ".back2", ".back3"} {
		assert.FileExists(t, path+suffix)
	}
	assert.NoFileExists(t, path+".back4")

	cfg.Naming.Strategy = "bogus"
	assert.Error(t, Save(path, cfg))
}

func TestWriteStarter(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteStarter(dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "am.toml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# runquery configuration")
	assert.Contains(t, string(data), "severity_order")

	_, err = WriteStarter(dir, false)
	require.Error(t, err)
	_, err = WriteStarter(dir, true)
	require.NoError(t, err)
	assert.FileExists(t, path+".back1")
}

func TestConfigWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "am.toml")
	require.NoError(t, Save(path, Default()))

	w, err := NewConfigWatcher(path, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	reloaded := make(chan *Config, 4)
	w.OnReload(func(c *Config) error {
		reloaded <- c
		return nil
	})
	w.Start()

	writeFile(t, path, "[naming]\nstrategy = \"short\"\n")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "short", cfg.Naming.Strategy)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after config change")
	}
}

func TestConfigWatcherIgnoresOwnWrites(t *testing.T) {
	w := &ConfigWatcher{}
	w.MarkOwnWrite()
	assert.True(t, w.checkOwnWrite())
	assert.False(t, w.checkOwnWrite())

	assert.True(t, isBackupFile("/tmp/am.toml.back2"))
	assert.False(t, isBackupFile("/tmp/am.toml"))
}
