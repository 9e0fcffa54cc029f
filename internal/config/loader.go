package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Loader handles configuration loading from various sources
type Loader struct {
	// Problems met while loading that did not stop the build
	diagnostics []string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForBuild loads the build configuration. The optional first argument
// is the path to the configuration document.
//
// A missing or unparsable document is not an error: the problem is
// returned as a diagnostic and the defaults are used instead.
func (l *Loader) LoadForBuild(cmd *cobra.Command, args []string) (*BuildConfiguration, []string, error) {
	l.diagnostics = nil

	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadProjectConfig(args)
	l.bindCommandFlags(cmd)

	cfg, err := Load()
	if err != nil {
		l.diagnostics = append(l.diagnostics, err.Error())
		cfg = Default()
	}

	warnings, err := cfg.Validate()
	if err != nil {
		return nil, l.diagnostics, err
	}

	return cfg, append(l.diagnostics, warnings...), nil
}

// Load builds a configuration from the current viper state.
func Load() (*BuildConfiguration, error) {
	var doc document
	if err := viper.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg := doc.configuration()
	cfg.applyDefaults()

	return cfg, nil
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("compiler", DefaultCompiler)
	viper.SetDefault("outputFile", DefaultOutputFile)
	viper.SetDefault("testCommand", DefaultTestCommand)
	viper.SetDefault("parallelJobs", DefaultParallelJobs)
	viper.SetDefault("cleanBuild", false)
	viper.SetDefault("runWhenBuilt", false)
	viper.SetDefault("testWhenBuilt", false)
}

// loadGlobalConfig loads per-user defaults from the user config directory
func (l *Loader) loadGlobalConfig() {
	dir, err := os.UserConfigDir()
	if err != nil {
		return
	}

	globalDir := filepath.Join(dir, "daemonic")

	for _, ext := range []string{"yml", "yaml", "json", "toml"} {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.ReadInConfig(); err == nil {
				break
			}

			l.diagnostics = append(l.diagnostics, fmt.Sprintf("couldn't decode global config %s", globalPath))
		}
	}
}

// loadProjectConfig merges the project document over the global config
func (l *Loader) loadProjectConfig(args []string) {
	path := ConfigPath(args)

	if _, err := os.Stat(path); err != nil {
		l.diagnostics = append(l.diagnostics, fmt.Sprintf("couldn't read config file %s: %v", path, err))
		return
	}

	viper.SetConfigFile(path)
	if err := viper.MergeInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			l.diagnostics = append(l.diagnostics, fmt.Sprintf("couldn't decode config file %s: %v", path, err))
			return
		}

		l.diagnostics = append(l.diagnostics, fmt.Sprintf("couldn't read config file %s: %v", path, err))
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	if f := cmd.Flags().Lookup("no-journal"); f != nil {
		_ = viper.BindPFlag("journalDisabled", f)
	}

	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		_ = viper.BindPFlag("parallelJobs", f)
	}
}

// ConfigPath returns the configuration document to read. Without an
// argument it is DefaultConfigPath, or the nearest scripts/buildConfig.*
// above the working directory when that does not exist.
func ConfigPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}

	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return DefaultConfigPath
	}

	if wd, err := os.Getwd(); err == nil {
		if found := FindProjectConfig(wd); found != "" {
			return found
		}
	}

	return DefaultConfigPath
}
