// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	snapDir       string // Path to .git/codesnap directory
	globalConfDir string // Path to global config directory (e.g. ~/.config/codesnap)
}

// NewLoader creates a new Loader.
func NewLoader(snapDir string) *Loader {
	return &Loader{
		snapDir:       snapDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory. This is useful for testing.
func NewLoaderWithGlobalDir(snapDir, globalConfDir string) *Loader {
	return &Loader{
		snapDir:       snapDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalSnapDir(configHome)
}

// Load returns the merged configuration (defaults <- global <- repo, later
// takes precedence).
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	repoPath := filepath.Join(l.snapDir, domain.ConfigFileName)
	repo, err := loadFile(repoPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		mergeConfig(base, global)
	}
	if repo != nil {
		mergeConfig(base, repo)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// WriteRepoDefault writes the default configuration to the repository
// config file, creating the snap directory. Existing files are preserved.
func (l *Loader) WriteRepoDefault() error {
	path := filepath.Join(l.snapDir, domain.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(l.snapDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(domain.NewDefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // repo-local config
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// loadFile loads a configuration from a TOML file.
func loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg domain.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfig applies the non-zero fields of override onto base. Booleans
// merge as set-if-true: there is no way to distinguish an explicit false
// from an absent key, and the defaults are false.
func mergeConfig(base, override *domain.Config) {
	if override.MainBranch != "" {
		base.MainBranch = override.MainBranch
	}
	if override.BranchPrefix != "" {
		base.BranchPrefix = override.BranchPrefix
	}
	if override.SquashOnMerge {
		base.SquashOnMerge = true
	}
	if override.RetentionDays > 0 {
		base.RetentionDays = override.RetentionDays
	}
	if override.LockTimeout != "" {
		base.LockTimeout = override.LockTimeout
	}
	if override.Classifier.Model != "" {
		base.Classifier.Model = override.Classifier.Model
	}
	if override.Classifier.APIKeyEnv != "" {
		base.Classifier.APIKeyEnv = override.Classifier.APIKeyEnv
	}
	if override.Classifier.Disabled {
		base.Classifier.Disabled = true
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
}
