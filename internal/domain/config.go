package domain

import "time"

// Config represents the application configuration.
type Config struct {
	MainBranch    string           `toml:"main_branch"`
	BranchPrefix  string           `toml:"branch_prefix"`
	SquashOnMerge bool             `toml:"squash_on_merge"`
	RetentionDays int              `toml:"retention_days"`
	LockTimeout   string           `toml:"lock_timeout"`
	Classifier    ClassifierConfig `toml:"classifier"`
	Log           LogConfig        `toml:"log"`
}

// ClassifierConfig holds settings for the file-classification service
// from the [classifier] section.
type ClassifierConfig struct {
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
	Disabled  bool   `toml:"disabled"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Default configuration values.
const (
	DefaultMainBranch    = "main"
	DefaultBranchPrefix  = "cs/"
	DefaultRetentionDays = 30
	DefaultLockTimeout   = 5 * time.Second
	DefaultModel         = "claude-sonnet-4-20250514"
	DefaultAPIKeyEnv     = "ANTHROPIC_API_KEY"
)

// NewDefaultConfig returns the configuration used when no config file exists.
func NewDefaultConfig() *Config {
	return &Config{
		MainBranch:    DefaultMainBranch,
		BranchPrefix:  DefaultBranchPrefix,
		SquashOnMerge: false,
		RetentionDays: DefaultRetentionDays,
		LockTimeout:   DefaultLockTimeout.String(),
		Classifier: ClassifierConfig{
			Model:     DefaultModel,
			APIKeyEnv: DefaultAPIKeyEnv,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LockTimeoutDuration parses the configured lock timeout, falling back to
// the default on empty or malformed values.
func (c *Config) LockTimeoutDuration() time.Duration {
	if c.LockTimeout == "" {
		return DefaultLockTimeout
	}
	d, err := time.ParseDuration(c.LockTimeout)
	if err != nil || d <= 0 {
		return DefaultLockTimeout
	}
	return d
}

// RetentionDuration returns the prune retention threshold.
func (c *Config) RetentionDuration() time.Duration {
	days := c.RetentionDays
	if days <= 0 {
		days = DefaultRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}
