// Package config provides configuration management for GitMuse.
package config

// Config represents the complete GitMuse configuration. It is built
// once from parsed input and passed to each component; there are no
// ambient globals.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Commit   CommitConfig   `mapstructure:"commit"`
	Tag      TagConfig      `mapstructure:"tag"`
	History  HistoryConfig  `mapstructure:"history"`
	UI       UIConfig       `mapstructure:"ui"`
}

// ProviderConfig contains inference provider settings.
type ProviderConfig struct {
	Name        string  `mapstructure:"name"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Endpoint    string  `mapstructure:"endpoint"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// CommitConfig contains commit-related settings.
type CommitConfig struct {
	// Language is the natural-language locale for the generated message.
	Language string `mapstructure:"language"`
	// Push controls whether the current branch is pushed after commit.
	Push bool `mapstructure:"push"`
}

// TagConfig contains version-tagging settings.
type TagConfig struct {
	// Enabled controls whether a tag bump follows a successful commit.
	Enabled bool `mapstructure:"enabled"`
	// Bump is the default bump type: patch, minor, or major.
	Bump string `mapstructure:"bump"`
}

// HistoryConfig contains generation-history settings.
type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	MaxEntries int    `mapstructure:"max_entries"`
	FilePath   string `mapstructure:"file_path"`
}

// UIConfig contains UI-related settings.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// Manager defines the interface for configuration management.
type Manager interface {
	Load() (*Config, error)
	Save(config *Config) error
	Set(key string, value string) error
	Get(key string) (string, error)
	Init() error
	List() map[string]interface{}
	GetConfigPath() string
}
