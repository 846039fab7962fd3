package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigFileExt is the default config file extension.
	DefaultConfigFileExt = "yaml"
)

// ViperManager implements the Manager interface using Viper.
type ViperManager struct {
	v          *viper.Viper
	configPath string
}

// NewManager creates a new configuration manager.
// If configPath is empty, it uses the default path (~/.gitmuse/config.yaml).
func NewManager(configPath string) (*ViperManager, error) {
	v := viper.New()
	v.SetConfigType(DefaultConfigFileExt)

	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".gitmuse", "config.yaml")
	}
	v.SetConfigFile(configPath)

	v.SetEnvPrefix("GITMUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults first, they are required for env binding on nested keys
	setDefaults(v)
	bindEnvVars(v)

	return &ViperManager{
		v:          v,
		configPath: configPath,
	}, nil
}

// bindEnvVars explicitly binds environment variables for all config keys.
// Viper's AutomaticEnv doesn't handle nested keys on its own.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("provider.name", "GITMUSE_PROVIDER_NAME")
	_ = v.BindEnv("provider.api_key", "GITMUSE_PROVIDER_API_KEY")
	_ = v.BindEnv("provider.model", "GITMUSE_PROVIDER_MODEL")
	_ = v.BindEnv("provider.endpoint", "GITMUSE_PROVIDER_ENDPOINT")
	_ = v.BindEnv("provider.temperature", "GITMUSE_PROVIDER_TEMPERATURE")
	_ = v.BindEnv("provider.max_tokens", "GITMUSE_PROVIDER_MAX_TOKENS")

	_ = v.BindEnv("commit.language", "GITMUSE_COMMIT_LANGUAGE")
	_ = v.BindEnv("commit.push", "GITMUSE_COMMIT_PUSH")

	_ = v.BindEnv("tag.enabled", "GITMUSE_TAG_ENABLED")
	_ = v.BindEnv("tag.bump", "GITMUSE_TAG_BUMP")

	_ = v.BindEnv("history.enabled", "GITMUSE_HISTORY_ENABLED")
	_ = v.BindEnv("history.max_entries", "GITMUSE_HISTORY_MAX_ENTRIES")
	_ = v.BindEnv("history.file_path", "GITMUSE_HISTORY_FILE_PATH")

	_ = v.BindEnv("ui.color_enabled", "GITMUSE_UI_COLOR_ENABLED")
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.name", "ollama")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", "llama3")
	v.SetDefault("provider.endpoint", "http://localhost:11434")
	v.SetDefault("provider.temperature", 0.2)
	v.SetDefault("provider.max_tokens", 200)

	v.SetDefault("commit.language", "english")
	v.SetDefault("commit.push", true)

	v.SetDefault("tag.enabled", true)
	v.SetDefault("tag.bump", "patch")

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.max_entries", 1000)
	homeDir, _ := os.UserHomeDir()
	v.SetDefault("history.file_path", filepath.Join(homeDir, ".gitmuse", "history.json"))

	v.SetDefault("ui.color_enabled", true)
}

// GetConfigPath returns the path to the configuration file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// ConfigExists checks if the configuration file exists.
func (m *ViperManager) ConfigExists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// Load loads the configuration from file, environment, and defaults.
// Priority: flags > env > file > defaults
func (m *ViperManager) Load() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Init creates a new configuration file with default values.
// Sets file permissions to 0600 since the file may hold an API key.
func (m *ViperManager) Init() error {
	if _, err := os.Stat(m.configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", m.configPath)
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.v.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Chmod(m.configPath, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}
	return nil
}

// Save saves the configuration to file.
func (m *ViperManager) Save(config *Config) error {
	m.v.Set("provider", config.Provider)
	m.v.Set("commit", config.Commit)
	m.v.Set("tag", config.Tag)
	m.v.Set("history", config.History)
	m.v.Set("ui", config.UI)

	if err := m.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Set sets a configuration value by key.
// Supports nested keys using dot notation (e.g., "provider.model").
func (m *ViperManager) Set(key string, value string) error {
	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	existingValue := m.v.Get(key)
	convertedValue, err := convertValue(value, existingValue)
	if err != nil {
		return fmt.Errorf("failed to convert value for key %s: %w", key, err)
	}
	m.v.Set(key, convertedValue)

	if err := m.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// convertValue converts a string value to the type of the existing value.
func convertValue(value string, existingValue interface{}) (interface{}, error) {
	if existingValue == nil {
		return value, nil
	}

	switch existingValue.(type) {
	case bool:
		return strconv.ParseBool(value)
	case int, int64:
		return strconv.ParseInt(value, 10, 64)
	case float32, float64:
		return strconv.ParseFloat(value, 64)
	default:
		return value, nil
	}
}

// Get retrieves a configuration value by key.
func (m *ViperManager) Get(key string) (string, error) {
	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read config file: %w", err)
		}
	}

	value := m.v.Get(key)
	if value == nil {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return fmt.Sprintf("%v", value), nil
}

// List returns all configuration values as a map.
func (m *ViperManager) List() map[string]interface{} {
	_ = m.v.ReadInConfig()
	return m.v.AllSettings()
}

// SetOverride sets a temporary override for a configuration key.
// Used for command-line flag overrides that shouldn't persist.
func (m *ViperManager) SetOverride(key string, value interface{}) {
	m.v.Set(key, value)
}

// MaskAPIKey masks an API key, showing only the last 4 characters.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
