// Package cmd contains the CLI command definitions for GitMuse.
package cmd

import (
	"fmt"
	"strings"

	"github.com/gitmuse/gitmuse/internal/pkg/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage GitMuse configuration",
		Long: `Manage GitMuse configuration settings.

Use subcommands to initialize, view, or modify configuration values.
Configuration is stored in ~/.gitmuse/config.yaml by default.`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigSetCmd())
	configCmd.AddCommand(newConfigGetCmd())
	configCmd.AddCommand(newConfigListCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' subcommand.
func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long: `Create a new configuration file at ~/.gitmuse/config.yaml with default
values. The file is created with permissions 0600 since it may contain
an API key for OpenAI-compatible providers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			if err := mgr.Init(); err != nil {
				return err
			}

			fmt.Printf("Configuration file created at %s\n", mgr.GetConfigPath())
			return nil
		},
	}
}

// newConfigSetCmd creates the 'config set' subcommand.
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value by key.

Supports nested keys using dot notation.

Examples:
  gitmuse config set provider.model llama3
  gitmuse config set commit.language spanish
  gitmuse config set tag.bump minor`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			if !mgr.ConfigExists() {
				return fmt.Errorf("config file not found. Run 'gitmuse config init' first")
			}

			if err := mgr.Set(key, value); err != nil {
				return err
			}

			displayValue := value
			if strings.Contains(strings.ToLower(key), "api_key") {
				displayValue = config.MaskAPIKey(value)
			}
			fmt.Printf("Set %s = %s\n", key, displayValue)
			return nil
		},
	}
}

// newConfigGetCmd creates the 'config get' subcommand.
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			value, err := mgr.Get(key)
			if err != nil {
				return err
			}

			if strings.Contains(strings.ToLower(key), "api_key") && value != "" {
				value = config.MaskAPIKey(value)
			}
			fmt.Println(value)
			return nil
		},
	}
}

// newConfigListCmd creates the 'config list' subcommand.
func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `Display all current configuration values.

API keys are masked, showing only the last 4 characters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			printSettings("", mgr.List())
			return nil
		},
	}
}

// printSettings recursively prints configuration settings.
func printSettings(indent string, settings map[string]interface{}) {
	for key, value := range settings {
		switch v := value.(type) {
		case map[string]interface{}:
			fmt.Printf("%s%s:\n", indent, key)
			printSettings(indent+"  ", v)
		default:
			displayValue := fmt.Sprintf("%v", value)
			if strings.Contains(strings.ToLower(key), "api_key") && displayValue != "" {
				displayValue = config.MaskAPIKey(displayValue)
			}
			fmt.Printf("%s%s: %s\n", indent, key, displayValue)
		}
	}
}
