// Package cmd contains the CLI command definitions for GitMuse.
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/gitmuse/gitmuse/internal/pkg/config"
	"github.com/gitmuse/gitmuse/internal/pkg/history"
	"github.com/spf13/cobra"
)

const (
	// DefaultHistoryLimit is the default number of history entries to display.
	DefaultHistoryLimit = 20
)

// NewHistoryCmd creates the history command and its subcommands.
func NewHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "View generated message history",
		Long: `View the history of generated commit messages.

By default, displays the most recent 20 entries.

Examples:
  gitmuse history           # Show last 20 entries
  gitmuse history --limit 5 # Show last 5 entries
  gitmuse history clear     # Clear all history`,
		RunE: runHistoryList,
	}

	historyCmd.Flags().IntP("limit", "l", DefaultHistoryLimit, "Number of entries to display")
	historyCmd.AddCommand(newHistoryClearCmd())

	return historyCmd
}

// runHistoryList displays the history entries.
func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadHistoryConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		fmt.Println("History is disabled. Enable it with: gitmuse config set history.enabled true")
		return nil
	}

	historyMgr := history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
	entries, err := historyMgr.List(limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	fmt.Printf("Showing %d most recent entries:\n\n", len(entries))
	for _, entry := range entries {
		status := "generated"
		if entry.Committed {
			status = "committed"
		}
		fmt.Printf("%s  [%s, %s/%s, attempt %d]\n",
			entry.Timestamp.Format(time.DateTime), status, entry.Provider, entry.Model, entry.Attempts)
		fmt.Printf("  %s\n", entry.Message)
		if entry.Tag != "" {
			fmt.Printf("  tag: %s\n", entry.Tag)
		}
		fmt.Println(strings.Repeat("-", 50))
	}
	return nil
}

// newHistoryClearCmd creates the 'history clear' subcommand.
func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadHistoryConfig(cmd)
			if err != nil {
				return err
			}

			historyMgr := history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
			if err := historyMgr.Clear(); err != nil {
				return err
			}

			fmt.Println("History cleared.")
			return nil
		},
	}
}

// loadHistoryConfig loads configuration for the history commands.
func loadHistoryConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	mgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	cfg, err := mgr.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
