package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "perkyctl",
		Short: "CLI tool for the Perky Jump API",
		Long: `perkyctl is a CLI tool for interacting with the Perky Jump JSON API.

It supports player stats, the global leaderboard, the skin shop,
and submitting game results.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.InitData)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PERKYCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.InitData, "init-data", cfg.InitData, "Telegram init data (env: PERKYCTL_INIT_DATA)")
	rootCmd.PersistentFlags().Int64Var(&cfg.PlayerID, "player", cfg.PlayerID, "Player id (env: PERKYCTL_PLAYER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newSkinsCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
