package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show a player's statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == 0 {
				return fmt.Errorf("--player is required")
			}

			var result PlayerStats
			if err := client.Get(fmt.Sprintf("/api/v1/players/%d/stats", cfg.PlayerID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
