package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecordCmd() *cobra.Command {
	var (
		name   string
		height int
		beans  int
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Submit a finished run's result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == 0 {
				return fmt.Errorf("--player is required")
			}

			req := map[string]any{
				"user_id": cfg.PlayerID,
				"height":  height,
				"beans":   beans,
			}
			if name != "" {
				req["display_name"] = name
			}

			var result PlayerStats
			if err := client.Post("/api/v1/results", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name to record")
	cmd.Flags().IntVar(&height, "height", 0, "Height reached this run")
	cmd.Flags().IntVar(&beans, "beans", 0, "Beans collected this run")

	return cmd
}
