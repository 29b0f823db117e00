package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSkinsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skins",
		Short: "Skin shop commands",
	}

	cmd.AddCommand(newSkinsListCmd())
	cmd.AddCommand(newSkinsBuyCmd())
	cmd.AddCommand(newSkinsEquipCmd())

	return cmd
}

func newSkinsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the skin catalog for a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == 0 {
				return fmt.Errorf("--player is required")
			}

			var result SkinList
			if err := client.Get(fmt.Sprintf("/api/v1/players/%d/skins", cfg.PlayerID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSkinsBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <skin-id>",
		Short: "Purchase a skin with beans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == 0 {
				return fmt.Errorf("--player is required")
			}

			var result PurchaseResult
			path := fmt.Sprintf("/api/v1/players/%d/skins/%s/purchase", cfg.PlayerID, args[0])
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSkinsEquipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equip <skin-id>",
		Short: "Make an owned skin active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == 0 {
				return fmt.Errorf("--player is required")
			}

			var result PlayerStats
			path := fmt.Sprintf("/api/v1/players/%d/skins/%s/activate", cfg.PlayerID, args[0])
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
