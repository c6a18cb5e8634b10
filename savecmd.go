package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/wayfarer/save"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Inspect or reset the save database",
}

var saveShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := save.Open(cfg.SavePath)
		if err != nil {
			return err
		}
		defer store.Close()

		p, err := store.LoadProgress()
		if errors.Is(err, save.ErrNoSave) {
			fmt.Println("No saved progress.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("scene:       %s\n", p.Scene)
		fmt.Printf("destination: %s\n", p.Destination)
		fmt.Printf("health:      %d/%d\n", p.Health, p.MaxHealth)
		fmt.Printf("coins:       %d\n", p.Coins)
		fmt.Printf("saved:       %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))

		chests, err := store.OpenedChests(p.Scene)
		if err != nil {
			return err
		}
		fmt.Printf("opened chests in %s: %d\n", p.Scene, len(chests))
		return nil
	},
}

var saveResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved progress and opened chests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := save.Open(cfg.SavePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Println("Save reset.")
		return nil
	},
}

func init() {
	saveCmd.AddCommand(saveShowCmd)
	saveCmd.AddCommand(saveResetCmd)
}
