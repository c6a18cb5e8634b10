package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/prefabs"
	"github.com/milk9111/wayfarer/scene"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "Inspect the scene catalog",
}

var scenesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loadable scenes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := scene.LoadCatalog(levels.LevelsFS)
		if err != nil {
			return err
		}
		fmt.Printf("start: %s (%s)\n\n", catalog.Start(), catalog.StartDestination())
		for _, id := range catalog.Scenes() {
			fmt.Printf("  %s\n", id)
		}
		return nil
	},
}

var scenesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify every portal's target scene and destination",
	Long: `Load every catalog scene offline and report portals whose target scene is
not in the catalog or whose destination id does not resolve there.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefabs.DiskDir = cfg.PrefabDir
		catalog, err := scene.LoadCatalog(levels.LevelsFS)
		if err != nil {
			return err
		}
		problems := scene.Check(levels.LevelsFS, catalog)
		if len(problems) == 0 {
			fmt.Printf("%d scenes ok\n", len(catalog.Scenes()))
			return nil
		}
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, p)
		}
		return fmt.Errorf("%d broken links", len(problems))
	},
}

func init() {
	scenesCmd.AddCommand(scenesListCmd)
	scenesCmd.AddCommand(scenesCheckCmd)
}
