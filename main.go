// wayfarer is a top-down action RPG whose scenes are linked by portals.
//
// Usage:
//
//	wayfarer play              - Start the game
//	wayfarer scenes list       - List the scene catalog
//	wayfarer scenes check      - Verify every portal's target and destination
//	wayfarer save show         - Print the saved progress
//	wayfarer save reset        - Delete the saved progress and opened chests
//
// Settings are read from WAYFARER_* environment variables; flags win.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/wayfarer/config"
)

var (
	flagSavePath string
	flagDebug    bool
	flagLogLevel string

	cfg config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "wayfarer",
	Short:         "Wayfarer - a top-down action RPG",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("save") {
			loaded.SavePath = flagSavePath
		}
		if cmd.Flags().Changed("debug") {
			loaded.Debug = flagDebug
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = flagLogLevel
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSavePath, "save", "", "Path to the save database (default ~/.wayfarer/save.db)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Debug overlay, collider outlines and prefab hot reload")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(saveCmd)
}

func newLogger(c config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "wayfarer",
	})
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", c.LogLevel)
		level = log.InfoLevel
	}
	if c.Debug && level > log.DebugLevel {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}
