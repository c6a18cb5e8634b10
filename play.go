package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/wayfarer/save"
)

var (
	flagScene       string
	flagDestination string
	flagContinue    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Open the game window at the catalog start scene.

Examples:
  wayfarer play
  wayfarer play --scene forest --destination ForestFromHub
  wayfarer play --continue`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagScene, "scene", "", "Start scene (overrides the catalog start)")
	playCmd.Flags().StringVar(&flagDestination, "destination", "", "Destination id in the start scene")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Resume from the saved progress")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagScene != "" {
		cfg.Scene, cfg.Destination = flagScene, flagDestination
	}
	logger := newLogger(cfg)

	store, err := save.Open(cfg.SavePath)
	if err != nil {
		return fmt.Errorf("open save: %w", err)
	}
	defer store.Close()

	opts := GameOptions{Config: cfg, Store: store}
	if flagContinue {
		progress, err := store.LoadProgress()
		switch {
		case errors.Is(err, save.ErrNoSave):
			logger.Info("no saved progress, starting fresh")
		case err != nil:
			return fmt.Errorf("load save: %w", err)
		default:
			opts.Resume = &progress
		}
	}

	game, err := NewGame(logger, opts)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("wayfarer")
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	logger.Info("bye")
	return nil
}
