package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/wage/internal/application/game"
	"github.com/younwookim/wage/internal/application/scene"
	"github.com/younwookim/wage/internal/application/scene/loading"
	"github.com/younwookim/wage/internal/application/scene/playing"
	"github.com/younwookim/wage/internal/infrastructure/assets"
	"github.com/younwookim/wage/internal/infrastructure/config"
)

var (
	flagStage         string
	flagDebugHitboxes bool
	flagTPS           int
	flagWatch         bool
	flagMute          bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the demo stage",
	Long: `Open a window and play a stage.

Controls:
  Left/Right, A/D   - Walk
  Space/Up/W        - Jump
  Esc               - Pause / resume
  F1                - Toggle hitbox overlay

Examples:
  wage run
  wage run --stage demo --debug-hitboxes
  wage run --config ./cmd/wage/configs --watch`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagStage, "stage", "demo", "Stage to load from stages/<name>.yaml")
	runCmd.Flags().BoolVar(&flagDebugHitboxes, "debug-hitboxes", false, "Draw hitbox outlines")
	runCmd.Flags().IntVar(&flagTPS, "tps", 0, "Ticks per second (default: from engine.yaml)")
	runCmd.Flags().BoolVar(&flagWatch, "watch", false, "Rebuild the stage when config files change (needs --config)")
	runCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
}

// overrides are the command-line settings applied on top of engine.yaml.
type overrides struct {
	tps           int
	debugHitboxes bool
	mute          bool
}

func (o overrides) apply(cfg *config.EngineConfig) {
	if o.tps > 0 {
		cfg.Display.TPS = o.tps
	}
	if o.debugHitboxes {
		cfg.Debug.Hitboxes = true
	}
	if o.mute {
		cfg.Audio.Enabled = false
	}
}

func runRun(_ *cobra.Command, _ []string) error {
	if flagWatch && flagConfig == "" {
		return errors.New("--watch needs --config: embedded configs cannot change")
	}

	loader, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	overrides{tps: flagTPS, debugHitboxes: flagDebugHitboxes, mute: flagMute}.apply(cfg.Engine)
	if err := cfg.Engine.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Engine.Log.Level, flagLogLevel)
	if err != nil {
		return err
	}

	stage, err := loader.LoadStage(flagStage, cfg.Entities.Templates)
	if err != nil {
		return err
	}

	lib := assets.NewLibrary(assets.NewLoader(loader.FS(), logger))
	for _, tex := range cfg.Sprites.Textures() {
		lib.AddTexture(tex)
	}
	for name, path := range cfg.Sprites.Sounds {
		lib.AddSound(name, path)
	}

	opts := playing.Options{
		Logger:   logger,
		Textures: lib,
	}

	if cfg.Engine.Audio.Enabled {
		sp := assets.NewSpeaker(cfg.Engine.Audio.SampleRate, cfg.Engine.Audio.BufferMs)
		if err := sp.Init(); err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			defer sp.Close()
			opts.Sounds = playing.AudioOut{Library: lib, Speaker: sp}
		}
	}

	if flagWatch {
		w, err := config.NewWatcher(logger, flagConfig, filepath.Join(flagConfig, "stages"))
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", flagConfig, err)
		}
		defer w.Close()
		opts.Watcher = w
		opts.Loader = loader
	}

	d := cfg.Engine.Display
	next := func() (scene.Scene, error) {
		return playing.New(cfg, stage, opts)
	}
	g := game.New(loading.New(lib.Loader(), next, d.ScreenWidth, d.ScreenHeight, logger), d.ScreenWidth, d.ScreenHeight)
	g.SetTPS(d.TPS)
	g.SetLogger(logger)

	ebiten.SetWindowSize(d.ScreenWidth*d.Scale, d.ScreenHeight*d.Scale)
	ebiten.SetWindowTitle(d.Title)
	ebiten.SetTPS(d.TPS)

	logger.Info("starting", "stage", stage.ID, "tps", d.TPS, "textures", len(cfg.Sprites.Textures()), "sounds", len(cfg.Sprites.Sounds))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	logger.Info("stopped")
	return nil
}
