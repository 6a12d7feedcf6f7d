// Package game provides the ebiten.Game that drives the current Scene and
// handles Scene transitions.
package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/wage/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current     scene.Scene
	screenW     int
	screenH     int
	dt          float64
	logger      *log.Logger
	transitions int
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 TPS
		logger:  log.Default(),
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface. A scene returning ebiten.Termination
// ends the run without being reported as a failure.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		if errors.Is(err, ebiten.Termination) {
			g.logger.Info("game terminated by scene")
			g.current.OnExit()
			return ebiten.Termination
		}
		return fmt.Errorf("scene update failed: %w", err)
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
		g.transitions++
		g.logger.Debug("scene changed", "scene", fmt.Sprintf("%T", next), "transitions", g.transitions)
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetTPS derives the per-update delta time from the tick rate.
func (g *Game) SetTPS(tps int) {
	if tps > 0 {
		g.dt = 1.0 / float64(tps)
	}
}

// SetLogger replaces the logger used for transition messages.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Current returns the active scene.
func (g *Game) Current() scene.Scene {
	return g.current
}
