// Package scene defines the Scene interface for game screens.
//
// The loading screen and the playing screen each implement Scene; the game
// driver delegates ebiten's Update and Draw to whichever is current.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen.
//
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update updates the scene state.
	// dt is the delta time in seconds (1/TPS).
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game; ebiten.Termination ends it cleanly.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene.
	OnExit()
}

// Builder creates a scene on demand, e.g. once its assets are loaded.
type Builder func() (Scene, error)
