// Package loading provides the scene shown while assets load.
package loading

import (
	"context"
	"fmt"
	"image/color"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/wage/internal/application/scene"
	"github.com/younwookim/wage/internal/infrastructure/assets"
)

var (
	colorBarBG = color.RGBA{60, 60, 60, 255}
	colorBarFG = color.RGBA{100, 200, 100, 255}
)

// Loading loads every queued asset in the background, then switches to the
// scene built by next.
type Loading struct {
	loader  *assets.Loader
	next    scene.Builder
	logger  *log.Logger
	screenW int
	screenH int

	mu     sync.Mutex
	total  int
	loaded int

	done   chan error
	cancel context.CancelFunc
}

// New creates a loading scene.
func New(loader *assets.Loader, next scene.Builder, screenW, screenH int, logger *log.Logger) *Loading {
	if logger == nil {
		logger = log.Default()
	}
	return &Loading{
		loader:  loader,
		next:    next,
		logger:  logger,
		screenW: screenW,
		screenH: screenH,
	}
}

// OnEnter starts loading (implements scene.Scene)
func (l *Loading) OnEnter() {
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan error, 1)

	l.mu.Lock()
	l.total, l.loaded = l.loader.Len(), 0
	l.mu.Unlock()

	go func() {
		l.done <- l.loader.Load(ctx, l.progress)
	}()
}

func (l *Loading) progress(total, loaded int) {
	l.mu.Lock()
	l.total, l.loaded = total, loaded
	l.mu.Unlock()
	l.logger.Debug("loading", "loaded", loaded, "total", total)
}

// Progress returns the asset counts seen so far.
func (l *Loading) Progress() (total, loaded int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total, l.loaded
}

// Update waits for the load to finish (implements scene.Scene)
func (l *Loading) Update(_ float64) (scene.Scene, error) {
	select {
	case err := <-l.done:
		if err != nil {
			return nil, fmt.Errorf("failed to load assets: %w", err)
		}
		next, err := l.next()
		if err != nil {
			return nil, fmt.Errorf("failed to build scene: %w", err)
		}
		return next, nil
	default:
		return nil, nil
	}
}

// Draw renders a progress bar (implements scene.Scene)
func (l *Loading) Draw(screen *ebiten.Image) {
	total, loaded := l.Progress()
	ratio := 1.0
	if total > 0 {
		ratio = float64(loaded) / float64(total)
	}

	barW, barH := float32(l.screenW)/2, float32(8)
	x, y := float32(l.screenW)/4, float32(l.screenH)/2
	vector.DrawFilledRect(screen, x, y, barW, barH, colorBarBG, false)
	vector.DrawFilledRect(screen, x, y, barW*float32(ratio), barH, colorBarFG, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Loading %d/%d", loaded, total), int(x), int(y)-20)
}

// OnExit cancels a load still in flight (implements scene.Scene)
func (l *Loading) OnExit() {
	if l.cancel != nil {
		l.cancel()
	}
}
