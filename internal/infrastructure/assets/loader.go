package assets

import (
	"context"
	"fmt"
	"io/fs"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism bounds how many assets load at once.
const DefaultParallelism = 4

// Asset is a resource read from the asset file system.
type Asset interface {
	Path() string
	Load(fsys fs.FS) error
	Loaded() bool
}

// ProgressFunc is called once per finished asset with the number of assets
// in the batch and how many have finished so far.
type ProgressFunc func(total, loaded int)

// Loader loads a batch of added assets in parallel.
type Loader struct {
	fsys        fs.FS
	logger      *log.Logger
	parallelism int

	mu     sync.Mutex
	assets []Asset
}

// NewLoader creates a loader reading from fsys. A nil logger uses
// log.Default().
func NewLoader(fsys fs.FS, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		fsys:        fsys,
		logger:      logger,
		parallelism: DefaultParallelism,
	}
}

// SetParallelism changes the number of concurrent loads. Values below 1
// are treated as 1.
func (l *Loader) SetParallelism(n int) {
	if n < 1 {
		n = 1
	}
	l.parallelism = n
}

// Add queues an asset for the next Load.
func (l *Loader) Add(a Asset) {
	if a == nil {
		return
	}
	l.mu.Lock()
	l.assets = append(l.assets, a)
	l.mu.Unlock()
}

// Len returns the number of queued assets.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.assets)
}

// Reset discards all queued assets.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.assets = nil
	l.mu.Unlock()
}

// Load loads every queued asset and blocks until all finished. An empty
// batch completes immediately without calling onProgress. After a fully
// successful load the queue is cleared; on failure it is kept so the
// caller can retry.
func (l *Loader) Load(ctx context.Context, onProgress ProgressFunc) error {
	l.mu.Lock()
	batch := make([]Asset, len(l.assets))
	copy(batch, l.assets)
	l.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	if onProgress == nil {
		onProgress = func(int, int) {}
	}

	total := len(batch)
	var (
		progressMu sync.Mutex
		loaded     int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.parallelism)
	for _, a := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := a.Load(l.fsys); err != nil {
				return fmt.Errorf("failed to load %s: %w", a.Path(), err)
			}

			progressMu.Lock()
			loaded++
			onProgress(total, loaded)
			progressMu.Unlock()

			l.logger.Debug("asset loaded", "path", a.Path())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	l.drop(batch)

	l.logger.Info("assets loaded", "count", total)
	return nil
}

// drop removes the assets of a finished batch from the queue. The queue may
// have been reset or extended while the batch was loading.
func (l *Loader) drop(batch []Asset) {
	done := make(map[Asset]struct{}, len(batch))
	for _, a := range batch {
		done[a] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	var rest []Asset
	for _, a := range l.assets {
		if _, ok := done[a]; !ok {
			rest = append(rest, a)
		}
	}
	l.assets = rest
}
