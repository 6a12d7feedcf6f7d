package config

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long a file must stay quiet before its change
// is reported.
const DebounceInterval = 100 * time.Millisecond

// Watcher reports changed YAML files under the watched directories.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *log.Logger
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dirs. A nil logger uses log.Default().
func NewWatcher(logger *log.Logger, dirs ...string) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		logger:  logger,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once the watch
// goroutine exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Poll returns one pending changed file without blocking.
func (w *Watcher) Poll() (string, bool) {
	select {
	case name, ok := <-w.Events:
		return name, ok
	default:
		return "", false
	}
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	d := newDebouncer(DebounceInterval)
	timer := time.NewTimer(DebounceInterval)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time
	schedule := func() {
		wait, ok := d.wait(time.Now())
		if !ok {
			fire = nil
			return
		}
		timer.Reset(wait)
		fire = timer.C
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isYAML(event.Name) {
				continue
			}
			d.touch(event.Name, time.Now())
			schedule()
		case <-fire:
			for _, name := range d.flush(time.Now()) {
				w.logger.Debug("config changed", "file", name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// debouncer reports a key once no event for it arrived for an interval.
type debouncer struct {
	interval time.Duration
	due      map[string]time.Time
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval, due: make(map[string]time.Time)}
}

// touch records an event for key, pushing its report back by the interval.
func (d *debouncer) touch(key string, now time.Time) {
	d.due[key] = now.Add(d.interval)
}

// flush removes and returns the keys that have been quiet long enough,
// in name order.
func (d *debouncer) flush(now time.Time) []string {
	var out []string
	for key, t := range d.due {
		if !t.After(now) {
			out = append(out, key)
			delete(d.due, key)
		}
	}
	slices.Sort(out)
	return out
}

// wait returns the time until the next key is due.
func (d *debouncer) wait(now time.Time) (time.Duration, bool) {
	if len(d.due) == 0 {
		return 0, false
	}
	first := true
	var next time.Time
	for _, t := range d.due {
		if first || t.Before(next) {
			next, first = t, false
		}
	}
	return max(next.Sub(now), 0), true
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
