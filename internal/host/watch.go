package host

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports writes to a fixed set of files. It watches their
// directories, so editors that save by rename are still seen.
type Watcher struct {
	w      *fsnotify.Watcher
	files  map[string]struct{}
	logger *log.Logger
}

// NewWatcher watches the directories holding files. Directories that do not
// exist are skipped.
func NewWatcher(files []string, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{w: fw, files: make(map[string]struct{}), logger: logger}
	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("absolute path: %w", err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			logger.Debug("not watching missing directory", "dir", dir)
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch directory: %w", err)
		}
		logger.Debug("watching", "dir", dir)
	}
	return w, nil
}

// Forward sends the path of each changed file to out until ctx is done or
// the watcher is closed. Sends never block: a pending trigger already covers
// the change.
func (w *Watcher) Forward(ctx context.Context, out chan<- string) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file changed", "event", event.Op.String(), "file", event.Name)
			select {
			case out <- event.Name:
			default:
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "err", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}

// notifyReload forwards SIGHUP to out as a "SIGHUP" trigger until the
// returned stop function is called.
func notifyReload(out chan<- string) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigCh:
				select {
				case out <- "SIGHUP":
				default:
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
