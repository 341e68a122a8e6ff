package ui

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports debounced changes below a directory. pacman touches many
// entries per transaction, so a burst of events yields a single signal.
type Watcher struct {
	watcher  *fsnotify.Watcher
	changes  chan struct{}
	stopCh   chan struct{}
	wg       sync.WaitGroup
	debounce time.Duration
	logger   *zap.Logger
	once     sync.Once
}

// NewWatcher starts watching dir.
func NewWatcher(dir string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		changes:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		debounce: debounce,
		logger:   logger,
	}
	w.wg.Add(1)
	go w.run()
	logger.Debug("watching for package changes", zap.String("dir", dir))
	return w, nil
}

// Changes delivers one value per settled burst of filesystem events.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
