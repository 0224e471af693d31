// Package watch reports when files under a scan root change so the session
// can rescan.
package watch

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SkipFunc reports whether a directory, relative to the root, is ignored.
type SkipFunc func(rel string) bool

// Watcher monitors a directory tree and coalesces bursts of events into
// single notifications.
type Watcher struct {
	root     string
	skip     SkipFunc
	debounce time.Duration

	fsWatcher *fsnotify.Watcher
	changes   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New starts watching root and every non-skipped directory below it.
func New(root string, skip SkipFunc, debounce time.Duration) (*Watcher, error) {
	fsW, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:      root,
		skip:      skip,
		debounce:  debounce,
		fsWatcher: fsW,
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	if err := w.addRecursive(root); err != nil {
		fsW.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes delivers one value per settled burst of file events. It is closed
// by Close.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
		close(w.changes)
	})
	return err
}

func (w *Watcher) skipped(path string) bool {
	if w.skip == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return w.skip(rel)
}

// addRecursive adds dir and its subdirectories, pruning skipped ones.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipped(path) {
			return fs.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			// New directories are watched as they appear.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.skipped(event.Name) {
					if err := w.addRecursive(event.Name); err != nil {
						log.Printf("watch: %s: %v", event.Name, err)
					}
				}
			}
			if w.skipped(filepath.Dir(event.Name)) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
				// A notification is already waiting.
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}
