package config

import (
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the configuration file when it changes on disk.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
}

// Watch starts watching path and invokes onChange with every validated
// reload. Invalid or unreadable files are logged and skipped; the previous
// configuration stays in effect.
func Watch(path string, onChange func(*Config)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fsWatcher.Add(path); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}

	w := &Watcher{
		path:     path,
		watcher:  fsWatcher,
		stopChan: make(chan struct{}),
	}
	go w.loop(onChange)
	return w, nil
}

// loop services file events with a backup ticker in case events are missed.
func (w *Watcher) loop(onChange func(*Config)) {
	// Editors often fire several writes per save; debounce with the ticker.
	var dirty bool
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				dirty = true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ConfigWatcher] File watcher error: %v", err)
		case <-ticker.C:
			if !dirty {
				continue
			}
			dirty = false
			w.reload(onChange)
		}
	}
}

func (w *Watcher) reload(onChange func(*Config)) {
	cfg, err := LoadFrom(w.path)
	if err != nil {
		log.Printf("[ConfigWatcher] Reload failed: %v", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("[ConfigWatcher] Ignoring invalid config: %v", err)
		return
	}
	onChange(cfg)
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
	_ = w.watcher.Close()
}
