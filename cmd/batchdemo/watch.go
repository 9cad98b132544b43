package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long to wait for a burst of editor writes to finish.
const settle = 100 * time.Millisecond

// watchScene calls onChange after every change to the file at path until
// the process is interrupted. The parent directory is watched so that
// editors replacing the file by rename are seen.
func watchScene(path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	log.Printf("Watching %s\n", path)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	var pending <-chan time.Time
	for {
		select {
		case <-interrupt:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isSceneChange(event, abs) {
				pending = time.After(settle)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		case <-pending:
			pending = nil
			onChange()
		}
	}
}

// isSceneChange reports whether event rewrote the scene file.
func isSceneChange(event fsnotify.Event, scene string) bool {
	if filepath.Clean(event.Name) != scene {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
