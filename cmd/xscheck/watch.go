package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow is the fixed pause after the first filesystem event in
// a burst before a re-check pass runs.
const debounceWindow = 150 * time.Millisecond

// watch re-runs runPass once immediately, then again every time target
// or one of includeDirs changes, debounced into a single pass per burst
// of events. It never returns on its own; the caller's process exits to
// stop it (Ctrl+C).
func watch(target string, includeDirs []string, runPass func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := map[string]bool{}
	addWatch := func(path string) {
		if path == "" || watched[path] {
			return
		}
		if err := watcher.Add(path); err == nil {
			watched[path] = true
		}
	}

	addWatch(filepath.Dir(target))
	for _, dir := range includeDirs {
		addWatch(dir)
	}

	runPass()

	var debounce *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(ev.Name) != ".xs" {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		case <-fire:
			runPass()
		}
	}
}
