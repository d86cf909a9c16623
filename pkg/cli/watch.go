package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/toolmesh/toolmesh/pkg/console"
	"github.com/toolmesh/toolmesh/pkg/logger"
)

var watchLog = logger.New("cli:watch")

// Watch runs opts once immediately, then re-runs it every time a file
// under one of paths changes, until ctx is cancelled (Ctrl-C). Mirrors
// the teacher's compile --watch loop, adapted to fsnotify's
// directory-level watch-then-filter idiom.
func Watch(ctx context.Context, paths []string, opts RunOptions) error {
	result, err := Run(ctx, opts)
	if err != nil {
		return err
	}
	PrintResult(result, opts)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	watchDirs, err := dirsToWatch(paths)
	if err != nil {
		return err
	}
	for _, dir := range watchDirs {
		if err := watcher.Add(dir); err != nil {
			watchLog.Printf("failed to watch %s: %v", dir, err)
			continue
		}
		watchLog.Printf("watching %s", dir)
	}

	fmt.Fprintln(os.Stderr, console.FormatInfoMessage("watching for changes, press Ctrl-C to stop"))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
				continue
			}
			watchLog.Printf("change detected: %s", event.Name)
			result, err := Run(ctx, opts)
			if err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				continue
			}
			console.ClearScreen()
			PrintResult(result, opts)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Printf("watcher error: %v", err)
		}
	}
}

// dirsToWatch resolves paths (files or directories) to the set of
// directories fsnotify should watch; fsnotify watches directories, not
// individual files, so a file path resolves to its parent.
func dirsToWatch(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var dirs []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		dir := p
		if !info.IsDir() {
			dir = filepath.Dir(p)
		}
		dir = filepath.Clean(dir)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}
