package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"digital.vasic.assertions/pkg/checks"
	"digital.vasic.assertions/pkg/logging"
	"digital.vasic.assertions/pkg/report"
)

// watchDebounce is how long the watcher waits after the last change
// before re-running.
var watchDebounce = 300 * time.Millisecond

const watchingMsg = "\nWatching for changes... (press Ctrl+C to stop)\n"

func (a *app) watch(
	ctx context.Context,
	cmd *cobra.Command,
	args []string,
	opts *runOptions,
	reporter report.Reporter,
) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	watchPaths := append([]string{}, args...)
	if opts.input != "" {
		watchPaths = append(watchPaths, opts.input)
	}
	for _, dir := range watchDirs(watchPaths) {
		if err := w.Add(dir); err != nil {
			a.logger.Warn("watch_failed", logging.StringField("dir", dir), logging.ErrorField(err))
		}
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	fmt.Fprint(out, watchingMsg)

	return watchLoop(ctx, w, watchDebounce,
		func(name string) {
			fmt.Fprintf(out, "\nFile changed: %s\nRe-running checks...\n\n", name)
			if err := a.runOnce(ctx, cmd, args, opts, reporter); err != nil && !isCheckError(err) {
				fmt.Fprintf(errOut, "Error: %v\n", err)
			}
			fmt.Fprint(out, watchingMsg)
		},
		func(err error) {
			a.logger.Warn("watcher_error", logging.ErrorField(err))
			fmt.Fprintf(errOut, "watcher error: %v\n", err)
		},
	)
}

// watchDirs returns the directories to watch for paths: every
// directory below a directory argument and the parent of a file.
func watchDirs(paths []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(p))
			continue
		}
		_ = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return dirs
}

// watchLoop calls onChange once events on check files have been quiet
// for delay. It returns when ctx is done or the watcher is closed.
func watchLoop(
	ctx context.Context,
	w *fsnotify.Watcher,
	delay time.Duration,
	onChange func(name string),
	onError func(error),
) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		changed string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !checks.IsCheckFile(event.Name) {
				continue
			}
			changed = event.Name
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(delay)
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(changed)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onError(err)
		}
	}
}
