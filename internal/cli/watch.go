package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch <grid>",
		Short: "Re-validate a grid file whenever it changes",
		Long: `Validate a grid file, then validate it again every time it is saved.

The containing directory is watched so editors that save by renaming a
temporary file are picked up. Bursts of events are coalesced over
--debounce. Stop with Ctrl-C.

Examples:
  knots watch trefoil.csv
  knots watch trefoil.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 200*time.Millisecond, "quiet period before re-validating")

	return cmd
}

func runWatch(opts *WatchOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	abs, err := filepath.Abs(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to resolve path", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("grid file not found: %s", path), nil)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to create watcher", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to watch directory", err)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := func() {
		r, _, err := checkGrid(path)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("grid file missing", "path", path)
			return
		}
		if err != nil {
			slog.Error("failed to read grid", "path", path, "error", err)
			return
		}
		if err := writeGridReport(formatter, r); err != nil {
			slog.Error("failed to write report", "error", err)
		}
	}

	report()
	slog.Info("watching grid", "path", abs, "debounce", opts.Debounce)

	watchLoop(ctx, watcher, abs, opts.Debounce, report)

	slog.Info("watch stopped")
	return nil
}

// watchLoop calls onChange once per burst of events touching target,
// after debounce has passed without further events. It returns when ctx
// is done or the watcher is closed.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, target string, debounce time.Duration, onChange func()) {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("grid file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", "error", err)

		case <-timerC:
			timerC = nil
			onChange()
		}
	}
}
