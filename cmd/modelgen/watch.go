package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

const reloadDelay = 150 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [models...]",
		Short: "Regenerate models whenever the descriptor document changes",
		Long: `Watch generates once, then watches the descriptor file and regenerates after
every change. Caches are cleared before each run so edited classes are
rebuilt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gen, release, err := a.orchestrator(ctx)
			if err != nil {
				return err
			}
			defer release()

			out := cmd.OutOrStdout()
			if err := a.generateOnce(ctx, gen, out, args); err != nil {
				a.logger.Error("generate", "error", err)
			}
			return a.watchSource(ctx, func(ctx context.Context) error {
				if err := gen.ClearCaches(ctx); err != nil {
					return err
				}
				return a.generateOnce(ctx, gen, out, args)
			})
		},
	}
}

// watchSource runs reload after each change to the descriptor file until ctx
// is done.
func (a *app) watchSource(ctx context.Context, reload func(context.Context) error) error {
	src, err := a.source()
	if err != nil {
		return err
	}
	if src.Kind() != classdesc.SourceKindFile {
		return errors.New("watch requires a file source")
	}
	path, err := filepath.Abs(src.Location())
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so watch the
	// directory and filter by name.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	a.logger.Info("watching", "path", path)
	return watchLoop(ctx, a.logger, path, watcher.Events, watcher.Errors, reload)
}

func watchLoop(ctx context.Context, logger *slog.Logger, path string, events <-chan fsnotify.Event, errs <-chan error, reload func(context.Context) error) error {
	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("descriptor changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(reloadDelay)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer.C:
			if err := reload(ctx); err != nil {
				logger.Error("regenerate", "error", err)
				continue
			}
			logger.Info("models regenerated")
		}
	}
}
