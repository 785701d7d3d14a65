package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
)

func newWatchCmd(newAnalyzer analyzerFactory) *cobra.Command {
	var cursor cursorFlags
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-resolve the context at a cursor whenever the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := cursor.position()
			if err != nil {
				return err
			}
			a, err := newAnalyzer()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			fs := afs.New()
			report := func() error {
				doc, err := loadDocument(ctx, fs, args[0])
				if err != nil {
					return err
				}
				return emitYAML(cmd.OutOrStdout(), newContextView(doc, a.ResolveContext(doc, position)))
			}
			if err = report(); err != nil {
				return err
			}
			return watchFile(ctx, args[0], debounce, func() {
				a.ClearCache(args[0])
				if err := report(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
				}
			})
		},
	}
	cursor.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "delay before re-resolving after a change")
	return cmd
}

// watchFile calls onChange after writes to target settle; the parent directory is watched so
// editors that save by rename are still observed
func watchFile(ctx context.Context, target string, debounce time.Duration, onChange func()) error {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err = watcher.Add(filepath.Dir(absTarget)); err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absTarget {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			onChange()
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}
