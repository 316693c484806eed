package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wippyai/msgc/config"
)

// watch regenerates a message whenever its schema file is written, until
// ctx is done. Errors are logged and the previous artifacts stay in place.
func (r *runner) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Directories, not files: editors that save atomically replace the file.
	bySchema := make(map[string]config.Message, len(r.cfg.Messages))
	dirs := make(map[string]bool)
	for _, m := range r.cfg.Messages {
		path, err := filepath.Abs(r.cfg.SchemaPath(m))
		if err != nil {
			return err
		}
		bySchema[path] = m
		dir := filepath.Dir(path)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return err
			}
			dirs[dir] = true
		}
	}
	r.log.Info("watching schemas", zap.Int("schemas", len(bySchema)), zap.Int("dirs", len(dirs)))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			m, tracked := bySchema[event.Name]
			if !tracked {
				if abs, err := filepath.Abs(event.Name); err == nil {
					m, tracked = bySchema[abs]
				}
			}
			if !tracked || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			r.log.Debug("schema changed", zap.String("event", event.Op.String()), zap.String("file", event.Name))
			if err := r.run(ctx, m); err != nil {
				r.log.Error("regenerate failed", zap.String("file", event.Name), zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Error("file watcher error", zap.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}
