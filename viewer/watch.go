// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
)

// watcher reports changes to a set of files. The directories of the
// files are watched so that files replaced by editors are still seen.
type watcher struct {
	fsw   *fsnotify.Watcher
	files []string

	// pending has a value when a change has not been reported yet.
	pending chan struct{}
	done    chan struct{}
}

func newWatcher(files ...string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{fsw: fsw, pending: make(chan struct{}, 1), done: make(chan struct{})}
	var dirs []string
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files = append(w.files, abs)
		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	go w.watch()
	return w, nil
}

func (w *watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !slices.Contains(w.files, abs) {
				continue
			}
			slog.Debug("viewer: graph file changed", "file", event.Name, "op", event.Op)
			select {
			case w.pending <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("viewer: watching graph files", "err", err)
		}
	}
}

// changed returns whether any file has changed since the last call.
// It never blocks.
func (w *watcher) changed() bool {
	select {
	case <-w.pending:
		return true
	default:
		return false
	}
}

// Close stops watching.
func (w *watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
