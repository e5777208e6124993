// SPDX-FileCopyrightText: 2025 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ini

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/linuxdeepin/dde-compizconfig/ccs"
	"golang.org/x/xerrors"
)

// events within this window after our own save are ours
const ownWriteWindow = 200 * time.Millisecond

type profileWatcher struct {
	watcher *fsnotify.Watcher
	events  chan<- ccs.Event
	quit    chan struct{}
	done    chan struct{}

	mu         sync.Mutex
	file       string
	ownWriteAt time.Time
}

func newProfileWatcher(dir string, events chan<- ccs.Event) (*profileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, xerrors.Errorf("new watcher: %w", err)
	}
	err = watcher.Add(dir)
	if err != nil {
		_ = watcher.Close()
		return nil, xerrors.Errorf("watch %s: %w", dir, err)
	}

	w := &profileWatcher{
		watcher: watcher,
		events:  events,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *profileWatcher) setProfileFile(file string) {
	w.mu.Lock()
	w.file = file
	w.mu.Unlock()
}

func (w *profileWatcher) ignoreOwnWrite() {
	w.mu.Lock()
	w.ownWriteAt = time.Now()
	w.mu.Unlock()
}

// relevant reports whether ev changed the current profile file and was not
// caused by our own save.
func (w *profileWatcher) relevant(ev fsnotify.Event) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ev.Name != w.file {
		return false
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
		return false
	}
	return time.Since(w.ownWriteAt) > ownWriteWindow
}

func (w *profileWatcher) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.quit:
			logger.Debug("[Fsnotify] quit watch")
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warning("Receive file watcher error:", err)
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			logger.Debug("[Fsnotify] profile changed:", ev)
			select {
			case w.events <- ccs.Event{Kind: ccs.EventProfileChanged}:
			default:
				// a reload is already pending
			}
		}
	}
}

func (w *profileWatcher) close() {
	close(w.quit)
	_ = w.watcher.Close()
	<-w.done
}
