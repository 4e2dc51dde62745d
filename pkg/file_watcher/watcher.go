package file_watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/anchorfree/account-filter/pkg/logger"
)

var DefaultTimeoutAfterLastEvent = 5 * time.Second

// T calls back once writes to a single file have settled.
type T struct {
	file                  string
	watcher               *fsnotify.Watcher
	cb                    func(file string)
	TimeoutAfterLastEvent time.Duration

	mx    sync.Mutex
	timer *time.Timer
}

func New(file string, callback func(file string)) (*T, error) {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	w := &T{
		file:                  absPath,
		cb:                    callback,
		TimeoutAfterLastEvent: DefaultTimeoutAfterLastEvent,
	}
	w.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// watch the directory so editors replacing the file are seen too
	if err = w.watcher.Add(filepath.Dir(absPath)); err != nil {
		w.watcher.Close()
		return nil, err
	}

	go w.run()

	return w, nil
}

func (w *T) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				logger.Get().Debugf("File watcher for %s stopped", w.file)
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if filepath.Clean(event.Name) == w.file {
					w.schedule()
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Get().Warnf("File watcher error on %s: %v", w.file, err)
		}
	}
}

func (w *T) schedule() {
	w.mx.Lock()
	defer w.mx.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.TimeoutAfterLastEvent, func() { w.cb(w.file) })
}

func (w *T) Close() error {
	w.mx.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mx.Unlock()
	return w.watcher.Close()
}
