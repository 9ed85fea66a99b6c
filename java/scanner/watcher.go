package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("javamet.watch")

// Watcher polls a directory tree for changes to Java sources and calls
// onChange with the affected paths: modified, added, or removed files.
type Watcher struct {
	root         string
	onChange     func(changed []string)
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewWatcher(root string, onChange func(changed []string)) *Watcher {
	return &Watcher{
		root:         root,
		onChange:     onChange,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

// SetInterval adjusts the poll interval. Call before Start.
func (w *Watcher) SetInterval(d time.Duration) {
	w.pollInterval = d
}

func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// first pass records the baseline without firing
	w.scan(false)

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan(true)
		}
	}
}

func (w *Watcher) scan(notify bool) {
	current := make(map[string]bool)
	var changed []string

	filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != w.root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".java" {
			return nil
		}

		current[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			changed = append(changed, path)
		}
		return nil
	})

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			changed = append(changed, path)
		}
	}

	if notify && len(changed) > 0 && w.onChange != nil {
		sort.Strings(changed)
		watchLog.Debugf("%d changed under %s", len(changed), w.root)
		w.onChange(changed)
	}
}
