// monitor.go
package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileMonitor watches one input file and fires a handler when it is
// rewritten. The whole directory is watched because editors and atomic
// writers replace files instead of writing in place.
type FileMonitor struct {
	targetFile string
	watcher    *fsnotify.Watcher
	lastMod    time.Time
	mu         sync.Mutex
}

func NewFileMonitor(path string) (*FileMonitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	return &FileMonitor{
		targetFile: filepath.Base(path),
		watcher:    watcher,
	}, nil
}

func (m *FileMonitor) Close() error {
	return m.watcher.Close()
}

// Watch blocks, invoking handler with the file path after each write
// or create event that advances the file's modification time. Events
// for other files in the directory are ignored, otherwise regenerating
// an output next to the input would retrigger the handler forever.
func (m *FileMonitor) Watch(handler func(string)) error {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Base(event.Name) != m.targetFile {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			m.mu.Lock()
			if info.ModTime().After(m.lastMod) {
				m.lastMod = info.ModTime()
				handler(event.Name)
			}
			m.mu.Unlock()
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
