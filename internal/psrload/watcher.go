// Public domain.

package psrload

import (
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/soniakeys/psrcat/internal/psrnorm"
)

// Change reports that the catalog file of a campaign was written,
// created or removed.
type Change struct {
	Campaign psrnorm.Campaign
	File     string
}

// Watcher reports changes to campaign catalog files.
//
// Directories are watched rather than files so that editors replacing a
// file by rename are seen.  Bursts of events on one file within Debounce
// are reported once.
type Watcher struct {
	Changes  <-chan Change
	Errors   <-chan error
	Debounce time.Duration

	changes chan Change
	errs    chan error
	files   map[string]psrnorm.Campaign
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// DefaultWatchDebounce is the default Watcher.Debounce.
const DefaultWatchDebounce = 100 * time.Millisecond

// NewWatcher creates a watcher for the files of sources.
func NewWatcher(sources []Source) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating watcher")
	}
	ch := make(chan Change, 16)
	ech := make(chan error, 4)
	w := &Watcher{
		Changes:  ch,
		Errors:   ech,
		Debounce: DefaultWatchDebounce,
		changes:  ch,
		errs:     ech,
		files:    make(map[string]psrnorm.Campaign),
		done:     make(chan struct{}),
		watcher:  fw,
	}
	for _, s := range sources {
		abs, err := filepath.Abs(s.File)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "%s", s.File)
		}
		w.files[abs] = s.Campaign
	}
	return w, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			return errors.Wrapf(err, "watching %s", d)
		}
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and its channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
	close(w.errs)
}

func (w *Watcher) loop() {
	defer close(w.done)
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(max(debounce/2, time.Millisecond))
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				for f := range pending {
					w.emit(f)
				}
				return
			}
			f, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := w.files[f]; !ok {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
				ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				pending[f] = time.Now()
			}
		case now := <-ticker.C:
			for f, t := range pending {
				if now.Sub(t) >= debounce {
					w.emit(f)
					delete(pending, f)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// non-fatal.  drop it if nobody is listening.
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) emit(f string) {
	w.changes <- Change{Campaign: w.files[f], File: f}
}
