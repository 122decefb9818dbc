package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/czbiohub-sf/maca/internal/blob"
	"github.com/czbiohub-sf/maca/internal/tabular"
)

// ErrNothingToWatch is returned when no job has a local input.
var ErrNothingToWatch = errors.New("no local inputs to watch")

// pathLocks hands out one mutex per watched file.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock blocks until name is free and returns its unlock function.
func (p *pathLocks) lock(name string) func() {
	p.mu.Lock()
	if p.locks == nil {
		p.locks = make(map[string]*sync.Mutex)
	}
	l, ok := p.locks[name]
	if !ok {
		l = &sync.Mutex{}
		p.locks[name] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Watch reprocesses a job whenever its local input file is written, until
// ctx is done. Remote inputs are skipped. onResult is called from a timer
// goroutine, once per reprocessed table. Runs for the same file never
// overlap: a change seen mid-run is processed after the current run ends.
func (r *Runner) Watch(ctx context.Context, jobs []Job, onResult func(Result)) error {
	byPath := make(map[string]Job)
	dirs := make(map[string]bool)
	for _, job := range jobs {
		if blob.IsS3(job.Input) || tabular.IsPostgresURL(job.Input) {
			r.logger.Warn("cannot watch remote input", "input", job.Input)
			continue
		}
		abs, err := filepath.Abs(job.Input)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", job.Input, err)
		}
		byPath[abs] = job
		dirs[filepath.Dir(abs)] = true
	}
	if len(byPath) == 0 {
		return ErrNothingToWatch
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	r.logger.Info("watching inputs", "files", len(byPath))

	var (
		mu     sync.Mutex
		timers = make(map[string]*time.Timer)
		wg     sync.WaitGroup
		busy   pathLocks
	)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			if t.Stop() {
				wg.Done()
			}
		}
		mu.Unlock()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			job, watched := byPath[name]
			if !watched {
				continue
			}

			// Debounce per file
			mu.Lock()
			if t, ok := timers[name]; ok && t.Stop() {
				wg.Done()
			}
			wg.Add(1)
			timers[name] = time.AfterFunc(r.opts.Debounce, func() {
				defer wg.Done()
				unlock := busy.lock(name)
				defer unlock()
				if ctx.Err() != nil {
					return
				}
				r.logger.Debug("input changed, re-annotating", "file", name)
				onResult(r.Process(ctx, job))
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("watcher error", "error", err)
		}
	}
}
