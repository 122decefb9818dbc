package runner

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReprocessesChangedInput(t *testing.T) {
	in := writeInputs(t, map[string]string{"Heart.csv": heartCSV, "Other.csv": heartCSV})
	out := t.TempDir()
	input := filepath.Join(in, "Heart.csv")

	r := New(Options{OutputDir: out, Debounce: 20 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan Result, 4)
	var wg sync.WaitGroup
	wg.Add(1)
	var watchErr error
	go func() {
		defer wg.Done()
		watchErr = r.Watch(ctx, []Job{{Input: input, Tissue: "Heart"}}, func(res Result) {
			results <- res
		})
	}()

	// Give the watcher time to register before touching files.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(in, "Other.csv"), []byte(heartCSV), 0o600))
	tmp := filepath.Join(t.TempDir(), "Heart.csv")
	require.NoError(t, os.WriteFile(tmp, []byte(heartCSV+"A5,SMCs,\n"), 0o600))
	require.NoError(t, os.Rename(tmp, input))

	select {
	case res := <-results:
		require.NoError(t, res.Err)
		assert.Equal(t, input, res.Job.Input)
		assert.Equal(t, 5, res.Report.Rows)
		b, err := os.ReadFile(res.Output)
		require.NoError(t, err)
		assert.Contains(t, string(b), "A5,smooth_muscle_cells,")
	case <-time.After(5 * time.Second):
		t.Fatal("watched input was not reprocessed")
	}

	cancel()
	wg.Wait()
	assert.NoError(t, watchErr)
	assert.NoFileExists(t, filepath.Join(out, "Other.annotated.csv"))
}

func TestWatch_NothingToWatch(t *testing.T) {
	r := New(Options{})
	err := r.Watch(context.Background(), []Job{{Input: "s3://lab/Heart.csv", Tissue: "Heart"}}, func(Result) {})
	assert.ErrorIs(t, err, ErrNothingToWatch)
}

func TestPathLocks_SerializesSamePath(t *testing.T) {
	var (
		locks  pathLocks
		wg     sync.WaitGroup
		active atomic.Int32
		peak   atomic.Int32
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("/data/Heart.csv")
			defer unlock()
			n := active.Add(1)
			if n > peak.Load() {
				peak.Store(n)
			}
			time.Sleep(2 * time.Millisecond)
			active.Add(-1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), peak.Load())

	// Different paths do not wait on each other.
	unlockHeart := locks.lock("/data/Heart.csv")
	unlockLung := locks.lock("/data/Lung.csv")
	unlockLung()
	unlockHeart()
}

func TestWatch_ChangesDuringRunDoNotOverlap(t *testing.T) {
	in := writeInputs(t, map[string]string{"Heart.csv": heartCSV})
	input := filepath.Join(in, "Heart.csv")

	r := New(Options{OutputDir: t.TempDir(), Debounce: 10 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		active atomic.Int32
		peak   atomic.Int32
	)
	results := make(chan Result, 8)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = r.Watch(ctx, []Job{{Input: input, Tissue: "Heart"}}, func(res Result) {
			n := active.Add(1)
			if n > peak.Load() {
				peak.Store(n)
			}
			time.Sleep(150 * time.Millisecond)
			active.Add(-1)
			results <- res
		})
	}()

	time.Sleep(100 * time.Millisecond)
	rewrite := func(extra string) {
		tmp := filepath.Join(t.TempDir(), "Heart.csv")
		require.NoError(t, os.WriteFile(tmp, []byte(heartCSV+extra), 0o600))
		require.NoError(t, os.Rename(tmp, input))
	}
	rewrite("A5,SMCs,\n")
	time.Sleep(60 * time.Millisecond)
	rewrite("A5,SMCs,\nA6,CMs,\n")

	for i := range 2 {
		select {
		case res := <-results:
			require.NoError(t, res.Err)
		case <-time.After(5 * time.Second):
			t.Fatalf("result %d not delivered", i+1)
		}
	}

	cancel()
	wg.Wait()
	assert.Equal(t, int32(1), peak.Load(), "runs for one file must not overlap")
}
