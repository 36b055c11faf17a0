package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcher_RendersOnChange(t *testing.T) {
	dir := t.TempDir()
	recipe := filepath.Join(dir, "fig.yaml")
	require.NoError(t, os.WriteFile(recipe, []byte("kind: plot\n"), 0644))

	var mu sync.Mutex
	var rendered []string
	render := func(path string) {
		mu.Lock()
		rendered = append(rendered, path)
		mu.Unlock()
	}

	w, err := New([]string{recipe}, 50*time.Millisecond, render, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	// Rapid writes should collapse into one render.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(recipe, []byte("kind: plot\noutput: x.pdf\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(rendered)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("render was never triggered")
		case <-time.After(20 * time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	abs, _ := filepath.Abs(recipe)
	assert.Equal(t, abs, rendered[0])
	assert.Equal(t, 1, len(rendered), "debounce should collapse rapid writes")

	stats := w.GetStats()
	assert.Greater(t, stats.Events, 0)
	assert.Equal(t, abs, stats.LastEventPath)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	recipe := filepath.Join(dir, "fig.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(recipe, []byte("kind: plot\n"), 0644))

	var mu sync.Mutex
	count := 0
	render := func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	}

	w, err := New([]string{recipe}, 20*time.Millisecond, render, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	require.NoError(t, os.WriteFile(other, []byte("scratch"), 0644))
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, count, "unrelated files must not trigger renders")
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	recipe := filepath.Join(dir, "fig.yaml")
	require.NoError(t, os.WriteFile(recipe, []byte("kind: plot\n"), 0644))

	w, err := New([]string{recipe}, 20*time.Millisecond, func(string) {}, zap.NewNop())
	require.NoError(t, err)

	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
