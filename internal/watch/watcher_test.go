package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu       sync.Mutex
	triggers []Trigger
	active   atomic.Int32
	overlap  atomic.Bool
}

func (r *recorder) run(hold time.Duration) RunFunc {
	return func(_ context.Context, trigger Trigger) error {
		if r.active.Add(1) > 1 {
			r.overlap.Store(true)
		}
		defer r.active.Add(-1)
		time.Sleep(hold)
		r.mu.Lock()
		r.triggers = append(r.triggers, trigger)
		r.mu.Unlock()
		return nil
	}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.triggers)
}

func (r *recorder) last() Trigger {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.triggers[len(r.triggers)-1]
}

func startWatcher(t *testing.T, w *Watcher) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return func() {
		cancelCtx()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestWatcher_DebouncesBurstIntoOneRun(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sidebars.yaml")
	require.NoError(t, os.WriteFile(file, []byte("a: []\n"), 0o600))

	rec := &recorder{}
	w, err := New(rec.run(0), WithDebounce(200*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddFile(file))
	stop := startWatcher(t, w)
	defer stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte("a: [x]\n"), 0o600))
	}

	require.Eventually(t, func() bool { return rec.count() >= 1 }, 5*time.Second, 20*time.Millisecond)
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 1, rec.count())

	trigger := rec.last()
	assert.NotEmpty(t, trigger.RunID)
	assert.Equal(t, []string{file}, trigger.Paths)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "docnav.yaml")
	require.NoError(t, os.WriteFile(file, []byte("title: x\n"), 0o600))

	rec := &recorder{}
	w, err := New(rec.run(0), WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddFile(file))
	stop := startWatcher(t, w)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 0, rec.count())
}

func TestWatcher_TreeFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()

	rec := &recorder{}
	w, err := New(rec.run(0), WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddTree(root))
	stop := startWatcher(t, w)
	defer stop()

	sub := filepath.Join(root, "guides")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool { return rec.count() >= 1 }, 5*time.Second, 20*time.Millisecond)

	before := rec.count()
	doc := filepath.Join(sub, "intro.md")
	require.NoError(t, os.WriteFile(doc, []byte("# Intro\n"), 0o600))
	require.Eventually(t, func() bool { return rec.count() > before }, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, rec.last().Paths, doc)
}

func TestWatcher_RunsNeverOverlap(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sidebars.yaml")
	require.NoError(t, os.WriteFile(file, []byte("a: []\n"), 0o600))

	rec := &recorder{}
	w, err := New(rec.run(300*time.Millisecond), WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddFile(file))
	stop := startWatcher(t, w)
	defer stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("a: [x]\n"), 0o600))
		time.Sleep(100 * time.Millisecond)
	}
	require.Eventually(t, func() bool { return rec.count() >= 2 }, 5*time.Second, 20*time.Millisecond)
	assert.False(t, rec.overlap.Load())
}

func TestWatcher_RunErrorDoesNotStopWatching(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sidebars.yaml")
	require.NoError(t, os.WriteFile(file, []byte("a: []\n"), 0o600))

	var calls atomic.Int32
	w, err := New(func(context.Context, Trigger) error {
		calls.Add(1)
		return errors.New("boom")
	}, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddFile(file))
	stop := startWatcher(t, w)
	defer stop()

	require.NoError(t, os.WriteFile(file, []byte("a: [1]\n"), 0o600))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 20*time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("a: [2]\n"), 0o600))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_AddMissingPath(t *testing.T) {
	w, err := New(func(context.Context, Trigger) error { return nil })
	require.NoError(t, err)
	assert.Error(t, w.AddFile(filepath.Join(t.TempDir(), "missing", "file.yaml")))
	assert.Error(t, w.AddTree(filepath.Join(t.TempDir(), "missing")))
}

func TestWatcher_ContextCarriesRunID(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "docnav.yaml")
	require.NoError(t, os.WriteFile(file, []byte("title: x\n"), 0o600))

	ids := make(chan [2]string, 16)
	w, err := New(func(ctx context.Context, trigger Trigger) error {
		ids <- [2]string{RunIDFrom(ctx), trigger.RunID}
		return nil
	}, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.AddFile(file))
	stop := startWatcher(t, w)
	defer stop()

	require.NoError(t, os.WriteFile(file, []byte("title: y\n"), 0o600))
	select {
	case got := <-ids:
		assert.NotEmpty(t, got[0])
		assert.Equal(t, got[1], got[0])
	case <-time.After(5 * time.Second):
		t.Fatal("no run")
	}
	assert.Equal(t, "", RunIDFrom(context.Background()))
}
