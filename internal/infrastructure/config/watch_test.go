package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsConfigWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "physics.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for physics.json")
	}
}

func TestWatcher_ReportsBurstOnceSettled(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	target := filepath.Join(dir, "physics.json")
	final := `{"movement": {"moveSpeed": 6}}`

	// Truncate and write in pieces, the way some editors save
	require.NoError(t, os.WriteFile(target, nil, 0o644))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte(`{"movement": `), 0o644))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte(final), 0o644))
	wrote := time.Now()

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
		assert.GreaterOrEqual(t, time.Since(wrote), watchDebounce/2, "reported after the last write settled")
		data, err := os.ReadFile(name)
		require.NoError(t, err)
		assert.Equal(t, final, string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("no event for physics.json")
	}

	select {
	case name := <-w.Events:
		t.Fatalf("burst reported twice: %s", name)
	case <-time.After(3 * watchDebounce):
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
