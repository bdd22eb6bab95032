package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chasecam.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: false\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("debug: true\nfollow:\n  mode: trail\n"), 0o644))

	select {
	case cfg := <-w.Configs:
		assert.True(t, cfg.Debug)
		assert.Equal(t, FollowTrail, cfg.Follow.Mode)
	case err := <-w.Errors:
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no config reloaded")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chasecam.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: false\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("debug: true\n"), 0o644))

	select {
	case cfg := <-w.Configs:
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chasecam.yaml")
	w, err := NewWatcher(path)
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, open := <-w.Configs
	assert.False(t, open)
}

func TestWatcherSendKeepsNewestConfig(t *testing.T) {
	w := &Watcher{Configs: make(chan *Config, 2), Errors: make(chan error, 1)}

	first, second, third := Default(), Default(), Default()
	w.send(first, nil)
	w.send(second, nil)
	w.send(third, nil)

	require.Len(t, w.Configs, 2)
	assert.Same(t, second, <-w.Configs)
	assert.Same(t, third, <-w.Configs)
}
