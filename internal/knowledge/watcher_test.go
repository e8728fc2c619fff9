package knowledge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventFor(name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: fsnotify.Write}
}

func TestWatcherStartStop(t *testing.T) {
	base := writeKnowledgeBase(t)

	w := NewWatcher(base, 50*time.Millisecond, func() {}, testLogger(t))
	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())

	// Second start should fail
	assert.Error(t, w.Start())

	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())

	// Stopping again is a no-op
	assert.NoError(t, w.Stop())
}

func TestWatcherTriggersDebouncedReload(t *testing.T) {
	base := writeKnowledgeBase(t)

	reloaded := make(chan struct{}, 1)
	w := NewWatcher(base, 50*time.Millisecond, func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	}, testLogger(t))
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	// Several rapid writes should collapse into one reload
	resumeFile := filepath.Join(base, "sample_resumes", "new_role_80.txt")
	for range 3 {
		require.NoError(t, os.WriteFile(resumeFile, []byte("new sample resume"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a reload after knowledge base file change")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	w := NewWatcher(t.TempDir(), 50*time.Millisecond, func() {}, testLogger(t))

	assert.False(t, w.shouldProcessEvent(eventFor("notes.md")))
	assert.True(t, w.shouldProcessEvent(eventFor("resume.txt")))
	assert.True(t, w.shouldProcessEvent(eventFor("resume_tips.json")))
}
