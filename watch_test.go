//go:build linux || darwin

package gamesrv

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, ch <-chan ModEvent, deadline time.Duration) ModEvent {
	t.Helper()

	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("watch channel closed")
		}
		return event
	case <-time.After(deadline):
		t.Fatal("no watch event before deadline")
	}
	return ModEvent{}
}

func TestWatchEmitsInitialSnapshot(t *testing.T) {
	serverDir := t.TempDir()
	repo := NewRepo(serverDir, "Resources")

	writeZip(t, filepath.Join(serverDir, "Resources", "Client", "seed.zip"), map[string]string{"a": ""})

	ch, cleanup, err := repo.Watch(context.Background(), KindClient)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	event := nextEvent(t, ch, 2*time.Second)
	require.NoError(t, event.Err)
	require.Len(t, event.Mods, 1)
	require.Equal(t, "seed.zip", event.Mods[0].RelativePath)
}

func TestWatchSeesNewMod(t *testing.T) {
	serverDir := t.TempDir()
	repo := NewRepo(serverDir, "Resources")

	ch, cleanup, err := repo.Watch(context.Background(), KindClient)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	// Initial snapshot of the empty trees
	event := nextEvent(t, ch, 2*time.Second)
	require.Empty(t, event.Mods)

	writeZip(t, filepath.Join(serverDir, "Resources", "Client", "late.zip"), map[string]string{"a": ""})

	deadline := time.Now().Add(3 * time.Second)
	for {
		event = nextEvent(t, ch, 3*time.Second)
		if len(event.Mods) == 1 && event.Mods[0].RelativePath == "late.zip" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("never saw late.zip, last event: %+v", event)
		}
	}
}

func TestWatchCleanupClosesChannel(t *testing.T) {
	repo := NewRepo(t.TempDir(), "Resources")

	ch, cleanup, err := repo.Watch(context.Background(), KindServer)
	require.NoError(t, err)

	require.NoError(t, cleanup())

	// Drain until closed; cleanup must end the stream
	for {
		if _, ok := <-ch; !ok {
			return
		}
	}
}
