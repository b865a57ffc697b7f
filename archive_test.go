package gamesrv

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("levels and vehicles", func(t *testing.T) {
		path := filepath.Join(tmpDir, "both.zip")
		writeZip(t, path, map[string]string{
			"levels/mymap/info.json":    "{}",
			"vehicles/mycar/part.jbeam": "{}",
		})

		isLevel, isVehicle := Classify(path)
		if !isLevel {
			t.Error("expected level content")
		}
		if !isVehicle {
			t.Error("expected vehicle content")
		}
	})

	t.Run("singular folder names match", func(t *testing.T) {
		path := filepath.Join(tmpDir, "singular.zip")
		writeZip(t, path, map[string]string{
			"level/one/info.json":  "{}",
			"vehicle/two/a.jbeam":  "{}",
			"scripts/mod/main.lua": "",
		})

		isLevel, isVehicle := Classify(path)
		if !isLevel || !isVehicle {
			t.Errorf("Classify = (%v, %v), want (true, true)", isLevel, isVehicle)
		}
	})

	t.Run("nested under a parent folder", func(t *testing.T) {
		path := filepath.Join(tmpDir, "nested.zip")
		writeZip(t, path, map[string]string{
			"mypack/Levels/alpine/info.json": "{}",
		})

		isLevel, isVehicle := Classify(path)
		if !isLevel {
			t.Error("expected nested level folder to match case-insensitively")
		}
		if isVehicle {
			t.Error("unexpected vehicle flag")
		}
	})

	t.Run("plain mod", func(t *testing.T) {
		path := filepath.Join(tmpDir, "plain.zip")
		writeZip(t, path, map[string]string{
			"scripts/hello/main.lua": "",
		})

		isLevel, isVehicle := Classify(path)
		if isLevel || isVehicle {
			t.Errorf("Classify = (%v, %v), want (false, false)", isLevel, isVehicle)
		}
	})

	t.Run("malformed archive degrades", func(t *testing.T) {
		path := filepath.Join(tmpDir, "broken.zip")
		if err := os.WriteFile(path, []byte("not a zip at all"), 0o644); err != nil {
			t.Fatal(err)
		}

		isLevel, isVehicle := Classify(path)
		if isLevel || isVehicle {
			t.Errorf("Classify = (%v, %v), want (false, false)", isLevel, isVehicle)
		}
	})

	t.Run("missing file degrades", func(t *testing.T) {
		isLevel, isVehicle := Classify(filepath.Join(tmpDir, "absent.zip"))
		if isLevel || isVehicle {
			t.Errorf("Classify = (%v, %v), want (false, false)", isLevel, isVehicle)
		}
	})
}

func TestInspect(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "mod.zip")
	writeZip(t, path, map[string]string{
		"levels/mymap/info.json":    "{}",
		"vehicles/mycar/part.jbeam": "{}",
	})

	summary, err := Inspect(path)
	require.NoError(t, err)

	require.True(t, summary.HasLevels)
	require.True(t, summary.HasVehicles)
	require.Equal(t, []string{"mymap"}, summary.LevelNames)
	require.Equal(t, []string{"mycar"}, summary.VehicleNames)
	require.Equal(t, 2, summary.TotalFiles)
	require.Equal(t, uint64(4), summary.TotalSize)
}

func TestInspectDeduplicatesNames(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "multi.zip")
	writeZip(t, path, map[string]string{
		"levels/beta/info.json":       "{}",
		"levels/beta/art/terrain.dds": "x",
		"levels/alpha/info.json":      "{}",
		"mypack/vehicles/van/v.jbeam": "{}",
		"mypack/vehicles/van/w.jbeam": "{}",
		"mypack/Vehicles/Bus/b.jbeam": "{}",
		"docs/readme.txt":             "hello",
	})

	summary, err := Inspect(path)
	require.NoError(t, err)

	// Names are deduplicated case-sensitively and sorted
	require.Equal(t, []string{"alpha", "beta"}, summary.LevelNames)
	require.Equal(t, []string{"Bus", "van"}, summary.VehicleNames)
	require.Equal(t, 7, summary.TotalFiles)
}

func TestInspectUnreadable(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "corrupt.zip")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	_, err := Inspect(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnreadableArchive))

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	require.Equal(t, OpInspect, opErr.Op)
}

func TestInspectIsSideEffectFree(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "stable.zip")
	writeZip(t, path, map[string]string{
		"levels/mymap/info.json": "{}",
	})

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	first, err := Inspect(path)
	require.NoError(t, err)
	second, err := Inspect(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	isLevel1, isVehicle1 := Classify(path)
	isLevel2, isVehicle2 := Classify(path)
	require.Equal(t, isLevel1, isLevel2)
	require.Equal(t, isVehicle1, isVehicle2)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	if !bytes.Equal(before, after) {
		t.Error("archive bytes changed after inspection")
	}
}
