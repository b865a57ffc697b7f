package gamesrv

import (
	"archive/zip"
	"sort"
	"strings"
)

// ArchiveSummary describes the contents of a client mod package. It is
// recomputed from the file on every Inspect call and never persisted.
type ArchiveSummary struct {
	// HasLevels reports whether the package contains a level folder
	HasLevels bool
	// HasVehicles reports whether the package contains a vehicle folder
	HasVehicles bool
	// LevelNames lists the distinct level folder names, sorted
	LevelNames []string
	// VehicleNames lists the distinct vehicle folder names, sorted
	VehicleNames []string
	// TotalFiles is the number of entries in the package
	TotalFiles int
	// TotalSize is the sum of uncompressed entry sizes in bytes
	TotalSize uint64
}

// Classify reports whether a package contains level or vehicle content by
// looking at entry names only. Folder matching is case-insensitive and
// short-circuits once both flags are set. Malformed or unreadable packages
// classify as neither; scan should not fail over one bad zip.
func Classify(path string) (isLevel, isVehicle bool) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return false, false
	}
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		name := strings.ToLower(f.Name)

		if hasFolder(name, "level", "levels") {
			isLevel = true
		}
		if hasFolder(name, "vehicle", "vehicles") {
			isVehicle = true
		}
		if isLevel && isVehicle {
			break
		}
	}

	return isLevel, isVehicle
}

// Inspect walks every entry of a package and returns a full summary: the
// level and vehicle asset names, the entry count, and the total uncompressed
// size. It fails with ErrUnreadableArchive when the file is not a valid zip.
func Inspect(path string) (ArchiveSummary, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return ArchiveSummary{}, &OpError{Op: OpInspect, Path: path, Err: ErrUnreadableArchive}
	}
	defer func() { _ = r.Close() }()

	levels := make(map[string]struct{})
	vehicles := make(map[string]struct{})
	var summary ArchiveSummary

	for _, f := range r.File {
		summary.TotalSize += f.UncompressedSize64

		parts := strings.Split(f.Name, "/")
		if name, ok := assetName(parts, "level", "levels"); ok {
			summary.HasLevels = true
			if name != "" {
				levels[name] = struct{}{}
			}
		}
		if name, ok := assetName(parts, "vehicle", "vehicles"); ok {
			summary.HasVehicles = true
			if name != "" {
				vehicles[name] = struct{}{}
			}
		}
	}

	summary.TotalFiles = len(r.File)
	summary.LevelNames = sortedKeys(levels)
	summary.VehicleNames = sortedKeys(vehicles)

	return summary, nil
}

// hasFolder reports whether a lowercased entry name contains a folder
// segment equal to either form, at the root or nested deeper
func hasFolder(nameLower, singular, plural string) bool {
	return strings.HasPrefix(nameLower, singular+"/") ||
		strings.HasPrefix(nameLower, plural+"/") ||
		strings.Contains(nameLower, "/"+singular+"/") ||
		strings.Contains(nameLower, "/"+plural+"/")
}

// assetName finds the first path segment matching either folder form,
// case-insensitively, and returns the following segment as the asset name.
// The name keeps its original case. The boolean reports whether the folder
// was present at all, even with no segment after it.
func assetName(parts []string, singular, plural string) (string, bool) {
	for i := 0; i < len(parts)-1; i++ {
		seg := strings.ToLower(parts[i])
		if seg == singular || seg == plural {
			return parts[i+1], true
		}
	}
	return "", false
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
