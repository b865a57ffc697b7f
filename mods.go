package gamesrv

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ModKind classifies a content unit by its backing entry on disk
type ModKind int

const (
	// KindServer units are directories under the Server subtree
	KindServer ModKind = iota
	// KindClient units are zip packages under the Client subtree
	KindClient
)

// String returns the subtree name for the kind
func (k ModKind) String() string {
	if k == KindClient {
		return ClientModsDir
	}
	return ServerModsDir
}

// Mod is one enable/disable-able content unit. Its relative path is unique
// within a kind and its backing path lives under exactly one of the enabled
// and disabled roots at rest.
type Mod struct {
	// Kind is the unit's classification
	Kind ModKind
	// RelativePath identifies the unit within its kind
	RelativePath string
	// FullPath is the unit's current backing location on disk
	FullPath string
	// Enabled reports which tree the unit currently lives in
	Enabled bool
	// IsLevel is set for client packages containing a level folder
	IsLevel bool
	// IsVehicle is set for client packages containing a vehicle folder
	IsVehicle bool
}

// Repo manages the mod trees of a single server directory: the enabled tree
// <resourceFolder>/<Server|Client> and the disabled tree
// <resourceFolder>_disabled/<Server|Client>.
//
// Scan returns a point-in-time snapshot; callers re-scan after any
// SetEnabled, Add, or Remove.
type Repo struct {
	// ServerDir is the root of the managed server installation
	ServerDir string
	// ResourceFolder is the resource subfolder name from the server config
	ResourceFolder string
}

// NewRepo creates a Repo for the server directory. An empty resourceFolder
// falls back to DefaultResourceFolder.
func NewRepo(serverDir, resourceFolder string) *Repo {
	if resourceFolder == "" {
		resourceFolder = DefaultResourceFolder
	}
	return &Repo{ServerDir: serverDir, ResourceFolder: resourceFolder}
}

// EnabledRoot returns the enabled tree for the kind
func (r *Repo) EnabledRoot(kind ModKind) string {
	return filepath.Join(r.ServerDir, r.ResourceFolder, kind.String())
}

// DisabledRoot returns the disabled tree for the kind
func (r *Repo) DisabledRoot(kind ModKind) string {
	return filepath.Join(r.ServerDir, r.ResourceFolder+DisabledSuffix, kind.String())
}

// Scan lists the units of one kind across both trees, sorted by relative
// path in byte order. Missing roots are treated as empty. Client packages
// are classified by their archive contents; unreadable packages simply
// report neither levels nor vehicles.
func (r *Repo) Scan(kind ModKind) ([]Mod, error) {
	mods := make([]Mod, 0, 128)

	if err := r.scanRoot(r.EnabledRoot(kind), kind, true, &mods); err != nil {
		return nil, err
	}
	if err := r.scanRoot(r.DisabledRoot(kind), kind, false, &mods); err != nil {
		return nil, err
	}

	sort.Slice(mods, func(i, j int) bool {
		return mods[i].RelativePath < mods[j].RelativePath
	})

	return mods, nil
}

func (r *Repo) scanRoot(root string, kind ModKind, enabled bool, mods *[]Mod) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &OpError{Op: OpScan, Path: root, Err: err}
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(root, name)

		switch kind {
		case KindServer:
			if !entry.IsDir() {
				continue
			}
			*mods = append(*mods, Mod{
				Kind:         kind,
				RelativePath: name,
				FullPath:     full,
				Enabled:      enabled,
			})

		case KindClient:
			if entry.IsDir() {
				continue
			}
			if !strings.EqualFold(filepath.Ext(name), PackageExt) {
				continue
			}
			// mods.json is a server resource, not a client mod
			if strings.EqualFold(name, ReservedModsFile) {
				continue
			}
			isLevel, isVehicle := Classify(full)
			*mods = append(*mods, Mod{
				Kind:         kind,
				RelativePath: name,
				FullPath:     full,
				Enabled:      enabled,
				IsLevel:      isLevel,
				IsVehicle:    isVehicle,
			})
		}
	}

	return nil
}

// SetEnabled moves a unit between the enabled and disabled trees, creating
// destination parents as needed. The move is a rename where the filesystem
// allows it, with a copy-then-delete fallback that never removes the source
// before the destination copy is complete.
//
// It fails with ErrNotFound when the unit exists in neither tree and with
// ErrAlreadyInState when it is already on the requested side.
func (r *Repo) SetEnabled(kind ModKind, relativePath string, enabled bool) error {
	op := OpDisable
	srcRoot, dstRoot := r.EnabledRoot(kind), r.DisabledRoot(kind)
	if enabled {
		op = OpEnable
		srcRoot, dstRoot = dstRoot, srcRoot
	}

	src := filepath.Join(srcRoot, relativePath)
	dst := filepath.Join(dstRoot, relativePath)

	if _, err := os.Stat(src); err != nil {
		if !os.IsNotExist(err) {
			return &OpError{Op: op, Path: src, Err: err}
		}
		if _, err := os.Stat(dst); err == nil {
			return &OpError{Op: op, Path: dst, Err: ErrAlreadyInState}
		}
		return &OpError{Op: op, Path: src, Err: ErrNotFound}
	}

	if err := os.MkdirAll(filepath.Dir(dst), DirMode); err != nil {
		return &OpError{Op: op, Path: dst, Err: err}
	}

	if err := movePath(src, dst); err != nil {
		return &OpError{Op: op, Path: src, Err: err}
	}
	return nil
}

// Add copies an external file (or directory, for KindServer) into the
// enabled tree, creating the root if absent. Client sources must carry the
// package extension; anything else fails with ErrInvalidFormat.
func (r *Repo) Add(kind ModKind, sourcePath string) error {
	if kind == KindClient && !strings.EqualFold(filepath.Ext(sourcePath), PackageExt) {
		return &OpError{Op: OpAdd, Path: sourcePath, Err: ErrInvalidFormat}
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &OpError{Op: OpAdd, Path: sourcePath, Err: ErrNotFound}
		}
		return &OpError{Op: OpAdd, Path: sourcePath, Err: err}
	}
	if kind == KindClient && info.IsDir() {
		return &OpError{Op: OpAdd, Path: sourcePath, Err: ErrInvalidFormat}
	}

	root := r.EnabledRoot(kind)
	if err := os.MkdirAll(root, DirMode); err != nil {
		return &OpError{Op: OpAdd, Path: root, Err: err}
	}

	dst := filepath.Join(root, filepath.Base(sourcePath))
	if err := copyPath(sourcePath, dst); err != nil {
		return &OpError{Op: OpAdd, Path: dst, Err: err}
	}
	return nil
}

// Remove deletes a unit's backing path, recursively for directory units
func (r *Repo) Remove(m Mod) error {
	info, err := os.Stat(m.FullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &OpError{Op: OpRemove, Path: m.FullPath, Err: ErrNotFound}
		}
		return &OpError{Op: OpRemove, Path: m.FullPath, Err: err}
	}

	if info.IsDir() {
		err = os.RemoveAll(m.FullPath)
	} else {
		err = os.Remove(m.FullPath)
	}
	if err != nil {
		return &OpError{Op: OpRemove, Path: m.FullPath, Err: err}
	}
	return nil
}

// movePath renames src to dst, falling back to copy-then-delete when the
// rename fails (source and destination may sit on different volumes). The
// source is only deleted after the copy completed.
func movePath(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyPath(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// copyPath copies a file or directory tree from src to dst
func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return copyDir(src, dst)
	}
	return copyFile(src, dst, info.Mode())
}

func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, DirMode); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		s := filepath.Join(src, entry.Name())
		d := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(s, d); err != nil {
				return err
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if err := copyFile(s, d, info.Mode()); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
