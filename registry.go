package gamesrv

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
)

// ServerEntry is one managed server installation. The parsed config is
// loaded from the server directory and never persisted with the entry.
type ServerEntry struct {
	// ID uniquely identifies the entry across renames
	ID string `json:"id"`
	// Name is the display name, taken from the server config when set
	Name string `json:"name"`
	// Dir is the server installation directory
	Dir string `json:"path"`

	// Config is the parsed server configuration, nil when loading failed
	Config *ServerConfig `json:"-"`
	// ConfigErr holds the load failure, nil when Config is valid
	ConfigErr error `json:"-"`
}

// NewServerEntry creates an entry for a server directory. The directory
// must contain a ServerConfig.toml; the entry adopts the configured server
// name when one is set.
func NewServerEntry(dir string) (ServerEntry, error) {
	if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err != nil {
		if os.IsNotExist(err) {
			return ServerEntry{}, &OpError{Op: OpLoad, Path: dir, Err: ErrConfigNotFound}
		}
		return ServerEntry{}, &OpError{Op: OpLoad, Path: dir, Err: err}
	}

	e := ServerEntry{
		ID:   uuid.NewString(),
		Name: filepath.Base(dir),
		Dir:  dir,
	}
	e.LoadConfig()

	if e.Config != nil && e.Config.General.Name != "" {
		e.Name = e.Config.General.Name
	}

	return e, nil
}

// LoadConfig re-reads the entry's server configuration from disk. A parse
// or read failure is recorded on the entry rather than returned; the entry
// stays usable with its last known name.
func (e *ServerEntry) LoadConfig() {
	cfg, err := LoadServerConfig(e.Dir)
	if err != nil {
		e.Config = nil
		e.ConfigErr = err
		return
	}
	e.Config = cfg
	e.ConfigErr = nil
}

// ResourceFolder returns the entry's configured resource folder name
func (e *ServerEntry) ResourceFolder() string {
	return e.Config.ResourceFolderName()
}

// Repo returns a mod repository rooted at this entry's server directory
func (e *ServerEntry) Repo() *Repo {
	return NewRepo(e.Dir, e.ResourceFolder())
}

// Registry persists the list of managed servers as JSON
type Registry struct {
	// Path is the file the registry is persisted to
	Path string `json:"-"`

	// Servers holds the registered entries in insertion order
	Servers []ServerEntry `json:"servers"`
}

// LoadRegistry reads a registry file, reloading each entry's server config.
// A missing file yields an empty registry, not an error.
func LoadRegistry(path string) (*Registry, error) {
	r := &Registry{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, &OpError{Op: OpLoad, Path: path, Err: err}
	}

	if err := json.Unmarshal(data, r); err != nil {
		return nil, &OpError{Op: OpLoad, Path: path, Err: err}
	}

	for i := range r.Servers {
		r.Servers[i].LoadConfig()
	}

	return r, nil
}

// Save writes the registry atomically, creating parent directories as needed
func (r *Registry) Save() error {
	if err := os.MkdirAll(filepath.Dir(r.Path), DirMode); err != nil {
		return &OpError{Op: OpSave, Path: r.Path, Err: err}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return &OpError{Op: OpSave, Path: r.Path, Err: err}
	}

	if err := renameio.WriteFile(r.Path, data, FileMode); err != nil {
		return &OpError{Op: OpSave, Path: r.Path, Err: err}
	}
	return nil
}

// Add registers a server directory and returns the new entry
func (r *Registry) Add(dir string) (*ServerEntry, error) {
	entry, err := NewServerEntry(dir)
	if err != nil {
		return nil, err
	}
	r.Servers = append(r.Servers, entry)
	return &r.Servers[len(r.Servers)-1], nil
}

// Remove deletes the entry with the given id, reporting whether it existed
func (r *Registry) Remove(id string) bool {
	for i := range r.Servers {
		if r.Servers[i].ID == id {
			r.Servers = append(r.Servers[:i], r.Servers[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the entry with the given id, or nil
func (r *Registry) Get(id string) *ServerEntry {
	for i := range r.Servers {
		if r.Servers[i].ID == id {
			return &r.Servers[i]
		}
	}
	return nil
}
