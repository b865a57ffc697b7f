package gamesrv

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
)

// ServerConfig mirrors a server's ServerConfig.toml
type ServerConfig struct {
	General GeneralConfig `toml:"General"`
	Misc    MiscConfig    `toml:"Misc"`
}

// GeneralConfig is the [General] table of ServerConfig.toml
type GeneralConfig struct {
	Port              int    `toml:"Port"`
	AuthKey           string `toml:"AuthKey"`
	AllowGuests       bool   `toml:"AllowGuests"`
	LogChat           bool   `toml:"LogChat"`
	Debug             bool   `toml:"Debug"`
	IP                string `toml:"IP"`
	Private           bool   `toml:"Private"`
	InformationPacket bool   `toml:"InformationPacket"`
	Name              string `toml:"Name"`
	Tags              string `toml:"Tags"`
	MaxCars           int    `toml:"MaxCars"`
	MaxPlayers        int    `toml:"MaxPlayers"`
	Map               string `toml:"Map"`
	Description       string `toml:"Description"`
	ResourceFolder    string `toml:"ResourceFolder"`
}

// MiscConfig is the [Misc] table of ServerConfig.toml
type MiscConfig struct {
	ImScaredOfUpdates  bool   `toml:"ImScaredOfUpdates"`
	UpdateReminderTime string `toml:"UpdateReminderTime"`
}

// DefaultServerConfig returns the stock configuration a fresh server ships with
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		General: GeneralConfig{
			Port:              30814,
			AllowGuests:       true,
			LogChat:           true,
			IP:                "::",
			Private:           true,
			InformationPacket: true,
			Name:              "BeamMP Server",
			Tags:              "Freeroam",
			MaxCars:           1,
			MaxPlayers:        8,
			Map:               "/levels/gridmap_v2/info.json",
			Description:       "BeamMP Default Description",
			ResourceFolder:    DefaultResourceFolder,
		},
		Misc: MiscConfig{
			ImScaredOfUpdates:  true,
			UpdateReminderTime: "30s",
		},
	}
}

// LoadServerConfig reads and parses <serverDir>/ServerConfig.toml.
// It fails with ErrConfigNotFound when the file is absent.
func LoadServerConfig(serverDir string) (*ServerConfig, error) {
	path := filepath.Join(serverDir, ConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &OpError{Op: OpLoad, Path: path, Err: ErrConfigNotFound}
		}
		return nil, &OpError{Op: OpLoad, Path: path, Err: err}
	}

	var cfg ServerConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &OpError{Op: OpLoad, Path: path, Err: err}
	}

	return &cfg, nil
}

// Save writes the configuration back to <serverDir>/ServerConfig.toml.
// The write is atomic: the file is replaced in one rename so a crash cannot
// leave a half-written config behind.
func (c *ServerConfig) Save(serverDir string) error {
	path := filepath.Join(serverDir, ConfigFile)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return &OpError{Op: OpSave, Path: path, Err: err}
	}

	if err := renameio.WriteFile(path, buf.Bytes(), FileMode); err != nil {
		return &OpError{Op: OpSave, Path: path, Err: err}
	}
	return nil
}

// ResourceFolderName returns the configured resource folder, falling back
// to the default when unset
func (c *ServerConfig) ResourceFolderName() string {
	if c == nil || c.General.ResourceFolder == "" {
		return DefaultResourceFolder
	}
	return c.General.ResourceFolder
}
