package gamesrv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `[General]
Port = 30814
AuthKey = "secret-key"
AllowGuests = true
LogChat = true
Debug = false
IP = "::"
Private = true
InformationPacket = true
Name = "My Track Day Server"
Tags = "Freeroam"
MaxCars = 2
MaxPlayers = 12
Map = "/levels/gridmap_v2/info.json"
Description = "weeknight lobby"
ResourceFolder = "Resources"

[Misc]
ImScaredOfUpdates = true
UpdateReminderTime = "30s"
`

func TestLoadServerConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(sampleConfig), 0o644))

	cfg, err := LoadServerConfig(dir)
	require.NoError(t, err)

	require.Equal(t, 30814, cfg.General.Port)
	require.Equal(t, "secret-key", cfg.General.AuthKey)
	require.Equal(t, "My Track Day Server", cfg.General.Name)
	require.Equal(t, 12, cfg.General.MaxPlayers)
	require.Equal(t, "Resources", cfg.General.ResourceFolder)
	require.Equal(t, "30s", cfg.Misc.UpdateReminderTime)
}

func TestLoadServerConfigMissing(t *testing.T) {
	_, err := LoadServerConfig(t.TempDir())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoadServerConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("[General\nPort ="), 0o644))

	_, err := LoadServerConfig(dir)
	require.Error(t, err)

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	require.Equal(t, OpLoad, opErr.Op)
}

func TestServerConfigSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultServerConfig()
	cfg.General.Name = "Edited"
	cfg.General.MaxCars = 4

	require.NoError(t, cfg.Save(dir))

	loaded, err := LoadServerConfig(dir)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestResourceFolderName(t *testing.T) {
	cfg := DefaultServerConfig()
	require.Equal(t, "Resources", cfg.ResourceFolderName())

	cfg.General.ResourceFolder = "Packs"
	require.Equal(t, "Packs", cfg.ResourceFolderName())

	cfg.General.ResourceFolder = ""
	require.Equal(t, DefaultResourceFolder, cfg.ResourceFolderName())

	var nilCfg *ServerConfig
	require.Equal(t, DefaultResourceFolder, nilCfg.ResourceFolderName())
}
