package gamesrv

import (
	"io/fs"
	"time"
)

// Server directory and file constants
const (
	// ConfigFile is the per-server configuration file name
	ConfigFile = "ServerConfig.toml"

	// RegistryFile is the persisted server list file name
	RegistryFile = "servers.json"

	// SettingsFile is the persisted application settings file name
	SettingsFile = "settings.json"

	// ServerModsDir is the subdirectory holding server-side mods (directories)
	ServerModsDir = "Server"

	// ClientModsDir is the subdirectory holding client-side mods (zip packages)
	ClientModsDir = "Client"

	// DisabledSuffix is appended to the resource folder to form the disabled tree
	DisabledSuffix = "_disabled"

	// ReservedModsFile is a server-side metadata file excluded from client listings
	ReservedModsFile = "mods.json"

	// PackageExt is the file extension for client mod packages
	PackageExt = ".zip"

	// DefaultResourceFolder is used when a server config does not name one
	DefaultResourceFolder = "Resources"
)

// Process supervision constants
const (
	// DefaultExitCommand is written to the child's stdin to request shutdown
	DefaultExitCommand = "exit"

	// DefaultGracePeriod is how long Stop waits after the exit command
	// before force-terminating the child
	DefaultGracePeriod = 500 * time.Millisecond

	// DefaultBacklog is the maximum number of output lines retained between
	// drains; the oldest line is discarded when the backlog is full
	DefaultBacklog = 1000

	// StderrPrefix marks lines that arrived on the child's stderr stream
	StderrPrefix = "[ERROR] "
)

// File modes
const (
	// DirMode is the default mode for created directories
	DirMode fs.FileMode = 0o755

	// FileMode is the default mode for created files
	FileMode fs.FileMode = 0o644
)

// Operation represents a core operation type, used in OpError values
type Operation int

const (
	// OpUnknown represents an unknown operation
	OpUnknown Operation = iota
	// OpStart spawns the managed executable
	OpStart
	// OpSend writes a command to the child's stdin
	OpSend
	// OpStop shuts the child down
	OpStop
	// OpScan lists content units
	OpScan
	// OpEnable moves a unit into the enabled tree
	OpEnable
	// OpDisable moves a unit into the disabled tree
	OpDisable
	// OpAdd copies a new unit into the enabled tree
	OpAdd
	// OpRemove deletes a unit
	OpRemove
	// OpInspect reads a package's contents
	OpInspect
	// OpLoad reads a persisted file
	OpLoad
	// OpSave writes a persisted file
	OpSave
	// OpWatch observes the mod trees
	OpWatch
)

// Operation string constants
const (
	opUnknownStr = "unknown"
	opStartStr   = "start"
	opSendStr    = "send"
	opStopStr    = "stop"
	opScanStr    = "scan"
	opEnableStr  = "enable"
	opDisableStr = "disable"
	opAddStr     = "add"
	opRemoveStr  = "remove"
	opInspectStr = "inspect"
	opLoadStr    = "load"
	opSaveStr    = "save"
	opWatchStr   = "watch"
)

// String returns the string representation of an Operation
func (op Operation) String() string {
	switch op {
	case OpStart:
		return opStartStr
	case OpSend:
		return opSendStr
	case OpStop:
		return opStopStr
	case OpScan:
		return opScanStr
	case OpEnable:
		return opEnableStr
	case OpDisable:
		return opDisableStr
	case OpAdd:
		return opAddStr
	case OpRemove:
		return opRemoveStr
	case OpInspect:
		return opInspectStr
	case OpLoad:
		return opLoadStr
	case OpSave:
		return opSaveStr
	case OpWatch:
		return opWatchStr
	default:
		return opUnknownStr
	}
}
