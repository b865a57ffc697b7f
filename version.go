package gamesrv

// Version is the current version of the go-gamesrv library
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// Server is the managed server family
	Server string
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version: Version,
		Server:  "BeamMP",
	}
}
