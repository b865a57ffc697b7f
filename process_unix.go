//go:build !windows

package gamesrv

import "syscall"

// ExecutableName is the server executable looked up inside a server directory
const ExecutableName = "BeamMP-Server"

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
