//go:build windows

package gamesrv

import "syscall"

// ExecutableName is the server executable looked up inside a server directory
const ExecutableName = "BeamMP-Server.exe"

// createNoWindow stops the child from opening its own console window
const createNoWindow = 0x08000000

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
