// Package gamesrv provides an embeddable core for managing BeamMP game
// server installations: supervising the server process, bridging its
// console, and maintaining the enabled/disabled mod trees on disk.
//
// The process side centers on StartProcess, which spawns the server
// executable with all three standard streams piped and merges stdout and
// stderr into one bounded line queue:
//
//	proc, err := gamesrv.StartProcess("/srv/beammp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Forward a console command
//	err = proc.SendCommand("status")
//
//	// Drain whatever the server printed since the last poll
//	for _, line := range proc.ReadOutput() {
//	    fmt.Println(line)
//	}
//
//	// Graceful stop with forced fallback
//	err = proc.Stop(context.Background())
//
// Mod management goes through Repo, which treats presence in one of two
// parallel directory trees as the enablement flag:
//
//	repo := gamesrv.NewRepo("/srv/beammp", "Resources")
//	mods, err := repo.Scan(gamesrv.KindClient)
//	err = repo.SetEnabled(gamesrv.KindClient, "mymap.zip", false)
//
// # Manager for Multiple Servers
//
// The Manager type is provided as a convenience for applications that run
// several server installations side by side. It enforces the
// one-process-per-directory rule and offers a bulk StopAll. If your
// application manages a single server, the Process type provides all core
// functionality and the Manager is unnecessary.
//
// # Design Philosophy
//
// This library prioritizes:
//
//   - No network surface: the server is driven purely over its stdio pipes
//   - Non-blocking polling: IsRunning and ReadOutput never wait
//   - Bounded everything: output backlog, stop grace period, watch debounce
//   - Explicit errors: every operation returns a typed OpError, nothing aborts
//
// The presentation layer (window, forms, tray icon) is deliberately out of
// scope; this package is the complete contract it calls into.
package gamesrv
