package gamesrv

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
)

// Manager tracks the running processes of multiple server directories and
// enforces that at most one process exists per directory at a time. It is
// the piece a presentation layer talks to; individual Process values remain
// usable directly when only one server is managed.
type Manager struct {
	// Concurrency is the maximum number of concurrent StopAll operations
	Concurrency int

	log      *slog.Logger
	procOpts []ProcessOption

	mu      sync.Mutex
	running map[string]*Process
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithLogger sets the logger for lifecycle events. The default discards.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = l
	}
}

// WithProcessOptions sets options applied to every started process
func WithProcessOptions(opts ...ProcessOption) ManagerOption {
	return func(m *Manager) {
		m.procOpts = opts
	}
}

// WithStopConcurrency sets the maximum number of concurrent stops in StopAll
func WithStopConcurrency(n int) ManagerOption {
	return func(m *Manager) {
		m.Concurrency = n
	}
}

// NewManager creates a Manager with default settings
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		Concurrency: 10,
		log:         slog.New(slog.DiscardHandler),
		running:     make(map[string]*Process),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.Concurrency < 1 {
		m.Concurrency = 1
	}

	return m
}

func serverKey(dir string) string {
	return filepath.Clean(dir)
}

// StartServer launches the server executable in dir. It fails with
// ErrAlreadyRunning while a live process for the same directory exists;
// a process observed to have exited is replaced.
func (m *Manager) StartServer(dir string) (*Process, error) {
	key := serverKey(dir)

	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.running[key]; ok && p.IsRunning() {
		return nil, &OpError{Op: OpStart, Path: dir, Err: ErrAlreadyRunning}
	}

	p, err := StartProcess(dir, m.procOpts...)
	if err != nil {
		return nil, err
	}

	m.running[key] = p
	m.log.Info("server started", "dir", key, "pid", p.Pid())

	return p, nil
}

// Process returns the tracked process for a server directory, if any
func (m *Manager) Process(dir string) (*Process, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.running[serverKey(dir)]
	return p, ok
}

// IsRunning reports whether a live process exists for the directory
func (m *Manager) IsRunning(dir string) bool {
	p, ok := m.Process(dir)
	return ok && p.IsRunning()
}

// SendCommand forwards a console command to the directory's process
func (m *Manager) SendCommand(dir, text string) error {
	p, ok := m.Process(dir)
	if !ok {
		return &OpError{Op: OpSend, Path: dir, Err: ErrNotRunning}
	}
	return p.SendCommand(text)
}

// ReadOutput drains pending console lines for the directory's process.
// It returns nothing when no process is tracked.
func (m *Manager) ReadOutput(dir string) []string {
	p, ok := m.Process(dir)
	if !ok {
		return nil
	}
	return p.ReadOutput()
}

// StopServer stops the directory's process and forgets it. It fails with
// ErrNotRunning when no process is tracked for the directory.
func (m *Manager) StopServer(ctx context.Context, dir string) error {
	key := serverKey(dir)

	m.mu.Lock()
	p, ok := m.running[key]
	m.mu.Unlock()

	if !ok {
		return &OpError{Op: OpStop, Path: dir, Err: ErrNotRunning}
	}

	if err := p.Stop(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.running, key)
	m.mu.Unlock()

	m.log.Info("server stopped", "dir", key)
	return nil
}

// StopAll stops every tracked process concurrently and aggregates failures
// into a MultiError. Processes that stop cleanly are forgotten either way.
func (m *Manager) StopAll(ctx context.Context) error {
	m.mu.Lock()
	dirs := make([]string, 0, len(m.running))
	for dir := range m.running {
		dirs = append(dirs, dir)
	}
	m.mu.Unlock()

	if len(dirs) == 0 {
		return nil
	}

	sem := make(chan struct{}, m.Concurrency)

	var wg sync.WaitGroup
	var errMu sync.Mutex
	merr := &MultiError{}

	for _, dir := range dirs {
		wg.Add(1)
		go func(dir string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errMu.Lock()
				merr.Add(ctx.Err())
				errMu.Unlock()
				return
			}

			if err := m.StopServer(ctx, dir); err != nil {
				errMu.Lock()
				merr.Add(err)
				errMu.Unlock()
			}
		}(dir)
	}

	wg.Wait()

	return merr.Err()
}
