package gamesrv

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"vawter.tech/stopper"
)

// Process supervises one running instance of the server executable.
// It owns the child's stdin/stdout/stderr pipes and merges both output
// streams into a single bounded line queue drained by ReadOutput.
//
// A Process is created by StartProcess and becomes inert once the child
// exits, whether through Stop or on its own. Exit is only observed when
// IsRunning or ReadOutput is polled; there is no push notification.
type Process struct {
	// Dir is the server directory the child was launched in
	Dir string

	// GracePeriod is how long Stop waits after the exit command before
	// force-terminating the child
	GracePeriod time.Duration

	// Backlog is the maximum number of output lines retained between drains
	Backlog int

	// ExitCommand is written to stdin to request graceful shutdown
	ExitCommand string

	cmd   *exec.Cmd
	stdin io.WriteCloser

	// mu serializes writes to the stdin pipe
	mu sync.Mutex

	lines chan string

	// done is closed after both readers finish and the child is reaped
	done    chan struct{}
	waitErr error
}

// ProcessOption configures a Process before it is started
type ProcessOption func(*Process)

// WithGracePeriod sets the wait between the exit command and force-kill
func WithGracePeriod(d time.Duration) ProcessOption {
	return func(p *Process) {
		p.GracePeriod = d
	}
}

// WithBacklog sets the maximum number of retained output lines
func WithBacklog(n int) ProcessOption {
	return func(p *Process) {
		p.Backlog = n
	}
}

// WithExitCommand sets the command sent to request graceful shutdown
func WithExitCommand(cmd string) ProcessOption {
	return func(p *Process) {
		p.ExitCommand = cmd
	}
}

// StartProcess launches the server executable found inside serverDir with
// the directory as its working directory and all three standard streams
// piped. It returns immediately after the spawn; two background readers
// stream the child's output into the line queue until their pipes reach EOF.
//
// It fails with ErrExecutableNotFound if the executable is absent and wraps
// any spawn failure in an OpError; no Process is created on failure.
func StartProcess(serverDir string, opts ...ProcessOption) (*Process, error) {
	exePath := filepath.Join(serverDir, ExecutableName)
	if _, err := os.Stat(exePath); err != nil {
		if os.IsNotExist(err) {
			return nil, &OpError{Op: OpStart, Path: exePath, Err: ErrExecutableNotFound}
		}
		return nil, &OpError{Op: OpStart, Path: exePath, Err: err}
	}

	p := &Process{
		Dir:         serverDir,
		GracePeriod: DefaultGracePeriod,
		Backlog:     DefaultBacklog,
		ExitCommand: DefaultExitCommand,
		done:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.Backlog < 1 {
		p.Backlog = 1
	}
	p.lines = make(chan string, p.Backlog)

	cmd := exec.Command(exePath)
	cmd.Dir = serverDir
	cmd.SysProcAttr = sysProcAttr()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &OpError{Op: OpStart, Path: exePath, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &OpError{Op: OpStart, Path: exePath, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &OpError{Op: OpStart, Path: exePath, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &OpError{Op: OpStart, Path: exePath, Err: err}
	}

	p.cmd = cmd
	p.stdin = stdin

	// The readers end on their own at pipe EOF; the child is reaped only
	// after both are done so Wait cannot race the pipe reads.
	sctx := stopper.WithContext(context.Background())
	sctx.Go(func(_ *stopper.Context) error {
		p.readPipe(stdout, "")
		return nil
	})
	sctx.Go(func(_ *stopper.Context) error {
		p.readPipe(stderr, StderrPrefix)
		return nil
	})

	go func() {
		_ = sctx.Wait()
		p.waitErr = cmd.Wait()
		close(p.done)
	}()

	return p, nil
}

// Pid returns the operating-system process id of the child
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// IsRunning reports whether the child is still alive. It never blocks.
func (p *Process) IsRunning() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// SendCommand writes text followed by a newline to the child's stdin.
// Concurrent callers are serialized by a single writer lock. It fails with
// an OpError wrapping ErrProcessExited once the child has exited, or
// wrapping the pipe error if the write itself fails.
func (p *Process) SendCommand(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.IsRunning() {
		return &OpError{Op: OpSend, Path: p.Dir, Err: ErrProcessExited}
	}

	if _, err := io.WriteString(p.stdin, text+"\n"); err != nil {
		return &OpError{Op: OpSend, Path: p.Dir, Err: err}
	}
	return nil
}

// Stop shuts the child down: it sends the exit command, waits GracePeriod
// for a voluntary exit, force-terminates if the child is still alive, and
// reaps it. Calling Stop on an already-stopped process is a no-op.
func (p *Process) Stop(ctx context.Context) error {
	if !p.IsRunning() {
		return nil
	}

	// The child may have exited between the check and the write; a send
	// failure here is not an error, the kill path below covers it.
	_ = p.SendCommand(p.ExitCommand)

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return &OpError{Op: OpStop, Path: p.Dir, Err: ctx.Err()}
	case <-time.After(p.GracePeriod):
	}

	// A kill error means the child already exited; the reap below settles it
	_ = p.cmd.Process.Kill()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return &OpError{Op: OpStop, Path: p.Dir, Err: ctx.Err()}
	}
}

// ReadOutput drains and returns the lines accumulated since the last drain.
// It never blocks; when nothing new has arrived it returns an empty slice.
func (p *Process) ReadOutput() []string {
	var out []string
	for {
		select {
		case line := <-p.lines:
			out = append(out, line)
		default:
			return out
		}
	}
}

// ExitError returns the error reported by the child's exit, if any.
// It is only meaningful once IsRunning reports false.
func (p *Process) ExitError() error {
	select {
	case <-p.done:
		return p.waitErr
	default:
		return nil
	}
}
