package gamesrv

import (
	"bufio"
	"io"
)

// maxLineSize bounds a single console line; anything longer is split by the
// scanner's buffer limit rather than stalling the pipe.
const maxLineSize = 1024 * 1024

// readPipe tokenizes one output pipe by line terminators and publishes each
// completed line, tagged with prefix, into the shared queue. It returns when
// the pipe reaches EOF, which happens when the child exits.
func (p *Process) readPipe(r io.Reader, prefix string) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.publish(prefix + scanner.Text())
	}
}

// publish inserts a line into the bounded queue. When the queue is full the
// oldest line is evicted first, so producers never block and the queue holds
// exactly the most recent Backlog lines.
func (p *Process) publish(line string) {
	for {
		select {
		case p.lines <- line:
			return
		default:
		}
		select {
		case <-p.lines:
		default:
		}
	}
}
