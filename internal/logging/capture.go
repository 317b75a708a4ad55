package logging

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// OutputCapture redirects process stdout/stderr through pipes so that prints
// coming from the GTK and WebKit C libraries end up in the structured log
// alongside our own output. Redirection happens at the file descriptor level
// so C-side writes are captured too.
//
// The original descriptors are duplicated up front. The sink logger must
// write to those duplicates or to a plain file, never to fd 1 or 2 directly,
// otherwise its output would feed back into the pipes.
type OutputCapture struct {
	terminalStdout *os.File
	terminalStderr *os.File
	stdoutRead     *os.File
	stdoutWrite    *os.File
	stderrRead     *os.File
	stderrWrite    *os.File
	stopChan       chan struct{}
	wg             sync.WaitGroup
	started        bool
}

// NewOutputCapture duplicates the current stdout/stderr descriptors so the
// real terminal stays reachable after Start rewires fds 1 and 2.
func NewOutputCapture() (*OutputCapture, error) {
	outFd, err := unix.Dup(int(os.Stdout.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate stdout: %w", err)
	}
	errFd, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		_ = unix.Close(outFd)
		return nil, fmt.Errorf("failed to duplicate stderr: %w", err)
	}

	return &OutputCapture{
		terminalStdout: os.NewFile(uintptr(outFd), "stdout"),
		terminalStderr: os.NewFile(uintptr(errFd), "stderr"),
		stopChan:       make(chan struct{}),
	}, nil
}

// TerminalStdout returns the duplicated descriptor for the original stdout.
// It keeps pointing at the terminal while capture is active.
func (c *OutputCapture) TerminalStdout() *os.File { return c.terminalStdout }

// TerminalStderr returns the duplicated descriptor for the original stderr.
func (c *OutputCapture) TerminalStderr() *os.File { return c.terminalStderr }

// Start redirects fds 1 and 2 into pipes and forwards each captured line to
// sink, tagged with the stream it came from.
func (c *OutputCapture) Start(sink zerolog.Logger) error {
	if c.started {
		return nil
	}

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return err
	}

	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		c.closePipe(stdoutR)
		c.closePipe(stdoutW)
		return err
	}

	c.stdoutRead = stdoutR
	c.stdoutWrite = stdoutW
	c.stderrRead = stderrR
	c.stderrWrite = stderrW

	os.Stdout = stdoutW
	os.Stderr = stderrW

	// Also redirect file descriptors at syscall level for C code.
	if err := unix.Dup3(int(stdoutW.Fd()), 1, 0); err != nil {
		fmt.Fprintf(c.terminalStderr, "warning: failed to redirect stdout: %v\n", err)
	}
	if err := unix.Dup3(int(stderrW.Fd()), 2, 0); err != nil {
		fmt.Fprintf(c.terminalStderr, "warning: failed to redirect stderr: %v\n", err)
	}

	c.wg.Add(2)
	go c.forward(stdoutR, "stdout", sink)
	go c.forward(stderrR, "stderr", sink)

	c.started = true
	return nil
}

// Stop restores the original descriptors and drains the pipes.
func (c *OutputCapture) Stop() {
	if !c.started {
		return
	}

	close(c.stopChan)

	os.Stdout = c.terminalStdout
	os.Stderr = c.terminalStderr

	if err := unix.Dup3(int(c.terminalStdout.Fd()), 1, 0); err != nil {
		fmt.Fprintf(c.terminalStderr, "warning: failed to restore stdout: %v\n", err)
	}
	if err := unix.Dup3(int(c.terminalStderr.Fd()), 2, 0); err != nil {
		fmt.Fprintf(c.terminalStderr, "warning: failed to restore stderr: %v\n", err)
	}

	// Closing the write ends unblocks the forwarding goroutines.
	c.closePipe(c.stdoutWrite)
	c.closePipe(c.stderrWrite)
	c.wg.Wait()
	c.closePipe(c.stdoutRead)
	c.closePipe(c.stderrRead)

	c.started = false
}

func (c *OutputCapture) forward(r io.Reader, stream string, sink zerolog.Logger) {
	defer c.wg.Done()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case <-c.stopChan:
			return
		default:
		}

		line := scanner.Text()
		if line == "" {
			continue
		}
		sink.Info().Str("stream", stream).Msg(line)
	}
}

func (c *OutputCapture) closePipe(f *os.File) {
	if f == nil {
		return
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(c.terminalStderr, "warning: failed to close capture pipe: %v\n", err)
	}
}
