package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// closeGrace is how long Close waits for the child to exit on its own after
// its stdin is closed.
const closeGrace = 3 * time.Second

// Process runs a server as a child process and talks to it over its
// stdin/stdout. The child's stderr is passed through.
type Process struct {
	cmd    *exec.Cmd
	stream *Stream
}

func NewProcess(command string, args []string, env []string) *Process {
	cmd := exec.Command(command, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stderr = os.Stderr
	return &Process{cmd: cmd}
}

// SetStderr redirects the child's stderr. It must be called before Start.
func (p *Process) SetStderr(w io.Writer) {
	p.cmd.Stderr = w
}

func (p *Process) Start(ctx context.Context) error {
	stdin, err := p.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := p.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("start process: %w", err)
	}

	p.stream = NewStream(stdout, stdin)
	return p.stream.Start(ctx)
}

func (p *Process) Send(ctx context.Context, msg any) error {
	if p.stream == nil {
		return errors.New("process not started")
	}
	return p.stream.Send(ctx, msg)
}

func (p *Process) Receive(ctx context.Context) (json.RawMessage, error) {
	if p.stream == nil {
		return nil, errors.New("process not started")
	}
	return p.stream.Receive(ctx)
}

// Close closes the child's stdin so it can shut down gracefully, and kills
// it if it has not exited within closeGrace.
func (p *Process) Close() error {
	if p.stream == nil {
		return nil
	}
	p.stream.Close()

	exited := make(chan error, 1)
	go func() { exited <- p.cmd.Wait() }()

	select {
	case err := <-exited:
		return exitError(err)
	case <-time.After(closeGrace):
		p.cmd.Process.Kill()
		<-exited
		return fmt.Errorf("process did not exit within %s, killed", closeGrace)
	}
}

func exitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("process exited with code %d", exitErr.ExitCode())
	}
	return err
}
