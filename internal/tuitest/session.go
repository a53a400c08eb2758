// Package tuitest drives a terminal program through a pseudo terminal and
// records what it draws.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	defaultCols    = 120
	defaultRows    = 40
	defaultTimeout = 10 * time.Second
)

// Options configures one recorded session.
type Options struct {
	Command []string
	Dir     string
	// Env is appended to the current environment.
	Env     []string
	Cols    int
	Rows    int
	Script  []Step
	Timeout time.Duration
	// AllowInterrupt accepts an exit caused by SIGINT.
	AllowInterrupt bool
}

// Recording is the raw terminal stream and the frames parsed from it.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// Run starts the command in a PTY, plays the script and waits for exit.
func Run(ctx context.Context, opts Options) (*Recording, error) {
	if len(opts.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	cols, rows, timeout := opts.Cols, opts.Rows, opts.Timeout
	if cols <= 0 {
		cols = defaultCols
	}
	if rows <= 0 {
		rows = defaultRows
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, opts.Command[0], opts.Command[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = sessionEnv(opts.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	var output bytes.Buffer
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		answer := newResponder(ptmx)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				answer.Feed(buf[:n])
				output.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	start := time.Now()
	for _, step := range opts.Script {
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("tuitest: script interrupted: %w", ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if len(step.Input) == 0 {
			continue
		}
		if _, err := ptmx.Write(step.Input); err != nil {
			return nil, fmt.Errorf("tuitest: write input: %w", err)
		}
	}

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()
	select {
	case err := <-exited:
		if err != nil && !(opts.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt")) {
			return nil, fmt.Errorf("tuitest: program exited: %w", err)
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("tuitest: waiting for exit: %w", ctx.Err())
	}

	_ = ptmx.Close()
	<-drained

	raw := output.Bytes()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(start)}, nil
}

func sessionEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}
