// Package shell provides the command runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/core/ports"
	"go.trai.ch/zerr"
)

// stderrTailLines bounds how much standard error is attached to a failure.
const stderrTailLines = 20

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Output runs the command and returns its standard output.
// Standard error is streamed to the logger line by line and its tail is attached to failures.
func (r *Runner) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	stderr := &logWriter{logger: r.logger}

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // fixed toolchain commands
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stderr.Flush()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		wrapped := zerr.Wrap(errors.Join(domain.ErrCommandFailed, err), strings.Join(append([]string{name}, args...), " "))
		wrapped = zerr.With(wrapped, "exit_code", exitCode)
		wrapped = zerr.With(wrapped, "dir", dir)
		if tail := stderr.Tail(); tail != "" {
			wrapped = zerr.With(wrapped, "stderr", tail)
		}
		return nil, wrapped
	}

	return stdout.Bytes(), nil
}

// logWriter forwards complete lines to the logger and keeps the most recent ones.
type logWriter struct {
	logger  ports.Logger
	mu      sync.Mutex
	pending []byte
	tail    []string
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.pending[:i]))
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

// Flush emits a trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) > 0 {
		w.emit(string(w.pending))
		w.pending = nil
	}
}

// Tail returns the last lines written, joined by newlines.
func (w *logWriter) Tail() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.Join(w.tail, "\n")
}

func (w *logWriter) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return
	}
	if w.logger != nil {
		w.logger.Info(line)
	}
	w.tail = append(w.tail, line)
	if len(w.tail) > stderrTailLines {
		w.tail = w.tail[len(w.tail)-stderrTailLines:]
	}
}
