package curl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"ci-notifier/internal/notifier"
)

const (
	DefaultBinary = "curl"

	// contentTypeHeader keeps the surrounding single quotes; curl receives them verbatim.
	contentTypeHeader = "'Content-type: application/json'"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, stdout io.Writer) error
}

// Option configures the transport.
type Option func(*Transport)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(t *Transport) {
		if exec != nil {
			t.exec = exec
		}
	}
}

// Transport posts notifications by spawning a command-line HTTP client.
type Transport struct {
	binary string
	exec   Executor
}

var _ notifier.Transport = (*Transport)(nil)

// New constructs a curl transport. An empty binary falls back to DefaultBinary.
func New(binary string, opts ...Option) *Transport {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	t := &Transport{
		binary: binary,
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transport) Name() string { return "curl" }

// Args returns the client arguments for posting body to destination.
func Args(destination string, body []byte) []string {
	return []string{"-X", "POST", "-H", contentTypeHeader, "--data", string(body), destination}
}

// Post runs the client once and returns whatever it wrote to stdout,
// including when it exits non-zero.
func (t *Transport) Post(ctx context.Context, destination string, body []byte) (notifier.Result, error) {
	var stdout bytes.Buffer
	err := t.exec.Run(ctx, t.binary, Args(destination, body), &stdout)
	return notifier.Result{Output: stdout.Bytes()}, err
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("run command: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("exited with code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("run command: %w", err)
	}
	return nil
}
