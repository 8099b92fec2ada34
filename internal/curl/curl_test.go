package curl

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ci-notifier/internal/notifier"
)

type recordingExecutor struct {
	calls  int
	binary string
	args   []string
	stdout string
	err    error
}

func (r *recordingExecutor) Run(_ context.Context, binary string, args []string, stdout io.Writer) error {
	r.calls++
	r.binary = binary
	r.args = append([]string(nil), args...)
	_, _ = io.WriteString(stdout, r.stdout)
	return r.err
}

func TestNewDefaultsBinary(t *testing.T) {
	exec := &recordingExecutor{}
	transport := New("  ", WithExecutor(exec))

	_, err := transport.Post(context.Background(), "OCTOCAT_WEBHOOK", []byte(`{"text":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultBinary, exec.binary)
	assert.Equal(t, "curl", transport.Name())
}

func TestPostBuildsCurlArguments(t *testing.T) {
	exec := &recordingExecutor{stdout: "ok"}
	transport := New("/usr/bin/curl", WithExecutor(exec))
	body := []byte(`{"text":"Hey ` + "`octocat`" + `! I noticed that your <https://github.com/solo-io/gloo/actions/runs/12345|PR build has failed>"}`)

	result, err := transport.Post(context.Background(), "OCTOCAT_WEBHOOK", body)
	require.NoError(t, err)

	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, "/usr/bin/curl", exec.binary)
	assert.Equal(t, []string{
		"-X", "POST",
		"-H", "'Content-type: application/json'",
		"--data", string(body),
		"OCTOCAT_WEBHOOK",
	}, exec.args)
	assert.Equal(t, "ok", string(result.Output))
}

func TestPostKeepsOutputOnFailure(t *testing.T) {
	exec := &recordingExecutor{stdout: "invalid_payload", err: errors.New("exited with code 22")}
	transport := New("", WithExecutor(exec))

	result, err := transport.Post(context.Background(), "https://hooks.example.com", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with code 22")
	assert.Equal(t, "invalid_payload", string(result.Output))
}

func TestPostMissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-curl")
	transport := New(missing)

	result, err := transport.Post(context.Background(), "OCTOCAT_WEBHOOK", []byte("{}"))
	require.Error(t, err)
	assert.Empty(t, result.Output)
}

func TestSenderWithCurlTransportIsBestEffort(t *testing.T) {
	exec := &recordingExecutor{err: errors.New("exited with code 6")}
	sender, err := notifier.NewSender(New("", WithExecutor(exec)),
		notifier.WithResolver(func(string) (string, bool) { return "", false }),
	)
	require.NoError(t, err)

	report, err := sender.Notify(context.Background(), "octocat", "12345")
	require.NoError(t, err)
	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, "OCTOCAT_WEBHOOK", exec.args[len(exec.args)-1])
	assert.ErrorIs(t, report.Err, notifier.ErrDelivery)
}

func TestPostReportsContextCancellation(t *testing.T) {
	binary, err := os.Executable()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New(binary).Post(ctx, "OCTOCAT_WEBHOOK", []byte("{}"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSenderKeepsCancellationCause(t *testing.T) {
	binary, err := os.Executable()
	require.NoError(t, err)

	sender, err := notifier.NewSender(New(binary),
		notifier.WithResolver(func(string) (string, bool) { return "", false }),
		notifier.WithTimeout(time.Minute),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := sender.Notify(ctx, "octocat", "12345")
	require.NoError(t, err)
	assert.ErrorIs(t, report.Err, context.Canceled)
	assert.Equal(t, "notification delivery failed: curl: run command: context canceled", report.Err.Error())
}
