package exec_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/abischema/pkg/exec"
)

func TestRun(t *testing.T) {
	t.Parallel()

	out, err := exec.Run(context.Background(), "sh", exec.DefaultCmdOpts, "-c", "echo hello; echo world")
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", out)
}

func TestRunStdin(t *testing.T) {
	t.Parallel()

	opts := exec.CmdOpts{Stdin: strings.NewReader(`{"a":1}`)}

	out, err := exec.Run(context.Background(), "cat", opts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, out)
}

func TestRunEnvAndDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := exec.CmdOpts{Dir: dir, Env: []string{"ABISCHEMA_TEST=yes"}}

	out, err := exec.Run(context.Background(), "sh", opts, "-c", `echo "$ABISCHEMA_TEST"; pwd`)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "yes", lines[0])
	assert.Contains(t, lines[1], strings.TrimPrefix(dir, "/private"))
}

func TestRunFailure(t *testing.T) {
	t.Parallel()

	out, err := exec.Run(context.Background(), "sh", exec.CmdOpts{SkipErrorLogging: true},
		"-c", "echo partial; echo 'contract not found' >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, "partial", out)

	var cerr *exec.CmdError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "contract not found", cerr.Stderr)
	assert.Contains(t, cerr.Args, "sh -c")
	assert.Contains(t, cerr.Error(), "exit status 3")
	assert.Contains(t, cerr.Error(), "contract not found")
}

func TestRunMissingBinary(t *testing.T) {
	t.Parallel()

	_, err := exec.Run(context.Background(), "abischema-no-such-binary", exec.CmdOpts{SkipErrorLogging: true})
	require.Error(t, err)

	var cerr *exec.CmdError
	require.ErrorAs(t, err, &cerr)
	assert.Empty(t, cerr.Stderr)
}

func TestRunTimeout(t *testing.T) {
	t.Parallel()

	start := time.Now()
	_, err := exec.Run(context.Background(), "sleep", exec.CmdOpts{
		Timeout:          50 * time.Millisecond,
		SkipErrorLogging: true,
	}, "10")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.ErrorIs(t, err, exec.ErrTimeout)
}

func TestRunContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := exec.Run(ctx, "sleep", exec.CmdOpts{SkipErrorLogging: true}, "10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRedact(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		items []string
		input string
		want  string
	}{
		"none": {
			input: "near --key secret",
			want:  "near --key secret",
		},
		"single": {
			items: []string{"secret"},
			input: "near --key secret --again secret",
			want:  "near --key ****** --again ******",
		},
		"empty item ignored": {
			items: []string{""},
			input: "abc",
			want:  "abc",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, exec.Redact(tc.items)(tc.input))
		})
	}
}

func TestRunRedactsErrors(t *testing.T) {
	t.Parallel()

	opts := exec.CmdOpts{
		Redactor:         exec.Redact([]string{"hunter2"}),
		SkipErrorLogging: true,
	}

	_, err := exec.Run(context.Background(), "sh", opts, "-c", "echo hunter2 >&2; exit 1", "hunter2")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")
}
