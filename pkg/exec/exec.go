package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTimeout = errors.New("timed out")
	Unredacted = Redact(nil)
)

// CmdError is returned when a command fails to start, exits non-zero or
// times out.
type CmdError struct {
	Cause  error
	Args   string
	Stderr string
}

func (ce *CmdError) Error() string {
	res := fmt.Sprintf("`%v` failed: %v", ce.Args, ce.Cause)
	if ce.Stderr != "" {
		res = fmt.Sprintf("%s: %s", res, ce.Stderr)
	}

	return res
}

func (ce *CmdError) String() string {
	return ce.Error()
}

func (ce *CmdError) Unwrap() error {
	return ce.Cause
}

func newCmdError(args string, cause error, stderr string) *CmdError {
	return &CmdError{Args: args, Stderr: stderr, Cause: cause}
}

// CmdOpts configures [Run].
type CmdOpts struct {
	// Stdin is connected to the command's standard input when set.
	Stdin io.Reader
	// Redactor redacts secrets from logged arguments and output.
	Redactor func(text string) string
	// Dir is the working directory of the command.
	Dir string
	// Env is appended to the current environment.
	Env []string
	// Timeout determines how long to wait for the command to exit. Zero
	// means no timeout beyond the context's.
	Timeout time.Duration
	// Signal is sent to the process on timeout or cancellation. Defaults
	// to SIGKILL.
	Signal syscall.Signal
	// SkipErrorLogging disables the error log line on failure.
	SkipErrorLogging bool
}

var DefaultCmdOpts = CmdOpts{
	Redactor: Unredacted,
	Signal:   syscall.SIGKILL,
}

// Redact returns a redactor that masks every occurrence of items.
func Redact(items []string) func(text string) string {
	return func(text string) string {
		for _, item := range items {
			if item == "" {
				continue
			}

			text = strings.ReplaceAll(text, item, "******")
		}

		return text
	}
}

// Run runs the named command and returns its standard output with the
// trailing newline removed. On failure the returned error is a [*CmdError]
// holding the trimmed standard error.
func Run(ctx context.Context, name string, opts CmdOpts, arg ...string) (string, error) {
	return RunCommandExt(ctx, exec.Command(name, arg...), opts) //nolint:gosec // G204: caller controls the binary.
}

// RunCommandExt runs cmd, logging the invocation under a unique exec ID.
// The command is stopped when ctx is done or opts.Timeout elapses.
func RunCommandExt(ctx context.Context, cmd *exec.Cmd, opts CmdOpts) (string, error) {
	logCtx := slog.With("execID", uuid.NewString())

	redactor := DefaultCmdOpts.Redactor
	if opts.Redactor != nil {
		redactor = opts.Redactor
	}

	signal := DefaultCmdOpts.Signal
	if opts.Signal != syscall.Signal(0) {
		signal = opts.Signal
	}

	args := strings.Join(cmd.Args, " ")
	logCtx.Debug("exec", "cmd", redactor(args), "dir", opts.Dir)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(cmd.Environ(), opts.Env...)
	}

	start := time.Now()

	if err := cmd.Start(); err != nil {
		cerr := newCmdError(redactor(args), err, "")
		if !opts.SkipErrorLogging {
			logCtx.Error(cerr.Error())
		}

		return "", cerr
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var timeoutCh <-chan time.Time
	if opts.Timeout > 0 {
		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()

		timeoutCh = timer.C
	}

	var cause error

	select {
	case <-timeoutCh:
		_ = cmd.Process.Signal(signal)
		<-done

		cause = fmt.Errorf("%w after %v", ErrTimeout, opts.Timeout)

	case <-ctx.Done():
		_ = cmd.Process.Signal(signal)
		<-done

		cause = ctx.Err()

	case err := <-done:
		if err != nil {
			cause = errors.New(redactor(err.Error()))
		}
	}

	output := strings.TrimSuffix(stdout.String(), "\n")
	logCtx.Debug("exec done", "output", redactor(output), "duration", time.Since(start))

	if cause != nil {
		cerr := newCmdError(redactor(args), cause, strings.TrimSpace(redactor(stderr.String())))
		if !opts.SkipErrorLogging {
			logCtx.Error(cerr.Error())
		}

		return output, cerr
	}

	return output, nil
}
