// Package executil runs the networksetup utility and captures what it
// printed. Consumers depend on the Runner interface so they can be tested
// with Mock instead of touching the host's network configuration.
package executil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/strct-org/strct-netsetup/internal/errs"
	"github.com/strct-org/strct-netsetup/internal/logging"
)

// DefaultExecutable is the utility every Runner invokes.
const DefaultExecutable = "networksetup"

const (
	OpRun errs.Op = "executil.Run"
)

// Result is what one invocation produced.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs the utility with the given arguments, action flag first.
// A non-zero exit is not an error; only a process that could not be
// launched (or was cut off by ctx) is.
type Runner interface {
	Run(ctx context.Context, args ...string) (*Result, error)
}

// Real executes the utility via os/exec.
type Real struct {
	Executable string
	// Timeout bounds each invocation. Zero waits for as long as the
	// process runs.
	Timeout time.Duration
	Log     *logging.Logger
}

func New(executable string, timeout time.Duration, log *logging.Logger) *Real {
	return &Real{Executable: executable, Timeout: timeout, Log: log}
}

func (r *Real) executable() string {
	if r.Executable == "" {
		return DefaultExecutable
	}
	return r.Executable
}

func (r *Real) Run(ctx context.Context, args ...string) (*Result, error) {
	name := r.executable()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	id := uuid.NewString()
	argv := append([]string{name}, args...)
	r.Log.Infof("run %s: %s", id, strings.Join(masked(ctx, argv), " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		r.Log.Errorf("run %s: %s did not finish: %v", id, name, ctxErr)
		msg := "process timed out"
		if errors.Is(ctxErr, context.Canceled) {
			msg = "process canceled"
		}
		return nil, errs.E(OpRun, errs.KindSystem, ctxErr, msg)
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		r.Log.Errorf("run %s: could not launch %s: %v", id, name, err)
		return nil, errs.E(OpRun, errs.KindSystem, err, "process launch")
	}

	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	r.Log.Debugf("run %s: %s finished with exit code %d", id, name, res.ExitCode)

	return res, nil
}

type secretsKey struct{}

// WithSecret marks values that must not appear in log lines. They are
// still passed to the process unchanged.
func WithSecret(ctx context.Context, secrets ...string) context.Context {
	prev, _ := ctx.Value(secretsKey{}).([]string)
	all := append(append([]string(nil), prev...), secrets...)
	return context.WithValue(ctx, secretsKey{}, all)
}

func masked(ctx context.Context, argv []string) []string {
	secrets, _ := ctx.Value(secretsKey{}).([]string)
	if len(secrets) == 0 {
		return argv
	}

	out := make([]string, len(argv))
	for i, arg := range argv {
		out[i] = arg
		for _, s := range secrets {
			if s != "" && arg == s {
				out[i] = "******"
				break
			}
		}
	}
	return out
}
