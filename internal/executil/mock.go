package executil

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// Call records a single invocation for assertion in tests.
type Call struct {
	Args []string
}

// String returns the argument list joined by spaces, the same format
// Expect takes.
func (c Call) String() string {
	return strings.Join(c.Args, " ")
}

// MockResult pre-programs what one argument list returns.
type MockResult struct {
	Result Result
	Err    error
}

// Mock records every invocation and answers from pre-programmed results.
// Unknown argument lists return an empty Result with exit code 0.
// It is meant for sequential tests and dev mode.
//
//	m := &executil.Mock{}
//	m.Expect("-listallhardwareports", executil.MockResult{Result: executil.Result{Stdout: out}})
//	ns := wifi.New(m, nil)
//	// ... exercise code ...
//	m.AssertCalled(t, "-setairportpower en0 On")
type Mock struct {
	Calls []Call

	responses map[string]MockResult
}

// Expect pre-programs a response for an argument list given as
// "flag arg1 arg2 ...".
func (m *Mock) Expect(command string, result MockResult) {
	if m.responses == nil {
		m.responses = make(map[string]MockResult)
	}
	m.responses[command] = result
}

func (m *Mock) Run(_ context.Context, args ...string) (*Result, error) {
	call := Call{Args: append([]string(nil), args...)}
	m.Calls = append(m.Calls, call)

	r, ok := m.responses[call.String()]
	if !ok {
		return &Result{}, nil
	}
	if r.Err != nil {
		return nil, r.Err
	}
	res := r.Result
	return &res, nil
}

// WasCalled reports whether the given argument list was ever run.
func (m *Mock) WasCalled(command string) bool {
	return m.CallCount(command) > 0
}

func (m *Mock) CallCount(command string) int {
	count := 0
	for _, c := range m.Calls {
		if c.String() == command {
			count++
		}
	}
	return count
}

func (m *Mock) AssertCalled(t interface {
	Helper()
	Errorf(string, ...any)
}, command string) {
	t.Helper()
	if !m.WasCalled(command) {
		var buf bytes.Buffer
		buf.WriteString(fmt.Sprintf("expected %q to be run, but it was not.\n", command))
		buf.WriteString("calls made:\n")
		for _, c := range m.Calls {
			buf.WriteString("  " + c.String() + "\n")
		}
		t.Errorf("%s", buf.String())
	}
}

func (m *Mock) AssertNotCalled(t interface {
	Helper()
	Errorf(string, ...any)
}, command string) {
	t.Helper()
	if m.WasCalled(command) {
		t.Errorf("expected %q NOT to be run, but it was", command)
	}
}
