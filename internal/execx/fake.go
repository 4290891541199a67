package execx

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Call records one command invocation observed by a Fake runner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a shell-like command line.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Fake is a scripted Runner for tests. Responses are looked up by command
// line prefix; unscripted commands succeed with empty output.
type Fake struct {
	mu    sync.Mutex
	calls []Call

	// Errors maps a command line prefix to the error returned for it.
	Errors map[string]error

	// Outputs maps a command line prefix to the stdout returned for it.
	Outputs map[string]string
}

var _ Runner = (*Fake)(nil)

// NewFake returns an empty scripted runner.
func NewFake() *Fake {
	return &Fake{
		Errors:  make(map[string]error),
		Outputs: make(map[string]string),
	}
}

// FailWith scripts err for every command line starting with prefix.
func (f *Fake) FailWith(prefix string, err error) *Fake {
	f.Errors[prefix] = err
	return f
}

// Fail scripts a generic failure for every command line starting with prefix.
func (f *Fake) Fail(prefix string) *Fake {
	return f.FailWith(prefix, errors.Newf("fake: %s failed", prefix))
}

// Respond scripts stdout for every command line starting with prefix.
func (f *Fake) Respond(prefix, output string) *Fake {
	f.Outputs[prefix] = output
	return f
}

// Run implements Runner.
func (f *Fake) Run(ctx context.Context, name string, args ...string) error {
	_, err := f.record(Call{Name: name, Args: args})
	return err
}

// Output implements Runner.
func (f *Fake) Output(ctx context.Context, name string, args ...string) (string, error) {
	return f.record(Call{Name: name, Args: args})
}

// RunInDir implements Runner.
func (f *Fake) RunInDir(ctx context.Context, dir, name string, args ...string) error {
	_, err := f.record(Call{Dir: dir, Name: name, Args: args})
	return err
}

// Calls returns a copy of all recorded invocations in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CommandLines returns the recorded invocations rendered as command lines.
func (f *Fake) CommandLines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

func (f *Fake) record(c Call) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	line := c.String()
	for prefix, err := range f.Errors {
		if strings.HasPrefix(line, prefix) {
			return "", err
		}
	}
	for prefix, out := range f.Outputs {
		if strings.HasPrefix(line, prefix) {
			return out, nil
		}
	}
	return "", nil
}
