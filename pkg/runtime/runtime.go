// Package runtime provides the top-level jfor runtime orchestrator.
package runtime

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jfor-lang/jfor/pkg/diagnostics"
	"github.com/jfor-lang/jfor/pkg/evaluator"
	"github.com/jfor-lang/jfor/pkg/formatter"
	"github.com/jfor-lang/jfor/pkg/parser"
)

// DemoSource is a built-in program exercising every loop form.
const DemoSource = `# Demo: both FOR styles

print "Counter (ALGOL/BASIC style):"
for i = 1 to 5 by 2 do
    print i
end

print "Iterator:"
for w in ["Hello","Bonjour","Hola"] do
    print w + " World!"
end

print "Johnson/C-style semicolon loop:"
for (j = 0; j < 5; j = j + 1) do
    print j
end

print "While-style using semicolons (omit init/step):"
x = 3
for (; x > 0; ) do
    print x
    x = x - 1
end
`

// Runtime wires together the jfor pipeline for program execution.
type Runtime struct {
	out io.Writer
	env *evaluator.Env
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithOutput redirects print output.
func WithOutput(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.out = w
	}
}

// WithEnv seeds the runtime with an existing environment instead of a
// fresh one. Useful for running several programs against shared state.
func WithEnv(env *evaluator.Env) Option {
	return func(rt *Runtime) {
		rt.env = env
	}
}

// New creates a new Runtime with the given options. By default print
// output goes to stdout and the environment starts empty.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		out: os.Stdout,
		env: evaluator.NewEnv(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Env exposes the runtime's environment, mainly for inspection in tests.
func (rt *Runtime) Env() *evaluator.Env {
	return rt.env
}

// Run parses and executes a jfor program.
func (rt *Runtime) Run(source, filename string) error {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return &DiagnosticError{Diagnostics: diags}
	}
	return evaluator.Execute(program, rt.env, evaluator.ExecOptions{Out: rt.out})
}

// Check parses a jfor program without executing it.
func (rt *Runtime) Check(source, filename string) []diagnostics.Diagnostic {
	_, diags := parser.Parse(source, filename)
	return diags
}

// Format parses and formats a jfor program.
func (rt *Runtime) Format(source, filename string) (string, error) {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return "", &DiagnosticError{Diagnostics: diags}
	}
	return formatter.Format(program), nil
}

// DiagnosticError wraps diagnostics as an error.
type DiagnosticError struct {
	Diagnostics []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return strings.Join(msgs, "; ")
}
