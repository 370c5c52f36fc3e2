// Command jfor is the jfor interpreter CLI entry point.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/jfor-lang/jfor/pkg/diagnostics"
	"github.com/jfor-lang/jfor/pkg/evaluator"
	"github.com/jfor-lang/jfor/pkg/formatter"
	"github.com/jfor-lang/jfor/pkg/runtime"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: jfor <command> [options]")
		fmt.Fprintln(os.Stderr, "commands: run, check, fmt")
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("usage: jfor <command> [options]")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  run <file|demo|->    parse and execute a program")
	fmt.Println("  check <file|->       parse a program and report diagnostics")
	fmt.Println("  fmt <file> [--write] reprint a program in canonical form")
	fmt.Println()
	fmt.Println("options:")
	fmt.Println("  --pretty             human-readable diagnostics (also JFOR_PRETTY=1)")
}

func cmdRun(args []string) int {
	var file string
	pretty := env.Bool("JFOR_PRETTY")

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--pretty":
			pretty = true
		default:
			if !strings.HasPrefix(args[i], "-") || args[i] == "-" {
				file = args[i]
			}
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: jfor run <file|demo|-> [--pretty]")
		return 1
	}

	source, filename, exitCode := readSource(file, pretty)
	if exitCode != 0 {
		return exitCode
	}

	rt := runtime.New()
	if err := rt.Run(source, filename); err != nil {
		if diagErr, ok := err.(*runtime.DiagnosticError); ok {
			fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics(diagErr.Diagnostics, pretty))
			return 2
		}
		if rtErr, ok := err.(*evaluator.RuntimeError); ok {
			diag := rtErr.Diagnostic()
			fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics([]diagnostics.Diagnostic{diag}, pretty))
			return 4
		}
		fmt.Fprintln(os.Stderr, err.Error())
		return 4
	}
	return 0
}

func cmdCheck(args []string) int {
	var file string
	pretty := env.Bool("JFOR_PRETTY")

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--pretty":
			pretty = true
		default:
			if !strings.HasPrefix(args[i], "-") || args[i] == "-" {
				file = args[i]
			}
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: jfor check <file|-> [--pretty]")
		return 1
	}

	source, filename, exitCode := readSource(file, pretty)
	if exitCode != 0 {
		return exitCode
	}

	rt := runtime.New()
	diags := rt.Check(source, filename)
	if len(diags) > 0 {
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics(diags, pretty))
		return 2
	}

	if pretty {
		fmt.Println("No errors found.")
	} else {
		fmt.Println("[]")
	}
	return 0
}

func cmdFmt(args []string) int {
	var file string
	write := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--write":
			write = true
		default:
			if !strings.HasPrefix(args[i], "-") || args[i] == "-" {
				file = args[i]
			}
		}
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "usage: jfor fmt <file|-> [--write]")
		return 1
	}

	source, filename, exitCode := readSource(file, false)
	if exitCode != 0 {
		return exitCode
	}

	rt := runtime.New()
	formatted, err := rt.Format(source, filename)
	if err != nil {
		if diagErr, ok := err.(*runtime.DiagnosticError); ok {
			fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics(diagErr.Diagnostics, false))
			return 2
		}
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}

	if formatter.HasComments(source) {
		fmt.Fprintln(os.Stderr, "warning: comments are not preserved by the formatter")
	}

	if write {
		if file == "-" || file == "demo" {
			fmt.Fprintln(os.Stderr, "error: --write requires a file argument")
			return 1
		}
		if err := os.WriteFile(file, []byte(formatted), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing file: %s\n", err)
			return 1
		}
	} else {
		fmt.Print(formatted)
	}
	return 0
}

// readSource resolves a program argument: "demo" names the built-in
// sample, "-" reads from stdin, anything else is a file path.
func readSource(file string, pretty bool) (string, string, int) {
	if file == "demo" {
		return runtime.DemoSource, "<demo>", 0
	}
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading stdin: %s\n", err)
			return "", "", 1
		}
		return string(data), "<stdin>", 0
	}

	source, err := os.ReadFile(file)
	if err != nil {
		diag := diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, "")
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics([]diagnostics.Diagnostic{diag}, pretty))
		return "", "", 1
	}
	return string(source), file, 0
}
