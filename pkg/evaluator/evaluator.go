// Package evaluator walks the AST and executes it against a flat
// variable environment.
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/jfor-lang/jfor/pkg/ast"
	"github.com/jfor-lang/jfor/pkg/diagnostics"
)

// RuntimeError is returned when execution hits a semantic failure such as
// an unbound variable, a type mismatch or division by zero.
type RuntimeError struct {
	Code    string
	Message string
	Span    ast.Span
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Diagnostic converts the error into a reportable diagnostic.
func (e *RuntimeError) Diagnostic() diagnostics.Diagnostic {
	span := e.Span
	return diagnostics.MakeDiag(e.Code, e.Message, &span, "")
}

func runtimeErr(code string, span ast.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// ExecOptions configures program execution.
type ExecOptions struct {
	// Out receives print output. Defaults to os.Stdout.
	Out io.Writer
}

// Execute runs a parsed program against the given environment.
func Execute(program *ast.Program, env *Env, opts ExecOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	ev := &evaluator{env: env, out: opts.Out}
	for _, stmt := range program.Statements {
		if err := ev.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

type evaluator struct {
	env *Env
	out io.Writer
}

// --- Statements ---

func (ev *evaluator) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		val, err := ev.evalExpr(s.Value)
		if err != nil {
			return err
		}
		ev.env.Set(s.Name, val)
		return nil

	case *ast.PrintStmt:
		val, err := ev.evalExpr(s.Value)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(ev.out, FormatValue(val)); err != nil {
			return runtimeErr(diagnostics.EIO, s.Span, "write failed: %v", err)
		}
		return nil

	case *ast.ExprStmt:
		_, err := ev.evalExpr(s.Expr)
		return err

	case *ast.ForCounterStmt:
		return ev.execForCounter(s)

	case *ast.ForIterStmt:
		return ev.execForIter(s)

	case *ast.ForCLikeStmt:
		return ev.execForCLike(s)

	default:
		return runtimeErr(diagnostics.EType, stmt.NodeSpan(), "unsupported statement %s", stmt.Kind())
	}
}

// execForCounter evaluates the bounds and step once, then drives an
// internal counter. The loop variable is re-bound before every
// iteration, so body writes to it do not change the iteration count.
func (ev *evaluator) execForCounter(s *ast.ForCounterStmt) error {
	from, err := ev.evalNumber(s.From, "'from' bound")
	if err != nil {
		return err
	}
	to, err := ev.evalNumber(s.To, "'to' bound")
	if err != nil {
		return err
	}

	step := 1.0
	if s.By != nil {
		step, err = ev.evalNumber(s.By, "'by' step")
		if err != nil {
			return err
		}
		if step == 0 {
			return runtimeErr(diagnostics.EType, s.By.NodeSpan(), "'by' step cannot be 0")
		}
	}

	for counter := from; (step > 0 && counter <= to) || (step < 0 && counter >= to); counter += step {
		ev.env.Set(s.Var, NewNumber(counter))
		if err := ev.execBody(s.Body); err != nil {
			return err
		}
	}
	return nil
}

func (ev *evaluator) execForIter(s *ast.ForIterStmt) error {
	iterable, err := ev.evalExpr(s.Iterable)
	if err != nil {
		return err
	}
	list, ok := iterable.(List)
	if !ok {
		return runtimeErr(diagnostics.EType, s.Iterable.NodeSpan(), "cannot iterate over %s", iterable.Type())
	}

	for _, elem := range list.Elements {
		ev.env.Set(s.Var, elem)
		if err := ev.execBody(s.Body); err != nil {
			return err
		}
	}
	return nil
}

// execForCLike runs init once, then alternates condition check, body and
// step. A missing condition reads as always true.
func (ev *evaluator) execForCLike(s *ast.ForCLikeStmt) error {
	if s.Init != nil {
		if err := ev.execStmt(s.Init); err != nil {
			return err
		}
	}

	for {
		if s.Cond != nil {
			cond, err := ev.evalNumber(s.Cond, "loop condition")
			if err != nil {
				return err
			}
			if cond == 0 {
				return nil
			}
		}

		if err := ev.execBody(s.Body); err != nil {
			return err
		}

		if s.Step != nil {
			if err := ev.execStmt(s.Step); err != nil {
				return err
			}
		}
	}
}

func (ev *evaluator) execBody(body []ast.Stmt) error {
	for _, stmt := range body {
		if err := ev.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// --- Expressions ---

func (ev *evaluator) evalExpr(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return NewNumber(e.Value), nil

	case *ast.StrLiteral:
		return NewString(e.Value), nil

	case *ast.Ident:
		val, ok := ev.env.Get(e.Name)
		if !ok {
			return nil, runtimeErr(diagnostics.EName, e.Span, "undefined variable '%s'", e.Name)
		}
		return val, nil

	case *ast.ListExpr:
		elems := make([]Value, 0, len(e.Elements))
		for _, elemExpr := range e.Elements {
			elem, err := ev.evalExpr(elemExpr)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return NewList(elems), nil

	case *ast.UnaryExpr:
		operand, err := ev.evalExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		num, ok := operand.(Number)
		if !ok {
			return nil, runtimeErr(diagnostics.EType, e.Span, "cannot negate %s", operand.Type())
		}
		return NewNumber(-num.Val), nil

	case *ast.BinaryExpr:
		return ev.evalBinary(e)

	default:
		return nil, runtimeErr(diagnostics.EType, expr.NodeSpan(), "unsupported expression %s", expr.Kind())
	}
}

func (ev *evaluator) evalBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := ev.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpAdd:
		return ev.evalAdd(e, left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv:
		return ev.evalArith(e, left, right)
	default:
		return ev.evalComparison(e, left, right)
	}
}

// evalAdd adds numbers, and concatenates when either operand is a
// string (the other side is rendered with its print representation).
func (ev *evaluator) evalAdd(e *ast.BinaryExpr, left, right Value) (Value, error) {
	if ln, ok := left.(Number); ok {
		if rn, ok := right.(Number); ok {
			return NewNumber(ln.Val + rn.Val), nil
		}
	}
	_, leftStr := left.(Str)
	_, rightStr := right.(Str)
	if leftStr || rightStr {
		return NewString(FormatValue(left) + FormatValue(right)), nil
	}
	return nil, runtimeErr(diagnostics.EType, e.Span, "cannot add %s and %s", left.Type(), right.Type())
}

func (ev *evaluator) evalArith(e *ast.BinaryExpr, left, right Value) (Value, error) {
	ln, lok := left.(Number)
	rn, rok := right.(Number)
	if !lok || !rok {
		return nil, runtimeErr(diagnostics.EType, e.Span, "operator '%s' requires numbers, got %s and %s", e.Op, left.Type(), right.Type())
	}

	switch e.Op {
	case ast.OpSub:
		return NewNumber(ln.Val - rn.Val), nil
	case ast.OpMul:
		return NewNumber(ln.Val * rn.Val), nil
	default:
		if rn.Val == 0 {
			return nil, runtimeErr(diagnostics.EDivZero, e.Span, "division by zero")
		}
		return NewNumber(ln.Val / rn.Val), nil
	}
}

// evalComparison yields 1 for true and 0 for false. Ordering is defined
// for two numbers or two strings; equality across mismatched types is
// simply false. Lists do not compare.
func (ev *evaluator) evalComparison(e *ast.BinaryExpr, left, right Value) (Value, error) {
	if left.Type() == "list" || right.Type() == "list" {
		return nil, runtimeErr(diagnostics.EType, e.Span, "cannot compare lists")
	}

	if e.Op == ast.OpEqEq || e.Op == ast.OpNeq {
		equal := valuesEqual(left, right)
		if e.Op == ast.OpNeq {
			equal = !equal
		}
		return boolNumber(equal), nil
	}

	if ln, ok := left.(Number); ok {
		if rn, ok := right.(Number); ok {
			return boolNumber(orderedCompare(e.Op, ln.Val < rn.Val, ln.Val == rn.Val)), nil
		}
	}
	if ls, ok := left.(Str); ok {
		if rs, ok := right.(Str); ok {
			return boolNumber(orderedCompare(e.Op, ls.Val < rs.Val, ls.Val == rs.Val)), nil
		}
	}
	return nil, runtimeErr(diagnostics.EType, e.Span, "cannot order %s and %s", left.Type(), right.Type())
}

func valuesEqual(left, right Value) bool {
	switch l := left.(type) {
	case Number:
		r, ok := right.(Number)
		return ok && l.Val == r.Val
	case Str:
		r, ok := right.(Str)
		return ok && l.Val == r.Val
	default:
		return false
	}
}

func orderedCompare(op ast.BinaryOp, less, equal bool) bool {
	switch op {
	case ast.OpLt:
		return less
	case ast.OpLtEq:
		return less || equal
	case ast.OpGt:
		return !less && !equal
	default: // OpGtEq
		return !less
	}
}

func boolNumber(b bool) Number {
	if b {
		return NewNumber(1)
	}
	return NewNumber(0)
}

// evalNumber evaluates an expression that must produce a number, naming
// the surrounding construct in the error message.
func (ev *evaluator) evalNumber(expr ast.Expr, what string) (float64, error) {
	val, err := ev.evalExpr(expr)
	if err != nil {
		return 0, err
	}
	num, ok := val.(Number)
	if !ok {
		return 0, runtimeErr(diagnostics.EType, expr.NodeSpan(), "%s must be a number, got %s", what, val.Type())
	}
	return num.Val, nil
}

