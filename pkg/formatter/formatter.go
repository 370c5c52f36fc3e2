// Package formatter implements the jfor source code formatter.
package formatter

import (
	"strconv"
	"strings"

	"github.com/jfor-lang/jfor/pkg/ast"
)

const indent = "    "

// Precedence table for binary operators (higher = tighter binding)
var precedence = map[ast.BinaryOp]int{
	ast.OpGt: 1, ast.OpLt: 1, ast.OpGtEq: 1, ast.OpLtEq: 1,
	ast.OpEqEq: 1, ast.OpNeq: 1,
	ast.OpAdd: 2, ast.OpSub: 2,
	ast.OpMul: 3, ast.OpDiv: 3,
}

func needsParens(child ast.Expr, parentOp ast.BinaryOp, isRight bool) bool {
	bin, ok := child.(*ast.BinaryExpr)
	if !ok {
		return false
	}
	childPrec := precedence[bin.Op]
	parentPrec := precedence[parentOp]
	if childPrec < parentPrec {
		return true
	}
	// Operators are left-associative, so a same-precedence child on the
	// right keeps its parentheses.
	if childPrec == parentPrec && isRight {
		return true
	}
	return false
}

// HasComments reports whether source contains # comments. A # inside a
// string literal does not count.
func HasComments(source string) bool {
	inString := false
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '"':
			inString = !inString
		case '\n':
			inString = false
		case '#':
			if !inString {
				return true
			}
		}
	}
	return false
}

// Format pretty-prints a jfor AST back to source code.
func Format(program *ast.Program) string {
	var lines []string
	for _, s := range program.Statements {
		lines = append(lines, formatStmt(s, 0))
	}
	return strings.Join(lines, "\n") + "\n"
}

func formatStmt(s ast.Stmt, depth int) string {
	prefix := strings.Repeat(indent, depth)
	switch stmt := s.(type) {
	case *ast.AssignStmt:
		return prefix + stmt.Name + " = " + formatExpr(stmt.Value)
	case *ast.PrintStmt:
		return prefix + "print " + formatExpr(stmt.Value)
	case *ast.ExprStmt:
		return prefix + formatExpr(stmt.Expr)
	case *ast.ForCounterStmt:
		header := "for " + stmt.Var + " = " + formatExpr(stmt.From) + " to " + formatExpr(stmt.To)
		if stmt.By != nil {
			header += " by " + formatExpr(stmt.By)
		}
		return prefix + header + " do\n" + formatBody(stmt.Body, depth) + prefix + "end"
	case *ast.ForIterStmt:
		header := "for " + stmt.Var + " in " + formatExpr(stmt.Iterable)
		return prefix + header + " do\n" + formatBody(stmt.Body, depth) + prefix + "end"
	case *ast.ForCLikeStmt:
		return prefix + formatCLikeHeader(stmt) + " do\n" + formatBody(stmt.Body, depth) + prefix + "end"
	}
	return ""
}

func formatCLikeHeader(stmt *ast.ForCLikeStmt) string {
	header := "for ("
	if stmt.Init != nil {
		header += formatStmt(stmt.Init, 0)
	}
	header += ";"
	if stmt.Cond != nil {
		header += " " + formatExpr(stmt.Cond)
	}
	header += ";"
	if stmt.Step != nil {
		header += " " + formatStmt(stmt.Step, 0)
	}
	return header + ")"
}

func formatBody(stmts []ast.Stmt, depth int) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(formatStmt(s, depth+1))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatExpr(e ast.Expr) string {
	switch expr := e.(type) {
	case *ast.NumberLiteral:
		return strconv.FormatFloat(expr.Value, 'f', -1, 64)
	case *ast.StrLiteral:
		return "\"" + expr.Value + "\""
	case *ast.Ident:
		return expr.Name
	case *ast.ListExpr:
		parts := make([]string, len(expr.Elements))
		for i, elem := range expr.Elements {
			parts[i] = formatExpr(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.BinaryExpr:
		leftStr := formatExpr(expr.Left)
		rightStr := formatExpr(expr.Right)
		if needsParens(expr.Left, expr.Op, false) {
			leftStr = "(" + leftStr + ")"
		}
		if needsParens(expr.Right, expr.Op, true) {
			rightStr = "(" + rightStr + ")"
		}
		return leftStr + " " + string(expr.Op) + " " + rightStr
	case *ast.UnaryExpr:
		operandStr := formatExpr(expr.Operand)
		if _, isBin := expr.Operand.(*ast.BinaryExpr); isBin {
			return "-(" + operandStr + ")"
		}
		return "-" + operandStr
	}
	return ""
}
