// Package ast defines the jfor language AST node types.
package ast

// Span represents a source location range.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodeSpan() Span
}

// BinaryOp represents a binary operator.
type BinaryOp string

const (
	OpAdd  BinaryOp = "+"
	OpSub  BinaryOp = "-"
	OpMul  BinaryOp = "*"
	OpDiv  BinaryOp = "/"
	OpGt   BinaryOp = ">"
	OpLt   BinaryOp = "<"
	OpGtEq BinaryOp = ">="
	OpLtEq BinaryOp = "<="
	OpEqEq BinaryOp = "=="
	OpNeq  BinaryOp = "!="
)

// UnaryOp represents a unary operator.
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
)

// --- Expr is the interface for all expression nodes ---

type Expr interface {
	Node
	exprNode() // sealed marker
}

// --- Stmt is the interface for all statement nodes ---

type Stmt interface {
	Node
	stmtNode() // sealed marker
}

// --- Literal Expressions ---

type NumberLiteral struct {
	Span  Span
	Value float64
}

func (n *NumberLiteral) Kind() string   { return "NumberLiteral" }
func (n *NumberLiteral) NodeSpan() Span { return n.Span }
func (n *NumberLiteral) exprNode()      {}

type StrLiteral struct {
	Span  Span
	Value string
}

func (n *StrLiteral) Kind() string   { return "StrLiteral" }
func (n *StrLiteral) NodeSpan() Span { return n.Span }
func (n *StrLiteral) exprNode()      {}

// --- Identifiers ---

type Ident struct {
	Span Span
	Name string
}

func (n *Ident) Kind() string   { return "Ident" }
func (n *Ident) NodeSpan() Span { return n.Span }
func (n *Ident) exprNode()      {}

// --- Collections ---

type ListExpr struct {
	Span     Span
	Elements []Expr
}

func (n *ListExpr) Kind() string   { return "ListExpr" }
func (n *ListExpr) NodeSpan() Span { return n.Span }
func (n *ListExpr) exprNode()      {}

// --- Binary & Unary Expressions ---

type BinaryExpr struct {
	Span  Span
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (n *BinaryExpr) Kind() string   { return "BinaryExpr" }
func (n *BinaryExpr) NodeSpan() Span { return n.Span }
func (n *BinaryExpr) exprNode()      {}

type UnaryExpr struct {
	Span    Span
	Op      UnaryOp
	Operand Expr
}

func (n *UnaryExpr) Kind() string   { return "UnaryExpr" }
func (n *UnaryExpr) NodeSpan() Span { return n.Span }
func (n *UnaryExpr) exprNode()      {}

// --- Statements ---

type AssignStmt struct {
	Span  Span
	Name  string
	Value Expr
}

func (n *AssignStmt) Kind() string   { return "AssignStmt" }
func (n *AssignStmt) NodeSpan() Span { return n.Span }
func (n *AssignStmt) stmtNode()      {}

type PrintStmt struct {
	Span  Span
	Value Expr
}

func (n *PrintStmt) Kind() string   { return "PrintStmt" }
func (n *PrintStmt) NodeSpan() Span { return n.Span }
func (n *PrintStmt) stmtNode()      {}

// ExprStmt evaluates an expression and discards the result. It only occurs
// as the init or step clause of a semicolon-form loop header.
type ExprStmt struct {
	Span Span
	Expr Expr
}

func (n *ExprStmt) Kind() string   { return "ExprStmt" }
func (n *ExprStmt) NodeSpan() Span { return n.Span }
func (n *ExprStmt) stmtNode()      {}

// --- FOR statements ---

// ForCounterStmt is the ALGOL/BASIC-style bounded loop:
// for VAR = FROM to TO [by BY] do ... end. By is nil when omitted (step 1).
type ForCounterStmt struct {
	Span Span
	Var  string
	From Expr
	To   Expr
	By   Expr
	Body []Stmt
}

func (n *ForCounterStmt) Kind() string   { return "ForCounterStmt" }
func (n *ForCounterStmt) NodeSpan() Span { return n.Span }
func (n *ForCounterStmt) stmtNode()      {}

// ForIterStmt is the iterator loop: for VAR in EXPR do ... end.
type ForIterStmt struct {
	Span     Span
	Var      string
	Iterable Expr
	Body     []Stmt
}

func (n *ForIterStmt) Kind() string   { return "ForIterStmt" }
func (n *ForIterStmt) NodeSpan() Span { return n.Span }
func (n *ForIterStmt) stmtNode()      {}

// ForCLikeStmt is the Johnson semicolon form: for (init; cond; step) do ... end.
// Any of the three clauses may be nil; a nil Cond means always-true. Init and
// Step are restricted by the parser to AssignStmt or ExprStmt.
type ForCLikeStmt struct {
	Span Span
	Init Stmt
	Cond Expr
	Step Stmt
	Body []Stmt
}

func (n *ForCLikeStmt) Kind() string   { return "ForCLikeStmt" }
func (n *ForCLikeStmt) NodeSpan() Span { return n.Span }
func (n *ForCLikeStmt) stmtNode()      {}

// --- Program ---

type Program struct {
	Span       Span
	Statements []Stmt
}

func (n *Program) Kind() string   { return "Program" }
func (n *Program) NodeSpan() Span { return n.Span }
