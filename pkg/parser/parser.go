// Package parser implements the jfor language parser.
package parser

import (
	"fmt"
	"strconv"

	"github.com/jfor-lang/jfor/pkg/ast"
	"github.com/jfor-lang/jfor/pkg/diagnostics"
	"github.com/jfor-lang/jfor/pkg/lexer"
)

type parser struct {
	tokens []lexer.Token
	pos    int
	diags  []diagnostics.Diagnostic
}

// Parse tokenizes source and parses it into an AST.
func Parse(source, filename string) (*ast.Program, []diagnostics.Diagnostic) {
	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			return nil, []diagnostics.Diagnostic{le.Diag}
		}
		return nil, []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.ELex, err.Error(), nil, "")}
	}

	p := &parser{tokens: tokens, pos: 0}
	prog := p.parseProgram()
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return prog, nil
}

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) peek() lexer.TokenType {
	return p.current().Type
}

func (p *parser) peekAt(offset int) lexer.TokenType {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return lexer.TokEOF
	}
	return p.tokens[idx].Type
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ lexer.TokenType) (lexer.Token, bool) {
	tok := p.current()
	if tok.Type != typ {
		p.addError(fmt.Sprintf("expected %s, got '%s'", tokenName(typ), tok.Value), &tok.Span)
		return tok, false
	}
	return p.advance(), true
}

func (p *parser) addError(msg string, span *ast.Span) {
	p.diags = append(p.diags, diagnostics.MakeDiag(diagnostics.EParse, msg, span, ""))
}

func (p *parser) spanFrom(start ast.Span) ast.Span {
	cur := p.current().Span
	return ast.Span{
		File:      start.File,
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   cur.StartLine,
		EndCol:    cur.StartCol,
	}
}

func (p *parser) spanFromTo(start, end ast.Span) ast.Span {
	return ast.Span{
		File:      start.File,
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func tokenName(t lexer.TokenType) string {
	switch t {
	case lexer.TokFor:
		return "'for'"
	case lexer.TokTo:
		return "'to'"
	case lexer.TokBy:
		return "'by'"
	case lexer.TokDo:
		return "'do'"
	case lexer.TokIn:
		return "'in'"
	case lexer.TokEnd:
		return "'end'"
	case lexer.TokPrint:
		return "'print'"
	case lexer.TokLParen:
		return "'('"
	case lexer.TokRParen:
		return "')'"
	case lexer.TokLBracket:
		return "'['"
	case lexer.TokRBracket:
		return "']'"
	case lexer.TokComma:
		return "','"
	case lexer.TokSemicolon:
		return "';'"
	case lexer.TokEquals:
		return "'='"
	case lexer.TokIdent:
		return "identifier"
	case lexer.TokNumberLit:
		return "number"
	case lexer.TokStringLit:
		return "string"
	case lexer.TokEOF:
		return "end of file"
	default:
		return fmt.Sprintf("token(%d)", t)
	}
}

// --- Program ---

func (p *parser) parseProgram() *ast.Program {
	startSpan := p.current().Span

	var stmts []ast.Stmt
	for p.peek() != lexer.TokEOF {
		stmt := p.parseStmt()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}

	return &ast.Program{
		Span:       p.spanFrom(startSpan),
		Statements: stmts,
	}
}

// --- Statements ---

func (p *parser) parseStmt() ast.Stmt {
	switch p.peek() {
	case lexer.TokPrint:
		s := p.parsePrintStmt()
		if s == nil {
			return nil
		}
		return s
	case lexer.TokFor:
		s := p.parseForStmt()
		if s == nil {
			return nil
		}
		return s
	case lexer.TokIdent:
		s := p.parseAssignStmt()
		if s == nil {
			return nil
		}
		return s
	default:
		tok := p.current()
		p.addError(fmt.Sprintf("expected statement, got '%s'", tok.Value), &tok.Span)
		return nil
	}
}

func (p *parser) parseAssignStmt() *ast.AssignStmt {
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokEquals); !ok {
		return nil
	}
	value := p.parseExpr()
	if value == nil {
		return nil
	}
	return &ast.AssignStmt{
		Span:  p.spanFromTo(nameTok.Span, value.NodeSpan()),
		Name:  nameTok.Value,
		Value: value,
	}
}

func (p *parser) parsePrintStmt() *ast.PrintStmt {
	start := p.advance() // consume 'print'
	value := p.parseExpr()
	if value == nil {
		return nil
	}
	return &ast.PrintStmt{
		Span:  p.spanFromTo(start.Span, value.NodeSpan()),
		Value: value,
	}
}

// --- FOR statement ---

// parseForStmt dispatches on the token immediately following 'for':
// '(' selects the semicolon form, 'IDENT =' the counter form, and
// 'IDENT in' the iterator form. Adding another loop form means adding a
// branch here.
func (p *parser) parseForStmt() ast.Stmt {
	start := p.advance() // consume 'for'

	switch {
	case p.peek() == lexer.TokLParen:
		return p.parseForCLike(start)
	case p.peek() == lexer.TokIdent && p.peekAt(1) == lexer.TokEquals:
		return p.parseForCounter(start)
	case p.peek() == lexer.TokIdent && p.peekAt(1) == lexer.TokIn:
		return p.parseForIter(start)
	default:
		tok := p.current()
		p.addError(fmt.Sprintf("expected loop header after 'for', got '%s'", tok.Value), &tok.Span)
		return nil
	}
}

func (p *parser) parseForCounter(start lexer.Token) ast.Stmt {
	varTok := p.advance() // identifier, checked by the dispatch
	p.advance()           // consume '='

	from := p.parseExpr()
	if from == nil {
		return nil
	}
	if _, ok := p.expect(lexer.TokTo); !ok {
		return nil
	}
	to := p.parseExpr()
	if to == nil {
		return nil
	}

	var by ast.Expr
	if p.peek() == lexer.TokBy {
		p.advance() // consume 'by'
		by = p.parseExpr()
		if by == nil {
			return nil
		}
	}

	body, endTok := p.parseLoopBody()
	if body == nil {
		return nil
	}

	return &ast.ForCounterStmt{
		Span: p.spanFromTo(start.Span, endTok.Span),
		Var:  varTok.Value,
		From: from,
		To:   to,
		By:   by,
		Body: body,
	}
}

func (p *parser) parseForIter(start lexer.Token) ast.Stmt {
	varTok := p.advance() // identifier, checked by the dispatch
	p.advance()           // consume 'in'

	iterable := p.parseExpr()
	if iterable == nil {
		return nil
	}

	body, endTok := p.parseLoopBody()
	if body == nil {
		return nil
	}

	return &ast.ForIterStmt{
		Span:     p.spanFromTo(start.Span, endTok.Span),
		Var:      varTok.Value,
		Iterable: iterable,
		Body:     body,
	}
}

func (p *parser) parseForCLike(start lexer.Token) ast.Stmt {
	p.advance() // consume '('

	init := p.parseForClause(lexer.TokSemicolon)
	if _, ok := p.expect(lexer.TokSemicolon); !ok {
		return nil
	}

	var cond ast.Expr
	if p.peek() != lexer.TokSemicolon {
		cond = p.parseExpr()
		if cond == nil {
			return nil
		}
	}
	if _, ok := p.expect(lexer.TokSemicolon); !ok {
		return nil
	}

	step := p.parseForClause(lexer.TokRParen)
	if _, ok := p.expect(lexer.TokRParen); !ok {
		return nil
	}

	body, endTok := p.parseLoopBody()
	if body == nil {
		return nil
	}

	return &ast.ForCLikeStmt{
		Span: p.spanFromTo(start.Span, endTok.Span),
		Init: init,
		Cond: cond,
		Step: step,
		Body: body,
	}
}

// parseForClause parses an init or step clause: an assignment, a bare
// expression, or nothing (the clause ends at the given terminator).
func (p *parser) parseForClause(terminator lexer.TokenType) ast.Stmt {
	if p.peek() == terminator {
		return nil
	}

	if p.peek() == lexer.TokIdent && p.peekAt(1) == lexer.TokEquals {
		assign := p.parseAssignStmt()
		if assign == nil {
			return nil
		}
		return assign
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	return &ast.ExprStmt{Span: expr.NodeSpan(), Expr: expr}
}

// parseLoopBody parses 'do' statement* 'end' and returns the body along
// with the 'end' token for span bookkeeping.
func (p *parser) parseLoopBody() ([]ast.Stmt, lexer.Token) {
	if _, ok := p.expect(lexer.TokDo); !ok {
		return nil, lexer.Token{}
	}

	stmts := []ast.Stmt{}
	for p.peek() != lexer.TokEnd && p.peek() != lexer.TokEOF {
		stmt := p.parseStmt()
		if stmt == nil {
			return nil, lexer.Token{}
		}
		stmts = append(stmts, stmt)
	}

	endTok, ok := p.expect(lexer.TokEnd)
	if !ok {
		return nil, lexer.Token{}
	}
	return stmts, endTok
}

// --- Precedence climbing ---

func (p *parser) parseExpr() ast.Expr {
	return p.parseComparison()
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	if left == nil {
		return nil
	}

	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokGt:
			op = ast.OpGt
		case lexer.TokLt:
			op = ast.OpLt
		case lexer.TokGtEq:
			op = ast.OpGtEq
		case lexer.TokLtEq:
			op = ast.OpLtEq
		case lexer.TokEqEq:
			op = ast.OpEqEq
		case lexer.TokBangEq:
			op = ast.OpNeq
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	if left == nil {
		return nil
	}

	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokPlus:
			op = ast.OpAdd
		case lexer.TokMinus:
			op = ast.OpSub
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		var op ast.BinaryOp
		switch p.peek() {
		case lexer.TokStar:
			op = ast.OpMul
		case lexer.TokSlash:
			op = ast.OpDiv
		default:
			return left
		}
		p.advance()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			Span:  p.spanFromTo(left.NodeSpan(), right.NodeSpan()),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *parser) parseUnary() ast.Expr {
	if p.peek() == lexer.TokMinus {
		start := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{
			Span:    p.spanFromTo(start.Span, operand.NodeSpan()),
			Op:      ast.OpNeg,
			Operand: operand,
		}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.peek() {
	case lexer.TokLParen:
		// Grouped expression
		p.advance()
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		if _, ok := p.expect(lexer.TokRParen); !ok {
			return nil
		}
		return expr

	case lexer.TokLBracket:
		list := p.parseListExpr()
		if list == nil {
			return nil
		}
		return list

	case lexer.TokNumberLit:
		tok := p.advance()
		val, _ := strconv.ParseFloat(tok.Value, 64)
		return &ast.NumberLiteral{Span: tok.Span, Value: val}

	case lexer.TokStringLit:
		tok := p.advance()
		return &ast.StrLiteral{Span: tok.Span, Value: tok.Value}

	case lexer.TokIdent:
		tok := p.advance()
		return &ast.Ident{Span: tok.Span, Name: tok.Value}

	default:
		tok := p.current()
		p.addError(fmt.Sprintf("unexpected token '%s'", tok.Value), &tok.Span)
		return nil
	}
}

func (p *parser) parseListExpr() *ast.ListExpr {
	start, ok := p.expect(lexer.TokLBracket)
	if !ok {
		return nil
	}

	var elements []ast.Expr

	for p.peek() != lexer.TokRBracket && p.peek() != lexer.TokEOF {
		elem := p.parseExpr()
		if elem == nil {
			return nil
		}
		elements = append(elements, elem)
		if p.peek() == lexer.TokComma {
			p.advance()
		} else {
			break
		}
	}

	end, ok := p.expect(lexer.TokRBracket)
	if !ok {
		return nil
	}

	return &ast.ListExpr{
		Span:     p.spanFromTo(start.Span, end.Span),
		Elements: elements,
	}
}
