// Package parser is a hand-written recursive-descent parser that turns a
// token stream from pkg/lexer into the pkg/ast node set the interpreter
// walks. Expression precedence is encoded as a chain of mutually recursive
// methods (the classic descent-by-precedence-level shape), rather than a
// Pratt table, since the grammar has a small, fixed set of levels.
package parser

import (
	"fmt"

	"github.com/pebblelang/pebble/pkg/ast"
	"github.com/pebblelang/pebble/pkg/lexer"
	"github.com/pebblelang/pebble/pkg/token"
)

// ParseError reports a malformed program.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parser consumes a lexer's token stream one lookahead token at a time.
type Parser struct {
	lex *lexer.Lexer
	cur token.Token
}

// New builds a Parser over src, priming the first lookahead token.
func New(src []byte) (*Parser, error) {
	lex, err := lexer.New(src)
	if err != nil {
		return nil, err
	}
	return &Parser{lex: lex, cur: lex.Current()}, nil
}

// ParseModule parses an entire program: a sequence of top-level statements
// up to Eof.
func (p *Parser) ParseModule() ([]ast.Statement, error) {
	var stmts []ast.Statement
	p.skipNewlines()
	for p.cur.Kind != token.Eof {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}
	return stmts, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Advance()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) skipNewlines() {
	for p.cur.Kind == token.Newline {
		p.advance()
	}
}

func (p *Parser) match(k token.Kind) bool {
	return p.cur.Kind == k
}

func (p *Parser) matchChar(ch byte) bool {
	return p.cur.Kind == token.Char && p.cur.Ch == ch
}

// expect consumes the current token if it has kind k, otherwise fails.
func (p *Parser) expect(k token.Kind, what string) (token.Token, error) {
	if p.cur.Kind != k {
		return token.Token{}, &ParseError{Line: p.cur.Line, Msg: "expected " + what + ", found " + p.cur.String()}
	}
	tok := p.cur
	return tok, p.advance()
}

func (p *Parser) expectChar(ch byte, what string) error {
	if !p.matchChar(ch) {
		return &ParseError{Line: p.cur.Line, Msg: "expected " + what + ", found " + p.cur.String()}
	}
	return p.advance()
}

// --- statements ---

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.Class):
		return p.classDef()
	case p.match(token.If):
		return p.ifElse()
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Return):
		return p.returnStmt()
	default:
		return p.simpleStatement()
	}
}

// simpleStatement parses an expression-rooted statement: a bare expression,
// a name/field assignment, terminated by a Newline (or Eof/Dedent at the end
// of a block).
func (p *Parser) simpleStatement() (ast.Statement, error) {
	expr, err := p.assignmentOrExpr()
	if err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}

func (p *Parser) endOfStatement() error {
	switch p.cur.Kind {
	case token.Newline:
		return p.advance()
	case token.Eof, token.Dedent:
		return nil
	default:
		return &ParseError{Line: p.cur.Line, Msg: "expected end of statement, found " + p.cur.String()}
	}
}

// block parses an Indent .. Dedent suite as a Compound.
func (p *Parser) block() (*ast.Compound, error) {
	if _, err := p.expect(token.Indent, "an indented block"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var stmts []ast.Statement
	for !p.match(token.Dedent) && !p.match(token.Eof) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}
	if _, err := p.expect(token.Dedent, "a dedent"); err != nil {
		return nil, err
	}
	return ast.NewCompound(stmts), nil
}

func (p *Parser) printStmt() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'print'
		return nil, err
	}
	var args []ast.Expression
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.matchChar(',') {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return ast.NewPrint(args), nil
}

func (p *Parser) returnStmt() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'return'
		return nil, err
	}
	var value ast.Expression
	if p.cur.Kind != token.Newline && p.cur.Kind != token.Eof && p.cur.Kind != token.Dedent {
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	return ast.NewReturn(value), nil
}

func (p *Parser) ifElse() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'if'
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(':', "':'"); err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	thenBlock, err := p.block()
	if err != nil {
		return nil, err
	}
	var elseBlock *ast.Compound
	if p.match(token.Else) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectChar(':', "':'"); err != nil {
			return nil, err
		}
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		elseBlock, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfElse(cond, thenBlock, elseBlock), nil
}

func (p *Parser) classDef() (ast.Statement, error) {
	if err := p.advance(); err != nil { // consume 'class'
		return nil, err
	}
	name, err := p.expect(token.Id, "a class name")
	if err != nil {
		return nil, err
	}
	parent := ""
	if p.matchChar('(') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		parentTok, err := p.expect(token.Id, "a parent class name")
		if err != nil {
			return nil, err
		}
		parent = parentTok.Text
		if err := p.expectChar(')', "')'"); err != nil {
			return nil, err
		}
	}
	if err := p.expectChar(':', "':'"); err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Indent, "an indented class body"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var methods []*ast.MethodDecl
	for !p.match(token.Dedent) && !p.match(token.Eof) {
		m, err := p.methodDef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
		p.skipNewlines()
	}
	if _, err := p.expect(token.Dedent, "a dedent"); err != nil {
		return nil, err
	}

	return ast.NewClassDef(name.Text, parent, methods), nil
}

// methodDef parses `def name(self, p1, p2, ...):` followed by an indented
// body. The leading `self` parameter is mandatory syntax but is dropped
// from the stored formal-parameter list: runtime.Method.Params counts only
// the parameters a caller supplies, and CallMethod binds self separately.
func (p *Parser) methodDef() (*ast.MethodDecl, error) {
	if _, err := p.expect(token.Def, "'def'"); err != nil {
		return nil, err
	}
	name, err := p.expect(token.Id, "a method name")
	if err != nil {
		return nil, err
	}
	if err := p.expectChar('(', "'('"); err != nil {
		return nil, err
	}
	self, err := p.expect(token.Id, "the 'self' parameter")
	if err != nil {
		return nil, err
	}
	if self.Text != "self" {
		return nil, &ParseError{Line: self.Line, Msg: "first parameter of a method must be named self"}
	}
	var params []string
	for p.matchChar(',') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		param, err := p.expect(token.Id, "a parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, param.Text)
	}
	if err := p.expectChar(')', "')'"); err != nil {
		return nil, err
	}
	if err := p.expectChar(':', "':'"); err != nil {
		return nil, err
	}
	if err := p.endOfStatement(); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.MethodDecl{Name: name.Text, Params: params, Body: ast.NewMethodBody(body)}, nil
}

// --- expressions ---

// assignmentOrExpr parses a name or field target followed by '=', or falls
// through to a plain expression when no '=' follows. Assignment is
// right-associative and is itself an expression, per the grammar.
func (p *Parser) assignmentOrExpr() (ast.Expression, error) {
	left, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.matchChar('=') {
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.assignmentOrExpr()
	if err != nil {
		return nil, err
	}
	switch target := left.(type) {
	case *ast.Variable:
		return ast.NewAssignment(target.Name, value), nil
	case *ast.FieldAccess:
		return ast.NewFieldAssignment(target.Object, target.Field, value), nil
	default:
		return nil, &ParseError{Line: p.cur.Line, Msg: "left side of = is not assignable"}
	}
}

func (p *Parser) expr() (ast.Expression, error) { return p.orExpr() }

func (p *Parser) orExpr() (ast.Expression, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewOr(left, right)
	}
	return left, nil
}

func (p *Parser) andExpr() (ast.Expression, error) {
	left, err := p.notExpr()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewAnd(left, right)
	}
	return left, nil
}

func (p *Parser) notExpr() (ast.Expression, error) {
	if p.match(token.Not) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.notExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewNot(operand), nil
	}
	return p.comparison()
}

var comparisonOps = map[token.Kind]string{
	token.Eq:          "==",
	token.NotEq:       "!=",
	token.LessOrEq:    "<=",
	token.GreaterOrEq: ">=",
}

func (p *Parser) comparison() (ast.Expression, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		if op, ok := comparisonOps[p.cur.Kind]; ok {
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.additive()
			if err != nil {
				return nil, err
			}
			left = ast.NewComparison(op, left, right)
			continue
		}
		if p.matchChar('<') || p.matchChar('>') {
			op := string(p.cur.Ch)
			if err := p.advance(); err != nil {
				return nil, err
			}
			right, err := p.additive()
			if err != nil {
				return nil, err
			}
			left = ast.NewComparison(op, left, right)
			continue
		}
		return left, nil
	}
}

func (p *Parser) additive() (ast.Expression, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.matchChar('+') || p.matchChar('-') {
		op := string(p.cur.Ch)
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op, left, right)
	}
	return left, nil
}

func (p *Parser) term() (ast.Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.matchChar('*') || p.matchChar('/') {
		op := string(p.cur.Ch)
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op, left, right)
	}
	return left, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.matchChar('-') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryMinus(operand), nil
	}
	return p.postfix()
}

// postfix handles the left-recursive trailers: .field, .method(args), and
// .__str__-style stringify sugar is not special-cased here since it parses
// through the same '.' dispatch as any other field/method access.
func (p *Parser) postfix() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.matchChar('.') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expect(token.Id, "a field or method name")
		if err != nil {
			return nil, err
		}
		if p.matchChar('(') {
			args, err := p.argList()
			if err != nil {
				return nil, err
			}
			expr = ast.NewMethodCall(expr, name.Text, args)
			continue
		}
		expr = ast.NewFieldAccess(expr, name.Text)
	}
	return expr, nil
}

func (p *Parser) argList() ([]ast.Expression, error) {
	if err := p.expectChar('(', "'('"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.matchChar(')') {
		if len(args) > 0 {
			if err := p.expectChar(',', "','"); err != nil {
				return nil, err
			}
		}
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if err := p.expectChar(')', "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.Number):
		node := ast.NewNumericConst(p.cur.NumberVal)
		return node, p.advance()
	case p.match(token.String):
		node := ast.NewStringConst(p.cur.Text)
		return node, p.advance()
	case p.match(token.True):
		return ast.NewBoolConst(true), p.advance()
	case p.match(token.False):
		return ast.NewBoolConst(false), p.advance()
	case p.match(token.None):
		return ast.NewNoneConst(), p.advance()
	case p.match(token.Id):
		name := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		// The language has no first-class functions: the only thing a bare
		// `Name(args)` call can mean is constructing an instance of the
		// class bound to Name.
		if p.matchChar('(') {
			args, err := p.argList()
			if err != nil {
				return nil, err
			}
			return ast.NewNewInstance(name, args), nil
		}
		return ast.NewVariable(name), nil
	case p.matchChar('('):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')', "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case p.matchChar('$'):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		return ast.NewStringify(expr), nil
	default:
		return nil, &ParseError{Line: p.cur.Line, Msg: "unexpected token " + p.cur.String()}
	}
}

