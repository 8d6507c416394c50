package parser

import (
	"testing"

	"github.com/pebblelang/pebble/pkg/ast"
)

func parse(t *testing.T, src string) []ast.Statement {
	t.Helper()
	p, err := New([]byte(src))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stmts, err := p.ParseModule()
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	return stmts
}

func TestParsesAssignmentAndArithmetic(t *testing.T) {
	stmts := parse(t, "x = 1 + 2 * 3\n")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	exprStmt, ok := stmts[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected *ast.ExpressionStatement, got %T", stmts[0])
	}
	assign, ok := exprStmt.Expr.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", exprStmt.Expr)
	}
	if assign.Name != "x" {
		t.Fatalf("got assignment target %q, want %q", assign.Name, "x")
	}
	add, ok := assign.Value.(*ast.BinaryOp)
	if !ok || add.Op != "+" {
		t.Fatalf("expected a top-level '+' node respecting precedence, got %#v", assign.Value)
	}
	mul, ok := add.Right.(*ast.BinaryOp)
	if !ok || mul.Op != "*" {
		t.Fatalf("expected '*' to bind tighter than '+', got %#v", add.Right)
	}
}

func TestParsesIfElse(t *testing.T) {
	stmts := parse(t, "if 0:\n  print 1\nelse:\n  print 2\n")
	ifElse, ok := stmts[0].(*ast.IfElse)
	if !ok {
		t.Fatalf("expected *ast.IfElse, got %T", stmts[0])
	}
	if len(ifElse.Then.Statements) != 1 || len(ifElse.Else.Statements) != 1 {
		t.Fatalf("expected one statement in each branch, got then=%d else=%d",
			len(ifElse.Then.Statements), len(ifElse.Else.Statements))
	}
}

func TestParsesClassWithMethodDroppingSelfFromArity(t *testing.T) {
	src := "class A:\n  def f(self, n):\n    return n + 1\n"
	stmts := parse(t, src)
	class, ok := stmts[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("expected *ast.ClassDef, got %T", stmts[0])
	}
	if len(class.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(class.Methods))
	}
	m := class.Methods[0]
	if m.Name != "f" {
		t.Fatalf("got method name %q, want %q", m.Name, "f")
	}
	if len(m.Params) != 1 || m.Params[0] != "n" {
		t.Fatalf("expected Params to be [\"n\"] with self dropped, got %v", m.Params)
	}
}

func TestParsesClassWithParent(t *testing.T) {
	src := "class B(A):\n  def g(self):\n    return 1\n"
	stmts := parse(t, src)
	class := stmts[0].(*ast.ClassDef)
	if class.Parent != "A" {
		t.Fatalf("got parent %q, want %q", class.Parent, "A")
	}
}

func TestParsesBareCallAsNewInstance(t *testing.T) {
	stmts := parse(t, "a = A()\n")
	assign := stmts[0].(*ast.ExpressionStatement).Expr.(*ast.Assignment)
	if _, ok := assign.Value.(*ast.NewInstance); !ok {
		t.Fatalf("expected a bare Name(args) call to parse as *ast.NewInstance, got %T", assign.Value)
	}
}

func TestParsesMethodCallChain(t *testing.T) {
	stmts := parse(t, "print a.f(10).g()\n")
	print := stmts[0].(*ast.Print)
	call, ok := print.Args[0].(*ast.MethodCall)
	if !ok {
		t.Fatalf("expected *ast.MethodCall, got %T", print.Args[0])
	}
	if call.Method != "g" {
		t.Fatalf("got method %q, want %q", call.Method, "g")
	}
	inner, ok := call.Receiver.(*ast.MethodCall)
	if !ok || inner.Method != "f" {
		t.Fatalf("expected receiver to be the MethodCall f, got %#v", call.Receiver)
	}
}

func TestParsesFieldAssignment(t *testing.T) {
	stmts := parse(t, "self.x = 1\n")
	fa := stmts[0].(*ast.ExpressionStatement).Expr.(*ast.FieldAssignment)
	if fa.Field != "x" {
		t.Fatalf("got field %q, want %q", fa.Field, "x")
	}
}

func TestComparisonAndLogicalPrecedence(t *testing.T) {
	stmts := parse(t, "print 1 < 2 and not 3 == 4\n")
	print := stmts[0].(*ast.Print)
	and, ok := print.Args[0].(*ast.And)
	if !ok {
		t.Fatalf("expected top-level *ast.And, got %T", print.Args[0])
	}
	if _, ok := and.Left.(*ast.Comparison); !ok {
		t.Fatalf("expected left of 'and' to be a Comparison, got %T", and.Left)
	}
	not, ok := and.Right.(*ast.Not)
	if !ok {
		t.Fatalf("expected right of 'and' to be a Not, got %T", and.Right)
	}
	if _, ok := not.Operand.(*ast.Comparison); !ok {
		t.Fatalf("expected not's operand to be a Comparison, got %T", not.Operand)
	}
}
