// Package ast defines the statement and expression node set produced by
// the parser and walked by the interpreter.
package ast

// Kind tags every node the way the source's polymorphic node hierarchy
// tagged itself, so the interpreter's dispatch switch has something
// exhaustive to range over.
type Kind string

const (
	KindNumericConst    Kind = "NumericConst"
	KindStringConst     Kind = "StringConst"
	KindBoolConst       Kind = "BoolConst"
	KindNoneConst       Kind = "NoneConst"
	KindVariable        Kind = "Variable"
	KindFieldAccess     Kind = "FieldAccess"
	KindAssignment      Kind = "Assignment"
	KindFieldAssignment Kind = "FieldAssignment"
	KindMethodCall      Kind = "MethodCall"
	KindNewInstance     Kind = "NewInstance"
	KindBinaryOp        Kind = "BinaryOp"
	KindUnaryMinus      Kind = "UnaryMinus"
	KindNot             Kind = "Not"
	KindComparison      Kind = "Comparison"
	KindAnd             Kind = "And"
	KindOr              Kind = "Or"
	KindPrint           Kind = "Print"
	KindIfElse          Kind = "IfElse"
	KindCompound        Kind = "Compound"
	KindReturn          Kind = "Return"
	KindMethodBody      Kind = "MethodBody"
	KindStringify       Kind = "Stringify"
	KindClassDef        Kind = "ClassDef"
)

// Node is the marker every AST node satisfies.
type Node interface {
	NodeKind() Kind
}

// Expression is any node the evaluator can reduce to a value.
type Expression interface {
	Node
	isExpression()
}

// Statement is any node executed for its effect (and, per the source's
// semantics, still yielding a value used by Compound/Return unwinding).
type Statement interface {
	Node
	isStatement()
}

type nodeBase struct{ kind Kind }

func (n nodeBase) NodeKind() Kind { return n.kind }

type exprBase struct{ nodeBase }

func (exprBase) isExpression() {}

type stmtBase struct{ nodeBase }

func (stmtBase) isStatement() {}

// --- literals ---

type NumericConst struct {
	exprBase
	Value int32
}

func NewNumericConst(v int32) *NumericConst {
	return &NumericConst{exprBase: exprBase{nodeBase{KindNumericConst}}, Value: v}
}

type StringConst struct {
	exprBase
	Value string
}

func NewStringConst(v string) *StringConst {
	return &StringConst{exprBase: exprBase{nodeBase{KindStringConst}}, Value: v}
}

type BoolConst struct {
	exprBase
	Value bool
}

func NewBoolConst(v bool) *BoolConst {
	return &BoolConst{exprBase: exprBase{nodeBase{KindBoolConst}}, Value: v}
}

type NoneConst struct{ exprBase }

func NewNoneConst() *NoneConst {
	return &NoneConst{exprBase: exprBase{nodeBase{KindNoneConst}}}
}

// --- names & access ---

type Variable struct {
	exprBase
	Name string
}

func NewVariable(name string) *Variable {
	return &Variable{exprBase: exprBase{nodeBase{KindVariable}}, Name: name}
}

type FieldAccess struct {
	exprBase
	Object Expression
	Field  string
}

func NewFieldAccess(object Expression, field string) *FieldAccess {
	return &FieldAccess{exprBase: exprBase{nodeBase{KindFieldAccess}}, Object: object, Field: field}
}

type Assignment struct {
	exprBase
	Name  string
	Value Expression
}

func NewAssignment(name string, value Expression) *Assignment {
	return &Assignment{exprBase: exprBase{nodeBase{KindAssignment}}, Name: name, Value: value}
}

type FieldAssignment struct {
	exprBase
	Object Expression
	Field  string
	Value  Expression
}

func NewFieldAssignment(object Expression, field string, value Expression) *FieldAssignment {
	return &FieldAssignment{exprBase: exprBase{nodeBase{KindFieldAssignment}}, Object: object, Field: field, Value: value}
}

// --- calls ---

type MethodCall struct {
	exprBase
	Receiver Expression
	Method   string
	Args     []Expression
}

func NewMethodCall(receiver Expression, method string, args []Expression) *MethodCall {
	return &MethodCall{exprBase: exprBase{nodeBase{KindMethodCall}}, Receiver: receiver, Method: method, Args: args}
}

type NewInstance struct {
	exprBase
	ClassName string
	Args      []Expression
}

func NewNewInstance(className string, args []Expression) *NewInstance {
	return &NewInstance{exprBase: exprBase{nodeBase{KindNewInstance}}, ClassName: className, Args: args}
}

// --- operators ---

type BinaryOp struct {
	exprBase
	Op    string // "+" "-" "*" "/"
	Left  Expression
	Right Expression
}

func NewBinaryOp(op string, left, right Expression) *BinaryOp {
	return &BinaryOp{exprBase: exprBase{nodeBase{KindBinaryOp}}, Op: op, Left: left, Right: right}
}

type UnaryMinus struct {
	exprBase
	Operand Expression
}

func NewUnaryMinus(operand Expression) *UnaryMinus {
	return &UnaryMinus{exprBase: exprBase{nodeBase{KindUnaryMinus}}, Operand: operand}
}

type Not struct {
	exprBase
	Operand Expression
}

func NewNot(operand Expression) *Not {
	return &Not{exprBase: exprBase{nodeBase{KindNot}}, Operand: operand}
}

type Comparison struct {
	exprBase
	Op    string // "==" "!=" "<" "<=" ">" ">="
	Left  Expression
	Right Expression
}

func NewComparison(op string, left, right Expression) *Comparison {
	return &Comparison{exprBase: exprBase{nodeBase{KindComparison}}, Op: op, Left: left, Right: right}
}

type And struct {
	exprBase
	Left  Expression
	Right Expression
}

func NewAnd(left, right Expression) *And {
	return &And{exprBase: exprBase{nodeBase{KindAnd}}, Left: left, Right: right}
}

type Or struct {
	exprBase
	Left  Expression
	Right Expression
}

func NewOr(left, right Expression) *Or {
	return &Or{exprBase: exprBase{nodeBase{KindOr}}, Left: left, Right: right}
}

// --- statements ---

type Print struct {
	stmtBase
	Args []Expression
}

func NewPrint(args []Expression) *Print {
	return &Print{stmtBase: stmtBase{nodeBase{KindPrint}}, Args: args}
}

type IfElse struct {
	stmtBase
	Cond Expression
	Then *Compound
	Else *Compound // nil when there is no else clause
}

func NewIfElse(cond Expression, then, els *Compound) *IfElse {
	return &IfElse{stmtBase: stmtBase{nodeBase{KindIfElse}}, Cond: cond, Then: then, Else: els}
}

type Compound struct {
	stmtBase
	Statements []Statement
}

func NewCompound(statements []Statement) *Compound {
	return &Compound{stmtBase: stmtBase{nodeBase{KindCompound}}, Statements: statements}
}

type Return struct {
	stmtBase
	Value Expression // nil means an implicit None
}

func NewReturn(value Expression) *Return {
	return &Return{stmtBase: stmtBase{nodeBase{KindReturn}}, Value: value}
}

// MethodBody wraps a method's Compound and is the boundary at which a
// Return signal is caught and converted back into a normal value.
type MethodBody struct {
	stmtBase
	Body *Compound
}

func NewMethodBody(body *Compound) *MethodBody {
	return &MethodBody{stmtBase: stmtBase{nodeBase{KindMethodBody}}, Body: body}
}

type Stringify struct {
	exprBase
	Value Expression
}

func NewStringify(value Expression) *Stringify {
	return &Stringify{exprBase: exprBase{nodeBase{KindStringify}}, Value: value}
}

// --- class declaration ---

// MethodDecl is the static description of a method parsed out of a class
// body; it is not itself executed, only used to build a runtime.Method.
type MethodDecl struct {
	Name   string
	Params []string
	Body   *MethodBody
}

// ClassDef, when executed, registers a runtime.Class value under Name in
// the interpreter's program-wide class table (not in any scope).
type ClassDef struct {
	stmtBase
	Name    string
	Parent  string // empty when there is no superclass
	Methods []*MethodDecl
}

func NewClassDef(name, parent string, methods []*MethodDecl) *ClassDef {
	return &ClassDef{stmtBase: stmtBase{nodeBase{KindClassDef}}, Name: name, Parent: parent, Methods: methods}
}

// ExpressionStatement wraps an expression used on its own as a statement
// (e.g. an assignment or a method call); executing it yields the
// expression's value, since Assignment evaluates to the assigned value
// just like any other expression.
type ExpressionStatement struct {
	stmtBase
	Expr Expression
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{stmtBase: stmtBase{nodeBase{"ExpressionStatement"}}, Expr: expr}
}
