// Package interpreter tree-walks the AST the parser produces, evaluating
// expressions against a runtime.Scope and a runtime.Value model. The
// dispatch shape — a single type switch per node category, with non-local
// control flow carried by a sentinel error type — follows the pattern the
// teacher's evaluator uses for the same job.
package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pebblelang/pebble/pkg/ast"
	"github.com/pebblelang/pebble/pkg/runtime"
)

// Interpreter evaluates a parsed program against the runtime value model,
// writing Print output to Out. Classes live in their own program-wide
// table rather than in any runtime.Scope: a class is visible from any
// method body regardless of which call scope is active, the same way
// the value model treats classes as program-scoped rather than
// lexically scoped (see DESIGN.md).
type Interpreter struct {
	Out     io.Writer
	classes map[string]*runtime.Class
}

// New builds an Interpreter that writes Print output to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{Out: out, classes: make(map[string]*runtime.Class)}
}

// Run executes a top-level program against a fresh global scope.
func (it *Interpreter) Run(statements []ast.Statement) error {
	return it.RunInScope(statements, runtime.NewScope())
}

// RunInScope executes a top-level program against scope, letting a caller
// (e.g. a REPL) keep a single scope alive across repeated calls. A Return
// statement reached at the top level ends that chunk rather than
// propagating as an error, the same way MethodBody absorbs one at the end
// of a method.
func (it *Interpreter) RunInScope(statements []ast.Statement, scope *runtime.Scope) error {
	_, err := it.EvalChunk(statements, scope)
	return err
}

// EvalChunk is RunInScope plus the value the chunk's last statement left
// behind, for a REPL's optional result-echoing (see internal/config's
// Echo field).
func (it *Interpreter) EvalChunk(statements []ast.Statement, scope *runtime.Scope) (runtime.Value, error) {
	result, err := it.Exec(ast.NewCompound(statements), scope)
	if rs, ok := asReturnSignal(err); ok {
		return rs.value, nil
	}
	return result, err
}

// Exec executes a statement against scope, returning the value it leaves
// behind (Compound and Return's tail value) and any error or returnSignal.
func (it *Interpreter) Exec(stmt ast.Statement, scope *runtime.Scope) (runtime.Value, error) {
	switch n := stmt.(type) {
	case *ast.ExpressionStatement:
		return it.Eval(n.Expr, scope)

	case *ast.Print:
		parts := make([]string, len(n.Args))
		for i, arg := range n.Args {
			v, err := it.Eval(arg, scope)
			if err != nil {
				return nil, err
			}
			s, err := it.Stringify(v)
			if err != nil {
				return nil, err
			}
			parts[i] = s
		}
		fmt.Fprintln(it.Out, strings.Join(parts, " "))
		return runtime.NoneValue{}, nil

	case *ast.IfElse:
		cond, err := it.Eval(n.Cond, scope)
		if err != nil {
			return nil, err
		}
		if runtime.IsTrue(cond) {
			return it.Exec(n.Then, scope)
		}
		if n.Else != nil {
			return it.Exec(n.Else, scope)
		}
		return runtime.NoneValue{}, nil

	case *ast.Compound:
		var result runtime.Value = runtime.NoneValue{}
		for _, s := range n.Statements {
			v, err := it.Exec(s, scope)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil

	case *ast.Return:
		if n.Value == nil {
			return nil, &returnSignal{value: runtime.NoneValue{}}
		}
		v, err := it.Eval(n.Value, scope)
		if err != nil {
			return nil, err
		}
		return nil, &returnSignal{value: v}

	case *ast.MethodBody:
		result, err := it.Exec(n.Body, scope)
		if rs, ok := asReturnSignal(err); ok {
			return rs.value, nil
		}
		return result, err

	case *ast.ClassDef:
		return it.execClassDef(n)

	default:
		return nil, &ContractViolationError{Msg: fmt.Sprintf("unhandled statement node %s", stmt.NodeKind())}
	}
}

func (it *Interpreter) execClassDef(n *ast.ClassDef) (runtime.Value, error) {
	var parent *runtime.Class
	if n.Parent != "" {
		var ok bool
		parent, ok = it.classes[n.Parent]
		if !ok {
			return nil, &NameError{What: n.Parent}
		}
	}

	methods := make([]*runtime.Method, len(n.Methods))
	for i, decl := range n.Methods {
		methods[i] = &runtime.Method{Name: decl.Name, Params: decl.Params, Body: decl.Body}
	}

	class := runtime.NewClass(n.Name, methods, parent)
	it.classes[n.Name] = class
	return class, nil
}

// Eval evaluates an expression against scope.
func (it *Interpreter) Eval(expr ast.Expression, scope *runtime.Scope) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.NumericConst:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringConst:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BoolConst:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NoneConst:
		return runtime.NoneValue{}, nil

	case *ast.Variable:
		if v, ok := scope.Get(n.Name); ok {
			return v, nil
		}
		if class, ok := it.classes[n.Name]; ok {
			return class, nil
		}
		return nil, &NameError{What: n.Name}

	case *ast.FieldAccess:
		obj, err := it.Eval(n.Object, scope)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*runtime.ClassInstance)
		if !ok {
			return nil, &TypeMismatchError{Msg: "only class instances have fields"}
		}
		v, ok := inst.Fields[n.Field]
		if !ok {
			return nil, &NameError{What: n.Field}
		}
		return v, nil

	case *ast.Assignment:
		v, err := it.Eval(n.Value, scope)
		if err != nil {
			return nil, err
		}
		scope.Set(n.Name, v)
		return v, nil

	case *ast.FieldAssignment:
		obj, err := it.Eval(n.Object, scope)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*runtime.ClassInstance)
		if !ok {
			return nil, &TypeMismatchError{Msg: "only class instances have fields"}
		}
		v, err := it.Eval(n.Value, scope)
		if err != nil {
			return nil, err
		}
		inst.Fields[n.Field] = v
		return v, nil

	case *ast.MethodCall:
		recv, err := it.Eval(n.Receiver, scope)
		if err != nil {
			return nil, err
		}
		inst, ok := recv.(*runtime.ClassInstance)
		if !ok {
			return nil, &TypeMismatchError{Msg: "only class instances have methods"}
		}
		args, err := it.evalArgs(n.Args, scope)
		if err != nil {
			return nil, err
		}
		return it.CallMethod(inst, n.Method, args)

	case *ast.NewInstance:
		class, ok := it.classes[n.ClassName]
		if !ok {
			return nil, &NameError{What: n.ClassName}
		}
		args, err := it.evalArgs(n.Args, scope)
		if err != nil {
			return nil, err
		}
		instance := runtime.NewInstance(class)
		if instance.HasMethod("__init__", len(args)) {
			if _, err := it.CallMethod(instance, "__init__", args); err != nil {
				return nil, err
			}
		}
		return instance, nil

	case *ast.BinaryOp:
		left, err := it.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		right, err := it.Eval(n.Right, scope)
		if err != nil {
			return nil, err
		}
		return it.evalBinaryOp(n.Op, left, right)

	case *ast.UnaryMinus:
		v, err := it.Eval(n.Operand, scope)
		if err != nil {
			return nil, err
		}
		num, ok := v.(runtime.NumberValue)
		if !ok {
			return nil, &TypeMismatchError{Msg: "unary - requires a number"}
		}
		return runtime.NumberValue{Val: -num.Val}, nil

	case *ast.Not:
		v, err := it.Eval(n.Operand, scope)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: !runtime.IsTrue(v)}, nil

	case *ast.Comparison:
		left, err := it.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		right, err := it.Eval(n.Right, scope)
		if err != nil {
			return nil, err
		}
		return it.evalComparison(n.Op, left, right)

	case *ast.And:
		left, err := it.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		if !runtime.IsTrue(left) {
			return left, nil
		}
		return it.Eval(n.Right, scope)

	case *ast.Or:
		left, err := it.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		if runtime.IsTrue(left) {
			return left, nil
		}
		return it.Eval(n.Right, scope)

	case *ast.Stringify:
		v, err := it.Eval(n.Value, scope)
		if err != nil {
			return nil, err
		}
		s, err := it.Stringify(v)
		if err != nil {
			return nil, err
		}
		return runtime.StringValue{Val: s}, nil

	default:
		return nil, &ContractViolationError{Msg: fmt.Sprintf("unhandled expression node %s", expr.NodeKind())}
	}
}

func (it *Interpreter) evalArgs(args []ast.Expression, scope *runtime.Scope) ([]runtime.Value, error) {
	values := make([]runtime.Value, len(args))
	for i, a := range args {
		v, err := it.Eval(a, scope)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// CallMethod resolves name against inst's class (walking the parent
// chain), binds self and the formal parameters into a fresh call scope,
// and executes the method body.
func (it *Interpreter) CallMethod(inst *runtime.ClassInstance, name string, args []runtime.Value) (runtime.Value, error) {
	method, ok := inst.Class.GetMethod(name)
	if !ok || len(method.Params) != len(args) {
		return nil, &NoSuchMethodError{Method: name, Class: inst.Class.Name}
	}

	callScope := runtime.NewScope()
	callScope.Set("self", inst)
	for i, p := range method.Params {
		callScope.Set(p, args[i])
	}

	result, err := it.Exec(method.Body, callScope)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return runtime.NoneValue{}, nil
	}
	return result, nil
}

// Stringify renders a value the way Print and $expr do: None/Bool/Number/
// String render literally, a Class renders by name, and a ClassInstance
// dispatches to __str__/0 when present or falls back to an opaque identity.
func (it *Interpreter) Stringify(v runtime.Value) (string, error) {
	if v == nil {
		return "", &ContractViolationError{Msg: "stringified an empty handle"}
	}
	switch val := v.(type) {
	case runtime.NoneValue:
		return "None", nil
	case runtime.BoolValue:
		if val.Val {
			return "True", nil
		}
		return "False", nil
	case runtime.NumberValue:
		return strconv.FormatInt(int64(val.Val), 10), nil
	case runtime.StringValue:
		return val.Val, nil
	case *runtime.Class:
		return fmt.Sprintf("Class %s", val.Name), nil
	case *runtime.ClassInstance:
		if val.HasMethod("__str__", 0) {
			result, err := it.CallMethod(val, "__str__", nil)
			if err != nil {
				return "", err
			}
			return it.Stringify(result)
		}
		return fmt.Sprintf("<%s instance at %p>", val.Class.Name, val), nil
	default:
		return "", &ContractViolationError{Msg: "stringified a value of unknown kind"}
	}
}
