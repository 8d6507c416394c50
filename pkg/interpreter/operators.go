package interpreter

import "github.com/pebblelang/pebble/pkg/runtime"

var dunderForOp = map[string]string{
	"+": "__add__",
	"-": "__sub__",
	"*": "__mult__",
	"/": "__div__",
}

func isNoneish(v runtime.Value) bool {
	return v == nil || v.Kind() == runtime.KindNone
}

// coerceBool follows the same truthiness rule the rest of the interpreter
// uses for conditions, applied to the return value of __eq__/__lt__.
func coerceBool(v runtime.Value) bool {
	if b, ok := v.(runtime.BoolValue); ok {
		return b.Val
	}
	return runtime.IsTrue(v)
}

// Equal implements the language's equality rule: both operands None
// compares equal, same-variant Bool/Number/String compare their payload,
// a ClassInstance with an __eq__/1 method dispatches to it, and every
// other pairing fails with a TypeMismatchError.
func (it *Interpreter) Equal(a, b runtime.Value) (bool, error) {
	if isNoneish(a) && isNoneish(b) {
		return true, nil
	}
	if a != nil && b != nil && a.Kind() == b.Kind() {
		switch av := a.(type) {
		case runtime.BoolValue:
			return av.Val == b.(runtime.BoolValue).Val, nil
		case runtime.NumberValue:
			return av.Val == b.(runtime.NumberValue).Val, nil
		case runtime.StringValue:
			return av.Val == b.(runtime.StringValue).Val, nil
		}
	}
	if inst, ok := a.(*runtime.ClassInstance); ok && inst.HasMethod("__eq__", 1) {
		result, err := it.CallMethod(inst, "__eq__", []runtime.Value{b})
		if err != nil {
			return false, err
		}
		return coerceBool(result), nil
	}
	return false, &TypeMismatchError{Msg: "Cannot compare objects for equality"}
}

// Less implements the language's ordering rule: either operand None fails
// outright, same-variant Bool/Number/String compare their natural order
// (false < true for Bool), a ClassInstance with an __lt__/1 method
// dispatches to it, and every other pairing fails with a TypeMismatchError.
func (it *Interpreter) Less(a, b runtime.Value) (bool, error) {
	if isNoneish(a) || isNoneish(b) {
		return false, &TypeMismatchError{Msg: "Cannot compare objects for ordering"}
	}
	if a.Kind() == b.Kind() {
		switch av := a.(type) {
		case runtime.BoolValue:
			bv := b.(runtime.BoolValue)
			return !av.Val && bv.Val, nil
		case runtime.NumberValue:
			return av.Val < b.(runtime.NumberValue).Val, nil
		case runtime.StringValue:
			return av.Val < b.(runtime.StringValue).Val, nil
		}
	}
	if inst, ok := a.(*runtime.ClassInstance); ok && inst.HasMethod("__lt__", 1) {
		result, err := it.CallMethod(inst, "__lt__", []runtime.Value{b})
		if err != nil {
			return false, err
		}
		return coerceBool(result), nil
	}
	return false, &TypeMismatchError{Msg: "Cannot compare objects for ordering"}
}

// evalComparison dispatches the six comparison operators in terms of Equal
// and Less. greater_or_equal is defined as the negation of Less rather than
// re-deriving it from Less-or-Equal, matching the source's total-order
// assumption: if Less errors, so does its negation.
func (it *Interpreter) evalComparison(op string, a, b runtime.Value) (runtime.Value, error) {
	switch op {
	case "==":
		v, err := it.Equal(a, b)
		return runtime.BoolValue{Val: v}, err
	case "!=":
		v, err := it.Equal(a, b)
		return runtime.BoolValue{Val: !v}, err
	case "<":
		v, err := it.Less(a, b)
		return runtime.BoolValue{Val: v}, err
	case "<=":
		lt, err := it.Less(a, b)
		if err != nil {
			return nil, err
		}
		eq, err := it.Equal(a, b)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: lt || eq}, nil
	case ">":
		lt, err := it.Less(a, b)
		if err != nil {
			return nil, err
		}
		eq, err := it.Equal(a, b)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: !lt && !eq}, nil
	case ">=":
		lt, err := it.Less(a, b)
		return runtime.BoolValue{Val: !lt}, err
	default:
		return nil, &ContractViolationError{Msg: "unknown comparison operator " + op}
	}
}

// evalBinaryOp implements +, -, *, / over Number pairs, + over String
// pairs, and dispatches to the matching dunder method when the left
// operand is a ClassInstance.
func (it *Interpreter) evalBinaryOp(op string, left, right runtime.Value) (runtime.Value, error) {
	if inst, ok := left.(*runtime.ClassInstance); ok {
		dunder, ok := dunderForOp[op]
		if !ok {
			return nil, &ContractViolationError{Msg: "unknown binary operator " + op}
		}
		if !inst.HasMethod(dunder, 1) {
			return nil, &NoSuchMethodError{Method: dunder, Class: inst.Class.Name}
		}
		return it.CallMethod(inst, dunder, []runtime.Value{right})
	}

	switch l := left.(type) {
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, &TypeMismatchError{Msg: "arithmetic requires two numbers"}
		}
		switch op {
		case "+":
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		case "-":
			return runtime.NumberValue{Val: l.Val - r.Val}, nil
		case "*":
			return runtime.NumberValue{Val: l.Val * r.Val}, nil
		case "/":
			if r.Val == 0 {
				return nil, &ArithmeticError{Msg: "division by zero"}
			}
			return runtime.NumberValue{Val: l.Val / r.Val}, nil
		}
	case runtime.StringValue:
		if op != "+" {
			return nil, &TypeMismatchError{Msg: "strings only support +"}
		}
		r, ok := right.(runtime.StringValue)
		if !ok {
			return nil, &TypeMismatchError{Msg: "cannot concatenate a string with a non-string"}
		}
		return runtime.StringValue{Val: l.Val + r.Val}, nil
	}
	return nil, &TypeMismatchError{Msg: "operator " + op + " is not defined for these operands"}
}
