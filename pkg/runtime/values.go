// Package runtime defines the polymorphic runtime value model: numbers,
// strings, booleans, None, classes, and class instances.
package runtime

import (
	"sort"

	"github.com/pebblelang/pebble/pkg/ast"
)

// Kind identifies the concrete variant behind a Value.
type Kind int

const (
	KindNone Kind = iota
	KindNumber
	KindString
	KindBool
	KindClass
	KindClassInstance
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindClass:
		return "Class"
	case KindClassInstance:
		return "ClassInstance"
	default:
		return "Unknown"
	}
}

// Value is satisfied by every runtime object. A Go nil of this interface
// type is the "empty handle" the source distinguishes from a handle that
// points at the None value; Go's garbage collector reclaims cycles on its
// own, so unlike the source's manually refcounted handles there is no
// owning/borrowing distinction to encode here (see DESIGN.md).
type Value interface {
	Kind() Kind
}

type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }

type NumberValue struct {
	Val int32
}

func (NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

// Method is a class method: a name, its formal parameters (not counting
// the implicit self), and a body to execute against a call scope.
type Method struct {
	Name   string
	Params []string
	Body   *ast.MethodBody
}

// Class is a named bundle of methods with at most one superclass.
type Class struct {
	Name    string
	Methods []*Method
	Parent  *Class
}

func (*Class) Kind() Kind { return KindClass }

// NewClass builds a class. It mirrors the source's habit of sorting a
// scratch copy of the method list purely to discard it: the stored
// Methods slice keeps declaration order, and lookup stays a linear scan,
// so the sort below has no observable effect (see DESIGN.md).
func NewClass(name string, methods []*Method, parent *Class) *Class {
	scratch := make([]*Method, len(methods))
	copy(scratch, methods)
	sort.Slice(scratch, func(i, j int) bool { return scratch[i].Name < scratch[j].Name })

	return &Class{Name: name, Methods: methods, Parent: parent}
}

// GetMethod scans this class's own methods, then walks the full parent
// chain. The source only recursed one level into its parent; conforming
// implementations are told to walk the whole chain, which is what this
// does (see DESIGN.md's Open Questions resolution).
func (c *Class) GetMethod(name string) (*Method, bool) {
	for class := c; class != nil; class = class.Parent {
		for _, m := range class.Methods {
			if m.Name == name {
				return m, true
			}
		}
	}
	return nil, false
}

// ClassInstance is an object created from a Class, with fields populated
// lazily on first assignment.
type ClassInstance struct {
	Class  *Class
	Fields map[string]Value
}

func (*ClassInstance) Kind() Kind { return KindClassInstance }

func NewInstance(class *Class) *ClassInstance {
	return &ClassInstance{Class: class, Fields: make(map[string]Value)}
}

// HasMethod reports whether the instance's class resolves name to a
// method whose formal parameter count equals argc.
func (inst *ClassInstance) HasMethod(name string, argc int) bool {
	m, ok := inst.Class.GetMethod(name)
	return ok && len(m.Params) == argc
}

// IsTrue implements the cross-type truthiness rule: None and unset
// handles are false, Bool is itself, Number is non-zero, String is
// non-empty, and any Class or ClassInstance is false.
func IsTrue(v Value) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	default:
		return false
	}
}
