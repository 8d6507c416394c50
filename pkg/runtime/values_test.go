package runtime

import "testing"

func TestIsTrueCrossType(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil handle", nil, false},
		{"None", NoneValue{}, false},
		{"false bool", BoolValue{Val: false}, false},
		{"true bool", BoolValue{Val: true}, true},
		{"zero number", NumberValue{Val: 0}, false},
		{"nonzero number", NumberValue{Val: 1}, true},
		{"empty string", StringValue{Val: ""}, false},
		{"nonempty string", StringValue{Val: "x"}, true},
		{"class", &Class{Name: "A"}, false},
	}
	for _, c := range cases {
		if got := IsTrue(c.v); got != c.want {
			t.Errorf("%s: IsTrue() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestGetMethodWalksFullParentChain(t *testing.T) {
	grandparent := NewClass("Grandparent", []*Method{{Name: "greet", Params: nil}}, nil)
	parent := NewClass("Parent", nil, grandparent)
	child := NewClass("Child", nil, parent)

	m, ok := child.GetMethod("greet")
	if !ok {
		t.Fatal("expected Child to resolve greet via its grandparent")
	}
	if m.Name != "greet" {
		t.Fatalf("got method %q, want %q", m.Name, "greet")
	}
}

func TestGetMethodPrefersOwnOverInherited(t *testing.T) {
	base := NewClass("Base", []*Method{{Name: "f"}}, nil)
	own := &Method{Name: "f", Params: []string{"x"}}
	derived := NewClass("Derived", []*Method{own}, base)

	m, ok := derived.GetMethod("f")
	if !ok || m != own {
		t.Fatalf("expected Derived.GetMethod to return its own override, got %#v, %v", m, ok)
	}
}

func TestGetMethodMissing(t *testing.T) {
	class := NewClass("Lonely", nil, nil)
	if _, ok := class.GetMethod("missing"); ok {
		t.Fatal("expected no method to be found on a class with no methods and no parent")
	}
}

func TestHasMethodChecksArity(t *testing.T) {
	class := NewClass("C", []*Method{{Name: "f", Params: []string{"a", "b"}}}, nil)
	inst := NewInstance(class)
	if !inst.HasMethod("f", 2) {
		t.Fatal("expected HasMethod(f, 2) to be true")
	}
	if inst.HasMethod("f", 1) {
		t.Fatal("expected HasMethod(f, 1) to be false on an arity mismatch")
	}
	if inst.HasMethod("g", 0) {
		t.Fatal("expected HasMethod(g, 0) to be false for an undefined method")
	}
}

func TestInstanceFieldsStartEmpty(t *testing.T) {
	inst := NewInstance(NewClass("C", nil, nil))
	if len(inst.Fields) != 0 {
		t.Fatalf("expected a freshly constructed instance to have no fields, got %v", inst.Fields)
	}
}
