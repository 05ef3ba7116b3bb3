package typesystem

import "testing"

func TestUnifyBindsParameter(t *testing.T) {
	subst, err := Unify(GenericParam{Name: "T"}, Primitive{Kind: KindInt})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equals(subst["T"], Primitive{Kind: KindInt}) {
		t.Errorf("T bound to %v", subst["T"])
	}
}

func TestUnifyFunctionShapes(t *testing.T) {
	generic := Function{
		Params: []Type{GenericParam{Name: "T"}, Array{Elem: GenericParam{Name: "U"}}},
		Return: GenericParam{Name: "U"},
	}
	concrete := Function{
		Params: []Type{Primitive{Kind: KindInt}, Array{Elem: Primitive{Kind: KindString}}},
		Return: Primitive{Kind: KindString},
	}

	subst, err := Unify(generic, concrete)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equals(subst["T"], Primitive{Kind: KindInt}) {
		t.Errorf("T = %v", subst["T"])
	}
	if !Equals(subst["U"], Primitive{Kind: KindString}) {
		t.Errorf("U = %v", subst["U"])
	}
}

func TestUnifyConflictingBindings(t *testing.T) {
	// (T, T) -> Void applied to (Int, String) must fail.
	generic := Function{
		Params: []Type{GenericParam{Name: "T"}, GenericParam{Name: "T"}},
		Return: Primitive{Kind: KindVoid},
	}
	concrete := Function{
		Params: []Type{Primitive{Kind: KindInt}, Primitive{Kind: KindString}},
		Return: Primitive{Kind: KindVoid},
	}

	_, err := Unify(generic, concrete)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	re, ok := err.(*ResolutionError)
	if !ok || re.Kind != IncompatibleTypes {
		t.Errorf("expected incompatible-types error, got %v", err)
	}
}

func TestUnifyDictionary(t *testing.T) {
	subst, err := Unify(
		Dictionary{Key: GenericParam{Name: "K"}, Value: GenericParam{Name: "V"}},
		Dictionary{Key: Primitive{Kind: KindString}, Value: Primitive{Kind: KindInt}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equals(subst["K"], Primitive{Kind: KindString}) || !Equals(subst["V"], Primitive{Kind: KindInt}) {
		t.Errorf("bindings = %v", subst)
	}
}

func TestUnifyUnsupportedShapes(t *testing.T) {
	_, err := Unify(
		Tuple{Elems: []Type{GenericParam{Name: "T"}}},
		Tuple{Elems: []Type{Primitive{Kind: KindInt}}},
	)
	if err == nil {
		t.Fatal("tuples do not unify structurally; expected error")
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	_, err := Unify(
		GenericParam{Name: "T"},
		Array{Elem: GenericParam{Name: "T"}},
	)
	if err == nil {
		t.Fatal("expected occurs-check failure")
	}
	re, ok := err.(*ResolutionError)
	if !ok || re.Kind != CircularTypeReference {
		t.Errorf("expected circular-reference error, got %v", err)
	}
}

func TestSubstApply(t *testing.T) {
	subst := Subst{"T": Primitive{Kind: KindInt}}
	got := subst.Apply(Function{
		Params: []Type{GenericParam{Name: "T"}, GenericParam{Name: "U"}},
		Return: Array{Elem: GenericParam{Name: "T"}},
	})
	want := Function{
		Params: []Type{Primitive{Kind: KindInt}, GenericParam{Name: "U"}},
		Return: Array{Elem: Primitive{Kind: KindInt}},
	}
	if !Equals(got, want) {
		t.Errorf("Apply = %s, want %s", got.String(), want.String())
	}
}
