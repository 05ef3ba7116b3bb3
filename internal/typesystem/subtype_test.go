package typesystem

import "testing"

func TestIsSubtype(t *testing.T) {
	intT := Primitive{Kind: KindInt}
	strT := Primitive{Kind: KindString}
	boolT := Primitive{Kind: KindBool}

	tests := []struct {
		name   string
		source Type
		target Type
		want   bool
	}{
		{"reflexive primitive", intT, intT, true},
		{"distinct primitives", intT, strT, false},
		{"reflexive array", Array{Elem: intT}, Array{Elem: intT}, true},
		{"array covariance", Array{Elem: Never{}}, Array{Elem: intT}, true},
		{"set covariance", Set{Elem: Never{}}, Set{Elem: strT}, true},
		{
			"dictionary key and value",
			Dictionary{Key: strT, Value: Never{}},
			Dictionary{Key: strT, Value: intT},
			true,
		},
		{
			"tuple arity mismatch",
			Tuple{Elems: []Type{intT, intT}},
			Tuple{Elems: []Type{intT}},
			false,
		},
		{"never is bottom", Never{}, strT, true},
		{"any is top", Custom{Name: "Cat"}, Custom{Name: AnyTypeName}, true},
		{"nominal equal", Custom{Name: "Cat"}, Custom{Name: "Cat"}, true},
		{"nominal distinct", Custom{Name: "Cat"}, Custom{Name: "Dog"}, false},
		{"widen into optional", intT, Optional{Elem: intT}, true},
		{"optional never narrows", Optional{Elem: intT}, intT, false},
		{
			"optional covariance",
			Optional{Elem: Never{}},
			Optional{Elem: intT},
			true,
		},
		{
			"union source needs all members",
			Union{Members: []Type{intT, strT}},
			strT,
			false,
		},
		{
			"union target needs one member",
			intT,
			Union{Members: []Type{intT, strT}},
			true,
		},
		{
			"intersection source needs one member",
			Intersection{Members: []Type{intT, strT}},
			strT,
			true,
		},
		{
			"intersection target needs all members",
			intT,
			Intersection{Members: []Type{intT, strT}},
			false,
		},
		{
			"function return covariant",
			Function{Params: []Type{intT}, Return: Never{}},
			Function{Params: []Type{intT}, Return: strT},
			true,
		},
		{
			"function param contravariant",
			Function{Params: []Type{Union{Members: []Type{intT, strT}}}, Return: boolT},
			Function{Params: []Type{intT}, Return: boolT},
			true,
		},
		{
			"function param covariance rejected",
			Function{Params: []Type{Never{}}, Return: boolT},
			Function{Params: []Type{intT}, Return: boolT},
			false,
		},
		{
			"function arity strict",
			Function{Params: []Type{intT, intT}, Return: boolT},
			Function{Params: []Type{intT}, Return: boolT},
			false,
		},
		{
			"tensor dynamic dim matches",
			Tensor{Shape: TensorShape{2, 3}, Elem: Primitive{Kind: KindFloat}},
			Tensor{Shape: TensorShape{DynamicDim, 3}, Elem: Primitive{Kind: KindFloat}},
			true,
		},
		{
			"tensor rank mismatch",
			Tensor{Shape: TensorShape{2}, Elem: Primitive{Kind: KindFloat}},
			Tensor{Shape: TensorShape{2, 3}, Elem: Primitive{Kind: KindFloat}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSubtypeChecker()
			if got := c.IsSubtype(tt.source, tt.target); got != tt.want {
				t.Errorf("IsSubtype(%s, %s) = %v, want %v",
					tt.source.String(), tt.target.String(), got, tt.want)
			}
		})
	}
}

func TestIsSubtypeMemoized(t *testing.T) {
	c := NewSubtypeChecker()
	a := Array{Elem: Primitive{Kind: KindInt}}
	if !c.IsSubtype(a, a) {
		t.Fatal("reflexive query failed")
	}
	// Same query must hit the memo and stay stable.
	if !c.IsSubtype(a, a) {
		t.Fatal("memoized query flipped")
	}
	if len(c.memo) == 0 {
		t.Error("expected memo entries after queries")
	}
}
