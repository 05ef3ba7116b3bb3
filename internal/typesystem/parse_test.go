package typesystem

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
	}{
		{"Int", Primitive{Kind: KindInt}},
		{"byte", Primitive{Kind: KindInt8}},
		{"double", Primitive{Kind: KindDouble}},
		{"Half", Primitive{Kind: KindFloat16}},
		{"Never", Never{}},
		{"Int[]", Array{Elem: Primitive{Kind: KindInt}}},
		{"Int?", Optional{Elem: Primitive{Kind: KindInt}}},
		{"Int[]?", Optional{Elem: Array{Elem: Primitive{Kind: KindInt}}}},
		{"Int?[]", Array{Elem: Optional{Elem: Primitive{Kind: KindInt}}}},
		{"Map<String, Int>", Dictionary{Key: Primitive{Kind: KindString}, Value: Primitive{Kind: KindInt}}},
		{"Set<Char>", Set{Elem: Primitive{Kind: KindChar}}},
		{"(Int, String)", Tuple{Elems: []Type{Primitive{Kind: KindInt}, Primitive{Kind: KindString}}}},
		{"(Int)", Primitive{Kind: KindInt}},
		{
			"(Int, Int) -> Bool",
			Function{
				Params: []Type{Primitive{Kind: KindInt}, Primitive{Kind: KindInt}},
				Return: Primitive{Kind: KindBool},
			},
		},
		{"() -> Void", Function{Params: []Type{}, Return: Primitive{Kind: KindVoid}}},
		{
			"Tensor<2x3xFloat>",
			Tensor{Shape: TensorShape{2, 3}, Elem: Primitive{Kind: KindFloat}},
		},
		{
			"Tensor<?x3xInt>",
			Tensor{Shape: TensorShape{DynamicDim, 3}, Elem: Primitive{Kind: KindInt}},
		},
		{
			"Vector<4xFloat>",
			Vector{Shape: TensorShape{4}, Elem: Primitive{Kind: KindFloat}},
		},
		{"Animal", Custom{Name: "Animal"}},
		{"List<Int>", Custom{Name: "List<Int>"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			if !Equals(got, tt.expected) {
				t.Errorf("Parse(%q) = %s (%#v), want %s", tt.input, got.String(), got, tt.expected.String())
			}
		})
	}
}

func TestParseUnionNormalization(t *testing.T) {
	got := Parse("String | Int | String")
	u, ok := got.(Union)
	if !ok {
		t.Fatalf("expected union, got %#v", got)
	}
	if len(u.Members) != 2 {
		t.Fatalf("expected 2 members after dedup, got %d", len(u.Members))
	}
	if u.Members[0].String() != "Int" || u.Members[1].String() != "String" {
		t.Errorf("members not sorted: %s", u.String())
	}

	single := Parse("Int | Int")
	if !Equals(single, Primitive{Kind: KindInt}) {
		t.Errorf("single-member union should unwrap, got %s", single.String())
	}
}

func TestParseRoundTripSpelling(t *testing.T) {
	inputs := []string{
		"Int[]",
		"Map<String, Int>",
		"Tensor<2x3xFloat>",
		"(Int, String) -> Bool",
	}
	for _, in := range inputs {
		if got := Parse(in).String(); got != in {
			t.Errorf("Parse(%q).String() = %q", in, got)
		}
	}
}

func TestSplitTensorSpecErrors(t *testing.T) {
	if _, _, err := SplitTensorSpec("Float"); err == nil {
		t.Error("expected error for missing dimensions")
	}
	if _, _, err := SplitTensorSpec("2x3"); err == nil {
		t.Error("expected error for missing element type")
	}
}
