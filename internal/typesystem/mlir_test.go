package typesystem

import "testing"

func TestPrimitiveMLIR(t *testing.T) {
	tests := []struct {
		kind PrimitiveKind
		want string
	}{
		{KindInt, "i32"},
		{KindInt8, "i8"},
		{KindInt64, "i64"},
		{KindBool, "i1"},
		{KindFloat, "f32"},
		{KindDouble, "f64"},
		{KindFloat16, "f16"},
		{KindFloat128, "f128"},
		{KindString, "!llvm.ptr<i8>"},
	}
	for _, tt := range tests {
		if got := (Primitive{Kind: tt.kind}).MLIR(); got != tt.want {
			t.Errorf("%s lowers to %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestCompoundMLIR(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Array{Elem: Primitive{Kind: KindInt}}, "memref<?xi32>"},
		{Tensor{Shape: TensorShape{2, 3}, Elem: Primitive{Kind: KindFloat}}, "tensor<2x3xf32>"},
		{Tensor{Shape: TensorShape{DynamicDim, 3}, Elem: Primitive{Kind: KindFloat}}, "tensor<?x3xf32>"},
		{Vector{Shape: TensorShape{4}, Elem: Primitive{Kind: KindFloat}}, "vector<4xf32>"},
		{Tuple{Elems: []Type{Primitive{Kind: KindInt}, Primitive{Kind: KindBool}}}, "tuple<i32, i1>"},
		{Optional{Elem: Primitive{Kind: KindInt}}, "!ouro.optional<i32>"},
		{Never{}, "!ouro.never"},
		{
			Function{Params: []Type{Primitive{Kind: KindInt}}, Return: Primitive{Kind: KindBool}},
			"(i32) -> i1",
		},
	}
	for _, tt := range tests {
		if got := tt.typ.MLIR(); got != tt.want {
			t.Errorf("%s lowers to %q, want %q", tt.typ.String(), got, tt.want)
		}
	}
}

func TestCustomMLIRDeterministic(t *testing.T) {
	a := Custom{Name: "Animal"}.MLIR()
	b := Custom{Name: "Animal"}.MLIR()
	if a != b {
		t.Fatalf("custom lowering not deterministic: %q vs %q", a, b)
	}
	if a != `!ouro.custom<"Animal">` {
		t.Errorf("custom lowering = %q", a)
	}
}
