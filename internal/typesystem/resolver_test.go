package typesystem

import (
	"testing"

	"github.com/ouro-lang/ouro/internal/ast"
)

func TestResolveNamedType(t *testing.T) {
	registry := NewRegistry()
	registry.Register(Registered{Name: "Animal", Underlying: Custom{Name: "Animal"}})
	r := NewResolver(registry)
	ctx := NewResolutionContext()

	if _, err := r.ResolveType(&ast.NamedType{Name: "Animal"}, ctx); err != nil {
		t.Errorf("registered name should resolve: %v", err)
	}
	if _, err := r.ResolveType(&ast.NamedType{Name: "Int"}, ctx); err != nil {
		t.Errorf("primitive should resolve: %v", err)
	}

	_, err := r.ResolveType(&ast.NamedType{Name: "Ghost"}, ctx)
	re, ok := err.(*ResolutionError)
	if !ok || re.Kind != UndefinedType {
		t.Errorf("expected undefined-type error, got %v", err)
	}
}

func TestResolveGenericParameterChain(t *testing.T) {
	registry := NewRegistry()
	r := NewResolver(registry)

	outer := NewResolutionContext()
	outer.Bind("T", &ast.NamedType{Name: "Int"})
	inner := outer.Child()
	inner.Declare("U")

	node, err := r.ResolveGenericParameter("T", inner)
	if err != nil {
		t.Fatalf("bound parameter should resolve through the chain: %v", err)
	}
	if node.TypeString() != "Int" {
		t.Errorf("resolved to %s", node.TypeString())
	}

	_, err = r.ResolveGenericParameter("U", inner)
	re, ok := err.(*ResolutionError)
	if !ok || re.Kind != InvalidGenericParameter {
		t.Errorf("declared-but-unbound parameter must fail, got %v", err)
	}
}

func TestResolveGenericArity(t *testing.T) {
	registry := NewRegistry()
	registry.Register(Registered{Name: "Box", TypeParams: []string{"T"}, Underlying: Custom{Name: "Box"}})
	r := NewResolver(registry)
	ctx := NewResolutionContext()

	good := &ast.GenericType{Name: "Box", Args: []ast.TypeNode{&ast.NamedType{Name: "Int"}}}
	if _, err := r.ResolveType(good, ctx); err != nil {
		t.Errorf("arity-correct instantiation failed: %v", err)
	}

	bad := &ast.GenericType{Name: "Box", Args: []ast.TypeNode{
		&ast.NamedType{Name: "Int"}, &ast.NamedType{Name: "Int"},
	}}
	_, err := r.ResolveType(bad, ctx)
	re, ok := err.(*ResolutionError)
	if !ok || re.Kind != WrongGenericArity {
		t.Errorf("expected arity error, got %v", err)
	}
}

func TestBuildType(t *testing.T) {
	registry := NewRegistry()
	r := NewResolver(registry)
	ctx := NewResolutionContext()
	ctx.Declare("T")

	tests := []struct {
		name string
		node ast.TypeNode
		want Type
	}{
		{"primitive", &ast.NamedType{Name: "Int"}, Primitive{Kind: KindInt}},
		{"alias", &ast.NamedType{Name: "byte"}, Primitive{Kind: KindInt8}},
		{"generic param", &ast.NamedType{Name: "T"}, GenericParam{Name: "T"}},
		{"array", &ast.ArrayType{Elem: &ast.NamedType{Name: "Int"}}, Array{Elem: Primitive{Kind: KindInt}}},
		{
			"map",
			&ast.GenericType{Name: "Map", Args: []ast.TypeNode{
				&ast.NamedType{Name: "String"}, &ast.NamedType{Name: "Int"},
			}},
			Dictionary{Key: Primitive{Kind: KindString}, Value: Primitive{Kind: KindInt}},
		},
		{
			"tensor",
			&ast.TensorType{Shape: []int64{2, 3}, Elem: &ast.NamedType{Name: "Float"}},
			Tensor{Shape: TensorShape{2, 3}, Elem: Primitive{Kind: KindFloat}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.BuildType(tt.node, ctx)
			if !Equals(got, tt.want) {
				t.Errorf("BuildType = %s, want %s", got.String(), tt.want.String())
			}
		})
	}
}
