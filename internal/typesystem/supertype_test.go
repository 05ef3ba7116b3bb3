package typesystem

import "testing"

func TestCommonSupertypeNumeric(t *testing.T) {
	tests := []struct {
		name string
		a, b PrimitiveKind
		want PrimitiveKind
	}{
		{"same kind", KindInt, KindInt, KindInt},
		{"int widens", KindInt32, KindInt64, KindInt64},
		{"int and double", KindInt, KindDouble, KindDouble},
		{"float beats wide int", KindInt64, KindFloat16, KindFloat16},
		{"float and double", KindFloat, KindDouble, KindDouble},
		{"unsigned ranks with signed", KindUInt8, KindInt32, KindInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSubtypeChecker()
			got := c.CommonSupertype(Primitive{Kind: tt.a}, Primitive{Kind: tt.b})
			if !Equals(got, Primitive{Kind: tt.want}) {
				t.Errorf("CommonSupertype(%s, %s) = %s, want %s", tt.a, tt.b, got.String(), tt.want)
			}
			// The relation is symmetric.
			rev := c.CommonSupertype(Primitive{Kind: tt.b}, Primitive{Kind: tt.a})
			if !Equals(rev, Primitive{Kind: tt.want}) {
				t.Errorf("CommonSupertype(%s, %s) = %s, want %s", tt.b, tt.a, rev.String(), tt.want)
			}
		})
	}
}

func TestCommonSupertypeContainers(t *testing.T) {
	c := NewSubtypeChecker()

	got := c.CommonSupertype(
		Array{Elem: Primitive{Kind: KindInt}},
		Array{Elem: Primitive{Kind: KindDouble}},
	)
	want := Array{Elem: Primitive{Kind: KindDouble}}
	if !Equals(got, want) {
		t.Errorf("array join = %s, want %s", got.String(), want.String())
	}

	opt := c.CommonSupertype(
		Optional{Elem: Primitive{Kind: KindInt}},
		Optional{Elem: Primitive{Kind: KindInt64}},
	)
	if !Equals(opt, Optional{Elem: Primitive{Kind: KindInt64}}) {
		t.Errorf("optional join = %s", opt.String())
	}
}

func TestCommonSupertypeFallsBackToUnion(t *testing.T) {
	c := NewSubtypeChecker()
	got := c.CommonSupertype(Primitive{Kind: KindString}, Primitive{Kind: KindBool})
	u, ok := got.(Union)
	if !ok {
		t.Fatalf("expected union, got %s", got.String())
	}
	if len(u.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(u.Members))
	}
	if u.String() != "Bool | String" {
		t.Errorf("union not normalized: %s", u.String())
	}
}

func TestCommonSupertypeSubsumption(t *testing.T) {
	c := NewSubtypeChecker()
	got := c.CommonSupertype(Never{}, Primitive{Kind: KindString})
	if !Equals(got, Primitive{Kind: KindString}) {
		t.Errorf("Never join String = %s", got.String())
	}
}
