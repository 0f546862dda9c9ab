package galois

import "testing"

func TestQuantityKnown(t *testing.T) {
	if !NewInt(3).Known() {
		t.Error("NewInt(3) should be known")
	}
	if NewSym("g").Known() {
		t.Error("NewSym(g) should not be known")
	}
	if got, ok := NewInt(7).Int64(); !ok || got != 7 {
		t.Errorf("Int64() = %d, %v", got, ok)
	}
	if _, ok := NewSym("g").Int64(); ok {
		t.Error("unknowns have no integer value")
	}
	if _, ok := NewInt(1).Div(2).Int64(); ok {
		t.Error("1/2 is not integral")
	}
}

func TestQuantityArithmetic(t *testing.T) {
	g := NewSym("g")

	sum := g.MulInt(2).Add(NewInt(3))
	if sum.Known() {
		t.Error("2*g + 3 should stay unknown")
	}
	if got := sum.Sub(g.MulInt(2)); !got.Equal(NewInt(3)) {
		t.Errorf("(2*g + 3) - 2*g = %s, want 3", got)
	}
	if got := g.Sub(g); !got.IsZero() {
		t.Errorf("g - g = %s, want 0", got)
	}
	if got := g.MulInt(0); !got.IsZero() {
		t.Errorf("0*g = %s, want 0", got)
	}
	if got := NewInt(6).Div(2); !got.Equal(NewInt(3)) {
		t.Errorf("6/2 = %s, want 3", got)
	}
}

func TestQuantitySign(t *testing.T) {
	if sign, ok := NewInt(-2).Sign(); !ok || sign != -1 {
		t.Errorf("Sign(-2) = %d, %v", sign, ok)
	}
	if sign, ok := NewInt(0).Sign(); !ok || sign != 0 {
		t.Errorf("Sign(0) = %d, %v", sign, ok)
	}
	if _, ok := NewSym("n1").Sign(); ok {
		t.Error("unknowns have no sign")
	}
}

func TestQuantityString(t *testing.T) {
	tests := []struct {
		name string
		q    *Quantity
		want string
	}{
		{name: "zero", q: NewInt(0), want: "0"},
		{name: "negative", q: NewInt(-3), want: "-3"},
		{name: "symbol", q: NewSym("g"), want: "g"},
		{name: "linear form", q: NewSym("g").MulInt(2).Add(NewSym("n1")).Sub(NewInt(2)), want: "2*g + n1 - 2"},
		{name: "negative lead", q: NewInt(0).Sub(NewSym("g")), want: "-g"},
		{name: "fraction", q: NewSym("n1").Div(2), want: "1/2*n1"},
		{name: "numeric name order", q: NewSym("n10").Add(NewSym("n2")), want: "n2 + n10"},
		{name: "constant first when alone", q: NewSym("g").Sub(NewSym("g")).Add(NewInt(5)), want: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuantityEqual(t *testing.T) {
	a := NewSym("g").MulInt(2).Add(NewInt(1))
	b := NewInt(1).Add(NewSym("g")).Add(NewSym("g"))

	if !a.Equal(b) {
		t.Errorf("%s should equal %s", a, b)
	}
	if a.Equal(NewSym("g").Add(NewInt(1))) {
		t.Error("2*g + 1 should differ from g + 1")
	}
	if a.Equal(nil) {
		t.Error("nothing equals nil")
	}
}

func TestQuantityUnknowns(t *testing.T) {
	q := NewSym("n2").Add(NewSym("g")).Add(NewSym("n10"))
	got := q.Unknowns()
	want := []string{"g", "n2", "n10"}
	if len(got) != len(want) {
		t.Fatalf("Unknowns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Unknowns() = %v, want %v", got, want)
		}
	}
}

func TestQuantityImmutable(t *testing.T) {
	g := NewSym("g")
	_ = g.MulInt(5).Add(NewInt(2))

	if got := g.String(); got != "g" {
		t.Errorf("operand mutated: %q", got)
	}
}
