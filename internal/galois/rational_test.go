package galois

import (
	"errors"
	"sync"
	"testing"

	"github.com/louisbranch/coverings.space/internal/group"
)

func mustPerm(t *testing.T, s string) group.Perm {
	t.Helper()
	p, err := group.ParsePerm(s)
	if err != nil {
		t.Fatalf("ParsePerm(%q) error = %v", s, err)
	}
	return p
}

func mustGroup(t *testing.T, s string) *group.Group {
	t.Helper()
	g, err := group.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", s, err)
	}
	return g
}

func TestNewRationalClass(t *testing.T) {
	tests := []struct {
		name        string
		group       string
		rep         string
		wantClasses int
		wantLen     int
	}{
		{
			// (1 2 3) and (1 3 2) are already conjugate in S3, so the
			// two generators of the cyclic subgroup share one class.
			name:        "three cycle in S3",
			group:       "S3",
			rep:         "(1 2 3)",
			wantClasses: 1,
			wantLen:     2,
		},
		{
			// In C3 the ordinary classes are singletons; rational
			// conjugacy fuses the two nontrivial powers.
			name:        "three cycle in C3",
			group:       "C3",
			rep:         "(1 2 3)",
			wantClasses: 2,
			wantLen:     2,
		},
		{
			name:        "four cycle in C4",
			group:       "C4",
			rep:         "(1 2 3 4)",
			wantClasses: 2,
			wantLen:     2,
		},
		{
			name:        "four cycle in S4",
			group:       "S4",
			rep:         "(1 2 3 4)",
			wantClasses: 1,
			wantLen:     6,
		},
		{
			name:        "identity",
			group:       "S3",
			rep:         "()",
			wantClasses: 1,
			wantLen:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGroup(t, tt.group)
			rc, err := NewRationalClass(g, mustPerm(t, tt.rep))
			if err != nil {
				t.Fatalf("NewRationalClass() error = %v", err)
			}
			if got := len(rc.Classes()); got != tt.wantClasses {
				t.Errorf("Classes() count = %d, want %d", got, tt.wantClasses)
			}
			if got := rc.Len(); got != tt.wantLen {
				t.Errorf("Len() = %d, want %d", got, tt.wantLen)
			}
			if got := len(rc.Elements()); got != tt.wantLen {
				t.Errorf("Elements() count = %d, want %d", got, tt.wantLen)
			}
			if !rc.Contains(rc.Representative()) {
				t.Error("class should contain its representative")
			}
		})
	}
}

func TestNewRationalClass_Errors(t *testing.T) {
	s3 := mustGroup(t, "S3")

	if _, err := NewRationalClass(nil, mustPerm(t, "(1 2)")); !errors.Is(err, ErrInvalidGroup) {
		t.Errorf("nil group error = %v, want ErrInvalidGroup", err)
	}
	if _, err := NewRationalClass(s3, mustPerm(t, "(1 2 3 4)")); err == nil {
		t.Error("expected error for representative outside the group")
	}
}

func TestRationalClassContains(t *testing.T) {
	c4 := mustGroup(t, "C4")
	rc, err := NewRationalClass(c4, mustPerm(t, "(1 2 3 4)"))
	if err != nil {
		t.Fatalf("NewRationalClass() error = %v", err)
	}

	if !rc.Contains(mustPerm(t, "(1 4 3 2)")) {
		t.Error("inverse generator should be rationally conjugate")
	}
	if rc.Contains(mustPerm(t, "(1 3)(2 4)")) {
		t.Error("the square generates a smaller subgroup")
	}
	if rc.Contains(mustPerm(t, "()")) {
		t.Error("the identity is not in a nontrivial class")
	}
}

func TestRationalClassEqual(t *testing.T) {
	c3 := mustGroup(t, "C3")

	a, err := NewRationalClass(c3, mustPerm(t, "(1 2 3)"))
	if err != nil {
		t.Fatalf("NewRationalClass() error = %v", err)
	}
	b, err := NewRationalClass(c3, mustPerm(t, "(1 3 2)"))
	if err != nil {
		t.Fatalf("NewRationalClass() error = %v", err)
	}

	if !a.Equal(b) {
		t.Error("inverse generators should produce the same rational class")
	}
}

func TestAreRationalConjugates(t *testing.T) {
	tests := []struct {
		name  string
		group string
		x     string
		y     string
		want  bool
	}{
		{name: "inverse three cycles in C3", group: "C3", x: "(1 2 3)", y: "(1 3 2)", want: true},
		{name: "inverse three cycles in S3", group: "S3", x: "(1 2 3)", y: "(1 3 2)", want: true},
		{name: "different orders", group: "S3", x: "(1 2)", y: "(1 2 3)", want: false},
		{name: "transpositions in S4", group: "S4", x: "(1 2)", y: "(3 4)", want: true},
		{name: "transposition and double transposition", group: "S4", x: "(1 2)", y: "(1 2)(3 4)", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGroup(t, tt.group)
			got, err := AreRationalConjugates(g, mustPerm(t, tt.x), mustPerm(t, tt.y))
			if err != nil {
				t.Fatalf("AreRationalConjugates() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AreRationalConjugates(%s, %s) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestAreRationalConjugates_Errors(t *testing.T) {
	c3 := mustGroup(t, "C3")
	if _, err := AreRationalConjugates(c3, mustPerm(t, "(1 2)"), mustPerm(t, "(1 2 3)")); err == nil {
		t.Error("expected error for element outside the group")
	}
}

func TestRationalClassConcurrentReads(t *testing.T) {
	s4 := mustGroup(t, "S4")
	rc, err := NewRationalClass(s4, mustPerm(t, "(1 2 3 4)"))
	if err != nil {
		t.Fatalf("NewRationalClass() error = %v", err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !rc.Contains(mustPermQuiet("(1 4 3 2)")) {
				t.Error("expected the inverse in the rational class")
			}
			if got := rc.Len(); got != 6 {
				t.Errorf("Len() = %d, want 6", got)
			}
			if got := len(rc.Elements()); got != 6 {
				t.Errorf("len(Elements()) = %d, want 6", got)
			}
		}()
	}
	wg.Wait()
}

func mustPermQuiet(s string) group.Perm {
	p, err := group.ParsePerm(s)
	if err != nil {
		panic(err)
	}
	return p
}
