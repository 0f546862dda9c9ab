package galois

import (
	"testing"
)

func TestRamificationTypes(t *testing.T) {
	tests := []struct {
		name       string
		group      string
		wantOrders []int
	}{
		{name: "trivial", group: "1", wantOrders: nil},
		{name: "C4", group: "C4", wantOrders: []int{2, 4}},
		{name: "S3", group: "S3", wantOrders: []int{2, 3}},
		{name: "D8", group: "D8", wantOrders: []int{2, 2, 2, 4}},
		{name: "S4", group: "S4", wantOrders: []int{2, 2, 3, 4}},
		{name: "A4", group: "A4", wantOrders: []int{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types := RamificationTypes(mustGroup(t, tt.group), false)
			if len(types) != len(tt.wantOrders) {
				t.Fatalf("RamificationTypes() has %d entries, want %d", len(types), len(tt.wantOrders))
			}
			for i, typ := range types {
				if got := typ.Order(); got != tt.wantOrders[i] {
					t.Errorf("type %d order = %d, want %d", i, got, tt.wantOrders[i])
				}
				if typ.IsTrivial() {
					t.Errorf("type %d should not be trivial", i)
				}
			}
		})
	}
}

func TestRamificationTypes_IncludeTrivial(t *testing.T) {
	g := mustGroup(t, "S4")

	with := RamificationTypes(g, true)
	without := RamificationTypes(g, false)

	if len(with) != len(without)+1 {
		t.Fatalf("with trivial %d entries, without %d", len(with), len(without))
	}
	if !with[0].IsTrivial() {
		t.Fatal("first entry should be the trivial type")
	}
	for i, typ := range with[1:] {
		if !typ.Subgroup().Equal(without[i].Subgroup()) {
			t.Errorf("entry %d differs between the two enumerations", i)
		}
	}
}

func TestRamificationType_Accessors(t *testing.T) {
	types := RamificationTypes(mustGroup(t, "C4"), false)
	if len(types) != 2 {
		t.Fatalf("RamificationTypes() has %d entries, want 2", len(types))
	}

	full := types[1]
	if got := full.Generator().Order(); got != 4 {
		t.Errorf("Generator() order = %d, want 4", got)
	}
	if got := full.ClassIndex(); got != 2 {
		t.Errorf("ClassIndex() = %d, want 2", got)
	}
	if full.Class() == nil || full.Class().Len() != 2 {
		t.Errorf("Class() should fuse the two generators of C4")
	}
	if got := full.String(); got == "" {
		t.Error("String() should name the generator")
	}
	if !types[0].Equal(types[0]) {
		t.Error("a type should equal itself")
	}
	if types[0].Equal(full) {
		t.Error("distinct orders should not compare equal")
	}
}
