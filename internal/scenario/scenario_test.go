package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestLoadFullDefinition(t *testing.T) {
	path := writeScript(t, "cyclic_tower.lua", `
local c = Covering.new("C4", "cyclic tower")
c:base_genus(0)
c:signature{2, 0}
c:resolve_all()
c:intermediate("(1 3)(2 4)")
c:rational_class("(1 2 3 4)")
c:compare("(1 2 3 4)", "(1 4 3 2)")
c:branch_values()
return c
`)

	def, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if def.Name != "cyclic tower" {
		t.Errorf("name = %q, want %q", def.Name, "cyclic tower")
	}
	if def.Group != "C4" {
		t.Errorf("group = %q, want C4", def.Group)
	}
	if def.BaseGenus == nil || *def.BaseGenus != 0 {
		t.Errorf("base genus = %v, want 0", def.BaseGenus)
	}
	if len(def.Signature) != 2 || def.Signature[0] != 2 || def.Signature[1] != 0 {
		t.Errorf("signature = %v, want [2 0]", def.Signature)
	}

	wantKinds := []string{StepResolveAll, StepIntermediate, StepRationalClass, StepCompare, StepBranchValues}
	if len(def.Steps) != len(wantKinds) {
		t.Fatalf("got %d steps, want %d", len(def.Steps), len(wantKinds))
	}
	for i, kind := range wantKinds {
		if def.Steps[i].Kind != kind {
			t.Errorf("step %d kind = %q, want %q", i, def.Steps[i].Kind, kind)
		}
	}
	if got := def.Steps[1].Args["subgroup"]; got != "(1 3)(2 4)" {
		t.Errorf("intermediate subgroup = %v", got)
	}
	if got := def.Steps[3].Args["y"]; got != "(1 4 3 2)" {
		t.Errorf("compare y = %v", got)
	}
}

func TestLoadDefaultsNameFromFile(t *testing.T) {
	path := writeScript(t, "quaternion.lua", `
local c = Covering.new("Q8")
return c
`)

	def, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if def.Name != "quaternion" {
		t.Errorf("name = %q, want quaternion", def.Name)
	}
	if def.BaseGenus != nil {
		t.Errorf("base genus = %v, want symbolic (nil)", def.BaseGenus)
	}
	if def.Signature != nil {
		t.Errorf("signature = %v, want symbolic (nil)", def.Signature)
	}
}

func TestLoadRejectsNonCoveringReturn(t *testing.T) {
	path := writeScript(t, "bad_return.lua", `return 42`)

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "must return Covering") {
		t.Fatalf("err = %v, want return-type error", err)
	}
}

func TestLoadRejectsBrokenScript(t *testing.T) {
	path := writeScript(t, "broken.lua", `local c = Covering.new(`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected load error for broken script")
	}
}

func TestLoadRejectsNegativeGenus(t *testing.T) {
	path := writeScript(t, "negative.lua", `
local c = Covering.new("C2")
c:base_genus(-1)
return c
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative base genus")
	}
}
