// Package scenario loads covering definitions written as Lua scripts. A
// script builds a Covering userdata, declares the deck group, base genus
// and signature, queues the queries to run against the derived tower, and
// returns it:
//
//	local c = Covering.new("S4")
//	c:base_genus(0)
//	c:signature{1, 0, 1, 1, 0}
//	c:intermediate("(1 2)")
//	c:rational_class("(1 2 3)")
//	c:resolve_all()
//	return c
//
// The package only parses scripts into Definition values; execution against
// the tower service happens in the scenario command.
package scenario

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

// Step kinds queued by the Lua bindings.
const (
	StepResolveAll    = "resolve_all"
	StepIntermediate  = "intermediate"
	StepRationalClass = "rational_class"
	StepCompare       = "compare"
	StepBranchValues  = "branch_values"
)

// Definition is one parsed covering scenario.
type Definition struct {
	Name      string
	Group     string
	BaseGenus *int64
	Signature []int64
	Steps     []Step
}

// Step is one queued query against the derived covering.
type Step struct {
	Kind string
	Args map[string]any
}

// Load runs the Lua script at path and returns the covering definition it
// built. The script must return the Covering userdata; a definition without
// a deck group is rejected.
func Load(path string) (*Definition, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerCoveringType(state)
	registerCoveringConstructor(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Covering")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	def, ok := ud.(*Definition)
	if !ok || def == nil {
		return nil, fmt.Errorf("scenario script returned invalid Covering")
	}
	if strings.TrimSpace(def.Group) == "" {
		return nil, fmt.Errorf("scenario %s declares no deck group", path)
	}
	if strings.TrimSpace(def.Name) == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}
