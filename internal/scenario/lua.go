package scenario

import (
	"github.com/Shopify/go-lua"
)

const coveringTypeName = "covering"

func registerCoveringType(state *lua.State) {
	lua.NewMetaTable(state, coveringTypeName)
	state.NewTable()
	lua.SetFunctions(state, coveringMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerCoveringConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, coveringConstructor, 0)
	state.SetGlobal("Covering")
}

var coveringConstructor = []lua.RegistryFunction{
	{Name: "new", Function: coveringNew},
}

func coveringNew(state *lua.State) int {
	group := lua.CheckString(state, 1)
	name := lua.OptString(state, 2, "")
	def := &Definition{Group: group, Name: name}
	state.PushUserData(def)
	lua.SetMetaTableNamed(state, coveringTypeName)
	return 1
}

var coveringMethods = []lua.RegistryFunction{
	{Name: "name", Function: coveringName},
	{Name: "base_genus", Function: coveringBaseGenus},
	{Name: "signature", Function: coveringSignature},
	{Name: "resolve_all", Function: coveringResolveAll},
	{Name: "intermediate", Function: coveringIntermediate},
	{Name: "rational_class", Function: coveringRationalClass},
	{Name: "compare", Function: coveringCompare},
	{Name: "branch_values", Function: coveringBranchValues},
}

func coveringName(state *lua.State) int {
	def := checkCovering(state)
	def.Name = lua.CheckString(state, 2)
	return 0
}

func coveringBaseGenus(state *lua.State) int {
	def := checkCovering(state)
	genus := int64(lua.CheckInteger(state, 2))
	if genus < 0 {
		lua.ArgumentError(state, 2, "base genus must be non-negative")
		return 0
	}
	def.BaseGenus = &genus
	return 0
}

func coveringSignature(state *lua.State) int {
	def := checkCovering(state)
	lua.CheckType(state, 2, lua.TypeTable)
	counts, ok := integerList(state, 2)
	if !ok {
		lua.ArgumentError(state, 2, "signature must be a list of integers")
		return 0
	}
	def.Signature = counts
	return 0
}

func coveringResolveAll(state *lua.State) int {
	def := checkCovering(state)
	appendStep(def, StepResolveAll, nil)
	return 0
}

func coveringIntermediate(state *lua.State) int {
	def := checkCovering(state)
	subgroup := lua.CheckString(state, 2)
	appendStep(def, StepIntermediate, map[string]any{"subgroup": subgroup})
	return 0
}

func coveringRationalClass(state *lua.State) int {
	def := checkCovering(state)
	element := lua.CheckString(state, 2)
	appendStep(def, StepRationalClass, map[string]any{"element": element})
	return 0
}

func coveringCompare(state *lua.State) int {
	def := checkCovering(state)
	x := lua.CheckString(state, 2)
	y := lua.CheckString(state, 3)
	appendStep(def, StepCompare, map[string]any{"x": x, "y": y})
	return 0
}

func coveringBranchValues(state *lua.State) int {
	def := checkCovering(state)
	appendStep(def, StepBranchValues, nil)
	return 0
}

func checkCovering(state *lua.State) *Definition {
	ud := lua.CheckUserData(state, 1, coveringTypeName)
	if def, ok := ud.(*Definition); ok && def != nil {
		return def
	}
	lua.ArgumentError(state, 1, "covering expected")
	return nil
}

func appendStep(def *Definition, kind string, args map[string]any) {
	if args == nil {
		args = map[string]any{}
	}
	def.Steps = append(def.Steps, Step{Kind: kind, Args: args})
}

// integerList reads a Lua array of integers at index.
func integerList(state *lua.State, index int) ([]int64, bool) {
	index = state.AbsIndex(index)
	length := 0
	state.PushNil()
	for state.Next(index) {
		length++
		state.Pop(1)
	}

	out := make([]int64, 0, length)
	for i := 1; i <= length; i++ {
		state.RawGetInt(index, i)
		value, ok := state.ToInteger(-1)
		state.Pop(1)
		if !ok {
			return nil, false
		}
		out = append(out, int64(value))
	}
	return out, true
}
