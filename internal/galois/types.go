package galois

import (
	"github.com/louisbranch/coverings.space/internal/group"
)

// RamificationType is the local-monodromy vocabulary of a covering: the
// conjugacy class of a cyclic subgroup, carried with a canonical generator
// and the generator's rational class in the ambient group. Branch values of
// the same type have conjugate stabilizers upstairs.
type RamificationType struct {
	sub      *group.Group
	gen      group.Perm
	class    *RationalClass
	classIdx int
}

// RamificationTypes enumerates the ramification types of h in a stable
// order: one per conjugacy class of cyclic subgroups, following the
// subgroup-class order. The trivial type (unramified) leads the list when
// includeTrivial is set; signatures are keyed by the non-trivial types only.
func RamificationTypes(h *group.Group, includeTrivial bool) []*RamificationType {
	var types []*RamificationType
	for i, sub := range h.SubgroupClasses() {
		if !sub.IsCyclic() {
			continue
		}
		if sub.Order() == 1 && !includeTrivial {
			continue
		}
		gen, _ := sub.CyclicGenerator()
		types = append(types, &RamificationType{
			sub:      sub,
			gen:      gen,
			class:    &RationalClass{g: h, rep: gen},
			classIdx: i,
		})
	}
	return types
}

// Subgroup returns the representative stabilizer subgroup.
func (t *RamificationType) Subgroup() *group.Group { return t.sub }

// Generator returns the canonical generator of the representative subgroup.
func (t *RamificationType) Generator() group.Perm { return t.gen }

// Class returns the rational class of the generator in the ambient group.
func (t *RamificationType) Class() *RationalClass { return t.class }

// ClassIndex returns the position of the stabilizer's class within the
// ambient group's subgroup classes.
func (t *RamificationType) ClassIndex() int { return t.classIdx }

// Order returns the stabilizer order, the local ramification index of X
// over X/stabilizer at a point of this type.
func (t *RamificationType) Order() int { return t.sub.Order() }

// IsTrivial reports the unramified type.
func (t *RamificationType) IsTrivial() bool { return t.sub.Order() == 1 }

// Equal compares the representative stabilizers as element sets.
func (t *RamificationType) Equal(other *RamificationType) bool {
	return other != nil && t.sub.Equal(other.sub)
}

func (t *RamificationType) String() string {
	return "<" + t.gen.String() + ">"
}
