// Package branch models branch values of a covering and the points lying
// over them. A branch value is a point of the base with nontrivial
// monodromy; its preimages carry multiplicities given by the cycle type of
// the monodromy permutation.
package branch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/coverings.space/internal/group"
)

// Point is a single preimage of a branch value with its ramification
// multiplicity.
type Point struct {
	mult int
}

// NewPoint returns a point of the given multiplicity, which must be
// positive.
func NewPoint(mult int) (*Point, error) {
	if mult < 1 {
		return nil, fmt.Errorf("branch: multiplicity %d must be positive", mult)
	}
	return &Point{mult: mult}, nil
}

// Multiplicity returns the ramification index of the point.
func (p *Point) Multiplicity() int { return p.mult }

// Equal compares points by multiplicity.
func (p *Point) Equal(q *Point) bool {
	return q != nil && p.mult == q.mult
}

func (p *Point) String() string {
	return strconv.Itoa(p.mult)
}

// Value is a branch value of a covering of the given degree, described by
// its monodromy permutation.
type Value struct {
	monodromy group.Perm
	typ       []int
	preimages []*Point
	deg       int
}

// NewValue builds the branch value of a monodromy permutation in a
// covering of the given degree. The cycle type is padded with fixed
// points up to the degree, one preimage per part.
func NewValue(monodromy group.Perm, degree int) *Value {
	if d := monodromy.Degree(); d > degree {
		degree = d
	}
	typ := group.Identity(degree).Mul(monodromy).CycleType()

	v := &Value{
		monodromy: monodromy,
		typ:       typ,
		preimages: make([]*Point, len(typ)),
	}
	for i, m := range typ {
		v.preimages[i] = &Point{mult: m}
		v.deg += m - 1
	}
	return v
}

// Monodromy returns the permutation the value was built from.
func (v *Value) Monodromy() group.Perm { return v.monodromy }

// Type returns the cycle type as a descending partition of the covering
// degree. The slice is shared; callers must not mutate it.
func (v *Value) Type() []int { return v.typ }

// Preimages returns one point per part of the cycle type.
func (v *Value) Preimages() []*Point { return v.preimages }

// Deg returns the total ramification of the value, the sum of
// multiplicity minus one over all preimages.
func (v *Value) Deg() int { return v.deg }

// IsBranched reports whether any preimage is ramified.
func (v *Value) IsBranched() bool { return v.deg > 0 }

// Equal compares values by cycle type.
func (v *Value) Equal(w *Value) bool {
	if w == nil || len(v.typ) != len(w.typ) {
		return false
	}
	for i := range v.typ {
		if v.typ[i] != w.typ[i] {
			return false
		}
	}
	return true
}

// String renders the cycle type as a partition, largest part first.
func (v *Value) String() string {
	parts := make([]string, len(v.typ))
	for i, m := range v.typ {
		parts[i] = strconv.Itoa(m)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// ValueTypes returns one value per class of nontrivial cyclic subgroups
// of g, each built from the class generator acting on g's points. These
// are the possible local behaviors of branch values of a covering with
// deck group g.
func ValueTypes(g *group.Group) []*Value {
	var out []*Value
	for _, sub := range g.SubgroupClasses() {
		if sub.Order() == 1 || !sub.IsCyclic() {
			continue
		}
		gen, ok := sub.CyclicGenerator()
		if !ok {
			continue
		}
		out = append(out, NewValue(gen, g.Degree()))
	}
	return out
}
