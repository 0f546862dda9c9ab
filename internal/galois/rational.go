package galois

import (
	"fmt"
	"sync"

	"github.com/louisbranch/coverings.space/internal/group"
)

// RationalClass is the union of the ordinary conjugacy classes of the
// coprime powers of a representative. Two stabilizer generators describe
// the same local monodromy exactly when they are rationally conjugate, so
// this is the equivalence that ramification types are built on.
type RationalClass struct {
	g   *group.Group
	rep group.Perm

	once    sync.Once
	classes [][]group.Perm
	elems   []group.Perm
	members map[string]bool
}

// NewRationalClass builds the rational class of rep inside g.
func NewRationalClass(g *group.Group, rep group.Perm) (*RationalClass, error) {
	if g == nil || g.Order() == 0 {
		return nil, fmt.Errorf("rational class: %w", ErrInvalidGroup)
	}
	if !g.Contains(rep) {
		return nil, fmt.Errorf("rational class: %s is not an element of %s", rep, g)
	}
	return &RationalClass{g: g, rep: rep}, nil
}

// AreRationalConjugates reports whether x and y generate the same local
// monodromy in g, that is, whether y is conjugate to a coprime power of x.
func AreRationalConjugates(g *group.Group, x, y group.Perm) (bool, error) {
	rc, err := NewRationalClass(g, x)
	if err != nil {
		return false, err
	}
	if !g.Contains(y) {
		return false, fmt.Errorf("rational class: %s is not an element of %s", y, g)
	}
	return rc.Contains(y), nil
}

// build fills the class data exactly once; rational classes are shared
// between covering types and read concurrently after that.
func (rc *RationalClass) build() {
	rc.once.Do(rc.compute)
}

func (rc *RationalClass) compute() {
	ord := rc.rep.Order()
	seen := map[string]bool{}
	for k := 1; k <= ord; k++ {
		if gcd(k, ord) != 1 {
			continue
		}
		class, _ := rc.g.ConjugacyClass(rc.rep.Power(k))
		id := class[0].Key()
		if seen[id] {
			continue
		}
		seen[id] = true
		rc.classes = append(rc.classes, class)
	}
	rc.members = make(map[string]bool)
	for _, class := range rc.classes {
		for _, e := range class {
			if !rc.members[e.Key()] {
				rc.members[e.Key()] = true
				rc.elems = append(rc.elems, e)
			}
		}
	}
}

// Representative returns the element the class was built from.
func (rc *RationalClass) Representative() group.Perm { return rc.rep }

// Classes returns the ordinary conjugacy classes the rational class spans,
// ordered by ascending coprime power of the representative.
func (rc *RationalClass) Classes() [][]group.Perm {
	rc.build()
	return rc.classes
}

// Elements returns all members in a stable order.
func (rc *RationalClass) Elements() []group.Perm {
	rc.build()
	return rc.elems
}

// Contains reports membership of p in the rational class.
func (rc *RationalClass) Contains(p group.Perm) bool {
	rc.build()
	return rc.members[p.Key()]
}

// Len returns the total number of elements: the number of spanned classes
// times the common class size.
func (rc *RationalClass) Len() int {
	rc.build()
	return len(rc.classes) * len(rc.classes[0])
}

// Equal compares rational classes as element sets.
func (rc *RationalClass) Equal(other *RationalClass) bool {
	if other == nil {
		return false
	}
	rc.build()
	other.build()
	if len(rc.elems) != len(other.elems) {
		return false
	}
	for key := range rc.members {
		if !other.members[key] {
			return false
		}
	}
	return true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
