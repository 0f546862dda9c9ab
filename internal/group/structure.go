package group

import (
	"fmt"
	"strconv"
	"strings"
)

// StructureDescription returns a short GAP-flavored isomorphism label:
// "C6", "C4 x C2", "S4", "A5", "D8" (dihedral groups named by order), "Q8".
// Groups outside the recognized families fall back to "group of order n".
// The label is cosmetic; equality of labels does not imply isomorphism for
// fallback cases.
func (g *Group) StructureDescription() string {
	n := g.Order()
	switch {
	case n == 1:
		return "1"
	case g.IsCyclic():
		return "C" + strconv.Itoa(n)
	case g.IsAbelian():
		return abelianDescription(g)
	}
	if name, ok := g.fingerprintName(); ok {
		return name
	}
	if g.isDihedral() {
		return "D" + strconv.Itoa(n)
	}
	return fmt.Sprintf("group of order %d", n)
}

// abelianDescription renders the invariant decomposition "C4 x C2" built by
// greedily extracting maximal-order independent cyclic factors.
func abelianDescription(g *Group) string {
	span := g.TrivialSubgroup()
	var factors []int
	for span.Order() < g.Order() {
		var best Perm
		bestOrder := 0
		for _, x := range g.elements {
			o := x.Order()
			if o <= bestOrder {
				continue
			}
			if span.Intersect(g.CyclicSubgroup(x)).Order() == 1 {
				best = x
				bestOrder = o
			}
		}
		if bestOrder == 0 {
			return fmt.Sprintf("group of order %d", g.Order())
		}
		factors = append(factors, bestOrder)
		gens := append(append([]Perm{}, span.elements...), best)
		elems, err := closure(g.degree, gens)
		if err != nil {
			return fmt.Sprintf("group of order %d", g.Order())
		}
		span = fromSortedElements(g.degree, gens, elems)
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = "C" + strconv.Itoa(f)
	}
	return strings.Join(parts, " x ")
}

// orderProfile maps element order to count, the cheap isomorphism
// fingerprint used for the named nonabelian groups.
func (g *Group) orderProfile() map[int]int {
	profile := map[int]int{}
	for _, e := range g.elements {
		profile[e.Order()]++
	}
	return profile
}

var namedProfiles = []struct {
	name    string
	order   int
	profile map[int]int
}{
	{"S3", 6, map[int]int{1: 1, 2: 3, 3: 2}},
	{"Q8", 8, map[int]int{1: 1, 2: 1, 4: 6}},
	{"A4", 12, map[int]int{1: 1, 2: 3, 3: 8}},
	{"S4", 24, map[int]int{1: 1, 2: 9, 3: 8, 4: 6}},
	{"A5", 60, map[int]int{1: 1, 2: 15, 3: 20, 5: 24}},
	{"S5", 120, map[int]int{1: 1, 2: 25, 3: 20, 4: 30, 5: 24, 6: 20}},
}

func (g *Group) fingerprintName() (string, bool) {
	n := g.Order()
	var profile map[int]int
	for _, candidate := range namedProfiles {
		if candidate.order != n {
			continue
		}
		if profile == nil {
			profile = g.orderProfile()
		}
		if len(profile) != len(candidate.profile) {
			continue
		}
		match := true
		for order, count := range candidate.profile {
			if profile[order] != count {
				match = false
				break
			}
		}
		if match {
			return candidate.name, true
		}
	}
	return "", false
}

// isDihedral detects the dihedral presentation: a cyclic subgroup of index
// 2 plus an involution outside it that inverts the rotation.
func (g *Group) isDihedral() bool {
	n := g.Order()
	if n < 6 || n%2 != 0 {
		return false
	}
	half := n / 2
	for _, r := range g.elements {
		if r.Order() != half {
			continue
		}
		rotations := g.CyclicSubgroup(r)
		for _, s := range g.elements {
			if s.Order() != 2 || rotations.Contains(s) {
				continue
			}
			if r.Conjugate(s).Equal(r.Inverse()) {
				return true
			}
		}
		return false
	}
	return false
}
