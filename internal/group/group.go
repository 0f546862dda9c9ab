package group

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MaxOrder bounds explicit element enumeration. Groups past this size are
// rejected at construction rather than ground through.
const MaxOrder = 10080

// ErrTooLarge reports a group whose enumeration exceeds MaxOrder.
var ErrTooLarge = errors.New("group too large")

// Group is a finite permutation group with a fixed point degree. All
// structural queries are cached after first use; a Group is immutable once
// constructed and safe for concurrent reads after its caches are built by
// a single resolving caller.
type Group struct {
	degree   int
	gens     []Perm
	elements []Perm
	index    map[string]int

	classes     [][]Perm
	classIndex  map[string]int
	subgroups   []*Group
	subClasses  []*Group
	subClassIdx map[string]int
}

// New enumerates the group generated by gens on the points 1..degree.
// Generators moving points past the degree are rejected, as are groups
// larger than MaxOrder.
func New(degree int, gens ...Perm) (*Group, error) {
	if degree < 1 {
		return nil, fmt.Errorf("degree %d must be at least 1", degree)
	}
	for _, g := range gens {
		for pt := degree + 1; pt <= g.Degree(); pt++ {
			if g.Image(pt) != pt {
				return nil, fmt.Errorf("generator %s moves point %d past degree %d", g, g.Image(pt), degree)
			}
		}
	}
	normalized := make([]Perm, len(gens))
	for i, g := range gens {
		normalized[i] = Perm{images: g.extend(degree)}
	}

	elements, err := closure(degree, normalized)
	if err != nil {
		return nil, err
	}
	return fromSortedElements(degree, normalized, elements), nil
}

// closure enumerates the subgroup generated by gens by breadth-first
// right multiplication, erroring past MaxOrder.
func closure(degree int, gens []Perm) ([]Perm, error) {
	id := Identity(degree)
	seen := map[string]Perm{id.Key(): id}
	frontier := []Perm{id}
	for len(frontier) > 0 {
		var next []Perm
		for _, e := range frontier {
			for _, g := range gens {
				product := e.Mul(g)
				key := product.Key()
				if _, ok := seen[key]; ok {
					continue
				}
				if len(seen) >= MaxOrder {
					return nil, fmt.Errorf("%w: order exceeds %d", ErrTooLarge, MaxOrder)
				}
				seen[key] = product
				next = append(next, product)
			}
		}
		frontier = next
	}
	elements := make([]Perm, 0, len(seen))
	for _, e := range seen {
		elements = append(elements, e)
	}
	sortPerms(elements)
	return elements, nil
}

// fromElements wraps an already-closed element set as a Group.
func fromElements(degree int, elems []Perm) *Group {
	sorted := make([]Perm, len(elems))
	copy(sorted, elems)
	sortPerms(sorted)
	return fromSortedElements(degree, sorted, sorted)
}

func fromSortedElements(degree int, gens, elements []Perm) *Group {
	index := make(map[string]int, len(elements))
	for i, e := range elements {
		index[e.Key()] = i
	}
	return &Group{degree: degree, gens: gens, elements: elements, index: index}
}

func sortPerms(perms []Perm) {
	sort.Slice(perms, func(i, j int) bool {
		a, b := perms[i].images, perms[j].images
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}

// Order returns the number of elements.
func (g *Group) Order() int { return len(g.elements) }

// Degree returns the number of points acted on.
func (g *Group) Degree() int { return g.degree }

// Identity returns the identity element.
func (g *Group) Identity() Perm { return Identity(g.degree) }

// Generators returns the generating set the group was built from. Groups
// assembled from element sets report their full element list.
func (g *Group) Generators() []Perm { return g.gens }

// Elements returns all elements in stable lexicographic order. The slice
// is shared; callers must not mutate it.
func (g *Group) Elements() []Perm { return g.elements }

// Contains reports membership, extending or trimming fixed points as needed.
func (g *Group) Contains(p Perm) bool {
	for pt := g.degree + 1; pt <= p.Degree(); pt++ {
		if p.Image(pt) != pt {
			return false
		}
	}
	_, ok := g.index[p.Key()]
	return ok
}

// IsTransitive reports whether the group has a single orbit on 1..degree.
func (g *Group) IsTransitive() bool {
	return len(g.Orbits()) == 1
}

// Orbits returns the orbits of the natural action, each sorted, ordered by
// least point.
func (g *Group) Orbits() [][]int {
	seen := make([]bool, g.degree)
	var orbits [][]int
	for start := 1; start <= g.degree; start++ {
		if seen[start-1] {
			continue
		}
		orbit := []int{start}
		seen[start-1] = true
		for cursor := 0; cursor < len(orbit); cursor++ {
			for _, gen := range g.gens {
				img := gen.Image(orbit[cursor])
				if !seen[img-1] {
					seen[img-1] = true
					orbit = append(orbit, img)
				}
			}
		}
		sort.Ints(orbit)
		orbits = append(orbits, orbit)
	}
	return orbits
}

// ConjugacyClasses partitions the elements into conjugacy classes. Classes
// are sorted internally and ordered by their minimal member, so the identity
// class comes first.
func (g *Group) ConjugacyClasses() [][]Perm {
	if g.classes != nil {
		return g.classes
	}
	assigned := make([]bool, len(g.elements))
	classIndex := make(map[string]int)
	var classes [][]Perm
	for i, x := range g.elements {
		if assigned[i] {
			continue
		}
		members := map[string]Perm{}
		for _, h := range g.elements {
			conj := x.Conjugate(h)
			members[conj.Key()] = conj
		}
		class := make([]Perm, 0, len(members))
		for key, m := range members {
			class = append(class, m)
			assigned[g.index[key]] = true
			classIndex[key] = len(classes)
		}
		sortPerms(class)
		classes = append(classes, class)
	}
	g.classes = classes
	g.classIndex = classIndex
	return classes
}

// ConjugacyClass returns the class of x, or false if x is not a member.
func (g *Group) ConjugacyClass(x Perm) ([]Perm, bool) {
	if !g.Contains(x) {
		return nil, false
	}
	classes := g.ConjugacyClasses()
	return classes[g.classIndex[x.Key()]], true
}

// IsAbelian reports whether all generators commute.
func (g *Group) IsAbelian() bool {
	for i, a := range g.gens {
		for _, b := range g.gens[i+1:] {
			if !a.Mul(b).Equal(b.Mul(a)) {
				return false
			}
		}
	}
	return true
}

// IsCyclic reports whether a single element generates the group.
func (g *Group) IsCyclic() bool {
	_, ok := g.CyclicGenerator()
	return ok
}

// CyclicGenerator returns the first element (in stable order) whose order
// equals the group order, and whether one exists.
func (g *Group) CyclicGenerator() (Perm, bool) {
	for _, e := range g.elements {
		if e.Order() == len(g.elements) {
			return e, true
		}
	}
	return Perm{}, false
}

// Exponent returns the lcm of all element orders.
func (g *Group) Exponent() int {
	exp := 1
	for _, e := range g.elements {
		exp = lcm(exp, e.Order())
	}
	return exp
}

// Equal compares groups as element sets.
func (g *Group) Equal(h *Group) bool {
	if g == h {
		return true
	}
	if h == nil || len(g.elements) != len(h.elements) {
		return false
	}
	for _, e := range g.elements {
		if !h.Contains(e) {
			return false
		}
	}
	return true
}

// Key returns a canonical identity for the element set, usable as a map key.
func (g *Group) Key() string {
	keys := make([]string, len(g.elements))
	for i, e := range g.elements {
		keys[i] = e.Key()
	}
	return strings.Join(keys, ";")
}

// String renders the generators, or the order for generator-free groups.
func (g *Group) String() string {
	if len(g.gens) == 0 || len(g.elements) == 1 {
		return "<()>"
	}
	parts := make([]string, 0, len(g.gens))
	for _, gen := range g.gens {
		if gen.IsIdentity() {
			continue
		}
		parts = append(parts, gen.String())
	}
	if len(parts) == 0 {
		return "<()>"
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
