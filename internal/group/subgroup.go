package group

import (
	"fmt"
	"sort"
)

// TrivialSubgroup returns the one-element subgroup at the group's degree.
func (g *Group) TrivialSubgroup() *Group {
	return fromElements(g.degree, []Perm{g.Identity()})
}

// IsSubgroupOf reports whether every element of g belongs to h.
func (g *Group) IsSubgroupOf(h *Group) bool {
	if h == nil || len(g.elements) > len(h.elements) {
		return false
	}
	for _, e := range g.elements {
		if !h.Contains(e) {
			return false
		}
	}
	return true
}

// Index returns [g:sub], the number of cosets of sub in g.
func (g *Group) Index(sub *Group) int {
	return len(g.elements) / len(sub.elements)
}

// Intersect returns the subgroup of elements common to g and h.
func (g *Group) Intersect(h *Group) *Group {
	var common []Perm
	for _, e := range g.elements {
		if h.Contains(e) {
			common = append(common, e)
		}
	}
	return fromElements(g.degree, common)
}

// ConjugateSubgroup returns sub^by = {x^by : x in sub}.
func (g *Group) ConjugateSubgroup(sub *Group, by Perm) *Group {
	conj := make([]Perm, len(sub.elements))
	for i, e := range sub.elements {
		conj[i] = e.Conjugate(by)
	}
	return fromElements(g.degree, conj)
}

// Normalizer returns N_g(sub) = {h in g : sub^h = sub}.
func (g *Group) Normalizer(sub *Group) *Group {
	var members []Perm
	for _, h := range g.elements {
		if g.ConjugateSubgroup(sub, h).Equal(sub) {
			members = append(members, h)
		}
	}
	return fromElements(g.degree, members)
}

// Centralizer returns C_g(x) = {h in g : x^h = x}.
func (g *Group) Centralizer(x Perm) *Group {
	var members []Perm
	for _, h := range g.elements {
		if x.Conjugate(h).Equal(x) {
			members = append(members, h)
		}
	}
	return fromElements(g.degree, members)
}

// IsNormal reports whether sub is a normal subgroup of g.
func (g *Group) IsNormal(sub *Group) bool {
	if !sub.IsSubgroupOf(g) {
		return false
	}
	for _, h := range g.gens {
		if !g.ConjugateSubgroup(sub, h).Equal(sub) {
			return false
		}
	}
	return true
}

// CyclicSubgroup returns the subgroup generated by a single element.
func (g *Group) CyclicSubgroup(x Perm) *Group {
	order := x.Order()
	elems := make([]Perm, 0, order)
	e := g.Identity()
	for i := 0; i < order; i++ {
		elems = append(elems, e)
		e = e.Mul(x)
	}
	return fromElements(g.degree, elems)
}

// Subgroups enumerates every subgroup, in stable (order, key) order. The
// lattice is generated by closing cyclic seeds against each other, which is
// exhaustive: any subgroup arises by repeatedly adjoining one generator.
func (g *Group) Subgroups() []*Group {
	if g.subgroups != nil {
		return g.subgroups
	}

	known := map[string]*Group{}
	var worklist []*Group

	add := func(h *Group) {
		key := h.Key()
		if _, ok := known[key]; ok {
			return
		}
		known[key] = h
		worklist = append(worklist, h)
	}

	// cyclic seeds, one per distinct cyclic subgroup
	seeds := map[string]*Group{}
	for _, x := range g.elements {
		c := g.CyclicSubgroup(x)
		seeds[c.Key()] = c
	}
	seedList := make([]*Group, 0, len(seeds))
	for _, c := range seeds {
		seedList = append(seedList, c)
	}
	sortGroups(seedList)
	for _, c := range seedList {
		add(c)
	}

	for cursor := 0; cursor < len(worklist); cursor++ {
		h := worklist[cursor]
		if len(h.elements) == len(g.elements) {
			continue
		}
		for _, c := range seedList {
			if c.IsSubgroupOf(h) {
				continue
			}
			gens := append(append([]Perm{}, h.gens...), c.gens...)
			elems, err := closure(g.degree, gens)
			if err != nil {
				// cannot exceed MaxOrder inside a bounded parent
				continue
			}
			add(fromSortedElements(g.degree, gens, elems))
		}
	}

	all := make([]*Group, 0, len(known))
	for _, h := range known {
		all = append(all, h)
	}
	sortGroups(all)
	g.subgroups = all
	return all
}

// SubgroupClasses returns one representative per conjugacy class of
// subgroups, in stable (order, representative key) order: the trivial
// subgroup first, the whole group last. The representative is the minimal
// member of its class.
func (g *Group) SubgroupClasses() []*Group {
	if g.subClasses != nil {
		return g.subClasses
	}
	all := g.Subgroups()
	assigned := map[string]bool{}
	var reps []*Group
	var orbits [][]*Group
	for _, h := range all {
		if assigned[h.Key()] {
			continue
		}
		orbit := g.subgroupOrbit(h)
		for _, conj := range orbit {
			assigned[conj.Key()] = true
		}
		reps = append(reps, orbit[0])
		orbits = append(orbits, orbit)
	}
	order := make([]int, len(reps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if len(reps[i].elements) != len(reps[j].elements) {
			return len(reps[i].elements) < len(reps[j].elements)
		}
		return reps[i].Key() < reps[j].Key()
	})
	sorted := make([]*Group, len(reps))
	idx := map[string]int{}
	for pos, i := range order {
		sorted[pos] = reps[i]
		for _, conj := range orbits[i] {
			idx[conj.Key()] = pos
		}
	}
	g.subClasses = sorted
	g.subClassIdx = idx
	return sorted
}

// SubgroupClassIndex resolves any subgroup of g to the index of its
// conjugacy class within SubgroupClasses, or false when sub is not a
// subgroup of g.
func (g *Group) SubgroupClassIndex(sub *Group) (int, bool) {
	if sub == nil || !sub.IsSubgroupOf(g) {
		return 0, false
	}
	g.SubgroupClasses()
	i, ok := g.subClassIdx[sub.Key()]
	return i, ok
}

// SubgroupConjugates returns the orbit of sub under conjugation by g,
// deduplicated, minimal member first.
func (g *Group) SubgroupConjugates(sub *Group) []*Group {
	return g.subgroupOrbit(sub)
}

func (g *Group) subgroupOrbit(sub *Group) []*Group {
	seen := map[string]*Group{}
	for _, h := range g.elements {
		conj := g.ConjugateSubgroup(sub, h)
		seen[conj.Key()] = conj
	}
	orbit := make([]*Group, 0, len(seen))
	for _, conj := range seen {
		orbit = append(orbit, conj)
	}
	sortGroups(orbit)
	return orbit
}

// Quotient returns g/k as a permutation group via the action on cosets of
// k, for k normal in g. The resulting degree is the index [g:k].
func (g *Group) Quotient(k *Group) (*Group, error) {
	if k == nil || !k.IsSubgroupOf(g) {
		return nil, fmt.Errorf("quotient: not a subgroup")
	}
	if !g.IsNormal(k) {
		return nil, fmt.Errorf("quotient: subgroup %s is not normal", k)
	}
	cosets := g.cosets(k)
	cosetIndex := map[string]int{}
	for i, coset := range cosets {
		for _, e := range coset {
			cosetIndex[e.Key()] = i
		}
	}
	images := make([]Perm, 0, len(g.gens))
	for _, gen := range g.gens {
		table := make([]int, len(cosets))
		for i, coset := range cosets {
			table[i] = cosetIndex[coset[0].Mul(gen).Key()] + 1
		}
		img, err := FromImages(table)
		if err != nil {
			return nil, fmt.Errorf("quotient: coset action: %w", err)
		}
		images = append(images, img)
	}
	return New(len(cosets), images...)
}

// cosets returns the right cosets of k in g, each sorted, ordered by their
// minimal member.
func (g *Group) cosets(k *Group) [][]Perm {
	assigned := map[string]bool{}
	var cosets [][]Perm
	for _, e := range g.elements {
		if assigned[e.Key()] {
			continue
		}
		coset := make([]Perm, 0, len(k.elements))
		for _, x := range k.elements {
			member := x.Mul(e)
			coset = append(coset, member)
			assigned[member.Key()] = true
		}
		sortPerms(coset)
		cosets = append(cosets, coset)
	}
	return cosets
}

func sortGroups(groups []*Group) {
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].elements) != len(groups[j].elements) {
			return len(groups[i].elements) < len(groups[j].elements)
		}
		return groups[i].Key() < groups[j].Key()
	})
}
