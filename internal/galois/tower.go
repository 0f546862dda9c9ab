package galois

import (
	"fmt"

	"github.com/louisbranch/coverings.space/internal/group"
)

// InducedIsGalois reports whether the induced covering X_K -> Y is itself
// Galois, which holds exactly when the subgroup class of K has a single
// member.
func (c *Covering) InducedIsGalois(k *group.Group) (bool, error) {
	idx, ok := c.g.SubgroupClassIndex(k)
	if !ok {
		return false, fmt.Errorf("induced covering: %w", ErrInvalidSubgroup)
	}
	rep := c.g.SubgroupClasses()[idx]
	return len(c.g.SubgroupConjugates(rep)) == 1, nil
}

// InducedIsCyclic reports whether X_K -> Y is a cyclic covering: Galois
// with cyclic deck group G/K.
func (c *Covering) InducedIsCyclic(k *group.Group) (bool, error) {
	isGalois, err := c.InducedIsGalois(k)
	if err != nil || !isGalois {
		return false, err
	}
	idx, _ := c.g.SubgroupClassIndex(k)
	quotient, err := c.g.Quotient(c.g.SubgroupClasses()[idx])
	if err != nil {
		return false, err
	}
	return quotient.IsCyclic(), nil
}

// InducedAutomorphisms returns the deck transformations of X_K -> Y as a
// permutation group: the quotient N_G(K)/K acting on the cosets of K in
// its normalizer.
func (c *Covering) InducedAutomorphisms(k *group.Group) (*group.Group, error) {
	idx, ok := c.g.SubgroupClassIndex(k)
	if !ok {
		return nil, fmt.Errorf("induced automorphisms: %w", ErrInvalidSubgroup)
	}
	rep := c.g.SubgroupClasses()[idx]
	return c.g.Normalizer(rep).Quotient(rep)
}

// IntermediateBetween resolves the covering between two nested levels: for
// k contained in h up to conjugacy, the intermediate X_k of the covering
// X -> X_h. The result lives in the table of X_h's own covering.
func (c *Covering) IntermediateBetween(k, h *group.Group) (*Intermediate, error) {
	if _, ok := c.g.SubgroupClassIndex(k); !ok {
		return nil, fmt.Errorf("intermediate between: %w", ErrInvalidSubgroup)
	}
	upper, err := c.IntermediateCovering(h)
	if err != nil {
		return nil, err
	}
	target := upper.Group()
	candidate := k
	if !candidate.IsSubgroupOf(target) {
		candidate = nil
		for _, conj := range c.g.SubgroupConjugates(k) {
			if conj.IsSubgroupOf(target) {
				candidate = conj
				break
			}
		}
	}
	if candidate == nil {
		return nil, fmt.Errorf("intermediate between: no conjugate of %s lies in %s: %w",
			k.StructureDescription(), target.StructureDescription(), ErrInvalidSubgroup)
	}
	return upper.IntermediateCovering(candidate)
}
