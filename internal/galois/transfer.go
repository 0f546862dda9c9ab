package galois

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/louisbranch/coverings.space/internal/group"
)

// ProfileCount counts parent branch values by the descending pattern of
// induced indexes above them: a branch value with profile (4, 2, 2) has
// one point of X_K of index 4 and two of index 2 over it.
type ProfileCount struct {
	Profile []int
	Count   *Quantity
}

type profileEntry struct {
	profile []int
	count   *Quantity
}

// transfer computes the intermediate covering for the subgroup class at
// classIdx. The table serializes calls, so transfer itself does no locking.
//
// For every parent signature type T, the conjugates of its stabilizer are
// intersected with K; the orbit count of intersections matching each type
// T' of K, scaled by the normalizer index ratio, gives the number of X_K
// points per branch value where the induced index is |T|/|T'|.
func (c *Covering) transfer(classIdx int) (*Intermediate, error) {
	k := c.g.SubgroupClasses()[classIdx]
	if k.Order() == c.g.Order() {
		// X_G is the base itself; nothing to transfer.
		return &Intermediate{
			Covering:      c,
			classIndex:    classIdx,
			inducedDegree: 1,
			inducedTotal:  NewInt(0),
		}, nil
	}

	kTypes := RamificationTypes(k, true)
	sigValues := make([]*Quantity, len(kTypes)-1)
	for i := range sigValues {
		sigValues[i] = NewInt(0)
	}
	inducedPoints := map[int]*Quantity{}
	profiles := map[string]*profileEntry{}

	for _, term := range c.terms {
		stab := term.Type.Subgroup()
		orbit := c.g.SubgroupConjugates(stab)
		meets := make([]*group.Group, len(orbit))
		for i, conj := range orbit {
			meets[i] = k.Intersect(conj)
		}
		ratioG := c.g.Normalizer(stab).Order() / stab.Order()

		var profile []int
		for j, kt := range kTypes {
			rep := kt.Subgroup()
			matched := 0
			for _, m := range meets {
				if m.Equal(rep) {
					matched++
				}
			}
			if matched == 0 {
				continue
			}
			ratioK := k.Normalizer(rep).Order() / rep.Order()
			if matched*ratioG%ratioK != 0 {
				return nil, fmt.Errorf("transfer to %s: type %s yields %d*%d/%d points per branch value: %w",
					k.StructureDescription(), term.Type, matched, ratioG, ratioK, ErrInconsistentParent)
			}
			perValue := matched * ratioG / ratioK
			images := term.Count.MulInt(int64(perValue))
			if j > 0 {
				sigValues[j-1] = sigValues[j-1].Add(images)
			}
			mult := stab.Order() / rep.Order()
			if mult == 1 || term.Count.IsZero() {
				continue
			}
			inducedPoints[mult] = addQuantity(inducedPoints[mult], images)
			for n := 0; n < perValue; n++ {
				profile = append(profile, mult)
			}
		}

		if len(profile) > 0 && !term.Count.IsZero() {
			sort.Sort(sort.Reverse(sort.IntSlice(profile)))
			key := profileKey(profile)
			if entry, ok := profiles[key]; ok {
				entry.count = entry.count.Add(term.Count)
			} else {
				profiles[key] = &profileEntry{profile: profile, count: term.Count}
			}
		}
	}

	inducedRam := sortedPointCounts(inducedPoints)
	total := NewInt(0)
	for _, pc := range inducedRam {
		total = total.Add(pc.Points.MulInt(int64(pc.Index - 1)))
	}
	degree := c.g.Order() / k.Order()
	genus := c.baseGenus.Sub(NewInt(1)).MulInt(int64(degree)).Add(NewInt(1)).Add(total.Div(2))

	sub, err := NewCovering(k, Params{BaseGenus: genus, Signature: sigValues})
	if err != nil {
		return nil, fmt.Errorf("transfer to %s: %w", k.StructureDescription(), err)
	}
	return &Intermediate{
		Covering:      sub,
		classIndex:    classIdx,
		inducedDegree: degree,
		inducedRam:    inducedRam,
		inducedData:   sortedProfiles(profiles),
		inducedTotal:  total,
	}, nil
}

func profileKey(profile []int) string {
	parts := make([]string, len(profile))
	for i, m := range profile {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}

func sortedProfiles(m map[string]*profileEntry) []ProfileCount {
	out := make([]ProfileCount, 0, len(m))
	for _, entry := range m {
		out = append(out, ProfileCount{Profile: entry.profile, Count: entry.count})
	}
	// larger leading indexes first, longer profiles first on ties
	sort.Slice(out, func(i, j int) bool {
		return lessProfile(out[j].Profile, out[i].Profile)
	})
	return out
}

// lessProfile compares profiles entrywise, then by length.
func lessProfile(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
