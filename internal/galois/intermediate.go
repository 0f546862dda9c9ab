package galois

// Intermediate is the covering X_K sitting between X and the base: the
// result of transferring the parent ramification to the subgroup class of
// K. It embeds the covering X -> X_K (deck group K, base genus Genus_K,
// the transferred geometric signature), so every covering operation,
// including further intermediates, applies to it. It refers back to the
// parent table only by class index.
type Intermediate struct {
	*Covering

	classIndex    int
	inducedDegree int
	inducedRam    []PointCount
	inducedData   []ProfileCount
	inducedTotal  *Quantity
}

// ClassIndex returns the parent table row this covering resolves.
func (i *Intermediate) ClassIndex() int { return i.classIndex }

// InducedDegree returns the degree [G:K] of the induced map X_K -> Y.
func (i *Intermediate) InducedDegree() int { return i.inducedDegree }

// Genus returns the genus of X_K, the base genus of the embedded covering.
func (i *Intermediate) Genus() *Quantity { return i.BaseGenus() }

// InducedRamification lists, per induced index, the number of points of
// X_K where X_K -> Y ramifies with that index, ascending by index.
func (i *Intermediate) InducedRamification() []PointCount { return i.inducedRam }

// InducedRamificationData lists, per descending index profile, how many
// branch values of the base sit under exactly that pattern of X_K points.
func (i *Intermediate) InducedRamificationData() []ProfileCount { return i.inducedData }

// InducedTotalRamification returns the ramification term of X_K -> Y in
// Riemann-Hurwitz, the sum of (index - 1) over ramification points of X_K.
func (i *Intermediate) InducedTotalRamification() *Quantity { return i.inducedTotal }
