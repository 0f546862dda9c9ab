package galois

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/louisbranch/coverings.space/internal/group"
)

// SignatureTerm pairs a ramification type with the number of branch values
// of that type on the base.
type SignatureTerm struct {
	Type  *RamificationType
	Count *Quantity
}

// OrderCount aggregates branch values by stabilizer order.
type OrderCount struct {
	Order int
	Count *Quantity
}

// PointCount counts ramification points with a given local index.
type PointCount struct {
	Index  int
	Points *Quantity
}

// Params carries the optional inputs of NewCovering. A nil BaseGenus means
// the symbolic genus "g". A nil Signature means one symbolic count "n1",
// "n2", ... per ramification type of the group; a nil entry inside a given
// Signature defaults that slot alone.
type Params struct {
	BaseGenus *Quantity
	Signature []*Quantity
}

// Covering is a Galois covering X -> Y with deck group G, a known or
// symbolic base genus, and a geometric signature giving the number of
// branch values on Y for every ramification type of G. The derived
// signature, quotient ramification and total ramification are computed at
// construction; intermediate coverings resolve lazily through a table with
// one cell per subgroup conjugacy class.
type Covering struct {
	g         *group.Group
	baseGenus *Quantity
	terms     []SignatureTerm
	signature []OrderCount
	quotient  []PointCount
	totalRam  *Quantity
	table     *table
}

// NewCovering validates the inputs and derives the covering data. Signature
// counts align with RamificationTypes(g, false).
func NewCovering(g *group.Group, params Params) (*Covering, error) {
	if g == nil || g.Order() == 0 {
		return nil, fmt.Errorf("covering: %w", ErrInvalidGroup)
	}
	types := RamificationTypes(g, false)
	values := params.Signature
	if values != nil && len(values) != len(types) {
		return nil, fmt.Errorf("covering: %d signature counts for %d ramification types: %w",
			len(values), len(types), ErrMalformedSignature)
	}
	terms := make([]SignatureTerm, len(types))
	for i, t := range types {
		count := NewSym("n" + strconv.Itoa(i+1))
		if values != nil && values[i] != nil {
			count = values[i]
		}
		if sign, known := count.Sign(); known && sign < 0 {
			return nil, fmt.Errorf("covering: negative count %s for type %s: %w",
				count, t, ErrMalformedSignature)
		}
		terms[i] = SignatureTerm{Type: t, Count: count}
	}
	baseGenus := params.BaseGenus
	if baseGenus == nil {
		baseGenus = NewSym("g")
	}

	c := &Covering{g: g, baseGenus: baseGenus, terms: terms}
	c.deriveTotals()
	c.table = newTable(c)
	return c, nil
}

func (c *Covering) deriveTotals() {
	orders := map[int]*Quantity{}
	points := map[int]*Quantity{}
	for _, term := range c.terms {
		s := term.Type.Order()
		orders[s] = addQuantity(orders[s], term.Count)
		points[s] = addQuantity(points[s], term.Count.MulInt(int64(c.g.Order()/s)))
	}
	c.signature = sortedOrderCounts(orders)
	c.quotient = sortedPointCounts(points)
	total := NewInt(0)
	for _, pc := range c.quotient {
		total = total.Add(pc.Points.MulInt(int64(pc.Index - 1)))
	}
	c.totalRam = total
}

// Group returns the deck group.
func (c *Covering) Group() *group.Group { return c.g }

// BaseGenus returns the genus of the base surface.
func (c *Covering) BaseGenus() *Quantity { return c.baseGenus }

// GeometricSignature returns the branch counts per ramification type, in
// type order. The slice is shared; callers must not mutate it.
func (c *Covering) GeometricSignature() []SignatureTerm { return c.terms }

// Types returns the non-trivial ramification types of the deck group, in
// the order signature counts align with.
func (c *Covering) Types() []*RamificationType {
	types := make([]*RamificationType, len(c.terms))
	for i, term := range c.terms {
		types[i] = term.Type
	}
	return types
}

// Signature returns the branch counts aggregated by stabilizer order,
// ascending.
func (c *Covering) Signature() []OrderCount { return c.signature }

// QuotientRamification returns, per local index, the number of points of X
// where X -> Y ramifies with that index, ascending by index.
func (c *Covering) QuotientRamification() []PointCount { return c.quotient }

// TotalQuotientRamification returns the ramification term of X -> Y in
// Riemann-Hurwitz, the sum of (index - 1) over ramification points of X.
func (c *Covering) TotalQuotientRamification() *Quantity { return c.totalRam }

// CoverGenus returns the genus of the total space X by Riemann-Hurwitz.
func (c *Covering) CoverGenus() *Quantity {
	d := int64(c.g.Order())
	return c.baseGenus.Sub(NewInt(1)).MulInt(d).Add(NewInt(1)).Add(c.totalRam.Div(2))
}

// IntermediateCovering resolves the covering X_K for a subgroup k of the
// deck group; any conjugate of k selects the same table cell. The result is
// memoized, and a failed resolution is replayed without recomputation.
func (c *Covering) IntermediateCovering(k *group.Group) (*Intermediate, error) {
	idx, ok := c.g.SubgroupClassIndex(k)
	if !ok {
		return nil, fmt.Errorf("intermediate covering: %w", ErrInvalidSubgroup)
	}
	return c.table.resolve(idx)
}

// IntermediateCoveringAt resolves the covering of the subgroup class at a
// zero-based table index.
func (c *Covering) IntermediateCoveringAt(i int) (*Intermediate, error) {
	return c.table.resolve(i)
}

// Rows returns a snapshot of the display table, one row per subgroup class.
func (c *Covering) Rows() []TableRow { return c.table.snapshot() }

// ResolveAll resolves every table cell and returns the joined failures, if
// any.
func (c *Covering) ResolveAll() error {
	return c.table.resolveAll()
}

func addQuantity(q, x *Quantity) *Quantity {
	if q == nil {
		return x
	}
	return q.Add(x)
}

func sortedOrderCounts(m map[int]*Quantity) []OrderCount {
	out := make([]OrderCount, 0, len(m))
	for order, count := range m {
		out = append(out, OrderCount{Order: order, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func sortedPointCounts(m map[int]*Quantity) []PointCount {
	out := make([]PointCount, 0, len(m))
	for index, points := range m {
		out = append(out, PointCount{Index: index, Points: points})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
