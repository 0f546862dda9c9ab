package galois

import (
	"math/big"
	"sort"
	"strings"
)

// Quantity is an exact count or genus that may depend on named unknowns: an
// affine-linear form with rational coefficients, such as "2*g + n1 - 2".
// A Quantity with no unknown terms is known. Quantities are immutable;
// arithmetic returns new values and simplification is purely syntactic
// (coefficients of the same unknown combine, zero terms drop).
type Quantity struct {
	constant *big.Rat
	terms    map[string]*big.Rat
}

// NewInt returns a known integer quantity.
func NewInt(n int64) *Quantity {
	return &Quantity{constant: big.NewRat(n, 1)}
}

// NewSym returns the unknown named name.
func NewSym(name string) *Quantity {
	return &Quantity{
		constant: new(big.Rat),
		terms:    map[string]*big.Rat{name: big.NewRat(1, 1)},
	}
}

// Known reports whether the quantity carries no unknowns.
func (q *Quantity) Known() bool { return len(q.terms) == 0 }

// IsZero reports whether the quantity is known and zero.
func (q *Quantity) IsZero() bool {
	return q.Known() && q.constant.Sign() == 0
}

// Sign returns the sign of a known quantity; ok is false for unknowns.
func (q *Quantity) Sign() (int, bool) {
	if !q.Known() {
		return 0, false
	}
	return q.constant.Sign(), true
}

// Int64 returns the value of a known integral quantity.
func (q *Quantity) Int64() (int64, bool) {
	if !q.Known() || !q.constant.IsInt() || !q.constant.Num().IsInt64() {
		return 0, false
	}
	return q.constant.Num().Int64(), true
}

// Rat returns a copy of the value of a known quantity.
func (q *Quantity) Rat() (*big.Rat, bool) {
	if !q.Known() {
		return nil, false
	}
	return new(big.Rat).Set(q.constant), true
}

// Unknowns lists the unknown names in display order.
func (q *Quantity) Unknowns() []string {
	names := make([]string, 0, len(q.terms))
	for name := range q.terms {
		names = append(names, name)
	}
	sortNames(names)
	return names
}

func (q *Quantity) clone() *Quantity {
	out := &Quantity{constant: new(big.Rat).Set(q.constant)}
	if len(q.terms) > 0 {
		out.terms = make(map[string]*big.Rat, len(q.terms))
		for name, coeff := range q.terms {
			out.terms[name] = new(big.Rat).Set(coeff)
		}
	}
	return out
}

func (q *Quantity) prune() *Quantity {
	for name, coeff := range q.terms {
		if coeff.Sign() == 0 {
			delete(q.terms, name)
		}
	}
	if len(q.terms) == 0 {
		q.terms = nil
	}
	return q
}

// Add returns q + other.
func (q *Quantity) Add(other *Quantity) *Quantity {
	out := q.clone()
	out.constant.Add(out.constant, other.constant)
	for name, coeff := range other.terms {
		if cur, ok := out.terms[name]; ok {
			cur.Add(cur, coeff)
			continue
		}
		if out.terms == nil {
			out.terms = make(map[string]*big.Rat, len(other.terms))
		}
		out.terms[name] = new(big.Rat).Set(coeff)
	}
	return out.prune()
}

// Sub returns q - other.
func (q *Quantity) Sub(other *Quantity) *Quantity {
	return q.Add(other.scale(big.NewRat(-1, 1)))
}

// MulInt returns q scaled by n.
func (q *Quantity) MulInt(n int64) *Quantity {
	return q.scale(big.NewRat(n, 1))
}

// Div returns q divided by n, exactly. n must be nonzero.
func (q *Quantity) Div(n int64) *Quantity {
	return q.scale(big.NewRat(1, n))
}

func (q *Quantity) scale(by *big.Rat) *Quantity {
	out := q.clone()
	out.constant.Mul(out.constant, by)
	for _, coeff := range out.terms {
		coeff.Mul(coeff, by)
	}
	return out.prune()
}

// Equal compares canonical forms.
func (q *Quantity) Equal(other *Quantity) bool {
	if other == nil {
		return false
	}
	if q.constant.Cmp(other.constant) != 0 || len(q.terms) != len(other.terms) {
		return false
	}
	for name, coeff := range q.terms {
		oc, ok := other.terms[name]
		if !ok || coeff.Cmp(oc) != 0 {
			return false
		}
	}
	return true
}

// String renders the form with unknowns first and the constant last:
// "2*g + n1 - 2", "n1", "0".
func (q *Quantity) String() string {
	var b strings.Builder
	for _, name := range q.Unknowns() {
		writeTerm(&b, q.terms[name], name)
	}
	if q.constant.Sign() != 0 || b.Len() == 0 {
		writeTerm(&b, q.constant, "")
	}
	return b.String()
}

var one = big.NewRat(1, 1)

func writeTerm(b *strings.Builder, coeff *big.Rat, name string) {
	switch {
	case b.Len() == 0 && coeff.Sign() < 0:
		b.WriteString("-")
	case b.Len() > 0 && coeff.Sign() < 0:
		b.WriteString(" - ")
	case b.Len() > 0:
		b.WriteString(" + ")
	}
	abs := new(big.Rat).Abs(coeff)
	if name == "" {
		b.WriteString(abs.RatString())
		return
	}
	if abs.Cmp(one) != 0 {
		b.WriteString(abs.RatString())
		b.WriteString("*")
	}
	b.WriteString(name)
}

// sortNames orders shorter names first so "n2" precedes "n10" and "g"
// leads every signature unknown.
func sortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
}
