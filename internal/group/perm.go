package group

import (
	"fmt"
	"strconv"
	"strings"
)

// Perm is a permutation of the points 1..n, stored as an image table.
// The zero value is the empty permutation (identity on no points).
type Perm struct {
	// images[i] is the zero-based image of point i+1.
	images []int
}

// Identity returns the identity permutation on 1..degree.
func Identity(degree int) Perm {
	images := make([]int, degree)
	for i := range images {
		images[i] = i
	}
	return Perm{images: images}
}

// FromImages builds a permutation from a one-based image table: images[i]
// is the image of point i+1. It rejects tables that are not bijections.
func FromImages(images []int) (Perm, error) {
	n := len(images)
	seen := make([]bool, n)
	internal := make([]int, n)
	for i, img := range images {
		if img < 1 || img > n {
			return Perm{}, fmt.Errorf("image %d of point %d out of range 1..%d", img, i+1, n)
		}
		if seen[img-1] {
			return Perm{}, fmt.Errorf("image %d repeated", img)
		}
		seen[img-1] = true
		internal[i] = img - 1
	}
	return Perm{images: internal}, nil
}

// FromCycles builds a permutation on 1..degree from disjoint cycles of
// one-based points. Points left out of every cycle are fixed.
func FromCycles(degree int, cycles [][]int) (Perm, error) {
	if degree < 0 {
		return Perm{}, fmt.Errorf("negative degree %d", degree)
	}
	p := Identity(degree)
	seen := make([]bool, degree)
	for _, cycle := range cycles {
		for i, pt := range cycle {
			if pt < 1 || pt > degree {
				return Perm{}, fmt.Errorf("point %d out of range 1..%d", pt, degree)
			}
			if seen[pt-1] {
				return Perm{}, fmt.Errorf("point %d repeated across cycles", pt)
			}
			seen[pt-1] = true
			next := cycle[(i+1)%len(cycle)]
			p.images[pt-1] = next - 1
		}
	}
	return p, nil
}

// ParsePerm parses cycle notation such as "(1 2 3)(4 5)". Points may be
// separated by spaces or commas. The degree is the largest point mentioned;
// "()" is the identity on no points.
func ParsePerm(s string) (Perm, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Perm{}, fmt.Errorf("empty permutation")
	}
	var cycles [][]int
	degree := 0
	rest := s
	for rest != "" {
		rest = strings.TrimSpace(rest)
		if !strings.HasPrefix(rest, "(") {
			return Perm{}, fmt.Errorf("expected '(' in %q", s)
		}
		end := strings.Index(rest, ")")
		if end < 0 {
			return Perm{}, fmt.Errorf("unterminated cycle in %q", s)
		}
		body := rest[1:end]
		rest = rest[end+1:]
		fields := strings.FieldsFunc(body, func(r rune) bool { return r == ' ' || r == ',' })
		if len(fields) == 0 {
			continue
		}
		cycle := make([]int, 0, len(fields))
		for _, f := range fields {
			pt, err := strconv.Atoi(f)
			if err != nil {
				return Perm{}, fmt.Errorf("point %q in %q: %w", f, s, err)
			}
			if pt < 1 {
				return Perm{}, fmt.Errorf("point %d must be positive", pt)
			}
			if pt > degree {
				degree = pt
			}
			cycle = append(cycle, pt)
		}
		cycles = append(cycles, cycle)
	}
	return FromCycles(degree, cycles)
}

// Degree returns the number of points the permutation is declared on.
func (p Perm) Degree() int { return len(p.images) }

// Image returns the one-based image of the one-based point. Points beyond
// the degree are fixed.
func (p Perm) Image(point int) int {
	if point < 1 {
		return point
	}
	if point > len(p.images) {
		return point
	}
	return p.images[point-1] + 1
}

// extend returns the image table padded with fixed points up to degree.
func (p Perm) extend(degree int) []int {
	if len(p.images) >= degree {
		return p.images
	}
	out := make([]int, degree)
	copy(out, p.images)
	for i := len(p.images); i < degree; i++ {
		out[i] = i
	}
	return out
}

// Mul returns the product p*q, applying p first and then q.
func (p Perm) Mul(q Perm) Perm {
	n := max(len(p.images), len(q.images))
	a := p.extend(n)
	b := q.extend(n)
	out := make([]int, n)
	for i := range out {
		out[i] = b[a[i]]
	}
	return Perm{images: out}
}

// Inverse returns the inverse permutation.
func (p Perm) Inverse() Perm {
	out := make([]int, len(p.images))
	for i, img := range p.images {
		out[img] = i
	}
	return Perm{images: out}
}

// Power returns p^k for any integer k, with p^0 the identity.
func (p Perm) Power(k int) Perm {
	base := p
	if k < 0 {
		base = p.Inverse()
		k = -k
	}
	result := Identity(len(p.images))
	for ; k > 0; k >>= 1 {
		if k&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result
}

// Conjugate returns p^h = h⁻¹·p·h.
func (p Perm) Conjugate(h Perm) Perm {
	return h.Inverse().Mul(p).Mul(h)
}

// Order returns the multiplicative order: the lcm of the cycle lengths.
func (p Perm) Order() int {
	order := 1
	for _, length := range p.cycleLengths() {
		order = lcm(order, length)
	}
	return order
}

// IsIdentity reports whether every point is fixed.
func (p Perm) IsIdentity() bool {
	for i, img := range p.images {
		if img != i {
			return false
		}
	}
	return true
}

// Equal compares permutations as maps of points, ignoring trailing fixed
// points, so (1 2) on 2 points equals (1 2) on 5 points.
func (p Perm) Equal(q Perm) bool {
	n := max(len(p.images), len(q.images))
	a := p.extend(n)
	b := q.extend(n)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical string identity, stable under fixed-point padding.
func (p Perm) Key() string {
	last := len(p.images)
	for last > 0 && p.images[last-1] == last-1 {
		last--
	}
	if last == 0 {
		return "()"
	}
	var b strings.Builder
	for i := 0; i < last; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(p.images[i] + 1))
	}
	return b.String()
}

// Cycles returns the non-trivial cycles in canonical order: each cycle
// starts with its smallest point, cycles sorted by first point.
func (p Perm) Cycles() [][]int {
	var cycles [][]int
	seen := make([]bool, len(p.images))
	for start := range p.images {
		if seen[start] || p.images[start] == start {
			continue
		}
		cycle := []int{start + 1}
		seen[start] = true
		for next := p.images[start]; next != start; next = p.images[next] {
			seen[next] = true
			cycle = append(cycle, next+1)
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}

// CycleType returns the cycle type as a descending partition of the degree,
// fixed points included as 1s.
func (p Perm) CycleType() []int {
	lengths := p.cycleLengths()
	moved := 0
	for _, length := range lengths {
		moved += length
	}
	for i := moved; i < len(p.images); i++ {
		lengths = append(lengths, 1)
	}
	// descending
	for i := 0; i < len(lengths); i++ {
		for j := i + 1; j < len(lengths); j++ {
			if lengths[j] > lengths[i] {
				lengths[i], lengths[j] = lengths[j], lengths[i]
			}
		}
	}
	return lengths
}

// cycleLengths returns the lengths of the non-trivial cycles.
func (p Perm) cycleLengths() []int {
	var lengths []int
	seen := make([]bool, len(p.images))
	for start := range p.images {
		if seen[start] || p.images[start] == start {
			continue
		}
		length := 1
		seen[start] = true
		for next := p.images[start]; next != start; next = p.images[next] {
			seen[next] = true
			length++
		}
		lengths = append(lengths, length)
	}
	return lengths
}

// String renders cycle notation, "()" for the identity.
func (p Perm) String() string {
	cycles := p.Cycles()
	if len(cycles) == 0 {
		return "()"
	}
	var b strings.Builder
	for _, cycle := range cycles {
		b.WriteByte('(')
		for i, pt := range cycle {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(pt))
		}
		b.WriteByte(')')
	}
	return b.String()
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
