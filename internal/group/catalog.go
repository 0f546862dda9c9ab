package group

import (
	"fmt"
	"strconv"
	"strings"
)

func must(g *Group, err error) *Group {
	if err != nil {
		panic(err)
	}
	return g
}

// Trivial returns the trivial group acting on one point.
func Trivial() *Group {
	return must(New(1))
}

// Cyclic returns C_n acting on n points by rotation.
func Cyclic(n int) (*Group, error) {
	if n < 1 {
		return nil, fmt.Errorf("cyclic group needs n >= 1, got %d", n)
	}
	if n == 1 {
		return Trivial(), nil
	}
	return New(n, rotation(n))
}

// Dihedral returns the symmetry group of the regular n-gon, of order 2n.
func Dihedral(n int) (*Group, error) {
	if n < 3 {
		return nil, fmt.Errorf("dihedral group needs n >= 3, got %d", n)
	}
	images := make([]int, n)
	images[0] = 1
	for i := 2; i <= n; i++ {
		images[i-1] = n + 2 - i
	}
	reflection, err := FromImages(images)
	if err != nil {
		return nil, err
	}
	return New(n, rotation(n), reflection)
}

// Symmetric returns S_n in its natural action.
func Symmetric(n int) (*Group, error) {
	if n < 1 {
		return nil, fmt.Errorf("symmetric group needs n >= 1, got %d", n)
	}
	if n == 1 {
		return Trivial(), nil
	}
	swap, err := FromCycles(n, [][]int{{1, 2}})
	if err != nil {
		return nil, err
	}
	if n == 2 {
		return New(n, swap)
	}
	return New(n, swap, rotation(n))
}

// Alternating returns A_n, the even permutations of n points.
func Alternating(n int) (*Group, error) {
	if n < 1 {
		return nil, fmt.Errorf("alternating group needs n >= 1, got %d", n)
	}
	if n <= 2 {
		return New(n)
	}
	threeCycle, err := FromCycles(n, [][]int{{1, 2, 3}})
	if err != nil {
		return nil, err
	}
	if n == 3 {
		return New(n, threeCycle)
	}
	var long []int
	if n%2 == 1 {
		for i := 1; i <= n; i++ {
			long = append(long, i)
		}
	} else {
		for i := 2; i <= n; i++ {
			long = append(long, i)
		}
	}
	cycle, err := FromCycles(n, [][]int{long})
	if err != nil {
		return nil, err
	}
	return New(n, threeCycle, cycle)
}

// Klein4 returns the Klein four-group as double transpositions on 4 points.
func Klein4() *Group {
	a := must2(FromCycles(4, [][]int{{1, 2}, {3, 4}}))
	b := must2(FromCycles(4, [][]int{{1, 3}, {2, 4}}))
	return must(New(4, a, b))
}

// Quaternion returns Q8 in its regular representation on 8 points.
func Quaternion() *Group {
	a := must2(FromCycles(8, [][]int{{1, 2, 4, 7}, {3, 6, 8, 5}}))
	b := must2(FromCycles(8, [][]int{{1, 3, 4, 8}, {2, 5, 7, 6}}))
	return must(New(8, a, b))
}

func must2(p Perm, err error) Perm {
	if err != nil {
		panic(err)
	}
	return p
}

func rotation(n int) Perm {
	points := make([]int, n)
	for i := range points {
		points[i] = i + 1
	}
	p, err := FromCycles(n, [][]int{points})
	if err != nil {
		panic(err)
	}
	return p
}

// FromName builds a catalog group from its structure label: "1", "C6",
// "S4", "A5", "V4", "Q8", or "D8" (dihedral groups are named by order, so
// "D8" is the symmetries of the square). Cyclic groups also accept the
// "Z6" spelling.
func FromName(name string) (*Group, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	switch s {
	case "":
		return nil, fmt.Errorf("empty group name")
	case "1":
		return Trivial(), nil
	case "V", "V4":
		return Klein4(), nil
	case "Q8":
		return Quaternion(), nil
	}
	head, tail := s[0], s[1:]
	n, err := strconv.Atoi(tail)
	if err != nil {
		return nil, fmt.Errorf("unrecognized group name %q", name)
	}
	switch head {
	case 'C', 'Z':
		return Cyclic(n)
	case 'S':
		return Symmetric(n)
	case 'A':
		return Alternating(n)
	case 'D':
		if n < 6 || n%2 != 0 {
			return nil, fmt.Errorf("dihedral groups are named by order, even and at least 6: got %q", name)
		}
		return Dihedral(n / 2)
	case 'Q':
		return nil, fmt.Errorf("only Q8 is available, got %q", name)
	}
	return nil, fmt.Errorf("unrecognized group name %q", name)
}

// FromGenerators builds the group generated by a comma-separated list of
// permutations in cycle notation, e.g. "(1 2 3)(4 5), (1 2)". The degree is
// the largest point mentioned.
func FromGenerators(s string) (*Group, error) {
	parts, err := splitGenerators(s)
	if err != nil {
		return nil, err
	}
	degree := 1
	perms := make([]Perm, len(parts))
	for i, part := range parts {
		p, err := ParsePerm(part)
		if err != nil {
			return nil, err
		}
		if p.Degree() > degree {
			degree = p.Degree()
		}
		perms[i] = p
	}
	return New(degree, perms...)
}

// Parse accepts either a catalog name or a generator list, dispatching on
// the leading character.
func Parse(s string) (*Group, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "(") {
		return FromGenerators(s)
	}
	return FromName(s)
}

func splitGenerators(s string) ([]string, error) {
	depth := 0
	start := 0
	var parts []string
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ')' in %q", s)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '(' in %q", s)
	}
	parts = append(parts, s[start:])
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
		if parts[i] == "" {
			return nil, fmt.Errorf("empty generator in %q", s)
		}
	}
	return parts, nil
}
