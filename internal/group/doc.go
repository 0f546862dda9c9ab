// Package group implements finite permutation groups and the structural
// queries the covering engine needs: conjugacy classes, subgroup classes,
// normalizers, intersections, and quotient groups.
//
// # Conventions
//
// Permutations act on the points 1..n. Products compose left to right:
// (p * q)(i) = q(p(i)), and conjugation is x^h = h⁻¹·x·h, so x^h maps h(a)
// to h(b) whenever x maps a to b. Permutations of different degrees are
// compared and combined by extending the shorter one with fixed points.
//
// # Determinism
//
// Every enumeration (elements, conjugacy classes, subgroup classes) has a
// stable order: elements sort lexicographically by image table, classes by
// their minimal member, subgroup classes by (order, minimal representative).
// Repeated runs over the same group produce identical orderings.
//
// # Limits
//
// Groups are enumerated explicitly and subgroup lattices are generated by
// closure, so the package is intended for small groups (orders in the
// hundreds). New rejects groups larger than MaxOrder.
package group
