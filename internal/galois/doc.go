// Package galois computes the numerical data of intermediate coverings of a
// Galois covering of compact Riemann surfaces.
//
// A covering is described by its deck group G, the genus of the base, and a
// geometric signature: for every ramification type of G (conjugacy class of
// cyclic stabilizer subgroups), how many branch values on the base carry
// that local monodromy. From this the package derives, for every subgroup
// K of G up to conjugacy, the covering X_K = X/K between X and the base:
// its degree over the base, its induced ramification, the geometric
// signature of X over X_K, and its genus via Riemann-Hurwitz.
//
// Counts and genera are Quantity values: exact integers or affine-linear
// forms in named unknowns, so a covering may be set up with a symbolic base
// genus ("g") and symbolic branch counts ("n1", "n2", ...) and still be
// transferred to every subgroup.
//
// Resolution is lazy and memoized. The covering holds one table cell per
// subgroup conjugacy class; each cell is resolved at most once and a failed
// resolution is recorded and replayed, since the computation is
// deterministic.
package galois
