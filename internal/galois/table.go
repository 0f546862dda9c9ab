package galois

import (
	"errors"
	"fmt"
	"sync"

	"github.com/louisbranch/coverings.space/internal/group"
)

// RowState is the resolution state of one table cell.
type RowState int

const (
	RowUnresolved RowState = iota
	RowResolved
	RowFailed
)

func (s RowState) String() string {
	switch s {
	case RowResolved:
		return "resolved"
	case RowFailed:
		return "failed"
	default:
		return "unresolved"
	}
}

// TableRow is the display row of one subgroup conjugacy class. The first
// six fields are filled at construction; Genus, RamificationUp and
// RamificationDown stay nil until the cell resolves.
type TableRow struct {
	Index      int
	Subgroup   *group.Group
	Structure  string
	ClassSize  int
	DegreeUp   int // degree of X -> X_H, the order of H
	DegreeDown int // degree of X_H -> Y, the index [G:H]

	Genus            *Quantity
	RamificationUp   *Quantity // ramification points of X -> X_H
	RamificationDown *Quantity // ramification points of X_H -> Y

	State RowState
	Err   error
}

type cell struct {
	state RowState
	inter *Intermediate
	err   error
}

// table memoizes one intermediate covering per subgroup conjugacy class.
// A single mutex guards all cells, so transfers for different cells
// serialize; it guarantees at-most-once resolution per cell, and the
// computation is deterministic, so failures are stored and replayed.
type table struct {
	mu    sync.Mutex
	owner *Covering
	reps  []*group.Group
	rows  []TableRow
	cells []cell
}

func newTable(c *Covering) *table {
	reps := c.g.SubgroupClasses()
	t := &table{
		owner: c,
		reps:  reps,
		rows:  make([]TableRow, len(reps)),
		cells: make([]cell, len(reps)),
	}
	for i, h := range reps {
		t.rows[i] = TableRow{
			Index:      i,
			Subgroup:   h,
			Structure:  h.StructureDescription(),
			ClassSize:  len(c.g.SubgroupConjugates(h)),
			DegreeUp:   h.Order(),
			DegreeDown: c.g.Order() / h.Order(),
			State:      RowUnresolved,
		}
	}
	return t
}

func (t *table) resolve(i int) (*Intermediate, error) {
	if i < 0 || i >= len(t.cells) {
		return nil, fmt.Errorf("table: class index %d out of range 0..%d: %w",
			i, len(t.cells)-1, ErrInvalidSubgroup)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.cells[i].state {
	case RowResolved:
		return t.cells[i].inter, nil
	case RowFailed:
		return nil, t.cells[i].err
	}

	inter, err := t.owner.transfer(i)
	if err != nil {
		t.cells[i] = cell{state: RowFailed, err: err}
		t.rows[i].State = RowFailed
		t.rows[i].Err = err
		return nil, err
	}
	t.cells[i] = cell{state: RowResolved, inter: inter}
	t.rows[i].State = RowResolved
	t.rows[i].Genus = inter.Genus()
	t.rows[i].RamificationUp = sumPoints(inter.QuotientRamification())
	t.rows[i].RamificationDown = sumPoints(inter.InducedRamification())
	return inter, nil
}

func (t *table) resolveAll() error {
	var errs []error
	for i := range t.cells {
		if _, err := t.resolve(i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *table) snapshot() []TableRow {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]TableRow, len(t.rows))
	copy(rows, t.rows)
	return rows
}

func sumPoints(pcs []PointCount) *Quantity {
	total := NewInt(0)
	for _, pc := range pcs {
		total = total.Add(pc.Points)
	}
	return total
}
