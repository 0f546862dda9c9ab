package tower

import (
	"strings"
	"time"

	"github.com/louisbranch/coverings.space/internal/galois"
	"github.com/louisbranch/coverings.space/internal/group"
	"github.com/louisbranch/coverings.space/internal/storage"
)

// towerRecord projects a derived covering into its stored form. Quantities
// are kept as canonical strings; the integer shadow of the cover genus is
// set only when the genus is fully known.
func towerRecord(id, input string, c *galois.Covering, now time.Time) storage.TowerRecord {
	g := c.Group()
	rec := storage.TowerRecord{
		ID:         id,
		Input:      strings.TrimSpace(input),
		Generators: generatorList(g),
		Structure:  g.StructureDescription(),
		Order:      g.Order(),
		Degree:     g.Degree(),
		BaseGenus:  c.BaseGenus().String(),
		Signature:  signatureString(c),
		CoverGenus: c.CoverGenus().String(),
		Classes:    len(c.Rows()),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if n, ok := c.CoverGenus().Int64(); ok {
		rec.CoverGenusInt = &n
	}
	return rec
}

// rowRecords projects table rows into stored rows. Unresolved cells keep
// empty genus and ramification columns so their state stays queryable.
func rowRecords(towerID string, rows []galois.TableRow, now time.Time) []storage.RowRecord {
	records := make([]storage.RowRecord, len(rows))
	for i, row := range rows {
		rec := storage.RowRecord{
			TowerID:    towerID,
			Index:      row.Index,
			Subgroup:   generatorList(row.Subgroup),
			Structure:  row.Structure,
			ClassSize:  row.ClassSize,
			DegreeUp:   row.DegreeUp,
			DegreeDown: row.DegreeDown,
			State:      row.State.String(),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if row.Genus != nil {
			rec.Genus = row.Genus.String()
			if n, ok := row.Genus.Int64(); ok {
				rec.GenusInt = &n
			}
		}
		if row.RamificationUp != nil {
			rec.RamUp = row.RamificationUp.String()
		}
		if row.RamificationDown != nil {
			rec.RamDown = row.RamificationDown.String()
		}
		if row.Err != nil {
			rec.ErrorMessage = row.Err.Error()
		}
		records[i] = rec
	}
	return records
}

// generatorList renders the generators as a comma-separated cycle list that
// group.Parse accepts back.
func generatorList(g *group.Group) string {
	parts := make([]string, 0, len(g.Generators()))
	for _, gen := range g.Generators() {
		if gen.IsIdentity() {
			continue
		}
		parts = append(parts, gen.String())
	}
	if len(parts) == 0 {
		return "()"
	}
	return strings.Join(parts, ", ")
}

// signatureString renders the per-type branch value counts in table order.
func signatureString(c *galois.Covering) string {
	terms := c.GeometricSignature()
	parts := make([]string, len(terms))
	for i, term := range terms {
		parts[i] = term.Count.String()
	}
	return strings.Join(parts, " ")
}
