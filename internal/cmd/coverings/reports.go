package coverings

import (
	"github.com/louisbranch/coverings.space/internal/galois"
	"github.com/louisbranch/coverings.space/internal/tower"
)

// JSON report shapes for -json output. Quantities are canonical strings so
// symbolic values survive the round trip.

type rowReport struct {
	Index            int    `json:"index"`
	Subgroup         string `json:"subgroup"`
	Structure        string `json:"structure"`
	ClassSize        int    `json:"class_size"`
	DegreeUp         int    `json:"degree_up"`
	DegreeDown       int    `json:"degree_down"`
	Genus            string `json:"genus,omitempty"`
	RamificationUp   string `json:"ramification_up,omitempty"`
	RamificationDown string `json:"ramification_down,omitempty"`
	State            string `json:"state"`
	Error            string `json:"error,omitempty"`
}

type towerReport struct {
	ID                string      `json:"id,omitempty"`
	Structure         string      `json:"structure"`
	Order             int         `json:"order"`
	Degree            int         `json:"degree"`
	BaseGenus         string      `json:"base_genus"`
	Signature         string      `json:"signature"`
	CoverGenus        string      `json:"cover_genus"`
	TotalRamification string      `json:"total_ramification"`
	Rows              []rowReport `json:"rows"`
}

type pointReport struct {
	Index  int    `json:"index"`
	Points string `json:"points"`
}

type profileReport struct {
	Profile []int  `json:"profile"`
	Count   string `json:"count"`
}

type intermediateOutput struct {
	Structure         string          `json:"structure"`
	Order             int             `json:"order"`
	InducedDegree     int             `json:"induced_degree"`
	Genus             string          `json:"genus"`
	TotalRamification string          `json:"total_ramification"`
	Ramification      []pointReport   `json:"ramification"`
	Profiles          []profileReport `json:"profiles"`
}

type classReport struct {
	Representative string `json:"representative"`
	Size           int    `json:"size"`
}

type rationalOutput struct {
	Representative string        `json:"representative"`
	Len            int           `json:"len"`
	Classes        []classReport `json:"classes"`
}

type branchValueReport struct {
	Monodromy string `json:"monodromy"`
	Type      []int  `json:"type"`
	Deg       int    `json:"deg"`
}

func computeReport(result *tower.ComputeResult) towerReport {
	c := result.Covering
	report := towerReport{
		ID:                result.ID,
		Structure:         c.Group().StructureDescription(),
		Order:             c.Group().Order(),
		Degree:            c.Group().Degree(),
		BaseGenus:         c.BaseGenus().String(),
		Signature:         signatureString(c),
		CoverGenus:        c.CoverGenus().String(),
		TotalRamification: c.TotalQuotientRamification().String(),
		Rows:              make([]rowReport, len(result.Rows)),
	}
	for i, row := range result.Rows {
		entry := rowReport{
			Index:      row.Index,
			Subgroup:   row.Subgroup.String(),
			Structure:  row.Structure,
			ClassSize:  row.ClassSize,
			DegreeUp:   row.DegreeUp,
			DegreeDown: row.DegreeDown,
			State:      row.State.String(),
		}
		if row.Genus != nil {
			entry.Genus = row.Genus.String()
		}
		if row.RamificationUp != nil {
			entry.RamificationUp = row.RamificationUp.String()
		}
		if row.RamificationDown != nil {
			entry.RamificationDown = row.RamificationDown.String()
		}
		if row.Err != nil {
			entry.Error = row.Err.Error()
		}
		report.Rows[i] = entry
	}
	return report
}

func intermediateReport(inter *galois.Intermediate) intermediateOutput {
	report := intermediateOutput{
		Structure:         inter.Group().StructureDescription(),
		Order:             inter.Group().Order(),
		InducedDegree:     inter.InducedDegree(),
		Genus:             inter.Genus().String(),
		TotalRamification: inter.InducedTotalRamification().String(),
		Ramification:      make([]pointReport, 0, len(inter.InducedRamification())),
		Profiles:          make([]profileReport, 0, len(inter.InducedRamificationData())),
	}
	for _, pc := range inter.InducedRamification() {
		report.Ramification = append(report.Ramification, pointReport{
			Index:  pc.Index,
			Points: pc.Points.String(),
		})
	}
	for _, profile := range inter.InducedRamificationData() {
		report.Profiles = append(report.Profiles, profileReport{
			Profile: profile.Profile,
			Count:   profile.Count.String(),
		})
	}
	return report
}

func rationalReport(rc *galois.RationalClass) rationalOutput {
	report := rationalOutput{
		Representative: rc.Representative().String(),
		Len:            rc.Len(),
		Classes:        make([]classReport, 0, len(rc.Classes())),
	}
	for _, class := range rc.Classes() {
		report.Classes = append(report.Classes, classReport{
			Representative: class[0].String(),
			Size:           len(class),
		})
	}
	return report
}
