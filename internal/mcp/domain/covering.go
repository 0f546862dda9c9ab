package domain

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/coverings.space/internal/galois"
	"github.com/louisbranch/coverings.space/internal/group"
	"github.com/louisbranch/coverings.space/internal/tower"
)

// CoveringComputeInput represents the MCP tool input for covering computation.
type CoveringComputeInput struct {
	Group     string  `json:"group" jsonschema:"deck group, a catalog name such as S4 or a generator list such as (1 2), (1 2 3)"`
	BaseGenus *int64  `json:"base_genus,omitempty" jsonschema:"genus of the base surface, symbolic g when omitted"`
	Signature []int64 `json:"signature,omitempty" jsonschema:"branch value count per ramification type, symbolic counts when omitted"`
	Resolve   bool    `json:"resolve,omitempty" jsonschema:"resolve every intermediate cover row eagerly"`
}

// CoveringRow is one subgroup conjugacy class row of the cover table.
type CoveringRow struct {
	Index            int    `json:"index" jsonschema:"position in the cover table"`
	Subgroup         string `json:"subgroup" jsonschema:"generators of the class representative"`
	Structure        string `json:"structure" jsonschema:"structure description of the subgroup"`
	ClassSize        int    `json:"class_size" jsonschema:"number of conjugate subgroups"`
	DegreeUp         int    `json:"degree_up" jsonschema:"degree of the cover above the intermediate surface"`
	DegreeDown       int    `json:"degree_down" jsonschema:"degree of the induced map to the base"`
	Genus            string `json:"genus,omitempty" jsonschema:"genus of the intermediate surface, empty while unresolved"`
	RamificationUp   string `json:"ramification_up,omitempty" jsonschema:"ramification term of the map from above"`
	RamificationDown string `json:"ramification_down,omitempty" jsonschema:"ramification term of the induced map"`
	State            string `json:"state" jsonschema:"resolution state: unresolved, resolved or failed"`
	Error            string `json:"error,omitempty" jsonschema:"failure message when the row could not resolve"`
}

// CoveringComputeResult represents the MCP tool output for covering computation.
type CoveringComputeResult struct {
	ID                string        `json:"id,omitempty" jsonschema:"stored tower identifier, empty when nothing was persisted"`
	Structure         string        `json:"structure" jsonschema:"structure description of the deck group"`
	Order             int           `json:"order" jsonschema:"order of the deck group"`
	Degree            int           `json:"degree" jsonschema:"permutation degree of the deck group"`
	BaseGenus         string        `json:"base_genus" jsonschema:"genus of the base surface"`
	Signature         string        `json:"signature" jsonschema:"branch value counts by ramification type"`
	CoverGenus        string        `json:"cover_genus" jsonschema:"genus of the covering surface"`
	TotalRamification string        `json:"total_ramification" jsonschema:"ramification term of the full cover in Riemann-Hurwitz"`
	Rows              []CoveringRow `json:"rows" jsonschema:"one row per subgroup conjugacy class"`
}

// CoveringComputeTool defines the MCP tool schema for computing coverings.
func CoveringComputeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "covering_compute",
		Description: "Computes the covering with the given deck group: signature, cover genus and the table of intermediate covers",
	}
}

// CoveringComputeHandler executes a covering computation request.
func CoveringComputeHandler(svc Service) mcp.ToolHandlerFor[CoveringComputeInput, CoveringComputeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CoveringComputeInput) (*mcp.CallToolResult, CoveringComputeResult, error) {
		computed, err := svc.ComputeTower(ctx, tower.ComputeRequest{
			Group:     input.Group,
			BaseGenus: input.BaseGenus,
			Signature: input.Signature,
			Resolve:   input.Resolve,
		})
		if err != nil {
			return nil, CoveringComputeResult{}, handleError(err)
		}

		c := computed.Covering
		result := CoveringComputeResult{
			ID:                computed.ID,
			Structure:         c.Group().StructureDescription(),
			Order:             c.Group().Order(),
			Degree:            c.Group().Degree(),
			BaseGenus:         c.BaseGenus().String(),
			Signature:         geometricSignature(c),
			CoverGenus:        c.CoverGenus().String(),
			TotalRamification: c.TotalQuotientRamification().String(),
			Rows:              coveringRows(computed.Rows),
		}
		return nil, result, nil
	}
}

// IntermediateCoveringInput represents the MCP tool input for resolving one
// intermediate cover.
type IntermediateCoveringInput struct {
	Group     string  `json:"group" jsonschema:"deck group, a catalog name or generator list"`
	Subgroup  string  `json:"subgroup" jsonschema:"subgroup given by generators inside the deck group"`
	BaseGenus *int64  `json:"base_genus,omitempty" jsonschema:"genus of the base surface, symbolic g when omitted"`
	Signature []int64 `json:"signature,omitempty" jsonschema:"branch value count per ramification type, symbolic counts when omitted"`
}

// RamificationPoint counts points of the intermediate surface with one
// induced ramification index.
type RamificationPoint struct {
	Index  int    `json:"index" jsonschema:"local ramification index"`
	Points string `json:"points" jsonschema:"number of points with that index"`
}

// RamificationProfile counts base branch values by the pattern of induced
// indexes above them.
type RamificationProfile struct {
	Profile []int  `json:"profile" jsonschema:"descending induced indexes over one branch value"`
	Count   string `json:"count" jsonschema:"number of branch values with that pattern"`
}

// IntermediateCoveringResult represents the MCP tool output for one
// intermediate cover.
type IntermediateCoveringResult struct {
	Structure         string                `json:"structure" jsonschema:"structure description of the subgroup"`
	Order             int                   `json:"order" jsonschema:"order of the subgroup"`
	InducedDegree     int                   `json:"induced_degree" jsonschema:"degree of the induced map to the base"`
	Genus             string                `json:"genus" jsonschema:"genus of the intermediate surface"`
	TotalRamification string                `json:"total_ramification" jsonschema:"ramification term of the induced map in Riemann-Hurwitz"`
	Ramification      []RamificationPoint   `json:"ramification" jsonschema:"points of the intermediate surface by induced index"`
	Profiles          []RamificationProfile `json:"profiles" jsonschema:"base branch values by induced index pattern"`
}

// IntermediateCoveringTool defines the MCP tool schema for intermediate covers.
func IntermediateCoveringTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "intermediate_covering",
		Description: "Resolves the intermediate cover of one subgroup: induced degree, genus and transferred ramification",
	}
}

// IntermediateCoveringHandler executes an intermediate cover request.
func IntermediateCoveringHandler(svc Service) mcp.ToolHandlerFor[IntermediateCoveringInput, IntermediateCoveringResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input IntermediateCoveringInput) (*mcp.CallToolResult, IntermediateCoveringResult, error) {
		inter, err := svc.Intermediate(ctx, tower.IntermediateRequest{
			Group:     input.Group,
			Subgroup:  input.Subgroup,
			BaseGenus: input.BaseGenus,
			Signature: input.Signature,
		})
		if err != nil {
			return nil, IntermediateCoveringResult{}, handleError(err)
		}

		result := IntermediateCoveringResult{
			Structure:         inter.Group().StructureDescription(),
			Order:             inter.Group().Order(),
			InducedDegree:     inter.InducedDegree(),
			Genus:             inter.Genus().String(),
			TotalRamification: inter.InducedTotalRamification().String(),
			Ramification:      make([]RamificationPoint, 0, len(inter.InducedRamification())),
			Profiles:          make([]RamificationProfile, 0, len(inter.InducedRamificationData())),
		}
		for _, pc := range inter.InducedRamification() {
			result.Ramification = append(result.Ramification, RamificationPoint{
				Index:  pc.Index,
				Points: pc.Points.String(),
			})
		}
		for _, profile := range inter.InducedRamificationData() {
			result.Profiles = append(result.Profiles, RamificationProfile{
				Profile: profile.Profile,
				Count:   profile.Count.String(),
			})
		}
		return nil, result, nil
	}
}

// coveringRows maps table rows into their MCP representation.
func coveringRows(rows []galois.TableRow) []CoveringRow {
	out := make([]CoveringRow, len(rows))
	for i, row := range rows {
		entry := CoveringRow{
			Index:            row.Index,
			Subgroup:         generatorList(row.Subgroup),
			Structure:        row.Structure,
			ClassSize:        row.ClassSize,
			DegreeUp:         row.DegreeUp,
			DegreeDown:       row.DegreeDown,
			Genus:            quantityString(row.Genus),
			RamificationUp:   quantityString(row.RamificationUp),
			RamificationDown: quantityString(row.RamificationDown),
			State:            row.State.String(),
		}
		if row.Err != nil {
			entry.Error = row.Err.Error()
		}
		out[i] = entry
	}
	return out
}

// geometricSignature renders the branch value counts in type order.
func geometricSignature(c *galois.Covering) string {
	terms := c.GeometricSignature()
	parts := make([]string, len(terms))
	for i, term := range terms {
		parts[i] = term.Count.String()
	}
	return strings.Join(parts, " ")
}

// generatorList renders the non-identity generators in cycle notation.
func generatorList(g *group.Group) string {
	var parts []string
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

func quantityString(q *galois.Quantity) string {
	if q == nil {
		return ""
	}
	return q.String()
}
