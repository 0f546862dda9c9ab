package domain

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RationalClassInput represents the MCP tool input for rational class lookup.
type RationalClassInput struct {
	Group   string `json:"group" jsonschema:"ambient group, a catalog name or generator list"`
	Element string `json:"element" jsonschema:"group element in cycle notation"`
	Other   string `json:"other,omitempty" jsonschema:"optional second element to test against the class"`
}

// ConjugacyClassEntry summarizes one conjugacy class inside a rational class.
type ConjugacyClassEntry struct {
	Representative string `json:"representative" jsonschema:"one element of the class in cycle notation"`
	Size           int    `json:"size" jsonschema:"number of elements in the class"`
}

// RationalClassResult represents the MCP tool output for rational class lookup.
type RationalClassResult struct {
	Representative string                `json:"representative" jsonschema:"the element the class was built from"`
	Order          int                   `json:"order" jsonschema:"order of the representative"`
	Size           int                   `json:"size" jsonschema:"total number of elements across the classes"`
	Classes        []ConjugacyClassEntry `json:"classes" jsonschema:"the conjugacy classes merged into this rational class"`
	ContainsOther  *bool                 `json:"contains_other,omitempty" jsonschema:"whether other lies in this rational class, set when other was given"`
}

// RationalClassTool defines the MCP tool schema for rational class lookup.
func RationalClassTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "rational_class",
		Description: "Builds the rational conjugacy class of a group element, the classes of its coprime powers merged together",
	}
}

// RationalClassHandler executes a rational class lookup request.
func RationalClassHandler(svc Service) mcp.ToolHandlerFor[RationalClassInput, RationalClassResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RationalClassInput) (*mcp.CallToolResult, RationalClassResult, error) {
		rc, err := svc.RationalClass(ctx, input.Group, input.Element)
		if err != nil {
			return nil, RationalClassResult{}, handleError(err)
		}

		result := RationalClassResult{
			Representative: rc.Representative().String(),
			Order:          rc.Representative().Order(),
			Size:           rc.Len(),
			Classes:        make([]ConjugacyClassEntry, 0, len(rc.Classes())),
		}
		for _, class := range rc.Classes() {
			entry := ConjugacyClassEntry{Size: len(class)}
			if len(class) > 0 {
				entry.Representative = class[0].String()
			}
			result.Classes = append(result.Classes, entry)
		}

		if strings.TrimSpace(input.Other) != "" {
			same, err := svc.AreRationalConjugates(ctx, input.Group, input.Element, input.Other)
			if err != nil {
				return nil, RationalClassResult{}, handleError(err)
			}
			result.ContainsOther = &same
		}
		return nil, result, nil
	}
}

// BranchValueTypesInput represents the MCP tool input for branch value listing.
type BranchValueTypesInput struct {
	Group string `json:"group" jsonschema:"deck group, a catalog name or generator list"`
}

// BranchValueEntry describes one possible branch value type of a covering.
type BranchValueEntry struct {
	Notation           string `json:"notation" jsonschema:"cycle type of the fiber, largest index first"`
	CycleType          []int  `json:"cycle_type" jsonschema:"ramification indexes of the preimages"`
	Monodromy          string `json:"monodromy" jsonschema:"local monodromy generator in cycle notation"`
	Order              int    `json:"order" jsonschema:"order of the local monodromy"`
	Preimages          int    `json:"preimages" jsonschema:"number of points above the branch value"`
	RamificationDegree int    `json:"ramification_degree" jsonschema:"sum of index - 1 over the preimages"`
}

// BranchValueTypesResult represents the MCP tool output for branch value listing.
type BranchValueTypesResult struct {
	Values []BranchValueEntry `json:"values" jsonschema:"one entry per ramification type of the group"`
}

// BranchValueTypesTool defines the MCP tool schema for branch value listing.
func BranchValueTypesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "branch_value_types",
		Description: "Lists the possible branch value types of coverings with the given deck group, one per class of nontrivial cyclic subgroups",
	}
}

// BranchValueTypesHandler executes a branch value listing request.
func BranchValueTypesHandler(svc Service) mcp.ToolHandlerFor[BranchValueTypesInput, BranchValueTypesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BranchValueTypesInput) (*mcp.CallToolResult, BranchValueTypesResult, error) {
		values, err := svc.BranchValues(ctx, input.Group)
		if err != nil {
			return nil, BranchValueTypesResult{}, handleError(err)
		}

		result := BranchValueTypesResult{Values: make([]BranchValueEntry, 0, len(values))}
		for _, v := range values {
			result.Values = append(result.Values, BranchValueEntry{
				Notation:           v.String(),
				CycleType:          v.Type(),
				Monodromy:          v.Monodromy().String(),
				Order:              v.Monodromy().Order(),
				Preimages:          len(v.Preimages()),
				RamificationDegree: v.Deg(),
			})
		}
		return nil, result, nil
	}
}
