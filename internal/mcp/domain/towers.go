package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/coverings.space/internal/storage"
	"github.com/louisbranch/coverings.space/internal/tower"
)

// TowerListInput represents the MCP tool input for stored tower listing.
type TowerListInput struct {
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum towers per page"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
}

// TowerSummary is one stored covering tower.
type TowerSummary struct {
	ID         string `json:"id" jsonschema:"stored tower identifier"`
	Input      string `json:"input" jsonschema:"the group exactly as requested"`
	Structure  string `json:"structure" jsonschema:"structure description of the deck group"`
	Order      int    `json:"order" jsonschema:"order of the deck group"`
	Degree     int    `json:"degree" jsonschema:"permutation degree of the deck group"`
	BaseGenus  string `json:"base_genus" jsonschema:"genus of the base surface"`
	Signature  string `json:"signature" jsonschema:"branch value counts by ramification type"`
	CoverGenus string `json:"cover_genus" jsonschema:"genus of the covering surface"`
	Classes    int    `json:"classes" jsonschema:"number of subgroup conjugacy classes"`
	CreatedAt  string `json:"created_at" jsonschema:"RFC3339 timestamp of the computation"`
}

// TowerListResult represents the MCP tool output for stored tower listing.
type TowerListResult struct {
	Towers        []TowerSummary `json:"towers" jsonschema:"one entry per stored tower"`
	NextPageToken string         `json:"next_page_token,omitempty" jsonschema:"token for the next page, empty on the last page"`
}

// TowerListTool defines the MCP tool schema for stored tower listing.
func TowerListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "tower_list",
		Description: "Lists stored covering towers with their group, signature and cover genus",
	}
}

// TowerListHandler executes a stored tower listing request.
func TowerListHandler(svc Service) mcp.ToolHandlerFor[TowerListInput, TowerListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TowerListInput) (*mcp.CallToolResult, TowerListResult, error) {
		page, err := svc.ListTowers(ctx, input.PageSize, input.PageToken)
		if err != nil {
			return nil, TowerListResult{}, handleError(err)
		}

		result := TowerListResult{
			Towers:        make([]TowerSummary, 0, len(page.Towers)),
			NextPageToken: page.NextPageToken,
		}
		for _, rec := range page.Towers {
			result.Towers = append(result.Towers, towerSummary(rec))
		}
		return nil, result, nil
	}
}

// TowerRowsInput represents the MCP tool input for stored row listing.
type TowerRowsInput struct {
	TowerID   string `json:"tower_id" jsonschema:"stored tower identifier"`
	Filter    string `json:"filter,omitempty" jsonschema:"optional filter over structure, state, class_size, degree_up, degree_down, genus and genus_known"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum rows per page"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
}

// TowerRowEntry is one stored intermediate-cover row.
type TowerRowEntry struct {
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

// TowerRowsResult represents the MCP tool output for stored row listing.
type TowerRowsResult struct {
	Rows          []TowerRowEntry `json:"rows" jsonschema:"one entry per stored row"`
	NextPageToken string          `json:"next_page_token,omitempty" jsonschema:"token for the next page, empty on the last page"`
}

// TowerRowsTool defines the MCP tool schema for stored row listing.
func TowerRowsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "tower_rows",
		Description: "Lists the stored rows of one tower, optionally narrowed by a filter expression",
	}
}

// TowerRowsHandler executes a stored row listing request.
func TowerRowsHandler(svc Service) mcp.ToolHandlerFor[TowerRowsInput, TowerRowsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TowerRowsInput) (*mcp.CallToolResult, TowerRowsResult, error) {
		page, err := svc.ListRows(ctx, tower.ListRowsQuery{
			TowerID:   input.TowerID,
			PageSize:  input.PageSize,
			PageToken: input.PageToken,
			Filter:    input.Filter,
		})
		if err != nil {
			return nil, TowerRowsResult{}, handleError(err)
		}

		result := TowerRowsResult{
			Rows:          make([]TowerRowEntry, 0, len(page.Rows)),
			NextPageToken: page.NextPageToken,
		}
		for _, rec := range page.Rows {
			result.Rows = append(result.Rows, TowerRowEntry{
				Index:            rec.Index,
				Subgroup:         rec.Subgroup,
				Structure:        rec.Structure,
				ClassSize:        rec.ClassSize,
				DegreeUp:         rec.DegreeUp,
				DegreeDown:       rec.DegreeDown,
				Genus:            rec.Genus,
				RamificationUp:   rec.RamUp,
				RamificationDown: rec.RamDown,
				State:            rec.State,
				Error:            rec.ErrorMessage,
			})
		}
		return nil, result, nil
	}
}

// TowerListPayload represents the MCP resource payload for tower listings.
type TowerListPayload struct {
	Towers []TowerSummary `json:"towers"`
}

// TowerListResource defines the MCP resource for stored tower listings.
func TowerListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "tower_list",
		Title:       "Towers",
		Description: "Readable listing of stored covering towers",
		MIMEType:    "application/json",
		URI:         "towers://list",
	}
}

// TowerListResourceHandler returns a readable tower listing resource.
func TowerListResourceHandler(svc Service) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if svc == nil {
			return nil, fmt.Errorf("tower list service is not configured")
		}

		uri := TowerListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		// TODO: Support page_size/page_token inputs and return next_page_token.
		page, err := svc.ListTowers(ctx, 10, "")
		if err != nil {
			return nil, fmt.Errorf("tower list failed: %w", err)
		}

		payload := TowerListPayload{}
		for _, rec := range page.Towers {
			payload.Towers = append(payload.Towers, towerSummary(rec))
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal tower list: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// towerSummary maps a stored tower record into its MCP representation.
func towerSummary(rec storage.TowerRecord) TowerSummary {
	return TowerSummary{
		ID:         rec.ID,
		Input:      rec.Input,
		Structure:  rec.Structure,
		Order:      rec.Order,
		Degree:     rec.Degree,
		BaseGenus:  rec.BaseGenus,
		Signature:  rec.Signature,
		CoverGenus: rec.CoverGenus,
		Classes:    rec.Classes,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
	}
}
