package filter

import (
	"reflect"
	"testing"
)

func TestParseRowFilter(t *testing.T) {
	tests := []struct {
		name       string
		filter     string
		wantClause string
		wantParams []any
	}{
		{
			name:   "empty filter",
			filter: "",
		},
		{
			name:       "structure equality",
			filter:     `structure = "C4"`,
			wantClause: "structure = ?",
			wantParams: []any{"C4"},
		},
		{
			name:       "state inequality",
			filter:     `state != "failed"`,
			wantClause: "state != ?",
			wantParams: []any{"failed"},
		},
		{
			name:       "degree bound",
			filter:     "degree_down >= 2",
			wantClause: "degree_down >= ?",
			wantParams: []any{int64(2)},
		},
		{
			name:       "genus maps to integer column",
			filter:     "genus = 0",
			wantClause: "genus_int = ?",
			wantParams: []any{int64(0)},
		},
		{
			name:       "bare boolean field",
			filter:     "genus_known",
			wantClause: "genus_int IS NOT NULL",
		},
		{
			name:       "negated boolean field",
			filter:     "NOT genus_known",
			wantClause: "NOT (genus_int IS NOT NULL)",
		},
		{
			name:       "conjunction",
			filter:     `structure = "C4" AND genus_known AND degree_down >= 2`,
			wantClause: "((structure = ? AND genus_int IS NOT NULL) AND degree_down >= ?)",
			wantParams: []any{"C4", int64(2)},
		},
		{
			name:       "disjunction",
			filter:     `state = "failed" OR class_size > 1`,
			wantClause: "(state = ? OR class_size > ?)",
			wantParams: []any{"failed", int64(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRowFilter(tt.filter)
			if err != nil {
				t.Fatalf("ParseRowFilter(%q) error: %v", tt.filter, err)
			}
			if got.Clause != tt.wantClause {
				t.Errorf("Clause = %q, want %q", got.Clause, tt.wantClause)
			}
			if len(got.Params) != len(tt.wantParams) {
				t.Fatalf("Params = %v, want %v", got.Params, tt.wantParams)
			}
			if len(tt.wantParams) > 0 && !reflect.DeepEqual(got.Params, tt.wantParams) {
				t.Errorf("Params = %v, want %v", got.Params, tt.wantParams)
			}
		})
	}
}

func TestParseRowFilterErrors(t *testing.T) {
	tests := []struct {
		name   string
		filter string
	}{
		{name: "unknown field", filter: `color = "red"`},
		{name: "unknown bare field", filter: "resolved"},
		{name: "unbalanced expression", filter: `structure = `},
		{name: "string against int field", filter: `degree_up = "two"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRowFilter(tt.filter); err == nil {
				t.Fatalf("ParseRowFilter(%q) expected error", tt.filter)
			}
		})
	}
}
