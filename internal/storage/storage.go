// Package storage defines persistence contracts for computed covering
// towers. Records hold symbolic quantities in their canonical string form;
// genus additionally keeps a nullable integer column so stored rows can be
// filtered numerically once the value is known.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a requested state transition is invalid.
var ErrConflict = errors.New("record conflict")

// TowerRecord stores one computed covering and its table summary.
type TowerRecord struct {
	ID string

	// Input is the group exactly as requested: a catalog name or a
	// generator list.
	Input      string
	Generators string
	Structure  string
	Order      int
	Degree     int

	BaseGenus  string
	Signature  string
	CoverGenus string
	// CoverGenusInt is set when the cover genus is a known integer.
	CoverGenusInt *int64

	// Classes is the number of subgroup conjugacy classes, one table row each.
	Classes int

	TraceID string
	SpanID  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TowerPage is a paged set of towers.
type TowerPage struct {
	Towers        []TowerRecord
	NextPageToken string
}

// RowRecord stores one intermediate-cover row of a tower.
type RowRecord struct {
	TowerID string
	Index   int

	Subgroup   string
	Structure  string
	ClassSize  int
	DegreeUp   int
	DegreeDown int

	Genus string
	// GenusInt is set when the intermediate genus is a known integer.
	GenusInt *int64
	RamUp    string
	RamDown  string

	State        string
	ErrorMessage string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RowPage is a paged set of tower rows.
type RowPage struct {
	Rows          []RowRecord
	NextPageToken string
}

// ListRowsRequest narrows tower-scoped row listing.
type ListRowsRequest struct {
	TowerID   string
	PageSize  int
	PageToken string

	// FilterClause is an optional SQL WHERE clause fragment produced by the
	// filter package.
	FilterClause string
	// FilterParams are the positional parameters for the filter clause.
	FilterParams []any
}

// TowerStore persists towers and their rows.
type TowerStore interface {
	PutTower(ctx context.Context, record TowerRecord) error
	GetTower(ctx context.Context, towerID string) (TowerRecord, error)
	ListTowers(ctx context.Context, pageSize int, pageToken string) (TowerPage, error)

	// PutRows upserts all rows of one tower in a single transaction.
	PutRows(ctx context.Context, towerID string, records []RowRecord) error
	ListRows(ctx context.Context, req ListRowsRequest) (RowPage, error)
}
