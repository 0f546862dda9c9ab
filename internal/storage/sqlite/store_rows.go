package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/coverings.space/internal/storage"
)

// PutRows upserts all rows of one tower in a single transaction.
func (s *Store) PutRows(ctx context.Context, towerID string, records []storage.RowRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	towerID = strings.TrimSpace(towerID)
	if towerID == "" {
		return fmt.Errorf("tower id is required")
	}
	for _, record := range records {
		if record.TowerID != towerID {
			return fmt.Errorf("row %d belongs to tower %q, not %q", record.Index, record.TowerID, towerID)
		}
		if record.Index < 0 {
			return fmt.Errorf("row index must be non-negative")
		}
		if strings.TrimSpace(record.State) == "" {
			return fmt.Errorf("row state is required")
		}
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put rows: %w", err)
	}

	for _, record := range records {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO tower_rows (
	tower_id, row_index, subgroup, structure, class_size, degree_up, degree_down,
	genus, genus_int, ram_up, ram_down, state, row_error, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(tower_id, row_index) DO UPDATE SET
	subgroup = excluded.subgroup,
	structure = excluded.structure,
	class_size = excluded.class_size,
	degree_up = excluded.degree_up,
	degree_down = excluded.degree_down,
	genus = excluded.genus,
	genus_int = excluded.genus_int,
	ram_up = excluded.ram_up,
	ram_down = excluded.ram_down,
	state = excluded.state,
	row_error = excluded.row_error,
	updated_at = excluded.updated_at
`,
			record.TowerID,
			record.Index,
			record.Subgroup,
			record.Structure,
			record.ClassSize,
			record.DegreeUp,
			record.DegreeDown,
			record.Genus,
			toNullInt64(record.GenusInt),
			record.RamUp,
			record.RamDown,
			record.State,
			record.ErrorMessage,
			toMillis(record.CreatedAt),
			toMillis(record.UpdatedAt),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("put row %d: %w", record.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put rows: %w", err)
	}
	return nil
}

// ListRows returns a filtered page of rows for one tower, ordered by index.
func (s *Store) ListRows(ctx context.Context, req storage.ListRowsRequest) (storage.RowPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.RowPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RowPage{}, fmt.Errorf("storage is not configured")
	}
	towerID := strings.TrimSpace(req.TowerID)
	if towerID == "" {
		return storage.RowPage{}, fmt.Errorf("tower id is required")
	}
	if req.PageSize <= 0 {
		return storage.RowPage{}, fmt.Errorf("page size must be greater than zero")
	}

	afterIndex := -1
	if token := strings.TrimSpace(req.PageToken); token != "" {
		parsed, err := strconv.Atoi(token)
		if err != nil {
			return storage.RowPage{}, fmt.Errorf("invalid page token %q", token)
		}
		afterIndex = parsed
	}

	query := `
SELECT tower_id, row_index, subgroup, structure, class_size, degree_up, degree_down,
	genus, genus_int, ram_up, ram_down, state, row_error, created_at, updated_at
FROM tower_rows
WHERE tower_id = ? AND row_index > ?`
	params := []any{towerID, afterIndex}
	if strings.TrimSpace(req.FilterClause) != "" {
		query += " AND (" + req.FilterClause + ")"
		params = append(params, req.FilterParams...)
	}
	query += `
ORDER BY row_index
LIMIT ?`
	params = append(params, req.PageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return storage.RowPage{}, fmt.Errorf("list rows: %w", err)
	}
	defer rows.Close()

	page := storage.RowPage{Rows: make([]storage.RowRecord, 0, req.PageSize)}
	for rows.Next() {
		var (
			rec       storage.RowRecord
			genusInt  sql.NullInt64
			createdAt int64
			updatedAt int64
		)
		if err := rows.Scan(
			&rec.TowerID,
			&rec.Index,
			&rec.Subgroup,
			&rec.Structure,
			&rec.ClassSize,
			&rec.DegreeUp,
			&rec.DegreeDown,
			&rec.Genus,
			&genusInt,
			&rec.RamUp,
			&rec.RamDown,
			&rec.State,
			&rec.ErrorMessage,
			&createdAt,
			&updatedAt,
		); err != nil {
			return storage.RowPage{}, fmt.Errorf("scan tower row: %w", err)
		}
		rec.GenusInt = fromNullInt64(genusInt)
		rec.CreatedAt = fromMillis(createdAt)
		rec.UpdatedAt = fromMillis(updatedAt)
		page.Rows = append(page.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return storage.RowPage{}, fmt.Errorf("iterate tower rows: %w", err)
	}

	if len(page.Rows) > req.PageSize {
		page.NextPageToken = strconv.Itoa(page.Rows[req.PageSize-1].Index)
		page.Rows = page.Rows[:req.PageSize]
	}
	return page, nil
}
