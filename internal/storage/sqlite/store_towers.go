package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/coverings.space/internal/storage"
)

// PutTower upserts a tower record.
func (s *Store) PutTower(ctx context.Context, record storage.TowerRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("tower id is required")
	}
	if strings.TrimSpace(record.Input) == "" {
		return fmt.Errorf("group input is required")
	}
	if strings.TrimSpace(record.Generators) == "" {
		return fmt.Errorf("generators are required")
	}
	if record.Order < 1 {
		return fmt.Errorf("group order must be positive")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO towers (
	id, group_input, generators, structure, group_order, degree,
	base_genus, signature, cover_genus, cover_genus_int, classes,
	trace_id, span_id, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	group_input = excluded.group_input,
	generators = excluded.generators,
	structure = excluded.structure,
	group_order = excluded.group_order,
	degree = excluded.degree,
	base_genus = excluded.base_genus,
	signature = excluded.signature,
	cover_genus = excluded.cover_genus,
	cover_genus_int = excluded.cover_genus_int,
	classes = excluded.classes,
	trace_id = excluded.trace_id,
	span_id = excluded.span_id,
	updated_at = excluded.updated_at
`,
		record.ID,
		record.Input,
		record.Generators,
		record.Structure,
		record.Order,
		record.Degree,
		record.BaseGenus,
		record.Signature,
		record.CoverGenus,
		toNullInt64(record.CoverGenusInt),
		record.Classes,
		record.TraceID,
		record.SpanID,
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put tower: %w", err)
	}
	return nil
}

// GetTower fetches a tower record by ID.
func (s *Store) GetTower(ctx context.Context, towerID string) (storage.TowerRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.TowerRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.TowerRecord{}, fmt.Errorf("storage is not configured")
	}
	towerID = strings.TrimSpace(towerID)
	if towerID == "" {
		return storage.TowerRecord{}, fmt.Errorf("tower id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, group_input, generators, structure, group_order, degree,
	base_genus, signature, cover_genus, cover_genus_int, classes,
	trace_id, span_id, created_at, updated_at
FROM towers
WHERE id = ?
`, towerID)

	rec, err := scanTower(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.TowerRecord{}, storage.ErrNotFound
		}
		return storage.TowerRecord{}, fmt.Errorf("get tower: %w", err)
	}
	return rec, nil
}

// ListTowers returns a page of towers ordered by ID.
func (s *Store) ListTowers(ctx context.Context, pageSize int, pageToken string) (storage.TowerPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.TowerPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.TowerPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.TowerPage{}, fmt.Errorf("page size must be greater than zero")
	}

	limit := pageSize + 1
	var (
		rows *sql.Rows
		err  error
	)
	if strings.TrimSpace(pageToken) == "" {
		rows, err = s.sqlDB.QueryContext(ctx, `
SELECT id, group_input, generators, structure, group_order, degree,
	base_genus, signature, cover_genus, cover_genus_int, classes,
	trace_id, span_id, created_at, updated_at
FROM towers
ORDER BY id
LIMIT ?
`, limit)
	} else {
		rows, err = s.sqlDB.QueryContext(ctx, `
SELECT id, group_input, generators, structure, group_order, degree,
	base_genus, signature, cover_genus, cover_genus_int, classes,
	trace_id, span_id, created_at, updated_at
FROM towers
WHERE id > ?
ORDER BY id
LIMIT ?
`, strings.TrimSpace(pageToken), limit)
	}
	if err != nil {
		return storage.TowerPage{}, fmt.Errorf("list towers: %w", err)
	}
	defer rows.Close()

	page := storage.TowerPage{Towers: make([]storage.TowerRecord, 0, pageSize)}
	for rows.Next() {
		rec, err := scanTower(rows.Scan)
		if err != nil {
			return storage.TowerPage{}, fmt.Errorf("scan tower row: %w", err)
		}
		page.Towers = append(page.Towers, rec)
	}
	if err := rows.Err(); err != nil {
		return storage.TowerPage{}, fmt.Errorf("iterate tower rows: %w", err)
	}

	if len(page.Towers) > pageSize {
		page.NextPageToken = page.Towers[pageSize-1].ID
		page.Towers = page.Towers[:pageSize]
	}
	return page, nil
}

func scanTower(scan func(dest ...any) error) (storage.TowerRecord, error) {
	var (
		rec           storage.TowerRecord
		coverGenusInt sql.NullInt64
		createdAt     int64
		updatedAt     int64
	)
	if err := scan(
		&rec.ID,
		&rec.Input,
		&rec.Generators,
		&rec.Structure,
		&rec.Order,
		&rec.Degree,
		&rec.BaseGenus,
		&rec.Signature,
		&rec.CoverGenus,
		&coverGenusInt,
		&rec.Classes,
		&rec.TraceID,
		&rec.SpanID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.TowerRecord{}, err
	}
	rec.CoverGenusInt = fromNullInt64(coverGenusInt)
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}
