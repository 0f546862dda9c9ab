package tower

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/louisbranch/coverings.space/internal/galois"
	apperrors "github.com/louisbranch/coverings.space/internal/platform/errors"
	"github.com/louisbranch/coverings.space/internal/storage"
)

type fakeStore struct {
	towers map[string]storage.TowerRecord
	rows   map[string][]storage.RowRecord

	lastPageSize int
	lastListRows storage.ListRowsRequest
}

var _ storage.TowerStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		towers: map[string]storage.TowerRecord{},
		rows:   map[string][]storage.RowRecord{},
	}
}

func (f *fakeStore) PutTower(ctx context.Context, record storage.TowerRecord) error {
	f.towers[record.ID] = record
	return nil
}

func (f *fakeStore) GetTower(ctx context.Context, towerID string) (storage.TowerRecord, error) {
	rec, ok := f.towers[towerID]
	if !ok {
		return storage.TowerRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStore) ListTowers(ctx context.Context, pageSize int, pageToken string) (storage.TowerPage, error) {
	f.lastPageSize = pageSize
	ids := make([]string, 0, len(f.towers))
	for id := range f.towers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var page storage.TowerPage
	for _, id := range ids {
		if pageToken != "" && id <= pageToken {
			continue
		}
		page.Towers = append(page.Towers, f.towers[id])
	}
	return page, nil
}

func (f *fakeStore) PutRows(ctx context.Context, towerID string, records []storage.RowRecord) error {
	f.rows[towerID] = append([]storage.RowRecord(nil), records...)
	return nil
}

func (f *fakeStore) ListRows(ctx context.Context, req storage.ListRowsRequest) (storage.RowPage, error) {
	f.lastListRows = req
	return storage.RowPage{Rows: f.rows[req.TowerID]}, nil
}

func newTestService(t *testing.T, store storage.TowerStore) *Service {
	t.Helper()
	svc := NewService(store)
	svc.clock = func() time.Time {
		return time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC)
	}
	seq := 0
	svc.idGenerator = func() (string, error) {
		seq++
		return fmt.Sprintf("tower-%d", seq), nil
	}
	return svc
}

func TestComputeTowerSymbolic(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.ComputeTower(context.Background(), ComputeRequest{Group: "S3"})
	if err != nil {
		t.Fatalf("ComputeTower() error = %v", err)
	}
	if result.ID != "" {
		t.Errorf("ComputeTower() ID = %q, want empty without a store", result.ID)
	}
	if got, want := result.Covering.CoverGenus().String(), "6*g + 3/2*n1 + 2*n2 - 5"; got != want {
		t.Errorf("CoverGenus() = %q, want %q", got, want)
	}
	if len(result.Rows) != 4 {
		t.Fatalf("ComputeTower() returned %d rows, want 4", len(result.Rows))
	}
	for _, row := range result.Rows {
		if row.State != galois.RowUnresolved {
			t.Errorf("row %d state = %v, want unresolved", row.Index, row.State)
		}
	}
}

func TestComputeTowerPersistsResolvedRows(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	genus := int64(0)
	result, err := svc.ComputeTower(context.Background(), ComputeRequest{
		Group:     "C4",
		BaseGenus: &genus,
		Signature: []int64{0, 2},
		Resolve:   true,
	})
	if err != nil {
		t.Fatalf("ComputeTower() error = %v", err)
	}
	if result.ID != "tower-1" {
		t.Fatalf("ComputeTower() ID = %q, want tower-1", result.ID)
	}

	rec, ok := store.towers["tower-1"]
	if !ok {
		t.Fatal("ComputeTower() did not persist the tower record")
	}
	if rec.Input != "C4" || rec.Generators != "(1 2 3 4)" {
		t.Errorf("persisted input = %q generators = %q, want C4 and (1 2 3 4)", rec.Input, rec.Generators)
	}
	if rec.Structure != "C4" || rec.Order != 4 || rec.Degree != 4 {
		t.Errorf("persisted structure = %q order = %d degree = %d, want C4 4 4", rec.Structure, rec.Order, rec.Degree)
	}
	if rec.BaseGenus != "0" || rec.Signature != "0 2" {
		t.Errorf("persisted base genus = %q signature = %q, want 0 and 0 2", rec.BaseGenus, rec.Signature)
	}
	if rec.CoverGenus != "0" {
		t.Errorf("persisted cover genus = %q, want 0", rec.CoverGenus)
	}
	if rec.CoverGenusInt == nil || *rec.CoverGenusInt != 0 {
		t.Errorf("persisted cover genus int = %v, want 0", rec.CoverGenusInt)
	}
	if rec.Classes != 3 {
		t.Errorf("persisted classes = %d, want 3", rec.Classes)
	}
	wantTime := time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC)
	if !rec.CreatedAt.Equal(wantTime) || !rec.UpdatedAt.Equal(wantTime) {
		t.Errorf("persisted timestamps = %v / %v, want %v", rec.CreatedAt, rec.UpdatedAt, wantTime)
	}

	rows := store.rows["tower-1"]
	if len(rows) != 3 {
		t.Fatalf("persisted %d rows, want 3", len(rows))
	}
	wantRows := []struct {
		structure  string
		degreeUp   int
		degreeDown int
		ramUp      string
		ramDown    string
	}{
		{"1", 1, 4, "0", "2"},
		{"C2", 2, 2, "2", "2"},
		{"C4", 4, 1, "2", "0"},
	}
	for i, want := range wantRows {
		row := rows[i]
		if row.TowerID != "tower-1" || row.Index != i {
			t.Errorf("row %d: tower = %q index = %d", i, row.TowerID, row.Index)
		}
		if row.Structure != want.structure {
			t.Errorf("row %d structure = %q, want %q", i, row.Structure, want.structure)
		}
		if row.DegreeUp != want.degreeUp || row.DegreeDown != want.degreeDown {
			t.Errorf("row %d degrees = %d/%d, want %d/%d",
				i, row.DegreeUp, row.DegreeDown, want.degreeUp, want.degreeDown)
		}
		if row.State != "resolved" {
			t.Errorf("row %d state = %q, want resolved", i, row.State)
		}
		if row.Genus != "0" {
			t.Errorf("row %d genus = %q, want 0", i, row.Genus)
		}
		if row.GenusInt == nil || *row.GenusInt != 0 {
			t.Errorf("row %d genus int = %v, want 0", i, row.GenusInt)
		}
		if row.RamUp != want.ramUp || row.RamDown != want.ramDown {
			t.Errorf("row %d ramification = %q/%q, want %q/%q",
				i, row.RamUp, row.RamDown, want.ramUp, want.ramDown)
		}
	}
}

func TestComputeTowerInputErrors(t *testing.T) {
	tests := []struct {
		name     string
		req      ComputeRequest
		wantCode apperrors.Code
	}{
		{"empty group", ComputeRequest{}, apperrors.CodeGroupInvalid},
		{"unknown name", ComputeRequest{Group: "B3"}, apperrors.CodeGroupParseFailed},
		{"unbalanced generators", ComputeRequest{Group: "(1 2"}, apperrors.CodeGroupParseFailed},
		{"order cap", ComputeRequest{Group: "S8"}, apperrors.CodeGroupTooLarge},
		{"signature arity", ComputeRequest{Group: "C4", Signature: []int64{1}}, apperrors.CodeSignatureMalformed},
		{"negative count", ComputeRequest{Group: "C4", Signature: []int64{-1, 2}}, apperrors.CodeSignatureMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, nil)
			_, err := svc.ComputeTower(context.Background(), tt.req)
			if !errors.Is(err, apperrors.New(tt.wantCode, "")) {
				t.Fatalf("ComputeTower() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestGetTower(t *testing.T) {
	store := newFakeStore()
	store.towers["t1"] = storage.TowerRecord{ID: "t1", Structure: "S3"}
	svc := newTestService(t, store)

	rec, err := svc.GetTower(context.Background(), " t1 ")
	if err != nil {
		t.Fatalf("GetTower() error = %v", err)
	}
	if rec.Structure != "S3" {
		t.Errorf("GetTower() structure = %q, want S3", rec.Structure)
	}

	if _, err := svc.GetTower(context.Background(), "missing"); !errors.Is(err, apperrors.New(apperrors.CodeNotFound, "")) {
		t.Fatalf("GetTower(missing) error = %v, want NOT_FOUND", err)
	}

	computeOnly := newTestService(t, nil)
	if _, err := computeOnly.GetTower(context.Background(), "t1"); !errors.Is(err, apperrors.New(apperrors.CodeNotFound, "")) {
		t.Fatalf("GetTower() without a store error = %v, want NOT_FOUND", err)
	}
}

func TestListTowersClampsPageSize(t *testing.T) {
	store := newFakeStore()
	store.towers["t1"] = storage.TowerRecord{ID: "t1"}
	store.towers["t2"] = storage.TowerRecord{ID: "t2"}
	svc := newTestService(t, store)

	page, err := svc.ListTowers(context.Background(), 0, "")
	if err != nil {
		t.Fatalf("ListTowers() error = %v", err)
	}
	if len(page.Towers) != 2 {
		t.Errorf("ListTowers() returned %d towers, want 2", len(page.Towers))
	}
	if store.lastPageSize != defaultPageSize {
		t.Errorf("page size = %d, want default %d", store.lastPageSize, defaultPageSize)
	}

	if _, err := svc.ListTowers(context.Background(), 1000, ""); err != nil {
		t.Fatalf("ListTowers() error = %v", err)
	}
	if store.lastPageSize != maxPageSize {
		t.Errorf("page size = %d, want cap %d", store.lastPageSize, maxPageSize)
	}

	computeOnly := newTestService(t, nil)
	empty, err := computeOnly.ListTowers(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("ListTowers() without a store error = %v", err)
	}
	if len(empty.Towers) != 0 {
		t.Errorf("ListTowers() without a store returned %d towers", len(empty.Towers))
	}
}

func TestListRowsTranslatesFilter(t *testing.T) {
	store := newFakeStore()
	store.towers["t1"] = storage.TowerRecord{ID: "t1"}
	store.rows["t1"] = []storage.RowRecord{{TowerID: "t1", Index: 0, Structure: "C2"}}
	svc := newTestService(t, store)

	page, err := svc.ListRows(context.Background(), ListRowsQuery{
		TowerID: "t1",
		Filter:  `structure = "C2" AND genus_known`,
	})
	if err != nil {
		t.Fatalf("ListRows() error = %v", err)
	}
	if len(page.Rows) != 1 {
		t.Errorf("ListRows() returned %d rows, want 1", len(page.Rows))
	}
	req := store.lastListRows
	if req.TowerID != "t1" || req.PageSize != defaultPageSize {
		t.Errorf("store request tower = %q page size = %d, want t1 and %d", req.TowerID, req.PageSize, defaultPageSize)
	}
	if want := "(structure = ? AND genus_int IS NOT NULL)"; req.FilterClause != want {
		t.Errorf("FilterClause = %q, want %q", req.FilterClause, want)
	}
	if len(req.FilterParams) != 1 || req.FilterParams[0] != "C2" {
		t.Errorf("FilterParams = %v, want [C2]", req.FilterParams)
	}
}

func TestListRowsErrors(t *testing.T) {
	store := newFakeStore()
	store.towers["t1"] = storage.TowerRecord{ID: "t1"}
	svc := newTestService(t, store)

	if _, err := svc.ListRows(context.Background(), ListRowsQuery{TowerID: "missing"}); !errors.Is(err, apperrors.New(apperrors.CodeNotFound, "")) {
		t.Fatalf("ListRows(missing) error = %v, want NOT_FOUND", err)
	}
	if _, err := svc.ListRows(context.Background(), ListRowsQuery{TowerID: "t1", Filter: "bogus = 1"}); !errors.Is(err, apperrors.New(apperrors.CodeFilterInvalid, "")) {
		t.Fatalf("ListRows(bad filter) error = %v, want FILTER_INVALID", err)
	}
}

func TestIntermediate(t *testing.T) {
	svc := newTestService(t, nil)

	inter, err := svc.Intermediate(context.Background(), IntermediateRequest{Group: "S3", Subgroup: "(1 2)"})
	if err != nil {
		t.Fatalf("Intermediate() error = %v", err)
	}
	if inter.InducedDegree() != 3 {
		t.Errorf("InducedDegree() = %d, want 3", inter.InducedDegree())
	}
	if got, want := inter.Genus().String(), "3*g + 1/2*n1 + n2 - 2"; got != want {
		t.Errorf("Genus() = %q, want %q", got, want)
	}

	if _, err := svc.Intermediate(context.Background(), IntermediateRequest{Group: "S3", Subgroup: "(4 5)"}); !errors.Is(err, apperrors.New(apperrors.CodeSubgroupInvalid, "")) {
		t.Fatalf("Intermediate(outside) error = %v, want SUBGROUP_INVALID", err)
	}
	if _, err := svc.Intermediate(context.Background(), IntermediateRequest{Group: "S3"}); !errors.Is(err, apperrors.New(apperrors.CodeSubgroupInvalid, "")) {
		t.Fatalf("Intermediate(empty subgroup) error = %v, want SUBGROUP_INVALID", err)
	}
}

func TestRationalClass(t *testing.T) {
	svc := newTestService(t, nil)

	rc, err := svc.RationalClass(context.Background(), "C4", "(1 2 3 4)")
	if err != nil {
		t.Fatalf("RationalClass() error = %v", err)
	}
	if len(rc.Classes()) != 2 || rc.Len() != 2 {
		t.Errorf("RationalClass() classes = %d elements = %d, want 2 and 2", len(rc.Classes()), rc.Len())
	}

	if _, err := svc.RationalClass(context.Background(), "C4", "(1 2)"); !errors.Is(err, apperrors.New(apperrors.CodeElementOutsideGroup, "")) {
		t.Fatalf("RationalClass(outside) error = %v, want ELEMENT_OUTSIDE_GROUP", err)
	}
	if _, err := svc.RationalClass(context.Background(), "C4", "1 2"); !errors.Is(err, apperrors.New(apperrors.CodePermParseFailed, "")) {
		t.Fatalf("RationalClass(bad perm) error = %v, want PERM_PARSE_FAILED", err)
	}
}

func TestAreRationalConjugates(t *testing.T) {
	svc := newTestService(t, nil)

	ok, err := svc.AreRationalConjugates(context.Background(), "S3", "(1 2 3)", "(1 3 2)")
	if err != nil {
		t.Fatalf("AreRationalConjugates() error = %v", err)
	}
	if !ok {
		t.Error("AreRationalConjugates((1 2 3), (1 3 2)) = false, want true")
	}

	ok, err = svc.AreRationalConjugates(context.Background(), "S3", "(1 2)", "(1 2 3)")
	if err != nil {
		t.Fatalf("AreRationalConjugates() error = %v", err)
	}
	if ok {
		t.Error("AreRationalConjugates((1 2), (1 2 3)) = true, want false")
	}
}

func TestBranchValues(t *testing.T) {
	svc := newTestService(t, nil)

	values, err := svc.BranchValues(context.Background(), "S3")
	if err != nil {
		t.Fatalf("BranchValues() error = %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("BranchValues() returned %d values, want 2", len(values))
	}
	if got := values[0].String(); got != "(2 1)" {
		t.Errorf("values[0] = %q, want (2 1)", got)
	}
	if got := values[1].String(); got != "(3)" {
		t.Errorf("values[1] = %q, want (3)", got)
	}
}
