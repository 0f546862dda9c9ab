// Package tower is the application service behind the CLI and the MCP
// tools. It parses group input, derives coverings, resolves intermediate
// rows and persists the resulting tables as tower and row records.
package tower

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/coverings.space/internal/branch"
	"github.com/louisbranch/coverings.space/internal/galois"
	"github.com/louisbranch/coverings.space/internal/group"
	apperrors "github.com/louisbranch/coverings.space/internal/platform/errors"
	"github.com/louisbranch/coverings.space/internal/platform/id"
	"github.com/louisbranch/coverings.space/internal/storage"
	"github.com/louisbranch/coverings.space/internal/storage/filter"
)

// tracerName identifies tower spans in exported traces.
const tracerName = "coverings.space/tower"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Service computes coverings and keeps their tables. A nil store leaves
// the service in compute-only mode: results are returned but not
// persisted, and stored-tower lookups report NOT_FOUND.
type Service struct {
	store  storage.TowerStore
	tracer trace.Tracer

	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewService builds a tower service on top of the given store.
func NewService(store storage.TowerStore) *Service {
	return &Service{
		store:       store,
		tracer:      otel.Tracer(tracerName),
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// ComputeRequest describes one covering computation. Group is required and
// accepts a catalog name such as "S4" or a generator list such as
// "(1 2), (1 2 3)". A nil BaseGenus keeps the symbolic genus "g"; a nil
// Signature keeps one symbolic branch value count per ramification type.
// Resolve computes every intermediate row eagerly.
type ComputeRequest struct {
	Group     string
	BaseGenus *int64
	Signature []int64
	Resolve   bool
}

// ComputeResult carries the derived covering and a snapshot of its table.
// ID is empty when the service runs without a store.
type ComputeResult struct {
	ID       string
	Covering *galois.Covering
	Rows     []galois.TableRow
}

// ComputeTower parses the group, derives the covering and, when a store is
// configured, persists the tower and one row per subgroup conjugacy class.
// Row resolution failures stay on the rows; the tower itself still
// computes and persists.
func (s *Service) ComputeTower(ctx context.Context, req ComputeRequest) (*ComputeResult, error) {
	ctx, span := s.tracer.Start(ctx, "tower.compute")
	defer span.End()

	g, err := parseGroup(req.Group)
	if err != nil {
		return nil, err
	}
	c, err := buildCovering(g, req.BaseGenus, req.Signature)
	if err != nil {
		return nil, err
	}
	if req.Resolve {
		// Failures land on the affected rows as sticky failed cells.
		_ = c.ResolveAll()
	}

	result := &ComputeResult{Covering: c, Rows: c.Rows()}
	if s.store == nil {
		return result, nil
	}

	towerID, err := s.idGenerator()
	if err != nil {
		return nil, fmt.Errorf("generate tower id: %w", err)
	}
	now := s.clock().UTC()
	record := towerRecord(towerID, req.Group, c, now)
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		record.TraceID = sc.TraceID().String()
		record.SpanID = sc.SpanID().String()
	}
	if err := s.store.PutTower(ctx, record); err != nil {
		return nil, fmt.Errorf("put tower: %w", err)
	}
	if err := s.store.PutRows(ctx, towerID, rowRecords(towerID, result.Rows, now)); err != nil {
		return nil, fmt.Errorf("put tower rows: %w", err)
	}
	result.ID = towerID
	return result, nil
}

// GetTower loads one stored tower by ID.
func (s *Service) GetTower(ctx context.Context, towerID string) (storage.TowerRecord, error) {
	towerID = strings.TrimSpace(towerID)
	if s.store == nil || towerID == "" {
		return storage.TowerRecord{}, apperrors.WithMetadata(apperrors.CodeNotFound,
			"tower not found", map[string]string{"ID": towerID})
	}
	rec, err := s.store.GetTower(ctx, towerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.TowerRecord{}, apperrors.WithMetadata(apperrors.CodeNotFound,
				"tower not found", map[string]string{"ID": towerID})
		}
		return storage.TowerRecord{}, fmt.Errorf("get tower %s: %w", towerID, err)
	}
	return rec, nil
}

// ListTowers pages through stored towers ordered by ID. A non-positive
// page size falls back to the default.
func (s *Service) ListTowers(ctx context.Context, pageSize int, pageToken string) (storage.TowerPage, error) {
	if s.store == nil {
		return storage.TowerPage{}, nil
	}
	page, err := s.store.ListTowers(ctx, clampPageSize(pageSize), pageToken)
	if err != nil {
		return storage.TowerPage{}, fmt.Errorf("list towers: %w", err)
	}
	return page, nil
}

// ListRowsQuery narrows a stored-row listing. Filter is an AIP-160
// expression over structure, state, class_size, degree_up, degree_down,
// genus and genus_known.
type ListRowsQuery struct {
	TowerID   string
	PageSize  int
	PageToken string
	Filter    string
}

// ListRows pages through the stored rows of one tower, optionally
// filtered.
func (s *Service) ListRows(ctx context.Context, q ListRowsQuery) (storage.RowPage, error) {
	if _, err := s.GetTower(ctx, q.TowerID); err != nil {
		return storage.RowPage{}, err
	}
	cond, err := filter.ParseRowFilter(q.Filter)
	if err != nil {
		return storage.RowPage{}, apperrors.WrapWithMetadata(apperrors.CodeFilterInvalid,
			"parse row filter", map[string]string{"Filter": q.Filter}, err)
	}
	page, err := s.store.ListRows(ctx, storage.ListRowsRequest{
		TowerID:      strings.TrimSpace(q.TowerID),
		PageSize:     clampPageSize(q.PageSize),
		PageToken:    q.PageToken,
		FilterClause: cond.Clause,
		FilterParams: cond.Params,
	})
	if err != nil {
		return storage.RowPage{}, fmt.Errorf("list tower rows: %w", err)
	}
	return page, nil
}

// IntermediateRequest identifies a subgroup inside a covering computation.
// Subgroup is a generator list whose elements must lie in the deck group.
type IntermediateRequest struct {
	Group     string
	Subgroup  string
	BaseGenus *int64
	Signature []int64
}

// Intermediate derives the covering and resolves the intermediate cover of
// the given subgroup. Nothing is persisted.
func (s *Service) Intermediate(ctx context.Context, req IntermediateRequest) (*galois.Intermediate, error) {
	g, err := parseGroup(req.Group)
	if err != nil {
		return nil, err
	}
	c, err := buildCovering(g, req.BaseGenus, req.Signature)
	if err != nil {
		return nil, err
	}
	k, err := parseSubgroup(req.Subgroup)
	if err != nil {
		return nil, err
	}
	inter, err := c.IntermediateCovering(k)
	if err != nil {
		switch {
		case errors.Is(err, galois.ErrInvalidSubgroup):
			return nil, apperrors.Wrap(apperrors.CodeSubgroupInvalid,
				"resolve intermediate covering", err)
		case errors.Is(err, galois.ErrInconsistentParent):
			return nil, apperrors.Wrap(apperrors.CodeParentInconsistent,
				"resolve intermediate covering", err)
		}
		return nil, fmt.Errorf("resolve intermediate covering: %w", err)
	}
	return inter, nil
}

// RationalClass builds the rational conjugacy class of an element given in
// cycle notation.
func (s *Service) RationalClass(ctx context.Context, groupInput, element string) (*galois.RationalClass, error) {
	g, err := parseGroup(groupInput)
	if err != nil {
		return nil, err
	}
	p, err := parsePerm(element)
	if err != nil {
		return nil, err
	}
	rc, err := galois.NewRationalClass(g, p)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeElementOutsideGroup,
			"build rational class", map[string]string{"Perm": p.String()}, err)
	}
	return rc, nil
}

// AreRationalConjugates reports whether two elements describe the same
// local monodromy in the group.
func (s *Service) AreRationalConjugates(ctx context.Context, groupInput, x, y string) (bool, error) {
	g, err := parseGroup(groupInput)
	if err != nil {
		return false, err
	}
	px, err := parsePerm(x)
	if err != nil {
		return false, err
	}
	py, err := parsePerm(y)
	if err != nil {
		return false, err
	}
	ok, err := galois.AreRationalConjugates(g, px, py)
	if err != nil {
		return false, apperrors.Wrap(apperrors.CodeElementOutsideGroup,
			"compare rational classes", err)
	}
	return ok, nil
}

// BranchValues lists the possible branch value types of coverings with the
// given deck group, one per class of nontrivial cyclic subgroups.
func (s *Service) BranchValues(ctx context.Context, groupInput string) ([]*branch.Value, error) {
	g, err := parseGroup(groupInput)
	if err != nil {
		return nil, err
	}
	return branch.ValueTypes(g), nil
}

func parseGroup(input string) (*group.Group, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, apperrors.New(apperrors.CodeGroupInvalid, "group is required")
	}
	g, err := group.Parse(trimmed)
	if err != nil {
		if errors.Is(err, group.ErrTooLarge) {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeGroupTooLarge,
				"group enumeration aborted",
				map[string]string{"Limit": strconv.Itoa(group.MaxOrder)}, err)
		}
		return nil, apperrors.WrapWithMetadata(apperrors.CodeGroupParseFailed,
			"parse group", map[string]string{"Input": trimmed}, err)
	}
	return g, nil
}

func parseSubgroup(input string) (*group.Group, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, apperrors.New(apperrors.CodeSubgroupInvalid, "subgroup is required")
	}
	k, err := group.Parse(trimmed)
	if err != nil {
		if errors.Is(err, group.ErrTooLarge) {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeGroupTooLarge,
				"subgroup enumeration aborted",
				map[string]string{"Limit": strconv.Itoa(group.MaxOrder)}, err)
		}
		return nil, apperrors.WrapWithMetadata(apperrors.CodeSubgroupInvalid,
			"parse subgroup", map[string]string{"Input": trimmed}, err)
	}
	return k, nil
}

func parsePerm(input string) (group.Perm, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return group.Perm{}, apperrors.New(apperrors.CodePermParseFailed, "permutation is required")
	}
	p, err := group.ParsePerm(trimmed)
	if err != nil {
		return group.Perm{}, apperrors.WrapWithMetadata(apperrors.CodePermParseFailed,
			"parse permutation", map[string]string{"Input": trimmed}, err)
	}
	return p, nil
}

func buildCovering(g *group.Group, baseGenus *int64, signature []int64) (*galois.Covering, error) {
	var params galois.Params
	if baseGenus != nil {
		params.BaseGenus = galois.NewInt(*baseGenus)
	}
	if signature != nil {
		params.Signature = make([]*galois.Quantity, len(signature))
		for i, n := range signature {
			params.Signature[i] = galois.NewInt(n)
		}
	}
	c, err := galois.NewCovering(g, params)
	if err != nil {
		switch {
		case errors.Is(err, galois.ErrMalformedSignature):
			return nil, apperrors.Wrap(apperrors.CodeSignatureMalformed, "build covering", err)
		case errors.Is(err, galois.ErrInvalidGroup):
			return nil, apperrors.Wrap(apperrors.CodeGroupInvalid, "build covering", err)
		}
		return nil, fmt.Errorf("build covering: %w", err)
	}
	return c, nil
}

func clampPageSize(n int) int {
	if n <= 0 {
		return defaultPageSize
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}
