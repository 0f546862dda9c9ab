package domain

import (
	"context"

	"github.com/louisbranch/coverings.space/internal/branch"
	"github.com/louisbranch/coverings.space/internal/galois"
	"github.com/louisbranch/coverings.space/internal/storage"
	"github.com/louisbranch/coverings.space/internal/tower"
)

// Service is the tower service surface the MCP tools and resources call.
type Service interface {
	ComputeTower(ctx context.Context, req tower.ComputeRequest) (*tower.ComputeResult, error)
	Intermediate(ctx context.Context, req tower.IntermediateRequest) (*galois.Intermediate, error)
	RationalClass(ctx context.Context, group, element string) (*galois.RationalClass, error)
	AreRationalConjugates(ctx context.Context, group, x, y string) (bool, error)
	BranchValues(ctx context.Context, group string) ([]*branch.Value, error)
	ListTowers(ctx context.Context, pageSize int, pageToken string) (storage.TowerPage, error)
	ListRows(ctx context.Context, q tower.ListRowsQuery) (storage.RowPage, error)
}
