// Package coverings implements the coverings CLI: it derives covering
// towers from a deck group, resolves intermediate covers, inspects rational
// conjugacy classes and branch value types, and browses stored towers.
package coverings

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/louisbranch/coverings.space/internal/galois"
	apperrors "github.com/louisbranch/coverings.space/internal/platform/errors"
	"github.com/louisbranch/coverings.space/internal/storage"
	"github.com/louisbranch/coverings.space/internal/storage/sqlite"
	"github.com/louisbranch/coverings.space/internal/tower"
)

// Config holds coverings command configuration.
type Config struct {
	Group        string
	Subgroup     string
	Element      string
	Compare      string
	BranchValues bool
	BaseGenus    string
	Signature    string
	Resolve      bool

	List    bool
	TowerID string
	Filter  string

	DBPath     string        `env:"COVERINGS_SPACE_DB_PATH"`
	Locale     string        `env:"COVERINGS_SPACE_LOCALE" envDefault:"en-US"`
	Timeout    time.Duration `env:"COVERINGS_SPACE_CLI_TIMEOUT" envDefault:"2m"`
	JSONOutput bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Group, "group", "", "deck group: a catalog name such as S4 or a generator list such as (1 2), (1 2 3)")
	fs.StringVar(&cfg.Subgroup, "subgroup", "", "resolve the intermediate cover of this subgroup (generator list)")
	fs.StringVar(&cfg.Element, "element", "", "build the rational conjugacy class of this element (cycle notation)")
	fs.StringVar(&cfg.Compare, "compare", "", "with -element, test whether this element is rationally conjugate to it")
	fs.BoolVar(&cfg.BranchValues, "branch-values", false, "list the branch value types of the deck group")
	fs.StringVar(&cfg.BaseGenus, "genus", "", "genus of the base surface (symbolic g when empty)")
	fs.StringVar(&cfg.Signature, "signature", "", "comma-separated branch value counts, one per ramification type (symbolic when empty)")
	fs.BoolVar(&cfg.Resolve, "resolve", false, "resolve every intermediate cover row eagerly")
	fs.BoolVar(&cfg.List, "list", false, "list stored towers")
	fs.StringVar(&cfg.TowerID, "tower", "", "list the stored rows of this tower")
	fs.StringVar(&cfg.Filter, "filter", "", "AIP-160 filter over stored rows, e.g. structure = \"C2\" AND genus_known")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the towers sqlite database (default: COVERINGS_SPACE_DB_PATH)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages (default: COVERINGS_SPACE_LOCALE or en-US)")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "emit JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes one coverings command invocation.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var store storage.TowerStore
	if strings.TrimSpace(cfg.DBPath) != "" {
		sqlStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() {
			if err := sqlStore.Close(); err != nil {
				fmt.Fprintf(errOut, "close store: %v\n", err)
			}
		}()
		store = sqlStore
	}
	svc := tower.NewService(store)

	if err := dispatch(ctx, svc, cfg, out); err != nil {
		return apperrors.Localized(err, cfg.Locale)
	}
	return nil
}

func dispatch(ctx context.Context, svc *tower.Service, cfg Config, out io.Writer) error {
	switch {
	case cfg.List:
		return runListTowers(ctx, svc, cfg, out)
	case strings.TrimSpace(cfg.TowerID) != "":
		return runListRows(ctx, svc, cfg, out)
	case cfg.BranchValues:
		return runBranchValues(ctx, svc, cfg, out)
	case strings.TrimSpace(cfg.Element) != "":
		return runRationalClass(ctx, svc, cfg, out)
	case strings.TrimSpace(cfg.Subgroup) != "":
		return runIntermediate(ctx, svc, cfg, out)
	case strings.TrimSpace(cfg.Group) != "":
		return runCompute(ctx, svc, cfg, out)
	default:
		return errors.New("nothing to do: pass -group (optionally with -subgroup, -element or -branch-values), -list or -tower")
	}
}

func runCompute(ctx context.Context, svc *tower.Service, cfg Config, out io.Writer) error {
	req, err := computeRequest(cfg)
	if err != nil {
		return err
	}
	result, err := svc.ComputeTower(ctx, req)
	if err != nil {
		return err
	}
	if cfg.JSONOutput {
		return writeJSON(out, computeReport(result))
	}

	c := result.Covering
	if result.ID != "" {
		fmt.Fprintf(out, "tower %s\n", result.ID)
	}
	fmt.Fprintf(out, "group %s of order %d on %d points\n",
		c.Group().StructureDescription(), c.Group().Order(), c.Group().Degree())
	fmt.Fprintf(out, "base genus %s, signature [%s], cover genus %s\n",
		c.BaseGenus(), signatureString(c), c.CoverGenus())
	fmt.Fprintln(out)
	return writeRowTable(out, result.Rows)
}

func runIntermediate(ctx context.Context, svc *tower.Service, cfg Config, out io.Writer) error {
	req, err := computeRequest(cfg)
	if err != nil {
		return err
	}
	inter, err := svc.Intermediate(ctx, tower.IntermediateRequest{
		Group:     req.Group,
		Subgroup:  cfg.Subgroup,
		BaseGenus: req.BaseGenus,
		Signature: req.Signature,
	})
	if err != nil {
		return err
	}
	if cfg.JSONOutput {
		return writeJSON(out, intermediateReport(inter))
	}

	fmt.Fprintf(out, "subgroup %s of order %d, induced degree %d\n",
		inter.Group().StructureDescription(), inter.Group().Order(), inter.InducedDegree())
	fmt.Fprintf(out, "genus %s, total ramification %s\n",
		inter.Genus(), inter.InducedTotalRamification())
	for _, pc := range inter.InducedRamification() {
		fmt.Fprintf(out, "  index %d: %s points\n", pc.Index, pc.Points)
	}
	for _, profile := range inter.InducedRamificationData() {
		fmt.Fprintf(out, "  profile %v: %s branch values\n", profile.Profile, profile.Count)
	}
	return nil
}

func runRationalClass(ctx context.Context, svc *tower.Service, cfg Config, out io.Writer) error {
	if strings.TrimSpace(cfg.Compare) != "" {
		same, err := svc.AreRationalConjugates(ctx, cfg.Group, cfg.Element, cfg.Compare)
		if err != nil {
			return err
		}
		if cfg.JSONOutput {
			return writeJSON(out, map[string]bool{"rationally_conjugate": same})
		}
		fmt.Fprintf(out, "%s and %s rationally conjugate: %v\n", cfg.Element, cfg.Compare, same)
		return nil
	}

	rc, err := svc.RationalClass(ctx, cfg.Group, cfg.Element)
	if err != nil {
		return err
	}
	if cfg.JSONOutput {
		return writeJSON(out, rationalReport(rc))
	}
	fmt.Fprintf(out, "rational class of %s: %d elements in %d ordinary classes\n",
		rc.Representative(), rc.Len(), len(rc.Classes()))
	for _, class := range rc.Classes() {
		fmt.Fprintf(out, "  class of %s, size %d\n", class[0], len(class))
	}
	return nil
}

func runBranchValues(ctx context.Context, svc *tower.Service, cfg Config, out io.Writer) error {
	values, err := svc.BranchValues(ctx, cfg.Group)
	if err != nil {
		return err
	}
	if cfg.JSONOutput {
		reports := make([]branchValueReport, len(values))
		for i, v := range values {
			reports[i] = branchValueReport{
				Monodromy: v.Monodromy().String(),
				Type:      v.Type(),
				Deg:       v.Deg(),
			}
		}
		return writeJSON(out, reports)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONODROMY\tTYPE\tDEG")
	for _, v := range values {
		fmt.Fprintf(w, "%s\t%v\t%d\n", v.Monodromy(), v.Type(), v.Deg())
	}
	return w.Flush()
}

func runListTowers(ctx context.Context, svc *tower.Service, cfg Config, out io.Writer) error {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("-list requires a database: pass -db or set COVERINGS_SPACE_DB_PATH")
	}
	page, err := svc.ListTowers(ctx, 0, "")
	if err != nil {
		return err
	}
	if cfg.JSONOutput {
		return writeJSON(out, page.Towers)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGROUP\tORDER\tBASE GENUS\tCOVER GENUS\tCLASSES\tCREATED")
	for _, rec := range page.Towers {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%d\t%s\n",
			rec.ID, rec.Structure, rec.Order, rec.BaseGenus, rec.CoverGenus,
			rec.Classes, rec.CreatedAt.Format(time.RFC3339))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if page.NextPageToken != "" {
		fmt.Fprintf(out, "next page token: %s\n", page.NextPageToken)
	}
	return nil
}

func runListRows(ctx context.Context, svc *tower.Service, cfg Config, out io.Writer) error {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("-tower requires a database: pass -db or set COVERINGS_SPACE_DB_PATH")
	}
	page, err := svc.ListRows(ctx, tower.ListRowsQuery{
		TowerID: cfg.TowerID,
		Filter:  cfg.Filter,
	})
	if err != nil {
		return err
	}
	if cfg.JSONOutput {
		return writeJSON(out, page.Rows)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tSUBGROUP\tSTRUCTURE\tCLASS\tUP\tDOWN\tGENUS\tRAM UP\tRAM DOWN\tSTATE")
	for _, row := range page.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			row.Index, row.Subgroup, row.Structure, row.ClassSize,
			row.DegreeUp, row.DegreeDown,
			placeholder(row.Genus), placeholder(row.RamUp), placeholder(row.RamDown), row.State)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if page.NextPageToken != "" {
		fmt.Fprintf(out, "next page token: %s\n", page.NextPageToken)
	}
	return nil
}

func computeRequest(cfg Config) (tower.ComputeRequest, error) {
	req := tower.ComputeRequest{Group: cfg.Group, Resolve: cfg.Resolve}
	if trimmed := strings.TrimSpace(cfg.BaseGenus); trimmed != "" {
		genus, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return tower.ComputeRequest{}, fmt.Errorf("parse -genus %q: %w", cfg.BaseGenus, err)
		}
		req.BaseGenus = &genus
	}
	if trimmed := strings.TrimSpace(cfg.Signature); trimmed != "" {
		parts := strings.Split(trimmed, ",")
		req.Signature = make([]int64, len(parts))
		for i, part := range parts {
			count, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return tower.ComputeRequest{}, fmt.Errorf("parse -signature %q: %w", cfg.Signature, err)
			}
			req.Signature[i] = count
		}
	}
	return req, nil
}

// writeRowTable renders the cover table with one line per subgroup class.
// Unresolved cells print as "*", matching their stored placeholder form.
func writeRowTable(out io.Writer, rows []galois.TableRow) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tSTRUCTURE\tCLASS\tUP\tDOWN\tGENUS\tRAM UP\tRAM DOWN\tSTATE")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			row.Index, row.Structure, row.ClassSize, row.DegreeUp, row.DegreeDown,
			quantityCell(row.Genus), quantityCell(row.RamificationUp),
			quantityCell(row.RamificationDown), row.State)
	}
	return w.Flush()
}

func quantityCell(q *galois.Quantity) string {
	if q == nil {
		return "*"
	}
	return q.String()
}

func placeholder(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

func signatureString(c *galois.Covering) string {
	terms := c.GeometricSignature()
	parts := make([]string, len(terms))
	for i, term := range terms {
		parts[i] = term.Count.String()
	}
	return strings.Join(parts, " ")
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
