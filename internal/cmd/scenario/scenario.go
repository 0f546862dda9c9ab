// Package scenario runs covering definitions written as Lua scripts: it
// loads a definition, derives the covering tower and executes the queued
// queries, printing each result.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/caarlos0/env/v11"

	apperrors "github.com/louisbranch/coverings.space/internal/platform/errors"
	"github.com/louisbranch/coverings.space/internal/scenario"
	"github.com/louisbranch/coverings.space/internal/storage"
	"github.com/louisbranch/coverings.space/internal/storage/sqlite"
	"github.com/louisbranch/coverings.space/internal/tower"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario string        `env:"COVERINGS_SPACE_SCENARIO_FILE"`
	DBPath   string        `env:"COVERINGS_SPACE_DB_PATH"`
	Locale   string        `env:"COVERINGS_SPACE_LOCALE" envDefault:"en-US"`
	Timeout  time.Duration `env:"COVERINGS_SPACE_SCENARIO_TIMEOUT" envDefault:"2m"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to the scenario lua file")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the towers sqlite database; the computed tower persists when set")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout for the whole scenario")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages (default: COVERINGS_SPACE_LOCALE or en-US)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if strings.TrimSpace(cfg.Scenario) == "" {
		return errors.New("scenario path is required")
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	def, err := scenario.Load(cfg.Scenario)
	if err != nil {
		loadErr := apperrors.WrapWithMetadata(apperrors.CodeScenarioLoadFailed,
			"load scenario", map[string]string{"Path": cfg.Scenario}, err)
		return apperrors.Localized(loadErr, cfg.Locale)
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

	return apperrors.Localized(runDefinition(ctx, tower.NewService(store), def, out), cfg.Locale)
}

func runDefinition(ctx context.Context, svc *tower.Service, def *scenario.Definition, out io.Writer) error {
	resolve := false
	for _, step := range def.Steps {
		if step.Kind == scenario.StepResolveAll {
			resolve = true
		}
	}

	result, err := svc.ComputeTower(ctx, tower.ComputeRequest{
		Group:     def.Group,
		BaseGenus: def.BaseGenus,
		Signature: def.Signature,
		Resolve:   resolve,
	})
	if err != nil {
		return fmt.Errorf("scenario %s: compute tower: %w", def.Name, err)
	}

	c := result.Covering
	fmt.Fprintf(out, "scenario %s\n", def.Name)
	fmt.Fprintf(out, "group %s of order %d, base genus %s, cover genus %s\n",
		c.Group().StructureDescription(), c.Group().Order(), c.BaseGenus(), c.CoverGenus())
	if result.ID != "" {
		fmt.Fprintf(out, "stored as tower %s\n", result.ID)
	}

	for i, step := range def.Steps {
		if err := runStep(ctx, svc, def, result, step, out); err != nil {
			return fmt.Errorf("scenario %s: step %d (%s): %w", def.Name, i+1, step.Kind, err)
		}
	}
	return nil
}

func runStep(ctx context.Context, svc *tower.Service, def *scenario.Definition, result *tower.ComputeResult, step scenario.Step, out io.Writer) error {
	switch step.Kind {
	case scenario.StepResolveAll:
		return writeTable(out, result)
	case scenario.StepIntermediate:
		inter, err := svc.Intermediate(ctx, tower.IntermediateRequest{
			Group:     def.Group,
			Subgroup:  stringArg(step, "subgroup"),
			BaseGenus: def.BaseGenus,
			Signature: def.Signature,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "intermediate %s: induced degree %d, genus %s, total ramification %s\n",
			inter.Group().StructureDescription(), inter.InducedDegree(),
			inter.Genus(), inter.InducedTotalRamification())
		for _, pc := range inter.InducedRamification() {
			fmt.Fprintf(out, "  index %d: %s points\n", pc.Index, pc.Points)
		}
		return nil
	case scenario.StepRationalClass:
		rc, err := svc.RationalClass(ctx, def.Group, stringArg(step, "element"))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "rational class of %s: %d elements in %d ordinary classes\n",
			rc.Representative(), rc.Len(), len(rc.Classes()))
		return nil
	case scenario.StepCompare:
		x := stringArg(step, "x")
		y := stringArg(step, "y")
		same, err := svc.AreRationalConjugates(ctx, def.Group, x, y)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s and %s rationally conjugate: %v\n", x, y, same)
		return nil
	case scenario.StepBranchValues:
		values, err := svc.BranchValues(ctx, def.Group)
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Fprintf(out, "branch value %s: type %v, deg %d\n", v.Monodromy(), v.Type(), v.Deg())
		}
		return nil
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func writeTable(out io.Writer, result *tower.ComputeResult) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tSTRUCTURE\tCLASS\tUP\tDOWN\tGENUS\tRAM UP\tRAM DOWN\tSTATE")
	for _, row := range result.Rows {
		genus, ramUp, ramDown := "*", "*", "*"
		if row.Genus != nil {
			genus = row.Genus.String()
		}
		if row.RamificationUp != nil {
			ramUp = row.RamificationUp.String()
		}
		if row.RamificationDown != nil {
			ramDown = row.RamificationDown.String()
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			row.Index, row.Structure, row.ClassSize, row.DegreeUp, row.DegreeDown,
			genus, ramUp, ramDown, row.State)
	}
	return w.Flush()
}

func stringArg(step scenario.Step, key string) string {
	if value, ok := step.Args[key].(string); ok {
		return value
	}
	return ""
}
