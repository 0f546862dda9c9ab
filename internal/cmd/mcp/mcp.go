// Package mcp parses MCP command flags and serves the covering tools over
// the selected transport.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/louisbranch/coverings.space/internal/mcp/service"
	platformcmd "github.com/louisbranch/coverings.space/internal/platform/cmd"
	"github.com/louisbranch/coverings.space/internal/storage"
	"github.com/louisbranch/coverings.space/internal/storage/sqlite"
	"github.com/louisbranch/coverings.space/internal/tower"
)

// Config holds MCP command configuration. An empty DBPath runs the server
// in compute-only mode: towers derive but nothing persists.
type Config struct {
	DBPath    string `env:"COVERINGS_SPACE_DB_PATH"`
	Transport string `env:"COVERINGS_SPACE_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the towers sqlite database (default: COVERINGS_SPACE_DB_PATH)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves the MCP covering tools until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		var store storage.TowerStore
		if strings.TrimSpace(cfg.DBPath) != "" {
			sqlStore, err := sqlite.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() { _ = sqlStore.Close() }()
			store = sqlStore
		}

		svc := tower.NewService(store)
		return service.Run(ctx, svc, service.Config{
			Transport: service.TransportKind(cfg.Transport),
		})
	})
}
