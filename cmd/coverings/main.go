// Package main provides the coverings CLI.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	coveringscmd "github.com/louisbranch/coverings.space/internal/cmd/coverings"
	"github.com/louisbranch/coverings.space/internal/platform/config"
)

func main() {
	cfg, err := coveringscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := coveringscmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
