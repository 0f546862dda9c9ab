// Package config holds the shared configuration plumbing of the command
// entry points: environment variable parsing and fatal exit handling.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from environment variables according to its `env`
// struct tags. Flag parsing layered on top overrides whatever is set here.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
