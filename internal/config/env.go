// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment following its `env` and
// `envPrefix` tags. Values loaded from the dotenv file are already part of
// the environment at this point.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: environment: %w", ErrReadingEnv, err)
	}
	return nil
}
