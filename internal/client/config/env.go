package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const envPrefix = "CODEBUDDY_"

// dotenvFile is loaded into the process environment when present. Variables
// already set in the environment win over the file.
var dotenvFile = ".env"

// parseEnv overlays Config with CODEBUDDY_* environment variables. Unset
// variables leave the current values alone. Panics on malformed values.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		panic(err)
	}
}
