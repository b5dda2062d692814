package config

import (
	"encoding/json"
	"os"

	"github.com/TusharG27x/codebuddy/internal/flagx"
	"github.com/TusharG27x/codebuddy/internal/timex"
)

// JsonConfig is the on-disk shape of Config. SessionValidity accepts "24h"
// or integer nanoseconds.
type JsonConfig struct {
	Address         string         `json:"address"`
	DatabaseDSN     string         `json:"database_dsn"`
	SecretKey       string         `json:"secret_key"`
	SessionValidity timex.Duration `json:"session_validity"`
	AllowedOrigin   string         `json:"allowed_origin"`
}

// parseJson overlays Config with the file named by -c or -config. Keys
// absent from the file are left alone. Panics on read or parse errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Address != "" {
		cfg.Address = jc.Address
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.SessionValidity.Duration > 0 {
		cfg.SessionValidity = jc.SessionValidity.Duration
	}
	if jc.AllowedOrigin != "" {
		cfg.AllowedOrigin = jc.AllowedOrigin
	}
}
