package config

import (
	"flag"
	"os"
	"time"

	"github.com/TusharG27x/codebuddy/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend API base URL
//	-s string   storage backend (sqlite, redis, memory)
//	-d string   SQLite database file
//	-t int      request timeout (in seconds)
//	-w int      autosave delay (in milliseconds)
//	-log string log format (text, zap)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-t", "-w", "-log"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend: sqlite, redis or memory")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "sqlite database file")
	fs.StringVar(&cfg.LogFormat, "log", cfg.LogFormat, "log format: text or zap")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	autosave := fs.Int("w", int(cfg.AutosaveDelay.Milliseconds()), "autosave delay (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.AutosaveDelay = time.Duration(*autosave) * time.Millisecond
}
