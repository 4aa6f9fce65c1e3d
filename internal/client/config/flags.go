package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/flagx"
)

// dateValue is a flag.Value for ReferenceDateLayout dates.
type dateValue struct{ t *time.Time }

func (d dateValue) String() string {
	if d.t == nil {
		return ""
	}
	return d.t.Format(ReferenceDateLayout)
}

func (d dateValue) Set(s string) error {
	v, err := time.Parse(ReferenceDateLayout, s)
	if err != nil {
		return fmt.Errorf("want %s", ReferenceDateLayout)
	}
	*d.t = v
	return nil
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the local SQLite database
//	-b string   matching backend: auto, gemini, remote or catalog
//	-a string   address and port of the matching gateway
//	-k string   Gemini API key
//	-m string   Gemini model
//	-t int      matching request timeout (in seconds)
//	-r string   reference date for deadline checks (YYYY-MM-DD)
//	-l string   log level
//
// Only these flags are passed to the flag set (see flagx.FilterArgs). A bad
// value is returned as an error after the flag package prints usage.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-a", "-k", "-m", "-t", "-r", "-l"})

	fs := flag.NewFlagSet("scholarmatch", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "matching backend (auto, gemini, remote, catalog)")
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the matching gateway")
	fs.StringVar(&cfg.GeminiAPIKey, "k", cfg.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&cfg.GeminiModel, "m", cfg.GeminiModel, "Gemini model")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "matching request timeout (in seconds)")
	fs.Var(dateValue{&cfg.ReferenceDate}, "r", "reference date for deadline checks (YYYY-MM-DD)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
