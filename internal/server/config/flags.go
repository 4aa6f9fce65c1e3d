package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-r string   Redis URL, empty disables the cache
//	-t int      cache TTL, minutes
//	-s string   catalog refresh cron spec
//	-b string   matching backend: auto, gemini or catalog
//	-k string   Gemini API key
//	-m string   Gemini model
//	-o string   comma separated CORS origins
//	-l string   log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-d", "-r", "-t", "-s", "-b", "-k", "-m", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")
	cacheTTL := fs.Int("t", int(config.CacheTTL.Minutes()), "cache TTL (in minutes)")
	fs.StringVar(&config.RefreshSpec, "s", config.RefreshSpec, "catalog refresh cron spec")
	fs.StringVar(&config.Backend, "b", config.Backend, "matching backend (auto, gemini, catalog)")
	fs.StringVar(&config.GeminiAPIKey, "k", config.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&config.GeminiModel, "m", config.GeminiModel, "Gemini model")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "CORS origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CacheTTL = time.Duration(*cacheTTL) * time.Minute
	config.AllowedOrigins = splitList(*origins)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
