package config

import (
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/client/postal"
	"github.com/dmitrijs2005/scholarmatch/internal/flagx"
	"github.com/dmitrijs2005/scholarmatch/internal/matching"
)

// Matching backends selectable with -b.
const (
	BackendAuto    = "auto"
	BackendGemini  = "gemini"
	BackendRemote  = "remote"
	BackendCatalog = "catalog"
)

// ReferenceDateLayout is the layout of the reference date flag and JSON key.
const ReferenceDateLayout = "2006-01-02"

// Config holds runtime settings for the ScholarMatch terminal client.
//
// ReferenceDate is the "today" used to decide whether a deadline has passed.
type Config struct {
	DatabasePath       string
	Backend            string
	ServerEndpointAddr string
	GeminiAPIKey       string
	GeminiModel        string
	GoogleSearch       bool
	RequestTimeout     time.Duration
	PostalBaseURL      string
	PostalDebounce     time.Duration
	ReferenceDate      time.Time
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "scholarmatch.db"
	c.Backend = BackendAuto
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.GeminiAPIKey = flagx.EnvOr("GEMINI_API_KEY", "")
	c.GeminiModel = matching.DefaultGeminiModel
	c.GoogleSearch = true
	c.RequestTimeout = 2 * time.Minute
	c.PostalBaseURL = postal.DefaultBaseURL
	c.PostalDebounce = postal.DefaultDebounce
	c.ReferenceDate = time.Date(2026, time.February, 24, 0, 0, 0, 0, time.UTC)
	c.LogLevel = "warn"
}

// ResolveBackend maps BackendAuto to a concrete backend: Gemini when an API
// key is available, the offline catalog otherwise.
func (c *Config) ResolveBackend() string {
	if c.Backend != BackendAuto && c.Backend != "" {
		return c.Backend
	}
	if c.GeminiAPIKey != "" {
		return BackendGemini
	}
	return BackendCatalog
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. A malformed JSON file panics; a bad flag
// value is returned as an error.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
