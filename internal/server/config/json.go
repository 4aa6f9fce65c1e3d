package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/flagx"
	"github.com/dmitrijs2005/scholarmatch/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration, which accepts both "1s" and
// integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	RedisURL         string         `json:"redis_url"`
	CacheTTL         timex.Duration `json:"cache_ttl"`
	RefreshSpec      string         `json:"refresh_spec"`
	Backend          string         `json:"backend"`
	GeminiAPIKey     string         `json:"gemini_api_key"`
	GeminiModel      string         `json:"gemini_model"`
	GoogleSearch     *bool          `json:"google_search"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	AllowedOrigins   []string       `json:"allowed_origins"`
	LogLevel         string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into config. Keys absent from the file keep their current value.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.RefreshSpec, c.RefreshSpec)
	setString(&config.Backend, c.Backend)
	setString(&config.GeminiAPIKey, c.GeminiAPIKey)
	setString(&config.GeminiModel, c.GeminiModel)
	setString(&config.LogLevel, c.LogLevel)
	setDuration(&config.CacheTTL, c.CacheTTL)
	setDuration(&config.RequestTimeout, c.RequestTimeout)
	if c.GoogleSearch != nil {
		config.GoogleSearch = *c.GoogleSearch
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
