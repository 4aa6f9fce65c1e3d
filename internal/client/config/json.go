package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/flagx"
	"github.com/dmitrijs2005/scholarmatch/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabasePath       string         `json:"database_path"`
	Backend            string         `json:"backend"`
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	GeminiAPIKey       string         `json:"gemini_api_key"`
	GeminiModel        string         `json:"gemini_model"`
	GoogleSearch       *bool          `json:"google_search"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	PostalBaseURL      string         `json:"postal_base_url"`
	PostalDebounce     timex.Duration `json:"postal_debounce"`
	ReferenceDate      string         `json:"reference_date"`
	LogLevel           string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file selected
// with -c or -config. Keys absent from the file keep their current value.
// Panics on read, unmarshal or date errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.GeminiAPIKey, jc.GeminiAPIKey)
	setString(&cfg.GeminiModel, jc.GeminiModel)
	setString(&cfg.PostalBaseURL, jc.PostalBaseURL)
	setString(&cfg.LogLevel, jc.LogLevel)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.PostalDebounce, jc.PostalDebounce)
	if jc.GoogleSearch != nil {
		cfg.GoogleSearch = *jc.GoogleSearch
	}
	if jc.ReferenceDate != "" {
		ref, err := time.Parse(ReferenceDateLayout, jc.ReferenceDate)
		if err != nil {
			panic(err)
		}
		cfg.ReferenceDate = ref
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
