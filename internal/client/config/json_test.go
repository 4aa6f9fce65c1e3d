package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scholarmatch.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	saved := os.Args
	t.Cleanup(func() { os.Args = saved })
	os.Args = append([]string{"scholarmatch"}, args...)
}

func TestParseJson_AppliesFile(t *testing.T) {
	path := writeConfig(t, `{
		"server_endpoint_addr": "gateway.internal:9000",
		"request_timeout": "10s",
		"postal_debounce": 250000000,
		"backend": "remote",
		"google_search": false,
		"reference_date": "2026-05-01"
	}`)
	withArgs(t, "-config", path)

	cfg := &Config{GoogleSearch: true}
	parseJson(cfg)

	assert.Equal(t, "gateway.internal:9000", cfg.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.PostalDebounce, "integer nanoseconds are accepted")
	assert.Equal(t, BackendRemote, cfg.Backend)
	assert.False(t, cfg.GoogleSearch)
	assert.Equal(t, "2026-05-01", cfg.ReferenceDate.Format(ReferenceDateLayout))
}

func TestParseJson_PartialFileKeepsOtherFields(t *testing.T) {
	withArgs(t, "-c", writeConfig(t, `{"log_level": "debug"}`))

	cfg := &Config{DatabasePath: "keep.db", RequestTimeout: time.Minute, GoogleSearch: true}
	parseJson(cfg)

	assert.Equal(t, &Config{
		DatabasePath:   "keep.db",
		RequestTimeout: time.Minute,
		GoogleSearch:   true,
		LogLevel:       "debug",
	}, cfg)
}

func TestParseJson_NoFileRequested(t *testing.T) {
	withArgs(t, "-a", "127.0.0.1:1")

	cfg := &Config{ServerEndpointAddr: "defaults:1234"}
	parseJson(cfg)
	assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
}

func TestParseJson_Panics(t *testing.T) {
	tests := map[string]func(t *testing.T) string{
		"missing file":   func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.json") },
		"malformed json": func(t *testing.T) string { return writeConfig(t, `{ not json`) },
		"bad date":       func(t *testing.T) string { return writeConfig(t, `{"reference_date": "Feb 24"}`) },
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			withArgs(t, "-config", path(t))
			assert.Panics(t, func() { parseJson(&Config{}) })
		})
	}
}
