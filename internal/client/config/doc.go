// Package config loads runtime configuration for the ScholarMatch terminal
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults); the Gemini API key
//     defaults to the GEMINI_API_KEY environment variable.
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations are timex.Duration values, either strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "database_path": "scholarmatch.db",
//	  "backend": "remote",
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "gemini_model": "gemini-3-flash-preview",
//	  "google_search": true,
//	  "request_timeout": "2m",
//	  "postal_base_url": "https://api.postalpincode.in",
//	  "postal_debounce": "800ms",
//	  "reference_date": "2026-02-24",
//	  "log_level": "warn"
//	}
package config
