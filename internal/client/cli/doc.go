// Package cli provides the interactive ScholarMatch terminal client.
//
// It wires configuration, the local SQLite session store, the selected
// matching backend and an interactive REPL. Typical flow: register or log in,
// fill the profile (Indian pincodes prefill state and address), search, then
// filter, sort and track the results.
//
// Key features:
//   - Register / Login / Logout against the local users directory
//   - Profile wizard and per-field edits with completion feedback
//   - Search through the Gemini, gateway or offline catalog backend
//   - Result list controls, details, apply and save flags
//   - Dashboard stats, search history, notifications
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
