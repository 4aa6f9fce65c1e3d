// Package results turns a raw match list into what the client renders:
// the filtered and sorted view, the dashboard aggregates and the per-card
// presentation facts. Every function here is pure.
package results
