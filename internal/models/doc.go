// Package models defines the ScholarMatch data model shared by the terminal
// client and the matching gateway.
//
// JSON field names use the camelCase keys of the persisted browser state and
// of the AI response schema, so one encoding serves storage, transport and
// model output.
package models
