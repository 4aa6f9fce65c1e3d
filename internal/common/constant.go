// Package common contains shared constants and sentinel errors used across
// ScholarMatch components.
package common

// RequestIDHeaderName is the gRPC metadata key and HTTP header used to carry
// a request correlation id between the client and the matching gateway.
const RequestIDHeaderName = "x-request-id"

// MaxNotifications bounds the persisted notification list.
const MaxNotifications = 20

// MaxSearchHistory bounds the persisted search history.
const MaxSearchHistory = 10
