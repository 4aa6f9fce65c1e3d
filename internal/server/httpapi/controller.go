package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/matchrpc"
)

// maxBodyBytes caps the profile payload.
const maxBodyBytes = 1 << 20

type controller struct {
	matches MatchService
	logger  logging.Logger
}

func (c *controller) findMatches(w http.ResponseWriter, r *http.Request) {
	var req matchrpc.FindMatchesRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	matches, cached, err := c.matches.FindMatches(r.Context(), req.Profile)
	if err != nil {
		c.logger.Error(r.Context(), "find matches failed", "error", err, "request_id", w.Header().Get(common.RequestIDHeaderName))
		code, msg := httpStatus(err)
		writeError(w, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, matchrpc.FindMatchesResponse{Matches: matches, Cached: cached})
}

func (c *controller) listCatalog(w http.ResponseWriter, r *http.Request) {
	list, err := c.matches.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load catalog")
		return
	}
	writeJSON(w, http.StatusOK, matchrpc.ListCatalogResponse{Scholarships: list})
}

func httpStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrIncompleteProfile):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "matching request timed out"
	default:
		return http.StatusServiceUnavailable, "matching backend unavailable"
	}
}

// requestID propagates or assigns the correlation id and logs the request.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", id,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
