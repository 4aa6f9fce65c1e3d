package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/matchrpc"
)

func (s *GRPCServer) FindMatches(ctx context.Context, req *matchrpc.FindMatchesRequest) (*matchrpc.FindMatchesResponse, error) {

	matches, cached, err := s.matches.FindMatches(ctx, req.Profile)
	if err != nil {
		s.logger.Error(ctx, "find matches failed", "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Matches found", "count", len(matches), "cached", cached)
	return &matchrpc.FindMatchesResponse{Matches: matches, Cached: cached}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *matchrpc.PingRequest) (*matchrpc.PingResponse, error) {

	return &matchrpc.PingResponse{Status: matchrpc.StatusOK}, nil

}

func (s *GRPCServer) ListCatalog(ctx context.Context, req *matchrpc.ListCatalogRequest) (*matchrpc.ListCatalogResponse, error) {

	list, err := s.matches.List(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &matchrpc.ListCatalogResponse{Scholarships: list}, nil
}

// toStatus maps service errors onto gRPC codes. Backend failures are
// reported as Unavailable so clients degrade to an empty list.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrIncompleteProfile):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Unavailable, "matching backend unavailable")
	}
}
