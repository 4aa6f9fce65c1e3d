// Package grpc exposes the matching gateway over gRPC using the JSON codec
// registered by matchrpc.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/matchrpc"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// MatchService is what the handlers need from the service layer.
type MatchService interface {
	FindMatches(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, bool, error)
	List(ctx context.Context) ([]models.Scholarship, error)
}

type GRPCServer struct {
	matchrpc.UnimplementedMatchServiceServer
	address string
	matches MatchService
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, ms MatchService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		matches: ms,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestIDInterceptor, s.loggingInterceptor))
	matchrpc.RegisterMatchServiceServer(srv, s)
	return srv
}

// Run serves on the configured address until ctx is cancelled, then drains
// in-flight calls before returning.
func (s *GRPCServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "gateway grpc stopping")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "gateway grpc listening", "address", lis.Addr().String())
	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
