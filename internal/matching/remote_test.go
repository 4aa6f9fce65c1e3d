package matching

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/matchrpc"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

type gatewayStub struct {
	matchrpc.UnimplementedMatchServiceServer
	requestIDs chan string
	err        error
	delay      time.Duration
}

func (g *gatewayStub) FindMatches(ctx context.Context, req *matchrpc.FindMatchesRequest) (*matchrpc.FindMatchesResponse, error) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(common.RequestIDHeaderName); len(v) > 0 {
			g.requestIDs <- v[0]
		}
	}
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, status.FromContextError(ctx.Err()).Err()
		}
	}
	if g.err != nil {
		return nil, g.err
	}
	return &matchrpc.FindMatchesResponse{Matches: []models.ScholarshipMatch{
		{Scholarship: models.Scholarship{ID: "7", Title: req.Profile.FieldOfStudy}, Match: models.MatchResult{ScholarshipID: "7", MatchScore: 64}},
	}}, nil
}

func (g *gatewayStub) Ping(context.Context, *matchrpc.PingRequest) (*matchrpc.PingResponse, error) {
	return &matchrpc.PingResponse{Status: matchrpc.StatusOK}, nil
}

func startGateway(t *testing.T, stub *gatewayStub, timeout time.Duration) *RemoteMatcher {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	matchrpc.RegisterMatchServiceServer(srv, stub)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///gateway",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(requestIDInterceptor),
	)
	require.NoError(t, err)
	m := newRemoteMatcher(conn, timeout)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestRemoteMatcher_FindMatches(t *testing.T) {
	stub := &gatewayStub{requestIDs: make(chan string, 1)}
	m := startGateway(t, stub, time.Second)

	got, err := m.FindMatches(context.Background(), models.UserProfile{FieldOfStudy: "Physics"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Physics", got[0].Scholarship.Title)
	assert.Len(t, <-stub.requestIDs, 16)

	require.NoError(t, m.Ping(context.Background()))
}

func TestRemoteMatcher_MapsErrors(t *testing.T) {
	stub := &gatewayStub{requestIDs: make(chan string, 4), err: status.Error(codes.Unavailable, "backend down")}
	m := startGateway(t, stub, time.Second)

	_, err := m.FindMatches(context.Background(), models.UserProfile{})
	require.ErrorIs(t, err, ErrUnavailable)

	stub.err = nil
	stub.delay = time.Second
	m.timeout = 20 * time.Millisecond
	_, err = m.FindMatches(context.Background(), models.UserProfile{})
	require.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}
