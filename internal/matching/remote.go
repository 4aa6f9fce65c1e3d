package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/matchrpc"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// ErrUnavailable is returned when the gateway cannot be reached.
var ErrUnavailable = errors.New("matching gateway unavailable")

// RemoteMatcher calls the matching gateway over gRPC.
type RemoteMatcher struct {
	conn    *grpc.ClientConn
	client  matchrpc.MatchServiceClient
	timeout time.Duration
}

func requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	md, _ := metadata.FromOutgoingContext(ctx)
	if len(md.Get(common.RequestIDHeaderName)) == 0 {
		if id, err := common.MakeRandHexString(8); err == nil {
			ctx = metadata.AppendToOutgoingContext(ctx, common.RequestIDHeaderName, id)
		}
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewRemoteMatcher connects lazily to the gateway at address. A zero timeout
// leaves deadlines to the caller.
func NewRemoteMatcher(address string, timeout time.Duration) (*RemoteMatcher, error) {
	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(requestIDInterceptor),
	)
	if err != nil {
		return nil, err
	}
	return newRemoteMatcher(conn, timeout), nil
}

func newRemoteMatcher(conn *grpc.ClientConn, timeout time.Duration) *RemoteMatcher {
	return &RemoteMatcher{
		conn:    conn,
		client:  matchrpc.NewMatchServiceClient(conn),
		timeout: timeout,
	}
}

func (r *RemoteMatcher) Close() error {
	return r.conn.Close()
}

func (r *RemoteMatcher) FindMatches(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	resp, err := r.client.FindMatches(ctx, &matchrpc.FindMatchesRequest{Profile: p})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Matches, nil
}

// Ping checks that the gateway answers.
func (r *RemoteMatcher) Ping(ctx context.Context) error {
	resp, err := r.client.Ping(ctx, &matchrpc.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != matchrpc.StatusOK {
		return ErrUnavailable
	}
	return nil
}

func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	default:
		return err
	}
}
