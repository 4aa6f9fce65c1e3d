package matchrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

const (
	ServiceName       = "scholarmatch.MatchService"
	FindMatchesMethod = "/" + ServiceName + "/FindMatches"
	PingMethod        = "/" + ServiceName + "/Ping"
	ListCatalogMethod = "/" + ServiceName + "/ListCatalog"
	StatusOK          = "OK"
)

type FindMatchesRequest struct {
	Profile models.UserProfile `json:"profile"`
}

type FindMatchesResponse struct {
	Matches []models.ScholarshipMatch `json:"matches"`
	Cached  bool                      `json:"cached,omitempty"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type ListCatalogRequest struct{}

type ListCatalogResponse struct {
	Scholarships []models.Scholarship `json:"scholarships"`
}

// MatchServiceServer is implemented by the gateway.
type MatchServiceServer interface {
	FindMatches(context.Context, *FindMatchesRequest) (*FindMatchesResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ListCatalog(context.Context, *ListCatalogRequest) (*ListCatalogResponse, error)
}

// UnimplementedMatchServiceServer can be embedded to satisfy the interface.
type UnimplementedMatchServiceServer struct{}

func (UnimplementedMatchServiceServer) FindMatches(context.Context, *FindMatchesRequest) (*FindMatchesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindMatches not implemented")
}

func (UnimplementedMatchServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedMatchServiceServer) ListCatalog(context.Context, *ListCatalogRequest) (*ListCatalogResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCatalog not implemented")
}

func RegisterMatchServiceServer(s grpc.ServiceRegistrar, srv MatchServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](method string, call func(MatchServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MatchServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MatchServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes MatchService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "FindMatches",
			Handler:    unaryHandler(FindMatchesMethod, MatchServiceServer.FindMatches),
		},
		{
			MethodName: "Ping",
			Handler:    unaryHandler(PingMethod, MatchServiceServer.Ping),
		},
		{
			MethodName: "ListCatalog",
			Handler:    unaryHandler(ListCatalogMethod, MatchServiceServer.ListCatalog),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "scholarmatch/match.json",
}

// MatchServiceClient is the client side of MatchService.
type MatchServiceClient interface {
	FindMatches(ctx context.Context, in *FindMatchesRequest, opts ...grpc.CallOption) (*FindMatchesResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	ListCatalog(ctx context.Context, in *ListCatalogRequest, opts ...grpc.CallOption) (*ListCatalogResponse, error)
}

type matchServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchServiceClient(cc grpc.ClientConnInterface) MatchServiceClient {
	return &matchServiceClient{cc: cc}
}

func (c *matchServiceClient) FindMatches(ctx context.Context, in *FindMatchesRequest, opts ...grpc.CallOption) (*FindMatchesResponse, error) {
	out := new(FindMatchesResponse)
	if err := c.cc.Invoke(ctx, FindMatchesMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.cc.Invoke(ctx, PingMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) ListCatalog(ctx context.Context, in *ListCatalogRequest, opts ...grpc.CallOption) (*ListCatalogResponse, error) {
	out := new(ListCatalogResponse)
	if err := c.cc.Invoke(ctx, ListCatalogMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
