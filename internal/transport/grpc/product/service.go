package product

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "productsync.v1.ProductSyncService"

const (
	methodDispatch     = "/" + ServiceName + "/Dispatch"
	methodListProducts = "/" + ServiceName + "/ListProducts"
	methodListRuns     = "/" + ServiceName + "/ListRuns"
	methodGetRun       = "/" + ServiceName + "/GetRun"
)

// ProductSyncServer is the server API. Requests and replies are
// google.protobuf.Struct messages whose keys match the HTTP JSON bodies.
type ProductSyncServer interface {
	Dispatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRuns(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterProductSyncServer(s grpc.ServiceRegistrar, srv ProductSyncServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc is the grpc.ServiceDesc for ProductSyncService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductSyncServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Dispatch", Handler: unary(methodDispatch, ProductSyncServer.Dispatch)},
		{MethodName: "ListProducts", Handler: unary(methodListProducts, ProductSyncServer.ListProducts)},
		{MethodName: "ListRuns", Handler: unary(methodListRuns, ProductSyncServer.ListRuns)},
		{MethodName: "GetRun", Handler: unary(methodGetRun, ProductSyncServer.GetRun)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "productsync/v1/productsync.proto",
}

type method func(ProductSyncServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(fullMethod string, call method) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ProductSyncServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ProductSyncServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client is a thin client for ProductSyncService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Dispatch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodDispatch, in, opts...)
}

func (c *Client) ListProducts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodListProducts, in, opts...)
}

func (c *Client) ListRuns(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodListRuns, in, opts...)
}

func (c *Client) GetRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodGetRun, in, opts...)
}

func (c *Client) invoke(ctx context.Context, m string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, m, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
