package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "dex.api.v1alpha1.DexService"

// DexServiceServer is the server API. Messages are structpb.Struct so the
// service needs no generated code; field names are snake_case.
type DexServiceServer interface {
	GetSpecies(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchSpecies(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEvolution(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RandomSpawn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveMove(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterDexServiceServer registers srv on s
func RegisterDexServiceServer(s grpc.ServiceRegistrar, srv DexServiceServer) {
	s.RegisterService(&DexServiceDesc, srv)
}

type unaryMethod func(srv DexServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DexServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(DexServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// DexServiceDesc is the grpc.ServiceDesc for the dex service
var DexServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DexServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("GetSpecies", DexServiceServer.GetSpecies),
		unaryHandler("SearchSpecies", DexServiceServer.SearchSpecies),
		unaryHandler("GetEvolution", DexServiceServer.GetEvolution),
		unaryHandler("RandomSpawn", DexServiceServer.RandomSpawn),
		unaryHandler("ResolveMove", DexServiceServer.ResolveMove),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dex/api/v1alpha1/dex.proto",
}

// DexServiceClient is the client API for the dex service
type DexServiceClient interface {
	GetSpecies(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SearchSpecies(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetEvolution(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RandomSpawn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ResolveMove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type dexServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDexServiceClient creates a client over cc
func NewDexServiceClient(cc grpc.ClientConnInterface) DexServiceClient {
	return &dexServiceClient{cc: cc}
}

func (c *dexServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dexServiceClient) GetSpecies(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetSpecies", in, opts)
}

func (c *dexServiceClient) SearchSpecies(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "SearchSpecies", in, opts)
}

func (c *dexServiceClient) GetEvolution(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetEvolution", in, opts)
}

func (c *dexServiceClient) RandomSpawn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "RandomSpawn", in, opts)
}

func (c *dexServiceClient) ResolveMove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ResolveMove", in, opts)
}
