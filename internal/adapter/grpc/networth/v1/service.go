package networthv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "networth.v1.LedgerService"

// Full method names used by the client and in interceptors
const (
	GetLedgerMethod       = "/" + ServiceName + "/GetLedger"
	AddAssetMethod        = "/" + ServiceName + "/AddAsset"
	AddLiabilityMethod    = "/" + ServiceName + "/AddLiability"
	RemoveAssetMethod     = "/" + ServiceName + "/RemoveAsset"
	RemoveLiabilityMethod = "/" + ServiceName + "/RemoveLiability"
	RecordSnapshotMethod  = "/" + ServiceName + "/RecordSnapshot"
)

// LedgerServiceServer is the server API for the ledger service
type LedgerServiceServer interface {
	GetLedger(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	AddAsset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddLiability(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveAsset(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	RemoveLiability(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	RecordSnapshot(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterLedgerServiceServer registers srv on s
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

func newEmpty() proto.Message  { return new(emptypb.Empty) }
func newStruct() proto.Message { return new(structpb.Struct) }
func newString() proto.Message { return new(wrapperspb.StringValue) }

// LedgerService_ServiceDesc describes the ledger service for grpc.Server.RegisterService
var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetLedger", newEmpty, func(s LedgerServiceServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.GetLedger(ctx, req.(*emptypb.Empty))
		}),
		unary("AddAsset", newStruct, func(s LedgerServiceServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.AddAsset(ctx, req.(*structpb.Struct))
		}),
		unary("AddLiability", newStruct, func(s LedgerServiceServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.AddLiability(ctx, req.(*structpb.Struct))
		}),
		unary("RemoveAsset", newString, func(s LedgerServiceServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.RemoveAsset(ctx, req.(*wrapperspb.StringValue))
		}),
		unary("RemoveLiability", newString, func(s LedgerServiceServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.RemoveLiability(ctx, req.(*wrapperspb.StringValue))
		}),
		unary("RecordSnapshot", newEmpty, func(s LedgerServiceServer, ctx context.Context, req proto.Message) (proto.Message, error) {
			return s.RecordSnapshot(ctx, req.(*emptypb.Empty))
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "networth/v1/ledger.proto",
}

type call func(LedgerServiceServer, context.Context, proto.Message) (proto.Message, error)

func unary(method string, newReq func() proto.Message, fn call) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return fn(srv.(LedgerServiceServer), ctx, req.(proto.Message))
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
