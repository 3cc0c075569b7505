// Package enginev1 describes the enginecondition.v1.EngineCondition gRPC
// service. Requests and responses are google.protobuf.Struct / Empty so the
// service needs no generated message types; the descriptor below mirrors what
// protoc-gen-go-grpc would emit for:
//
//	service EngineCondition {
//	  rpc GetAdvisories(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc PredictCondition(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc ListSensors(google.protobuf.Empty) returns (google.protobuf.Struct);
//	  rpc HealthCheck(google.protobuf.Empty) returns (google.protobuf.Struct);
//	}
package enginev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "enginecondition.v1.EngineCondition"

	GetAdvisoriesFullMethodName    = "/" + ServiceName + "/GetAdvisories"
	PredictConditionFullMethodName = "/" + ServiceName + "/PredictCondition"
	ListSensorsFullMethodName      = "/" + ServiceName + "/ListSensors"
	HealthCheckFullMethodName      = "/" + ServiceName + "/HealthCheck"
)

// EngineConditionServer is the server API for the EngineCondition service.
type EngineConditionServer interface {
	GetAdvisories(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PredictCondition(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSensors(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	HealthCheck(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedEngineConditionServer can be embedded for forward compatibility.
type UnimplementedEngineConditionServer struct{}

func (UnimplementedEngineConditionServer) GetAdvisories(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAdvisories not implemented")
}

func (UnimplementedEngineConditionServer) PredictCondition(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method PredictCondition not implemented")
}

func (UnimplementedEngineConditionServer) ListSensors(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSensors not implemented")
}

func (UnimplementedEngineConditionServer) HealthCheck(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method HealthCheck not implemented")
}

// RegisterEngineConditionServer registers srv on s.
func RegisterEngineConditionServer(s grpc.ServiceRegistrar, srv EngineConditionServer) {
	s.RegisterService(&EngineCondition_ServiceDesc, srv)
}

// methodHandler matches grpc.MethodDesc.Handler.
type methodHandler = func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error)

func structHandler(fullMethod string, call func(EngineConditionServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) methodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EngineConditionServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(EngineConditionServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func emptyHandler(fullMethod string, call func(EngineConditionServer, context.Context, *emptypb.Empty) (*structpb.Struct, error)) methodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(emptypb.Empty)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EngineConditionServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(EngineConditionServer), ctx, req.(*emptypb.Empty))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// EngineCondition_ServiceDesc is the grpc.ServiceDesc for the EngineCondition service.
var EngineCondition_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EngineConditionServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetAdvisories",
			Handler:    structHandler(GetAdvisoriesFullMethodName, EngineConditionServer.GetAdvisories),
		},
		{
			MethodName: "PredictCondition",
			Handler:    structHandler(PredictConditionFullMethodName, EngineConditionServer.PredictCondition),
		},
		{
			MethodName: "ListSensors",
			Handler:    emptyHandler(ListSensorsFullMethodName, EngineConditionServer.ListSensors),
		},
		{
			MethodName: "HealthCheck",
			Handler:    emptyHandler(HealthCheckFullMethodName, EngineConditionServer.HealthCheck),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "enginecondition/v1/engine_condition.proto",
}

// EngineConditionClient is the client API for the EngineCondition service.
type EngineConditionClient interface {
	GetAdvisories(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PredictCondition(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListSensors(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	HealthCheck(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type engineConditionClient struct {
	cc grpc.ClientConnInterface
}

// NewEngineConditionClient wraps a client connection.
func NewEngineConditionClient(cc grpc.ClientConnInterface) EngineConditionClient {
	return &engineConditionClient{cc: cc}
}

func (c *engineConditionClient) GetAdvisories(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetAdvisoriesFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineConditionClient) PredictCondition(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PredictConditionFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineConditionClient) ListSensors(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListSensorsFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineConditionClient) HealthCheck(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, HealthCheckFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
