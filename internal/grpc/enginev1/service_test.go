package enginev1

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type echoServer struct {
	UnimplementedEngineConditionServer
}

func (echoServer) GetAdvisories(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return req, nil
}

func (echoServer) ListSensors(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{"sensors": []interface{}{}})
}

func method(t *testing.T, name string) grpc.MethodDesc {
	t.Helper()
	for _, m := range EngineCondition_ServiceDesc.Methods {
		if m.MethodName == name {
			return m
		}
	}
	t.Fatalf("method %s not registered", name)
	return grpc.MethodDesc{}
}

func decoderFor(msg proto.Message) func(interface{}) error {
	return func(out interface{}) error {
		proto.Merge(out.(proto.Message), msg)
		return nil
	}
}

func TestServiceDescDispatchesStructMethods(t *testing.T) {
	req, err := structpb.NewStruct(map[string]interface{}{"engine_rpm": 700.0})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	resp, err := method(t, "GetAdvisories").Handler(echoServer{}, context.Background(), decoderFor(req), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resp.(*structpb.Struct).GetFields()["engine_rpm"].GetNumberValue(); got != 700 {
		t.Fatalf("unexpected echo %v", resp)
	}
}

func TestServiceDescRunsInterceptor(t *testing.T) {
	var seen string
	interceptor := func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}

	_, err := method(t, "ListSensors").Handler(echoServer{}, context.Background(), decoderFor(&emptypb.Empty{}), interceptor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != ListSensorsFullMethodName {
		t.Fatalf("interceptor saw %q", seen)
	}
}

func TestUnimplementedMethods(t *testing.T) {
	_, err := method(t, "PredictCondition").Handler(echoServer{}, context.Background(), decoderFor(&structpb.Struct{}), nil)
	if status.Code(err) != codes.Unimplemented {
		t.Fatalf("expected unimplemented, got %v", err)
	}
}
