package api

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/miradorstack/engine-condition/internal/config"
	"github.com/miradorstack/engine-condition/internal/grpc/enginev1"
)

type healthStub struct {
	enginev1.UnimplementedEngineConditionServer
	state string
}

func (h healthStub) Health() map[string]interface{} {
	return map[string]interface{}{"status": h.state}
}

func checkHealth(t *testing.T, service enginev1.EngineConditionServer) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server, err := NewServer(config.ServerConfig{GRPCAddress: "127.0.0.1:0"}, service, logger)
	if err != nil {
		t.Fatalf("start server: %v", err)
	}
	go func() { _ = server.Start() }()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	conn, err := grpc.NewClient(server.Address(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: enginev1.ServiceName})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	return resp.GetStatus()
}

func TestHealthFollowsServiceReadiness(t *testing.T) {
	if got := checkHealth(t, healthStub{state: "NOT_SERVING"}); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected NOT_SERVING, got %v", got)
	}
	if got := checkHealth(t, healthStub{state: "SERVING"}); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %v", got)
	}
}

func TestInitialServingStatusWithoutReporter(t *testing.T) {
	if got := initialServingStatus(enginev1.UnimplementedEngineConditionServer{}); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %v", got)
	}
}
