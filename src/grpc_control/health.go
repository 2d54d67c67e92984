package grpc_control

import (
	"context"
	"net"

	"stock-dashboard/src/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// MarketDataService is the health service name reported for the provider.
const MarketDataService = "market-data"

// HealthService exposes the standard grpc.health.v1 protocol so that
// orchestrators can probe the dashboard without HTTP.
type HealthService struct {
	Logger *logger.Logger
	server *grpc.Server
	health *health.Server
}

// -----------------------------------------------------------------------------

func NewHealthService(log *logger.Logger) *HealthService {
	hs := &HealthService{
		Logger: log.Named("HealthService"),
		server: grpc.NewServer(),
		health: health.NewServer(),
	}
	healthpb.RegisterHealthServer(hs.server, hs.health)
	return hs
}

// -----------------------------------------------------------------------------

// ListenAndServe blocks serving gRPC on addr.
func (hs *HealthService) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return hs.Serve(lis)
}

// -----------------------------------------------------------------------------

func (hs *HealthService) Serve(lis net.Listener) error {
	hs.Logger.Info("Starting gRPC health server on %s", lis.Addr())
	return hs.server.Serve(lis)
}

// -----------------------------------------------------------------------------

// SetServing marks service (and the overall server, "") as serving or not.
func (hs *HealthService) SetServing(service string, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	hs.health.SetServingStatus("", status)
	hs.health.SetServingStatus(service, status)
}

// -----------------------------------------------------------------------------

// Status reports the current status of service.
func (hs *HealthService) Status(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := hs.health.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

// -----------------------------------------------------------------------------

// Stop flips every service to NOT_SERVING and drains open RPCs.
func (hs *HealthService) Stop() {
	hs.health.Shutdown()
	hs.server.GracefulStop()
}
