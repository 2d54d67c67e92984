package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-dashboard/src/config"
	datasource "stock-dashboard/src/data_source"
	"stock-dashboard/src/grpc_control"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/network"
	"stock-dashboard/src/server"
)

const shutdownTimeout = 10 * time.Second

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file, env overrides applied
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.LogLevel, config.Name)

	// 1. Market data provider
	var networkManager interfaces.INetworkManager = network.NewNetworkManager(config.MConfig, appLogger)

	marketData, err := datasource.NewMarketData(config.MConfig, networkManager, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init data source: %v", err)
	}

	// 2. HTTP server
	srv, err := server.NewDashboardServer(config, marketData, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init server: %v", err)
	}

	// 3. Optional gRPC health endpoint
	var health *grpc_control.HealthService
	if addr := config.GrpcAddr(); addr != "" {
		health = grpc_control.NewHealthService(appLogger)
		health.SetServing(grpc_control.MarketDataService, true)
		go func() {
			if err := health.ListenAndServe(addr); err != nil {
				appLogger.Error("gRPC health server failed: %v", err)
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	case <-quit:
		appLogger.Info("Shutting down...")
	}

	if health != nil {
		health.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server shutdown failed: %v", err)
	}
	appLogger.Info("Shutdown complete.")
}
