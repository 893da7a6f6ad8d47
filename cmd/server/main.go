package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/networth-backend/internal/adapter/amqp"
	grpcadapter "github.com/simaogato/networth-backend/internal/adapter/grpc"
	networthv1 "github.com/simaogato/networth-backend/internal/adapter/grpc/networth/v1"
	"github.com/simaogato/networth-backend/internal/adapter/repository"
	"github.com/simaogato/networth-backend/internal/adapter/rest"
	"github.com/simaogato/networth-backend/internal/config"
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/simaogato/networth-backend/internal/scheduler"
	"github.com/simaogato/networth-backend/internal/usecase/ledger"
	"github.com/simaogato/networth-backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Configuration and logging
	cfg, err := config.Load(os.Getenv("NETWORTH_ENV_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()

	// 2. Store
	store, err := repository.Open(ctx, cfg.Store, logger.Named(zlog, "store"))
	if err != nil {
		zlog.Fatal("failed to open store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer store.Close()

	// 3. Controller
	opts := ledger.Options{
		Catalog:             cfg.Ledger.Catalog,
		ReachabilityTimeout: cfg.Ledger.ReachabilityTimeout,
		LoadTimeout:         cfg.Ledger.LoadTimeout,
		Location:            cfg.Ledger.Location,
		Logger:              logger.Named(zlog, "ledger"),
	}

	if cfg.AMQP.URL != "" {
		publisher, err := amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger.Named(zlog, "amqp"))
		if err != nil {
			zlog.Fatal("failed to connect to message broker", zap.Error(err))
		}
		defer publisher.Close()
		opts.Publisher = publisher
	}

	controller := ledger.NewController(store, opts)
	if err := controller.Initialize(ctx); err != nil {
		var connErr *domain.ConnectivityError
		if errors.As(err, &connErr) {
			zlog.Fatal("ledger store is unreachable", zap.String("backend", cfg.Store.Backend), zap.Error(err))
		}
		zlog.Fatal("failed to initialize ledger", zap.Error(err))
	}

	// 4. gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger.Named(zlog, "grpc")),
			grpcadapter.AuthInterceptor(cfg.Server.APIToken),
		),
	)
	networthv1.RegisterLedgerServiceServer(grpcServer, grpcadapter.NewServer(controller))
	reflection.Register(grpcServer)

	grpcAddr := ":" + cfg.Server.GRPCPort
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		zlog.Fatal("failed to listen", zap.String("addr", grpcAddr), zap.Error(err))
	}

	go func() {
		zlog.Info("gRPC server listening", zap.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			zlog.Fatal("failed to serve gRPC", zap.Error(err))
		}
	}()

	// 5. REST server
	var httpServer *http.Server
	if cfg.Server.HTTPPort != "" {
		handler := rest.NewLedgerHandler(controller, logger.Named(zlog, "rest"))
		httpServer = &http.Server{
			Addr:              ":" + cfg.Server.HTTPPort,
			Handler:           rest.NewRouter(handler, cfg.Server.APIToken, logger.Named(zlog, "http")),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			zlog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zlog.Fatal("failed to serve HTTP", zap.Error(err))
			}
		}()
	}

	// 6. Scheduled snapshots
	var sched *scheduler.Scheduler
	if cfg.Scheduler.SnapshotCron != "" {
		sched = scheduler.NewScheduler(cfg.Scheduler.SnapshotCron, cfg.Ledger.Location, controller, logger.Named(zlog, "scheduler"))
		if err := sched.Start(); err != nil {
			zlog.Fatal("failed to start scheduler", zap.Error(err))
		}
	}

	// Graceful shutdown
	waitForShutdown(zlog, grpcServer, httpServer, sched)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the servers
func waitForShutdown(zlog *zap.Logger, grpcServer *grpclib.Server, httpServer *http.Server, sched *scheduler.Scheduler) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	zlog.Info("received signal, shutting down gracefully", zap.String("signal", sig.String()))

	if sched != nil {
		sched.Stop()
	}

	if httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			zlog.Error("HTTP server shutdown failed", zap.Error(err))
		}
		zlog.Info("HTTP server stopped")
	}

	grpcServer.GracefulStop()
	zlog.Info("gRPC server stopped")
}
