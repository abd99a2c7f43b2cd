package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/bayleafwalker/dnp-manager/internal/config"
	"github.com/bayleafwalker/dnp-manager/internal/resolver"
	"github.com/bayleafwalker/dnp-manager/internal/rpc"
)

func main() {
	setupLog := ctrl.Log.WithName("setup")

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.BindServer(flag.CommandLine)
	cfg.BindTimeout(flag.CommandLine)

	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	log := zap.New(zap.UseFlagOptions(&opts))
	ctrl.SetLogger(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := rpc.NewMetrics(reg)

	res := resolver.NewDefault(
		resolver.WithTimeout(cfg.Timeout),
		resolver.WithLogger(log.WithName("resolver")),
	)

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(metrics.UnaryServerInterceptor()))
	rpc.RegisterResolverServer(grpcServer, rpc.NewServer(res, log.WithName("rpc"), metrics))
	healthServer := health.NewServer()
	healthServer.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		setupLog.Error(err, "unable to listen", "address", cfg.GRPCAddr)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", rpc.Handler(reg))
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			setupLog.Error(err, "metrics server failed")
		}
	}()

	ctx := ctrl.SetupSignalHandler()
	go func() {
		<-ctx.Done()
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	setupLog.Info("serving resolver", "address", cfg.GRPCAddr, "metricsAddress", cfg.MetricsAddr, "resolveTimeout", cfg.Timeout)
	if err := grpcServer.Serve(lis); err != nil {
		setupLog.Error(err, "grpc serve failed")
		os.Exit(1)
	}
}
