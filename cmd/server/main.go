package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"github.com/moby/locker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/murkotick/product-sync-service/internal/app/product/actions"
	"github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/pipeline"
	"github.com/murkotick/product-sync-service/internal/app/product/queries"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/get_run"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/list_products"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/list_runs"
	"github.com/murkotick/product-sync-service/internal/app/product/repo"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/delete_product"
	shared "github.com/murkotick/product-sync-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/product-sync-service/internal/config"
	"github.com/murkotick/product-sync-service/internal/pkg/clock"
	committer "github.com/murkotick/product-sync-service/internal/pkg/committer"
	"github.com/murkotick/product-sync-service/internal/pkg/logger"
	"github.com/murkotick/product-sync-service/internal/pkg/metrics"
	"github.com/murkotick/product-sync-service/internal/pkg/shopify"
	grpcproduct "github.com/murkotick/product-sync-service/internal/transport/grpc/product"
	httpproduct "github.com/murkotick/product-sync-service/internal/transport/http/product"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
	log.Info("server stopped")
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := shopify.New(shopify.Config{
		Shop:        cfg.Shopify.Shop,
		AccessToken: cfg.Shopify.AccessToken,
		APIVersion:  cfg.Shopify.APIVersion,
		RateLimit:   cfg.Shopify.RateLimit,
	}, log.Named("shopify"))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var (
		cm      contracts.Committer = committer.Nop{}
		journal contracts.Journal   = queries.DisabledJournal{}
	)
	if cfg.JournalEnabled() {
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return fmt.Errorf("spanner.NewClient: %w", err)
		}
		defer client.Close()
		cm = committer.NewAdapter(client)
		journal = queries.NewSpannerJournal(client)
	} else {
		log.Warn("SPANNER_DATABASE not set, reconciliation journal disabled")
	}

	clk := clock.RealClock{}
	locks := locker.New()
	rec := &shared.Recorder{
		RunRepo:    repo.NewRunRepo(),
		OutboxRepo: repo.NewOutboxRepo(),
		Committer:  cm,
		Metrics:    m,
		Logger:     log,
	}
	p := pipeline.New(catalog,
		pipeline.WithConcurrency(cfg.ImageConcurrency),
		pipeline.WithLogger(log.Named("pipeline")),
		pipeline.WithMetrics(m),
	)

	dispatcher := actions.NewDispatcher(
		update_product.NewInteractor(catalog, p, locks, rec, clk, log),
		delete_product.NewInteractor(catalog, locks, rec, clk, log),
		create_product.NewInteractor(catalog, rec, clk, log),
		log,
	)
	productsQ := list_products.NewHandler(catalog)
	runsQ := list_runs.NewHandler(journal)
	runQ := get_run.NewHandler(journal)

	// gRPC server
	grpcSrv := grpc.NewServer()
	grpcproduct.RegisterProductSyncServer(grpcSrv, grpcproduct.NewHandler(dispatcher, grpcproduct.Queries{
		Products: productsQ,
		Runs:     runsQ,
		Run:      runQ,
	}))
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(grpcproduct.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	// HTTP server
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger(log))
	httpproduct.RegisterRoutes(router,
		httpproduct.NewHandler(dispatcher, httpproduct.Queries{Products: productsQ, Runs: runsQ, Run: runQ}, cfg.RequestTimeout.Duration, log),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 2)
	go func() {
		log.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcSrv.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc serve: %w", err)
		}
	}()
	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case serveErr = <-errCh:
	}

	healthSrv.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}

	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcSrv.Stop()
	}

	return serveErr
}
