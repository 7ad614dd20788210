package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"petclinic/internal/hearing"
	httpapi "petclinic/internal/http"
	ownerhandler "petclinic/internal/owner/handler"
	ownermetrics "petclinic/internal/owner/metrics"
	ownerservice "petclinic/internal/owner/service"
	"petclinic/internal/owner/validation"
	pettypehandler "petclinic/internal/pettype/handler"
	pettypeservice "petclinic/internal/pettype/service"
	"petclinic/internal/platform/config"
	"petclinic/internal/platform/httpserver"
	"petclinic/internal/platform/metrics"
	"petclinic/internal/platform/redis"
	vetcache "petclinic/internal/vet/cache"
	vethandler "petclinic/internal/vet/handler"
	vetmetrics "petclinic/internal/vet/metrics"
	vetservice "petclinic/internal/vet/service"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}

	flags := cmd.Flags()
	flags.String("server.addr", ":8080", "listen address")
	flags.String("storage.driver", config.DriverMemory, "storage driver: memory, postgres or sqlite")
	flags.String("storage.dsn", "", "postgres connection string")
	flags.String("storage.sqlite_path", "petclinic.db", "sqlite database file")
	flags.String("redis.url", "", "redis URL for the vet cache; empty disables caching")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	producer, err := hearing.NewProducer(cfg.Profile, cfg.Say.Word)
	if err != nil {
		return err
	}

	store, err := openBackend(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()

	routerOpts := []httpapi.Option{
		httpapi.WithRequestTimeout(cfg.Server.RequestTimeout),
		httpapi.WithMetrics(metrics.New(), prometheus.DefaultGatherer),
		httpapi.WithHealthCheck(cfg.Storage.Driver, store),
	}

	vetOpts := []vetservice.Option{
		vetservice.WithLogger(log),
		vetservice.WithMetrics(vetmetrics.New()),
	}
	cache, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
		vets := vetcache.New(cache.Client, cfg.Redis.VetsTTL)
		// The list may predate this run's storage or seed data.
		if err := vets.Invalidate(ctx); err != nil {
			log.WarnContext(ctx, "failed to drop cached vet list", "error", err)
		}
		vetOpts = append(vetOpts, vetservice.WithCache(vets))
		routerOpts = append(routerOpts, httpapi.WithHealthCheck("redis", cache))
		log.InfoContext(ctx, "vet cache enabled", "ttl", cfg.Redis.VetsTTL)
	}

	owners := ownerservice.New(store.owners, validation.New(),
		ownerservice.WithLogger(log),
		ownerservice.WithMetrics(ownermetrics.New()),
		ownerservice.WithTracer(otel.Tracer("petclinic/owner")),
	)
	features := []httpapi.Registrar{
		ownerhandler.New(owners, log),
		vethandler.New(vetservice.New(store.vets, vetOpts...), log),
		pettypehandler.New(pettypeservice.New(store.petTypes, pettypeservice.WithLogger(log)), log),
		hearing.NewHandler(hearing.NewInterpreter(producer, log)),
	}
	router := httpapi.NewRouter(log, features, routerOpts...)
	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.ReadHeaderTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting petclinic", "addr", cfg.Server.Addr, "profile", cfg.Profile, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down petclinic")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
