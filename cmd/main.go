package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/ember/internal/cache/redis"
	"github.com/davidbz/ember/internal/config"
	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/filter"
	"github.com/davidbz/ember/internal/http"
	"github.com/davidbz/ember/internal/http/middleware"
	"github.com/davidbz/ember/internal/observability"
	"github.com/davidbz/ember/internal/provider/passthrough"
	"github.com/davidbz/ember/internal/provider/registry"
	"github.com/davidbz/ember/internal/provider/wrapped"
	"github.com/davidbz/ember/internal/upstream"
	"github.com/davidbz/ember/internal/workerpool"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server, logger *zap.Logger, serverCfg *config.ServerConfig) {
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil {
				log.Fatalf("Server failed to start: %v", err)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(serverCfg.ShutdownTimeout)*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", zap.Error(err))
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Provider Registry
	if err := container.Provide(func(cfg *config.ProvidersConfig) (domain.ProviderRegistry, error) {
		descriptors, err := config.LoadProviders(cfg)
		if err != nil {
			return nil, err
		}
		return registry.NewRegistry(descriptors)
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Upstream transport and worker pool
	if err := container.Provide(upstream.NewInvoker); err != nil {
		log.Fatalf("Failed to provide upstream invoker: %v", err)
	}
	if err := container.Provide(workerpool.New); err != nil {
		log.Fatalf("Failed to provide worker pool: %v", err)
	}

	// Response cache (optional)
	if err := container.Provide(func(cfg *config.Config) (domain.ResponseCache, error) {
		if !cfg.Cache.Enabled {
			return nil, nil
		}

		client, err := redis.NewClient(context.Background(), &cfg.Cache)
		if err != nil {
			return nil, err
		}
		return redis.NewResponseCache(client), nil
	}); err != nil {
		log.Fatalf("Failed to provide response cache: %v", err)
	}

	// Adapters
	if err := container.Provide(func(
		invoker *upstream.Invoker,
		pool *workerpool.Pool,
		cache domain.ResponseCache,
		cacheCfg *redis.Config,
	) []domain.Adapter {
		return []domain.Adapter{
			passthrough.NewAdapter(invoker),
			wrapped.NewAdapter(invoker, pool, cache, time.Duration(cacheCfg.TTL)*time.Second),
		}
	}); err != nil {
		log.Fatalf("Failed to provide adapters: %v", err)
	}

	// Content filter
	if err := container.Provide(func(cfg *filter.Config) domain.ContentFilter {
		return filter.NewSubstringFilter(cfg)
	}); err != nil {
		log.Fatalf("Failed to provide content filter: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewGatewayService); err != nil {
		log.Fatalf("Failed to provide gateway service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
