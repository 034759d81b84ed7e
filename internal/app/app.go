package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/willowfeed/matchcentre/external/scorehub"
	"github.com/willowfeed/matchcentre/internal/config"
	"github.com/willowfeed/matchcentre/internal/interfaces/httpapi"
	"github.com/willowfeed/matchcentre/internal/platform/cache"
	"github.com/willowfeed/matchcentre/internal/platform/logging"
	"github.com/willowfeed/matchcentre/internal/platform/resilience"
	"github.com/willowfeed/matchcentre/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	upstreamLogger := logging.Default().With("component", "scorehub")
	upstream := scorehub.NewClient(scorehub.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.ScorehubTimeout},
		BaseURL:    cfg.ScorehubBaseURL,
		Timeout:    cfg.ScorehubTimeout,
		Logger:     upstreamLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScorehubCircuitEnabled,
			FailureThreshold: cfg.ScorehubCircuitFailureCount,
			OpenTimeout:      cfg.ScorehubCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ScorehubCircuitHalfOpenMaxReq,
		},
	})

	matchSvc := usecase.NewMatchService(upstream, logger)
	clientConfigSvc := usecase.NewClientConfigService(
		cfg.ClientConfigFile,
		cfg.ClientConfigBundled,
		cache.NewStore(cfg.ClientConfigCacheTTL),
		logger,
	)

	handler := httpapi.NewHandler(matchSvc, clientConfigSvc, logging.Default())
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.StaticDir)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
