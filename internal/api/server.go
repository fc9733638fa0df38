package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"

	"github.com/imm/dashboard-api/infrastructure/cache"
	"github.com/imm/dashboard-api/internal/api/handler"
	"github.com/imm/dashboard-api/internal/api/handler/router"
	"github.com/imm/dashboard-api/internal/config"
	"github.com/imm/dashboard-api/internal/scheduler"
	"github.com/imm/dashboard-api/internal/usecases/analytics"
	"github.com/imm/dashboard-api/internal/usecases/authenticating"
	"github.com/imm/dashboard-api/internal/usecases/exporting"
	"github.com/imm/dashboard-api/pkg/log"
	"github.com/imm/dashboard-api/pkg/middleware"
)

// Dependencies são os serviços já construídos que o servidor expõe
type Dependencies struct {
	Database      handler.Pinger
	Cache         *cache.Cache
	Analyzer      analytics.Analyzer
	Exporter      exporting.Exporter
	Authenticator authenticating.Authenticator
	CacheWarmer   scheduler.CacheWarmer
}

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o router com a cadeia de middlewares globais
func NewHandler(cfg *config.Config, deps Dependencies) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.Database, deps.Cache, deps.Cache.Enabled())...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Authentication(deps.Authenticator)...),
		router.WithRoutes(handler.Analytics(deps.Analyzer, deps.Exporter)...),
		router.WithRoutes(handler.CronJobs(deps.CacheWarmer)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(deps.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, deps),
			ReadHeaderTimeout: 2 * time.Second,
			// exportações em PDF podem levar alguns segundos
			WriteTimeout: 2 * time.Minute,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithFields(log.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.L.WithFields(log.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
