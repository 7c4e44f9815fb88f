package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/opengi/papergen/internal/config"
	"github.com/opengi/papergen/internal/generator"
	handlers "github.com/opengi/papergen/internal/handlers/v1"
	"github.com/opengi/papergen/internal/service"
	"github.com/opengi/papergen/internal/store"
	"github.com/opengi/papergen/pkg/metrics"
	"github.com/opengi/papergen/pkg/middleware"
	"github.com/opengi/papergen/web"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
	gen      generator.Generator
}

// New returns a new instance of a papergen API server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	gen generator.Generator,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
		gen:      gen,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	dispatcher := generator.NewDispatcher(s.store, s.gen, s.cfg.Service.Workers)
	dispatcher.Start(ctx)

	h := handlers.NewServiceHandler(
		service.NewSessionService(s.store),
		service.NewSelectionService(s.store),
		service.NewPaperService(s.store, dispatcher),
		s.cfg.Service.MaxUploadSize,
	)
	h.Routes(router)

	// Embedded UI assets at the root.
	router.Handle("/*", web.Handler())

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
