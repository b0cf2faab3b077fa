// Package httpapi is the JSON-over-HTTP transport: gin routes under
// /apis/v1, request middleware and the mapping of service errors onto
// status codes.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/dmitrijs2005/folio/internal/server/config"
)

type Server struct {
	config *config.Config
	logger logging.Logger
	gate   Authenticator
	svc    Services
	db     Pinger
	engine *gin.Engine
}

// NewServer wires middleware and routes. tp may be nil, in which case the
// global tracer provider is used.
func NewServer(c *config.Config, l logging.Logger, gate Authenticator, svc Services, db Pinger, tp trace.TracerProvider) *Server {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	registerValidators()

	s := &Server{
		config: c,
		logger: l.With("module", "http_server"),
		gate:   gate,
		svc:    svc,
		db:     db,
		engine: gin.New(),
	}

	s.engine.HandleMethodNotAllowed = true
	s.engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, errorBody{Error: errorDetail{Code: codeNotFound, Message: "route not found"}})
	})
	s.engine.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, errorBody{Error: errorDetail{Code: "method_not_allowed", Message: "method not allowed"}})
	})
	s.engine.Use(requestID(), s.recovery(), tracing(tp), s.requestLogger())
	s.registerRoutes()

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.config.EndpointAddrHTTP)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
