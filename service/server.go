// Package service exposes the tree builder over HTTP.
//
// Routes:
//
//	POST /generate-pdf   legacy body, responds with the rendered tree as a file
//	POST /api/v1/trees   same body, responds with the trace document as JSON
//	GET  /health         liveness
//	GET  /metrics        Prometheus
//
// Body of both POST routes:
//
//	{"numbers1": "2 3 4", "numbers2": "3 4 5", "multiplier": 5}
//
// numbers1 are the weights, numbers2 the values and multiplier the capacity.
package service

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/bbtree/config"
	"github.com/katalvlaran/bbtree/render"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxItems caps the number of items per request.
	MaxItems int

	// DefaultFormat is used by /generate-pdf without ?format=.
	DefaultFormat render.Format

	// RateLimit in requests per second; 0 disables limiting.
	RateLimit float64
	RateBurst int

	Renderer *render.Renderer
	Logger   zerolog.Logger
}

// OptionsFromConfig maps a validated Config onto Options.
func OptionsFromConfig(cfg config.Config, logger zerolog.Logger) (Options, error) {
	format, err := render.ParseFormat(cfg.Render.DefaultFormat)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Addr:          cfg.Server.Addr,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		MaxItems:      cfg.Limits.MaxItems,
		DefaultFormat: format,
		RateLimit:     cfg.Server.RateLimit,
		RateBurst:     cfg.Server.RateBurst,
		Renderer: render.New(render.Graphviz{
			Binary:  cfg.Render.Graphviz,
			Timeout: cfg.Render.Timeout,
		}),
		Logger: logger,
	}, nil
}

// Server is the HTTP front end.
type Server struct {
	opts   Options
	engine *gin.Engine
	log    zerolog.Logger
}

// New builds the gin engine and registers all routes.
func New(opts Options) *Server {
	if opts.MaxItems < 1 {
		opts.MaxItems = config.Default().Limits.MaxItems
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = render.FormatPDF
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New(render.Graphviz{})
	}

	s := &Server{
		opts:   opts,
		engine: gin.New(),
		log:    opts.Logger.With().Str("component", "service").Logger(),
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.RateBurst, 1))
	}

	s.engine.Use(requestID(), accessLog(s.log), gin.Recovery(), cors())
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := s.engine.Group("", rateLimit(limiter))
	{
		limited.POST("/generate-pdf", s.handleGenerate)
		limited.POST("/api/v1/trees", s.handleTrees)
	}

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run listens on Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	s.log.Info().Str("addr", ln.Addr().String()).Bool("graphviz", s.opts.Renderer.Graphviz.Available()).Msg("listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
