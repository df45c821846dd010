package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nguyentrongphuc/python-api-development/internal/handler"
	"github.com/nguyentrongphuc/python-api-development/internal/middleware"
	"github.com/nguyentrongphuc/python-api-development/internal/service"
	"go.uber.org/zap"
)

// Options holds what the HTTP server is built from
type Options struct {
	Log    *zap.Logger
	Trivia *service.TriviaService
	Store  handler.Pinger

	// Metrics is optional; when set, requests are measured and /metrics is served
	Metrics *middleware.Metrics
	// Limiter is optional; when set, clients are rate limited by IP
	Limiter middleware.Limiter
}

// New builds the echo instance with middleware and routes
func New(opts Options) *echo.Echo {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	// Middleware
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("panic recovered",
				zap.Error(err),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.ByteString("stack", stack),
			)
			return err
		},
	}))
	e.Use(middleware.CORS())
	if opts.Metrics != nil {
		e.Use(opts.Metrics.Middleware())
		e.GET("/metrics", opts.Metrics.Handler())
	}
	if opts.Limiter != nil {
		e.Use(middleware.RateLimit(opts.Limiter, log))
	}

	// Routes
	handler.NewTriviaHandler(opts.Trivia).Register(e)
	handler.NewHealthHandler(opts.Store, log).Register(e)

	return e
}
