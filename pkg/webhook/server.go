// Package webhook is the HTTP ingress for voxlane. It shapes webhook
// requests into pipeline runs: a GET verification echo, a POST voice-query
// endpoint, plus health and metrics. All pipeline semantics live in
// pkg/pipeline; this package only translates HTTP.
package webhook

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/voxlane/voxlane/pkg/pipeline"
)

// Server is the webhook HTTP server.
type Server struct {
	app         *fiber.App
	pipeline    *pipeline.Pipeline
	verifyToken string
	version     string
	logger      *slog.Logger
}

// NewServer creates the ingress server over a pipeline.
func NewServer(p *pipeline.Pipeline, verifyToken, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		pipeline:    p,
		verifyToken: verifyToken,
		version:     version,
		logger:      logger.With("component", "webhook"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "voxlane",
		DisableStartupMessage: true,
		BodyLimit:             16 * 1024 * 1024, // inbound audio is base64 inflated
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	app.Get("/webhook", s.handleVerify)
	app.Post("/webhook", s.handleVoiceQuery)
	app.Get("/health", s.handleHealth)
	app.Get("/metrics", s.handleMetrics)

	s.app = app
	return s
}

// App returns the underlying fiber app, used by tests and the entrypoint.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the server on addr and blocks.
func (s *Server) Listen(addr string) error {
	s.logger.Info("webhook server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
