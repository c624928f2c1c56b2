package web

import (
	"contentfield/models"
	"contentfield/web/api"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// NewServer creates and configures the RWeb server
func NewServer(cfg *models.AppConfig) *rweb.Server {
	return NewTestServer(rweb.ServerOptions{
		Address: cfg.Address,
		Verbose: true,
	}, cfg)
}

// NewTestServer builds the server with caller-supplied options, so tests can
// bind a dynamic port and wait on ReadyChan.
func NewTestServer(opts rweb.ServerOptions, cfg *models.AppConfig) *rweb.Server {
	s := rweb.NewServer(opts)

	// Apply middleware
	s.Use(rweb.RequestInfo)          // Logs request info
	s.Use(CorsMiddleware)            // Custom CORS middleware
	s.Use(SecurityHeadersMiddleware) // Security headers
	s.Use(JWTAuthMiddleware)         // Field token -> entry context
	s.Use(LoggingMiddleware)         // Request logging

	gateway := models.NewSuggestionGateway(cfg.SuggestBaseURL, cfg.SuggestTimeout)
	api.Configure(gateway, models.NewSessionRegistry(gateway, models.EntryFieldStore, cfg.SessionTTL), cfg.SuggestTimeout)

	// Setup routes
	setupRoutes(s)

	// Serve static files using embedded FS
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, address string) error {
	logger.Info("Content field server starting on", "address", address)
	return s.Run()
}
