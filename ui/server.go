package ui

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"quantix/app"
	"quantix/internal"
)

// Server exposes one Session as JSON. The session has a single mutator, so
// every request that touches it runs under mu and completes before the
// next one starts.
type Server struct {
	router  *gin.Engine
	session *app.Session
	logger  *internal.Logger

	mu            sync.Mutex
	reloads       singleflight.Group
	reloadTimeout time.Duration
}

// ServerOptions configures the HTTP layer
type ServerOptions struct {
	GinMode       string
	ReloadTimeout time.Duration
	Logger        *internal.Logger
}

// NewServer creates a server over session
func NewServer(session *app.Session, opts ServerOptions) *Server {
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}
	if opts.ReloadTimeout <= 0 {
		opts.ReloadTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = internal.DefaultLogger
	}

	s := &Server{
		router:        gin.New(),
		session:       session,
		logger:        opts.Logger.With("Server"),
		reloadTimeout: opts.ReloadTimeout,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupRoutes registers the JSON API
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/fields", s.handleFields)
	api.GET("/dataset", s.handleDatasetInfo)
	api.POST("/dataset/reload", s.handleDatasetReload)

	api.GET("/sections", s.handleSections)
	api.GET("/sections/:section", s.handleSection)
	api.POST("/sections/:section/:role/slots", s.handleAddSlot)
	api.PUT("/sections/:section/:role/slots/:index", s.handleSetSlot)
	api.DELETE("/sections/:section/:role/slots/:index", s.handleRemoveSlot)
}

// Handler returns the HTTP handler, for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server on addr
func (s *Server) Start(addr string) error {
	s.logger.Info("listening on %s", addr)
	return s.router.Run(addr)
}
