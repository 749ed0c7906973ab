// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"showreel/internal/api"
	"showreel/internal/auth"
	"showreel/internal/catalog"
	"showreel/internal/config"
	"showreel/internal/db"
	"showreel/internal/logger"
	"showreel/internal/middleware"
	"showreel/internal/narration"
	"showreel/internal/reconcile"
	"showreel/internal/remote"
)

// Server represents the HTTP server
type Server struct {
	config           *config.Config
	db               *db.DB
	repos            *db.Repositories
	catalogService   *catalog.Service
	remoteStore      *remote.Store
	linkCache        *remote.LinkCache
	reconcileEngine  *reconcile.Engine
	narrationService *narration.Service
	authorizer       auth.Authorizer
	router           *gin.Engine
	server           *http.Server
}

// New creates a new server instance. This is the composition root: the
// storage handle and both expiring-credential caches are constructed once
// here and injected everywhere else. transcriber may be nil.
func New(cfg *config.Config, database *db.DB, transcriber narration.Transcriber) *Server {
	repos := db.NewRepositories(database)
	catalogService := catalog.NewService(repos)

	clientCache := remote.NewClientCache(cfg.Remote, nil)
	remoteStore := remote.NewStore(clientCache, cfg.Remote)
	linkCache := remote.NewLinkCache(remoteStore, cfg.Remote.LinkCacheTTL, nil)

	reconcileEngine := reconcile.NewEngine(repos, remoteStore)
	narrationService := narration.NewService(catalogService, remoteStore, linkCache, transcriber)

	return &Server{
		config:           cfg,
		db:               database,
		repos:            repos,
		catalogService:   catalogService,
		remoteStore:      remoteStore,
		linkCache:        linkCache,
		reconcileEngine:  reconcileEngine,
		narrationService: narrationService,
		authorizer:       auth.NewStaticToken(cfg.Auth.EditorToken),
	}
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(middleware.RequestLogger())
	s.router.Use(gin.Recovery())
	s.router.Use(cors.Default())

	// Viewer reads are open; every mutation goes through the authorizer
	public := s.router.Group("/api")
	editor := s.router.Group("/api", middleware.RequireAuthorized(s.authorizer))

	api.SetupHealthRoutes(public, s.db)
	api.SetupEntryRoutes(public, editor, s.catalogService, s.linkCache)
	api.SetupNarrationRoutes(editor, s.narrationService)
	api.SetupSyncRoutes(editor, s.reconcileEngine)
	api.SetupSettingsRoutes(public, editor, s.repos)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.setupRouter()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}
