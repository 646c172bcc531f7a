package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jefefefef/Paperplay/internal/config"
	"github.com/jefefefef/Paperplay/internal/handler"
	"github.com/jefefefef/Paperplay/internal/middleware"
	"github.com/jefefefef/Paperplay/internal/repository/sqlite"
	"github.com/jefefefef/Paperplay/internal/search"
	libraryService "github.com/jefefefef/Paperplay/internal/service/library"
	"github.com/jefefefef/Paperplay/internal/thumbnail"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logFile, err := config.SetupLogFile(cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to create log file: %v", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(os.Stdout, logFile), &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Open SQLite database
	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	logger.Info("database connected", "path", cfg.DBPath)

	// Create table names
	tables := sqlite.NewTableNames(cfg.TablePrefix)

	// Ensure schema exists (idempotent)
	if err := sqlite.EnsureSchema(db, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create repositories
	repoConfig := &sqlite.RepositoryConfig{
		DB:     db,
		Tables: tables,
		Logger: logger,
	}
	docRepo := sqlite.NewDocumentRepository(repoConfig)
	collectionRepo := sqlite.NewCollectionRepository(repoConfig)

	// Create thumbnail generator
	generator, err := thumbnail.NewGenerator(logger)
	if err != nil {
		log.Fatalf("Failed to create thumbnail generator: %v", err)
	}

	// Create search index and library coordinator
	index := search.NewIndex()
	coordinator := libraryService.NewService(docRepo, collectionRepo, generator, index, logger)

	// Load persisted state. A failed load is not fatal: the coordinator
	// keeps an empty snapshot and the server still comes up.
	if err := coordinator.Initialize(ctx); err != nil {
		logger.Error("initialization failed, serving empty library", "error", err)
	}

	// Create handlers
	docHandler := handler.NewDocumentHandler(coordinator, logger)
	collectionHandler := handler.NewCollectionHandler(coordinator, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.Upload)
	mux.HandleFunc("GET /api/documents", docHandler.List)
	mux.HandleFunc("GET /api/documents/{id}/thumbnail", docHandler.Thumbnail)

	// Collection routes
	mux.HandleFunc("GET /api/collections", collectionHandler.List)
	mux.HandleFunc("POST /api/collections", collectionHandler.Create)
	mux.HandleFunc("POST /api/collections/{id}/documents", collectionHandler.AssignDocument)

	// Build middleware chain
	var handler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Routes
	handler = middleware.Recovery(logger)(handler)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	handler = corsHandler.Handler(handler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // Uploads process the whole batch before responding
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
