package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"Boardgames/internal/api/middleware"
	"Boardgames/internal/api/routes"
	"Boardgames/internal/config"
	"Boardgames/internal/core/media"
	"Boardgames/internal/core/posts"
	"Boardgames/internal/db/memory"
	"Boardgames/internal/db/mongodb"
)

// uploadsPrefix is the URL path locally stored images are served under
const uploadsPrefix = "uploads"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := setUpLogger(cfg.AppEnv, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repo, closeStore, err := openPostStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	mediaService, err := newMediaService(cfg, logger)
	if err != nil {
		return err
	}

	postService := posts.NewPostService(repo, mediaService, posts.WithLogger(logger))

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	// Rate limiting: RATE_LIMIT_REQUESTS per RATE_LIMIT_WINDOW per IP
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()
	r.Use(rateLimiter.Middleware)

	routes.RegisterHealthRoutes(r)
	routes.RegisterPostRoutes(r, postService)
	routes.RegisterMediaRoutes(r, postService, mediaService, int64(cfg.MaxUploadMB)<<20)
	routes.RegisterUploadsRoutes(r, uploadsPrefix, cfg.UploadsDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Boardgames server starting",
			"port", cfg.Port,
			"env", cfg.AppEnv,
			"store", cfg.StoreDriver,
			"cloudinary", cfg.CloudinaryEnabled(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// openPostStore returns the configured post repository and its cleanup
func openPostStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (posts.Repository, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("using in-memory post store, posts are lost on restart")
		return memory.NewPostRepository(), func() {}, nil
	}

	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		return nil, nil, err
	}
	closeClient := func() {
		disconnect(client, logger)
	}

	logger.Info("connected to MongoDB", "database", cfg.MongoDatabase)

	indexCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	repo, err := mongodb.NewPostRepository(indexCtx, client.Database(cfg.MongoDatabase))
	if err != nil {
		closeClient()
		return nil, nil, err
	}
	return repo, closeClient, nil
}

func disconnect(client *mongo.Client, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Warn("failed to disconnect from MongoDB", "error", err)
	}
}

// newMediaService prefers Cloudinary and falls back to local disk when
// credentials are absent. Either host is wrapped with a timeout and a
// circuit breaker.
func newMediaService(cfg *config.Config, logger *slog.Logger) (media.Service, error) {
	var (
		inner media.Service
		host  string
	)

	if cfg.CloudinaryEnabled() {
		cld, err := media.NewCloudinaryService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to configure Cloudinary: %w", err)
		}
		inner, host = cld, "cloudinary"
	} else {
		local, err := media.NewLocalService(cfg.UploadsDir, uploadsPrefix)
		if err != nil {
			return nil, err
		}
		logger.Warn("Cloudinary credentials not set, storing images on local disk", "dir", cfg.UploadsDir)
		inner, host = local, "local"
	}

	return media.NewGuardedService(inner, host, cfg.MediaTimeout)
}

// setUpLogger returns a logger according to the current environment
func setUpLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
