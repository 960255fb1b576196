package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"catalog-admin/internal/config"
	"catalog-admin/internal/graph"
	custommiddleware "catalog-admin/internal/middleware"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/service"
	"catalog-admin/internal/transport"
	"catalog-admin/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	store  repository.Store
	redis  *redis.Client
}

// NewServer wires the catalog services, the GraphQL endpoint and the upload
// endpoint onto one router. The store is owned by the server from here on.
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger, store repository.Store) (*Server, error) {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.ClientURL, cfg.Server.IsDevelopment()))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			custommiddleware.RespondWithError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Initialize services
	services := service.New(store, cfg.Catalog.Strict(), logger)

	schema, err := graph.NewSchema(services, logger)
	if err != nil {
		return nil, err
	}

	storage, err := newStorage(ctx, cfg.Upload)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	graphqlHandler := transport.NewGraphQLHandler(schema, logger)
	uploadHandler := transport.NewUploadHandler(upload.NewUploader(storage, cfg.Upload.MaxSize), logger)

	var redisClient *redis.Client
	var uploadMiddleware []func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		uploadMiddleware = append(uploadMiddleware, custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "upload_rate_limit",
		}, logger))
	}

	// Register routes
	graphqlHandler.RegisterRoutes(router)
	uploadHandler.RegisterRoutes(router, uploadMiddleware...)

	if disk, ok := storage.(*upload.DiskStorage); ok {
		mountUploads(router, cfg.Upload.PublicPrefix, disk.Dir())
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		store:  store,
		redis:  redisClient,
	}

	return server, nil
}

func newStorage(ctx context.Context, cfg config.UploadConfig) (upload.Storage, error) {
	switch cfg.Backend {
	case config.UploadS3:
		s3Storage, err := upload.NewS3Storage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s3Storage, nil
	case config.UploadDisk, "":
		disk, err := upload.NewDiskStorage(cfg.Dir, uploadsPath(cfg.PublicPrefix))
		if err != nil {
			return nil, err
		}
		return disk, nil
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
	}
}

func uploadsPath(prefix string) string {
	return strings.TrimRight(prefix, "/") + "/uploads"
}

// mountUploads serves stored files read-only under <prefix>/uploads/.
func mountUploads(r chi.Router, prefix, dir string) {
	path := uploadsPath(prefix) + "/"
	fs := http.StripPrefix(path, http.FileServer(http.Dir(dir)))
	r.Get(path+"*", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.store.Close(ctx); err != nil {
		s.logger.Error("Failed to close database connection", zap.Error(err))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
