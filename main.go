package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mfujioka/campus-cms/internal/domain"
	"github.com/mfujioka/campus-cms/internal/handler"
	"github.com/mfujioka/campus-cms/internal/repository/sqlite"
	"github.com/mfujioka/campus-cms/internal/service"
	s3store "github.com/mfujioka/campus-cms/internal/storage/s3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "campus-cms.db")
	baseURL := envOrDefault("MEDIA_BASE_URL", "http://localhost:"+port)

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	var (
		store        domain.BlobStore
		mediaHandler *handler.MediaHandler
	)
	switch backend := envOrDefault("STORAGE_BACKEND", "sqlite"); backend {
	case "sqlite":
		blobs := db.Blobs(baseURL)
		store = blobs
		mediaHandler = handler.NewMediaHandler(blobs)
	case "s3":
		timeout, err := time.ParseDuration(envOrDefault("STORAGE_TIMEOUT", "30s"))
		if err != nil {
			slog.Error("invalid STORAGE_TIMEOUT", "error", err)
			os.Exit(1)
		}
		store, err = s3store.NewClient(context.Background(), s3store.Config{
			Region:          envOrDefault("S3_REGION", "ap-northeast-1"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			PublicBaseURL:   envOrDefault("S3_PUBLIC_BASE_URL", baseURL),
			OpTimeout:       timeout,
		})
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("unknown STORAGE_BACKEND", "value", backend)
		os.Exit(1)
	}

	mediaService := service.NewMediaService(store)
	recordService := service.NewRecordService(db.Records(), mediaService)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, recordService, mediaHandler)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.SecurityHeaders(handler.RequestLog(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
