// ejournal/cmd/server/main.go

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ejournal/config"
	"ejournal/internal/cache"
	"ejournal/internal/handlers"
	"ejournal/internal/observability"
	"ejournal/internal/routes"
)

const version = "1.0.0"

func main() {
	// .env нужен только при локальной разработке, в продакшене его нет.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка конфигурации", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		slog.Error("Не удалось инициализировать Sentry", "error", err)
		os.Exit(1)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Не удалось подключиться к базе данных", "error", err)
		os.Exit(1)
	}
	if err := config.AutoMigrate(db); err != nil {
		slog.Error("Ошибка миграции", "error", err)
		os.Exit(1)
	}

	rdb := config.ConnectRedis(ctx, cfg.RedisAddr)
	store := cache.New(rdb)

	gemini, err := config.NewGeminiModel(ctx, cfg.GeminiAPIKey)
	if err != nil {
		// Генерация расписаний — не критичный путь, стартуем без нее.
		slog.Warn("Gemini недоступен, генерация расписаний отключена", "error", err)
	}

	server := handlers.NewServer(db, store, cfg, gemini)
	go server.Hub.Run()

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.Setup(r, server)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Сервер запущен", "addr", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Ошибка сервера", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Останавливаем сервер...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Ошибка при остановке сервера", "error", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	slog.Info("Сервер остановлен")
}

func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Env == "prod" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
