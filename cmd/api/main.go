package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	mytutor "github.com/nahid515023/MyTutor-App-sub002"
	v1 "github.com/nahid515023/MyTutor-App-sub002/cmd/api/router/v1"
	"github.com/nahid515023/MyTutor-App-sub002/internal/config"
	cacheadapter "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/cache/adapter"
	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/database"
	queueadapter "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/queue/adapter"
	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/realtime"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := database.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrations, err := fs.Sub(mytutor.MigrationsFS, "migrations")
	if err != nil {
		return err
	}
	if err := database.Migrate(cfg.DatabaseURL, migrations); err != nil {
		return err
	}

	cache, err := cacheadapter.NewRedisCache(cfg.RedisURL)
	if err != nil {
		return err
	}
	defer cache.Close()

	queue, err := queueadapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		return err
	}
	defer queue.Close()

	rooms := realtime.NewRouter()
	defer rooms.Close()

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	v1.RegisterRoutes(r, v1.Deps{
		Config: cfg,
		Pool:   pool,
		Cache:  cache,
		Queue:  queue,
		Rooms:  rooms,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
