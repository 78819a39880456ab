package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	mytutor "github.com/nahid515023/MyTutor-App-sub002"
	"github.com/nahid515023/MyTutor-App-sub002/internal/config"
	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/database"
	queueadapter "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/queue/adapter"
	authtask "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/task"
	chattask "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/task"
	chatusecase "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/application/usecase"
	chatadapter "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/chat/persistence/repository/adapter"
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
		slog.Error("worker exited", "error", err)
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

	// Workers may boot before the API; applying migrations here too keeps
	// either start order valid.
	migrations, err := fs.Sub(mytutor.MigrationsFS, "migrations")
	if err != nil {
		return err
	}
	if err := database.Migrate(cfg.DatabaseURL, migrations); err != nil {
		return err
	}

	srv, err := queueadapter.NewAsynqServer(cfg.RedisURL, cfg.QueueConcurrency)
	if err != nil {
		return err
	}

	chatRepo := chatadapter.NewPgChatRepository(pool)
	deliveredHandler := chattask.NewMarkDeliveredHandler(chatusecase.NewMarkReceiptUseCase(chatRepo))
	verificationHandler := authtask.NewSendVerificationHandler(authtask.LogMailer{})

	srv.Register(chattask.MarkDeliveredTaskType, deliveredHandler.Handle)
	srv.Register(authtask.SendVerificationTaskType, verificationHandler.Handle)

	slog.Info("worker running", "concurrency", cfg.QueueConcurrency)
	return srv.Run(ctx)
}
