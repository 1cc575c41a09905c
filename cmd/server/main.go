package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/mlemos/userdir"
)

type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

func main() {
	// a missing .env is fine, the environment may be set directly
	_ = godotenv.Load()

	logger := slogLogger{l: slog.New(slog.NewJSONHandler(os.Stdout, nil))}

	cfg, err := userdir.NewEnvConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := userdir.OpenDB(cfg.GetDBURL())
	if err != nil {
		logger.Error("unable to open credential store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := userdir.InitSchema(ctx, db); err != nil {
		logger.Error("unable to initialize schema", "error", err)
		os.Exit(1)
	}

	users := userdir.NewUsersRepository(db)
	provider := userdir.NewUserProvider(users).WithLogger(logger)
	auther := userdir.NewAuthenticator(provider, cfg).WithLogger(logger)

	app := fiber.New(fiber.Config{
		AppName:               "userdir",
		DisableStartupMessage: true,
	})

	userdir.RegisterRoutes(app,
		userdir.WithControllerLogger(logger),
		userdir.WithUsers(users),
		userdir.WithProvider(provider),
		userdir.WithAuther(auther),
	)

	go func() {
		logger.Info("listening", "addr", cfg.GetListenAddr())
		if err := app.Listen(cfg.GetListenAddr()); err != nil {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
