package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/playgrid/gameroom-backend/internal/config"
	"github.com/playgrid/gameroom-backend/internal/registry"
	"github.com/playgrid/gameroom-backend/internal/repository"
	"github.com/playgrid/gameroom-backend/internal/repository/storage"
	"github.com/playgrid/gameroom-backend/internal/usecase"
	"github.com/playgrid/gameroom-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	resultRepo := repository.NewResultRepository(redisStorage, conf.Game.ResultTTL)
	roomRegistry := registry.New(logger, conf.Game.WaitingTimeout, conf.Game.RetentionWindow)
	gameManager := usecase.NewGameManager(logger, roomRegistry, resultRepo)

	// background room garbage collection
	go roomRegistry.Run(ctx, conf.Game.GCInterval, gameManager.ArchiveExpired)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)

		handlers := rest.NewHandlers(logger, gameManager)
		if httpErr := rest.Start(conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
