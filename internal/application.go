package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-widget/internal/broker"
	"github.com/rocketscienceinc/tictactoe-widget/internal/config"
	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
	"github.com/rocketscienceinc/tictactoe-widget/internal/repository"
	"github.com/rocketscienceinc/tictactoe-widget/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-widget/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-widget/transport/rest"
	"github.com/rocketscienceinc/tictactoe-widget/transport/websocket"
)

const sweepInterval = time.Minute

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	defaultTheme, err := entity.ParseTheme(conf.DefaultTheme)
	if err != nil {
		return fmt.Errorf("invalid default theme: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	sessionRepo, closeRepo, err := newSessionRepository(gctx, g, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeRepo(); err != nil {
			log.Error("could not close session storage", "error", err)
		}
	}()

	sessionBroker := broker.New()
	gameUseCase := usecase.NewGameUseCase(logger, sessionRepo, sessionBroker, defaultTheme)
	wsServer := websocket.New(logger, gameUseCase, sessionBroker)

	httpServer := rest.New(conf.HTTPPort, logger, gameUseCase, func(r chi.Router) {
		r.Handle("/ws", wsServer)
	})

	g.Go(func() error {
		if httpErr := httpServer.Start(gctx); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Application context canceled, shutting down")
		return httpServer.Shutdown(context.Background())
	})

	return g.Wait()
}

// newSessionRepository picks the configured backend. The memory backend gets
// a sweeper running in g.
func newSessionRepository(
	ctx context.Context,
	g *errgroup.Group,
	logger *slog.Logger,
	conf *config.Config,
) (repository.SessionRepository, func() error, error) {
	log := logger.With("component", "app")

	switch conf.Storage {
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("Using redis session storage", "addr", redisAddrString, "ttl", conf.SessionTTL)

		return repository.NewSessionRepository(redisStorage.Connection, conf.SessionTTL), redisStorage.Close, nil
	default:
		memoryRepo := repository.NewMemorySessionRepository(conf.SessionTTL)

		g.Go(func() error {
			memoryRepo.RunSweeper(ctx, logger, sweepInterval)
			return nil
		})

		log.Info("Using in-memory session storage", "ttl", conf.SessionTTL)

		return memoryRepo, func() error { return nil }, nil
	}
}
