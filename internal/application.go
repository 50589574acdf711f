package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/minesweeper-backend/internal/broadcast"
	"github.com/rocketscienceinc/minesweeper-backend/internal/config"
	"github.com/rocketscienceinc/minesweeper-backend/internal/storage"
	"github.com/rocketscienceinc/minesweeper-backend/internal/usecase"
	"github.com/rocketscienceinc/minesweeper-backend/transport/rest"
	"github.com/rocketscienceinc/minesweeper-backend/transport/websocket"
)

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var session *usecase.Session

	if conf.Redis.Enabled {
		redisClient, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}

		defer func() {
			if err = redisClient.Close(); err != nil {
				log.Error("could not close redis client", "error", err)
			}
		}()

		log.Info("Broadcasting game events", "channel", conf.Redis.Channel)
		publisher := broadcast.NewPublisher(logger, redisClient, conf.Redis.Channel)
		session = usecase.NewSession(logger, publisher, conf.Game.MaxCells)
	} else {
		session = usecase.NewSession(logger, nil, conf.Game.MaxCells)
	}

	restServer := rest.New(logger, session, conf.Game, conf.Baseline)
	wsServer := websocket.New(logger, session, conf.Game)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := restServer.Start(groupCtx, conf.HTTPPort); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if err := wsServer.Start(groupCtx, conf.SocketPort); err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}

		return nil
	})

	err := group.Wait()
	log.Info("Application stopped")

	return err
}
