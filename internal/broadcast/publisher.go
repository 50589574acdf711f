// Package broadcast fans game events out to Redis subscribers so that
// observers can follow a session without querying it.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
)

type Publisher struct {
	logger  *slog.Logger
	client  *redis.Client
	channel string
}

func NewPublisher(logger *slog.Logger, client *redis.Client, channel string) *Publisher {
	return &Publisher{
		logger:  logger.With("component", "broadcast"),
		client:  client,
		channel: channel,
	}
}

// Publish sends event as JSON on the configured channel.
func (that *Publisher) Publish(ctx context.Context, event *entity.Event) error {
	log := that.logger.With("method", "Publish")

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	receivers, err := that.client.Publish(ctx, that.channel, data).Result()
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	log.Debug("event published", "type", event.Type, "gameID", event.GameID, "receivers", receivers)

	return nil
}
