package broadcast

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/testing/suite"
)

func TestPublisher_Publish(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a subscriber on the events channel
	sub := st.Redis.Subscribe(ctx, "events")
	t.Cleanup(func() { _ = sub.Close() })

	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher := NewPublisher(st.Logger, st.Redis, "events")
	event := &entity.Event{
		Type:       entity.EventReveal,
		GameID:     "game-1",
		Status:     "revealed",
		Row:        2,
		Col:        3,
		Board:      "    0\n 0  -",
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	// When: an event is published
	err = publisher.Publish(ctx, event)
	require.NoError(t, err)

	// Then: the subscriber receives it as JSON
	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var received entity.Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &received))
	assert.Equal(t, *event, received)
}

func TestPublisher_ClosedClient(t *testing.T) {
	ctx, st := suite.New(t)

	publisher := NewPublisher(st.Logger, st.Redis, "events")
	require.NoError(t, st.Redis.Close())

	err := publisher.Publish(ctx, &entity.Event{Type: entity.EventFlag})
	require.Error(t, err)
}
