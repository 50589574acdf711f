package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_JSON(t *testing.T) {
	// Given: a reveal at the top-left corner
	event := Event{
		Type:       EventReveal,
		GameID:     "game-1",
		Status:     "safe",
		Row:        0,
		Col:        0,
		Board:      ". .\n. .",
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	// When: the event is encoded
	data, err := json.Marshal(event)
	require.NoError(t, err)

	// Then: the zero coordinates are still present
	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Contains(t, fields, "row")
	assert.Contains(t, fields, "col")
	assert.InDelta(t, 0.0, fields["row"], 0)
	assert.InDelta(t, 0.0, fields["col"], 0)
	assert.Equal(t, "2024-01-02T03:04:05Z", fields["occurred_at"])
}
