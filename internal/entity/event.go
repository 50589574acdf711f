package entity

import "time"

const (
	EventSetup  = "game:setup"
	EventReveal = "game:reveal"
	EventFlag   = "game:flag"
)

// Event is broadcast after an operation has been applied to the current game.
type Event struct {
	Type       string    `json:"type"`
	GameID     string    `json:"game_id"`
	Status     string    `json:"status"`
	Row        int       `json:"row"`
	Col        int       `json:"col"`
	Board      string    `json:"board"`
	OccurredAt time.Time `json:"occurred_at"`
}
