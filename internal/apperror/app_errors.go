package apperror

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrOutOfBounds          = errors.New("coordinates out of bounds")
	ErrInvalidTarget        = errors.New("invalid target cell")
	ErrGameOver             = errors.New("game is already over")
	ErrNoActiveGame         = errors.New("no active game")
	ErrInvalidPercentile    = errors.New("percentile must be in (0, 100]")
	ErrEmptyDataset         = errors.New("empty dataset")
)
