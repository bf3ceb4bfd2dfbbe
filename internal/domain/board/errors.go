package board

import "errors"

// Sentinel kinds for leaderboard query errors.
var (
	ErrInvalidTopK = errors.New("top-k must be at least 1")
)
