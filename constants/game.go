package constants

import "time"

// Corruption game tuning. The probabilities are arbitrary but kept at their
// historical values so runs with the same seed stay comparable.
const (
	GameGridSize      = 6
	GameNodeSpacing   = 60.0
	GameNodeOffset    = 50.0
	GameBoardSize     = 400.0
	GameHoverRadius   = 30.0
	GameCleanPoints   = 10
	GameOverLevel     = 80.0
	GameDangerLevel   = 60.0
	GameTickInterval  = 1 * time.Second
	GameValueHexWidth = 4

	// Probabilities
	GameInitialCorruption   = 0.1
	GameLinkChance          = 0.3
	GameSpreadChance        = 0.3
	GameRandomCorruptChance = 0.1
)
