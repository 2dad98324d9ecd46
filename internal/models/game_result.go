package models

import "time"

type GameResult struct {
	ID       string
	UserID   string
	Game     string
	Score    int
	PlayedAt time.Time
}

// GameSummary aggregates a user's results for one game.
type GameSummary struct {
	Game       string
	Plays      int
	TotalScore int
	BestScore  int
}

// LeaderboardEntry is one row of a per-game ranking by total score.
type LeaderboardEntry struct {
	UserID     string
	Name       string
	TotalScore int
}
