package server

import (
	"time"

	"github.com/JonWatkins/guess-the-number/internal/game"
)

// GameSession represents a player's current game session.
type GameSession struct {
	Secret         int           `json:"secret"`
	GuessCount     int           `json:"guessCount"`
	Won            bool          `json:"won"`
	History        []GuessRecord `json:"history"`
	LastAccessTime time.Time     `json:"lastAccessTime"`
}

// GuessRecord is one valid guess and its evaluation.
type GuessRecord struct {
	Guess   int          `json:"guess"`
	Outcome game.Outcome `json:"outcome"`
}
