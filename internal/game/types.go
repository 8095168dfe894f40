// internal/game/types.go
//
// Core type definitions for the codebreak game engine.
// Defines:
//   - Digit, Code, Guess: the 4-digit values players hide and attempt.
//   - Feedback: the (total, positional) pair returned for each guess.
//   - Player: identity, secret and per-game progress.
//   - Sentinel errors shared by setup and play.

package game

import (
	"errors"
	"strconv"
)

// CodeLength is the fixed number of digits in a code or guess.
const CodeLength = 4

// MaxCodes is the number of distinct codes with CodeLength unique digits (10·9·8·7).
const MaxCodes = 5040

var (
	// ErrInvalidGuessFormat is returned when a guess is not exactly four digits.
	ErrInvalidGuessFormat = errors.New("guess must be exactly 4 digits")

	// ErrInsufficientPlayers is returned when setup receives fewer than two names.
	ErrInsufficientPlayers = errors.New("at least 2 players are required")

	// ErrGenerationExhausted is returned when no more unique codes can be produced.
	ErrGenerationExhausted = errors.New("cannot generate enough unique codes")

	// ErrInvalidPlayerName is returned for blank player names.
	ErrInvalidPlayerName = errors.New("player name must not be empty")

	// ErrGameOver is returned when a guess is submitted after every player finished.
	ErrGameOver = errors.New("game is over")
)

// Digit is a single decimal digit in [0,9].
type Digit uint8

// Code is a secret: four pairwise-distinct digits. The first digit may be 0.
type Code [CodeLength]Digit

// Guess is a player's attempt. Unlike Code, digits may repeat.
type Guess [CodeLength]Digit

func (c Code) String() string  { return digitsString(c[:]) }
func (g Guess) String() string { return digitsString(g[:]) }

func digitsString(ds []Digit) string {
	b := make([]byte, len(ds))
	for i, d := range ds {
		b[i] = '0' + byte(d)
	}
	return string(b)
}

// Feedback is the result of scoring a guess.
type Feedback struct {
	Total      int // digit values of the guess present anywhere in the secret (X)
	Positional int // digits matching in value and position (Y)
}

// Solved reports whether the guess matched the secret exactly.
func (f Feedback) Solved() bool {
	return f.Total == CodeLength && f.Positional == CodeLength
}

// String renders feedback as "X,Y".
func (f Feedback) String() string {
	return strconv.Itoa(f.Total) + "," + strconv.Itoa(f.Positional)
}

// Player holds one participant's identity, secret and progress.
type Player struct {
	ID          string // uuid
	Name        string // display name, never empty
	Secret      Code   // owned by this player only
	Finished    bool   // true once Secret was guessed
	FinishRound int    // round in which the player finished (0 = not finished)
	Rank        int    // dense rank among finishers (0 = unranked)
	Guesses     int    // number of scored guesses
}
