// internal/game/engine.go
//
// Turn engine for a single codebreak session.
// Responsibilities:
//   - Track whose turn it is and the current round.
//   - Validate and score guesses against the current player's own code.
//   - Record wins (finishing round, rank) and skip finished players.
//   - Track state transitions: awaiting guess → round advance → game over.
//
// Notes:
//   - Invalid input never mutates state; the same player stays current.
//   - A lone unfinished player keeps taking turns until they solve their code.

package game

import (
	"github.com/rs/zerolog"
)

// State is the engine's position in the turn cycle.
type State int

const (
	StateAwaitingGuess State = iota // waiting on the current player's guess
	StateRoundAdvance               // passing the end of the turn order
	StateGameOver                   // every player has finished
)

func (s State) String() string {
	switch s {
	case StateAwaitingGuess:
		return "awaiting_guess"
	case StateRoundAdvance:
		return "round_advance"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Turn describes one scored guess.
type Turn struct {
	Player        *Player
	Round         int // round the guess was made in
	Guess         Guess
	Feedback      Feedback
	Won           bool
	Rank          int  // set when Won
	RoundAdvanced bool // the following turn starts a new round
}

// Engine sequences turns over a Session's players.
type Engine struct {
	session *Session
	current int
	state   State
	log     zerolog.Logger
}

func newEngine(s *Session, log zerolog.Logger) *Engine {
	e := &Engine{session: s, state: StateAwaitingGuess, log: log}
	if allFinished(s.Players) {
		e.state = StateGameOver
		s.Active = false
	}
	return e
}

// State reports the engine state.
func (e *Engine) State() State { return e.state }

// Current returns the player whose guess is awaited, or nil once the game is over.
func (e *Engine) Current() *Player {
	if e.state == StateGameOver {
		return nil
	}
	return e.session.Players[e.current]
}

// Submit validates and scores raw input for the current player.
//
// Validation rules:
//   - The game must not be over (ErrGameOver).
//   - Input must be exactly four ASCII digits (ErrInvalidGuessFormat).
//
// State transitions:
//   - Feedback 4,4 → player finished in the current round, ranks refreshed.
//   - Play moves to the next unfinished player; wrapping past the last
//     player in turn order advances the round.
//   - No unfinished players left → StateGameOver.
func (e *Engine) Submit(raw string) (Turn, error) {
	if e.state == StateGameOver {
		return Turn{}, ErrGameOver
	}
	guess, err := ParseGuess(raw)
	if err != nil {
		e.log.Debug().Str("player", e.Current().Name).Err(err).Msg("rejected guess")
		return Turn{}, err
	}

	s := e.session
	p := s.Players[e.current]
	fb := Score(p.Secret, guess)
	p.Guesses++
	s.TotalGuesses++

	t := Turn{Player: p, Round: s.Round, Guess: guess, Feedback: fb}
	if fb.Solved() {
		p.Finished = true
		p.FinishRound = s.Round
		AssignRanks(s.Players)
		t.Won, t.Rank = true, p.Rank
		e.log.Info().
			Str("session", s.ID).
			Str("player", p.Name).
			Int("round", s.Round).
			Int("rank", p.Rank).
			Msg("code guessed")
	}
	t.RoundAdvanced = e.advance()
	return t, nil
}

// advance moves to the next unfinished player and reports whether a new round began.
func (e *Engine) advance() bool {
	s := e.session
	if allFinished(s.Players) {
		e.state = StateGameOver
		s.Active = false
		e.log.Info().Str("session", s.ID).Int("round", s.Round).Msg("game over")
		return false
	}

	advanced := false
	i := e.current
	for {
		i++
		if i == len(s.Players) {
			e.state = StateRoundAdvance
			i = 0
			s.Round++
			advanced = true
		}
		if !s.Players[i].Finished {
			break
		}
	}
	e.current = i
	e.state = StateAwaitingGuess
	return advanced
}

func allFinished(players []*Player) bool {
	for _, p := range players {
		if !p.Finished {
			return false
		}
	}
	return true
}
