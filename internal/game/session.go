// internal/game/session.go
//
// GameSession: the explicitly owned state for one game.
// Lifecycle:
//   Setup(names) → codes generated → turn order fixed → Play → Results.
//
// The session talks to the outside world only through UI (input, display,
// pause, clear) and an optional Recorder for the turn log.

package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// UI is the presentation layer consumed by Play.
type UI interface {
	// ReadGuess blocks until the named player enters a line.
	ReadGuess(ctx context.Context, player string) (string, error)
	Display(msg string)
	// Pause waits d or until ctx is done.
	Pause(ctx context.Context, d time.Duration)
	// Clear hides the previous player's feedback. It may be a no-op.
	Clear()
}

// Recorder receives every scored turn.
type Recorder interface {
	RecordTurn(ctx context.Context, sessionID string, t Turn) error
}

// Options configures Setup.
type Options struct {
	Rand     *rand.Rand      // nil → time-seeded source
	Shuffle  bool            // uniformly random turn order
	Start    int             // index into names of the first player (ignored when Shuffle)
	Delay    time.Duration   // pause between turns
	Recorder Recorder        // optional turn log
	Logger   *zerolog.Logger // nil → global logger
}

// Session holds the players and progress of a single game.
type Session struct {
	ID           string
	Players      []*Player // turn order, fixed after setup
	Round        int       // starts at 1
	Active       bool
	TotalGuesses int
	CreatedAt    time.Time

	engine   *Engine
	delay    time.Duration
	recorder Recorder
	log      zerolog.Logger
}

// Standing is one row of the final results.
type Standing struct {
	Name    string
	Rank    int // 0 if the player never finished
	Round   int // finishing round
	Guesses int
	Secret  Code
}

// Setup creates a session for names, assigning each player a unique code.
func Setup(names []string, opts Options) (*Session, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("setup with %d player(s): %w", len(names), ErrInsufficientPlayers)
	}
	clean := make([]string, len(names))
	for i, n := range names {
		clean[i] = strings.TrimSpace(n)
		if clean[i] == "" {
			return nil, fmt.Errorf("player %d: %w", i+1, ErrInvalidPlayerName)
		}
	}
	if !opts.Shuffle && (opts.Start < 0 || opts.Start >= len(clean)) {
		return nil, fmt.Errorf("start player %d out of range 0..%d", opts.Start, len(clean)-1)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	codes, err := GenerateUniqueCodes(rng, len(clean))
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	players := make([]*Player, len(clean))
	for i, n := range clean {
		players[i] = &Player{ID: uuid.NewString(), Name: n, Secret: codes[i]}
	}
	if opts.Shuffle {
		rng.Shuffle(len(players), func(i, j int) { players[i], players[j] = players[j], players[i] })
	} else if opts.Start > 0 {
		rotated := make([]*Player, 0, len(players))
		rotated = append(rotated, players[opts.Start:]...)
		players = append(rotated, players[:opts.Start]...)
	}

	s := &Session{
		ID:        uuid.NewString(),
		Players:   players,
		Round:     1,
		Active:    true,
		CreatedAt: time.Now().UTC(),
		delay:     opts.Delay,
		recorder:  opts.Recorder,
		log:       logger,
	}
	s.engine = newEngine(s, logger)

	for _, p := range players {
		logger.Debug().Str("session", s.ID).Str("player", p.Name).Str("secret", p.Secret.String()).Msg("secret assigned")
	}
	return s, nil
}

// Engine exposes the turn engine for callers that drive play themselves.
func (s *Session) Engine() *Engine { return s.engine }

// Names returns player names in turn order.
func (s *Session) Names() []string {
	out := make([]string, len(s.Players))
	for i, p := range s.Players {
		out[i] = p.Name
	}
	return out
}

// Play runs turns until every player has guessed their code.
// Invalid guesses are reported and the same player is asked again.
func (s *Session) Play(ctx context.Context, ui UI) error {
	for s.engine.State() != StateGameOver {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := s.engine.Current()
		ui.Display(fmt.Sprintf("ROUND %d | %s's guess", s.Round, p.Name))

		raw, err := ui.ReadGuess(ctx, p.Name)
		if err != nil {
			return fmt.Errorf("read guess for %s: %w", p.Name, err)
		}
		t, err := s.engine.Submit(raw)
		if errors.Is(err, ErrInvalidGuessFormat) {
			ui.Display("Guess must be exactly 4 digits (0-9). Try again.")
			continue
		}
		if err != nil {
			return err
		}

		if s.recorder != nil {
			if err := s.recorder.RecordTurn(ctx, s.ID, t); err != nil {
				s.log.Warn().Err(err).Str("session", s.ID).Msg("record turn")
			}
		}

		ui.Display(fmt.Sprintf("Guess %s: Feedback (X,Y) -> %s", t.Guess, t.Feedback))
		if t.Won {
			ui.Display(fmt.Sprintf("CODE GUESSED! %s cracked %s in round %d and holds rank %d.",
				p.Name, p.Secret, t.Round, t.Rank))
		}
		if s.engine.State() == StateGameOver {
			break
		}
		ui.Display(fmt.Sprintf("...Moving to the next player in %s...", s.delay))
		ui.Pause(ctx, s.delay)
		ui.Clear()
	}
	s.Active = false
	return nil
}

// Results ranks the players and returns standings ordered by rank,
// then turn order. Unfinished players come last.
func (s *Session) Results() []Standing {
	AssignRanks(s.Players)
	out := make([]Standing, len(s.Players))
	for i, p := range s.Players {
		out[i] = Standing{Name: p.Name, Rank: p.Rank, Round: p.FinishRound, Guesses: p.Guesses, Secret: p.Secret}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Rank, out[j].Rank
		if ri == 0 || rj == 0 {
			return ri != 0 && rj == 0
		}
		return ri < rj
	})
	return out
}
