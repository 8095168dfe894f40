// app.go
//
// Terminal game loop for codebreak.
// Responsibilities:
//   - Setup: read player names, pick the starting player, create a session.
//   - Play: hand the session to the game engine with the console as UI.
//   - Results: final rankings table, guess history, post-game menu.
//
// Sessions are kept in the in-memory registry so the post-game menu can
// reload the finished game by ID; every scored turn goes to the turn log.

package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codebreak/internal/config"
	"github.com/robalobadob/codebreak/internal/game"
	"github.com/robalobadob/codebreak/internal/seed"
	"github.com/robalobadob/codebreak/internal/store"
	"github.com/robalobadob/codebreak/internal/terminal"
)

// Post-game menu entries.
const (
	menuRematch = iota + 1
	menuNewPlayers
	menuHistory
	menuQuit
)

type app struct {
	cfg      config.Config
	ui       *terminal.Console
	sessions store.Store
	turns    *store.TurnLog
	rng      *rand.Rand
}

// run plays games until the players quit or input ends.
func (a *app) run(ctx context.Context) error {
	s, err := seed.Resolve(a.cfg.Seed, a.cfg.SeedPhrase)
	if err != nil {
		return err
	}
	a.rng = rand.New(rand.NewSource(s))
	log.Info().Int64("seed", s).Msg("starting codebreak")

	var names []string
	for {
		a.ui.Clear()
		a.banner()
		if names == nil {
			if names, err = a.ui.ReadPlayerNames(ctx); err != nil {
				return err
			}
		}

		sess, err := a.setup(ctx, names)
		if errors.Is(err, game.ErrInsufficientPlayers) || errors.Is(err, game.ErrInvalidPlayerName) {
			a.ui.Display(fmt.Sprintf("Setup failed: %v. Let's try again.", err))
			names = nil
			continue
		}
		if err != nil {
			return err
		}
		if err := a.sessions.Save(ctx, sess); err != nil {
			return err
		}

		a.ui.Clear()
		a.ui.Display("All secret codes have been generated. Let the guessing begin!")
		if err := sess.Play(ctx, a.ui); err != nil {
			return err
		}
		a.showResults(sess)

		next, err := a.postGame(ctx, sess.ID)
		if err != nil {
			return err
		}
		_ = a.sessions.Delete(ctx, sess.ID)
		switch next {
		case menuRematch:
			names = sess.Names()
		case menuNewPlayers:
			names = nil
		default:
			return nil
		}
	}
}

func (a *app) banner() {
	a.ui.Display("--- Multiplayer Code Guessing Game ---")
	a.ui.Display("Each player has a hidden 4-digit code (unique digits, may start with 0).")
	a.ui.Display("Guess your own code. Feedback X,Y: X = digits present, Y = digits in the right place.")
}

// setup asks who starts and creates the session.
func (a *app) setup(ctx context.Context, names []string) (*game.Session, error) {
	start, err := a.ui.ChooseStart(ctx, names)
	if err != nil {
		return nil, err
	}
	opts := game.Options{
		Rand:     a.rng,
		Shuffle:  start < 0,
		Delay:    a.cfg.TurnDelay,
		Recorder: a.turns,
	}
	if start > 0 {
		opts.Start = start
	}
	sess, err := game.Setup(names, opts)
	if err != nil {
		return nil, err
	}
	log.Info().Str("session", sess.ID).Strs("order", sess.Names()).Msg("session created")
	return sess, nil
}

// showResults prints the final rankings table.
func (a *app) showResults(sess *game.Session) {
	a.ui.Display("\n==========================================================")
	a.ui.Display("|                    FINAL RANKINGS                      |")
	a.ui.Display("==========================================================")
	for _, st := range sess.Results() {
		rank := "Unranked"
		if st.Rank > 0 {
			rank = fmt.Sprintf("Rank %d", st.Rank)
		}
		a.ui.Display(fmt.Sprintf("| %-15s | %-8s | Round %-3d | Guesses %-3d | Secret: %s |",
			st.Name, rank, st.Round, st.Guesses, st.Secret))
	}
	a.ui.Display("==========================================================")
	a.ui.Display(fmt.Sprintf("Total guesses: %d across %d round(s).", sess.TotalGuesses, sess.Round))
}

// postGame shows the menu until the players pick rematch, new players or quit.
func (a *app) postGame(ctx context.Context, sessionID string) (int, error) {
	for {
		a.ui.Display("\n--- Game Over ---")
		a.ui.Display("[1] Rematch with the same players")
		a.ui.Display("[2] New game with new players")
		a.ui.Display("[3] Show guess history")
		a.ui.Display("[4] Quit")
		choice, err := a.ui.ReadChoice(ctx, "Enter choice: ", menuRematch, menuQuit)
		if err != nil {
			return 0, err
		}
		if choice != menuHistory {
			return choice, nil
		}
		if err := a.showHistory(ctx, sessionID); err != nil {
			log.Warn().Err(err).Str("session", sessionID).Msg("load history")
			a.ui.Display("Guess history is unavailable.")
		}
	}
}

// showHistory prints every turn of the session followed by per-player totals.
func (a *app) showHistory(ctx context.Context, sessionID string) error {
	sess, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	rows, err := a.turns.History(ctx, sess.ID)
	if err != nil {
		return err
	}
	sums, err := a.turns.Summary(ctx, sess.ID)
	if err != nil {
		return err
	}

	a.ui.Display("\n--- Guess History ---")
	for _, r := range rows {
		mark := ""
		if r.Won {
			mark = "  solved"
		}
		a.ui.Display(fmt.Sprintf("Round %-3d | %-15s | %s -> %d,%d%s", r.Round, r.Player, r.Guess, r.Total, r.Positional, mark))
	}
	for _, s := range sums {
		a.ui.Display(fmt.Sprintf("%s: %d guess(es), best X=%d, best Y=%d", s.Player, s.Guesses, s.BestTotal, s.BestPositional))
	}
	return nil
}
