package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codebreak/assets"
	"github.com/robalobadob/codebreak/internal/config"
	"github.com/robalobadob/codebreak/internal/logging"
	"github.com/robalobadob/codebreak/internal/store"
	"github.com/robalobadob/codebreak/internal/terminal"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], func(cfg config.Config) *terminal.Console {
		return terminal.Stdio(cfg.NoClear, cfg.MaxPlayers)
	}))
}

// run wires the game and returns the process exit code, so deferred cleanup
// of the log file and turn log happens before the process exits.
func run(args []string, newUI func(config.Config) *terminal.Console) int {
	cfg, err := config.Parse(flag.NewFlagSet("codebreak", flag.ContinueOnError), args)
	if err != nil {
		log.Error().Err(err).Msg("parse config")
		return 2
	}
	closeLog, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Error().Err(err).Msg("configure logging")
		return 1
	}
	defer func() { _ = closeLog() }()
	if cfg.SecretsOnTerminal() {
		log.Warn().Msg("debug logging to stderr shows every secret code; set CODEBREAK_LOG_FILE to keep them off screen")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.OpenMemory()
	if err != nil {
		log.Error().Err(err).Msg("open turn log")
		return 1
	}
	defer db.Close()
	if err := store.Migrate(ctx, db, assets.Migrations()); err != nil {
		log.Error().Err(err).Msg("migrate turn log")
		return 1
	}

	a := &app{
		cfg:      cfg,
		ui:       newUI(cfg),
		sessions: store.NewMemoryStore(),
		turns:    store.NewTurnLog(db),
	}
	err = a.run(ctx)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		a.ui.Display("\nThank you for playing! Goodbye.")
	case errors.Is(err, context.Canceled):
		a.ui.Display("\nGame aborted.")
	default:
		log.Error().Err(err).Msg("game exited")
		return 1
	}
	return 0
}
