package store

import (
	"context"
	"database/sql"

	"github.com/robalobadob/codebreak/internal/game"
)

// TurnLog records scored turns in SQLite and answers history queries.
// It implements game.Recorder.
type TurnLog struct{ db *sql.DB }

var _ game.Recorder = (*TurnLog)(nil)

// NewTurnLog wraps a migrated database.
func NewTurnLog(db *sql.DB) *TurnLog { return &TurnLog{db: db} }

// TurnRow is one recorded guess.
type TurnRow struct {
	Player     string
	Round      int
	Guess      string
	Total      int
	Positional int
	Won        bool
}

// PlayerSummary aggregates a player's turns within a session.
type PlayerSummary struct {
	Player         string
	Guesses        int
	BestTotal      int
	BestPositional int
}

// RecordTurn inserts one turn row.
func (l *TurnLog) RecordTurn(ctx context.Context, sessionID string, t game.Turn) error {
	_, err := l.db.ExecContext(ctx, `
        INSERT INTO turns
            (session_id, player_id, player_name, round, guess, total, positional, won)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, t.Player.ID, t.Player.Name, t.Round, t.Guess.String(),
		t.Feedback.Total, t.Feedback.Positional, t.Won,
	)
	return err
}

// History returns every turn of a session in play order.
func (l *TurnLog) History(ctx context.Context, sessionID string) ([]TurnRow, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT player_name, round, guess, total, positional, won
        FROM turns
        WHERE session_id=?
        ORDER BY id ASC`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TurnRow
	for rows.Next() {
		var r TurnRow
		if err := rows.Scan(&r.Player, &r.Round, &r.Guess, &r.Total, &r.Positional, &r.Won); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summary returns per-player guess counts and best feedback, ordered by
// each player's first turn.
func (l *TurnLog) Summary(ctx context.Context, sessionID string) ([]PlayerSummary, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT player_name, COUNT(1), MAX(total), MAX(positional)
        FROM turns
        WHERE session_id=?
        GROUP BY player_id, player_name
        ORDER BY MIN(id) ASC`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlayerSummary
	for rows.Next() {
		var s PlayerSummary
		if err := rows.Scan(&s.Player, &s.Guesses, &s.BestTotal, &s.BestPositional); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
