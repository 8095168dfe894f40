package store

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/robalobadob/codebreak/assets"
	"github.com/robalobadob/codebreak/internal/game"
)

func newSession(t *testing.T) *game.Session {
	t.Helper()
	nop := zerolog.Nop()
	s, err := game.Setup([]string{"Ann", "Bo"}, game.Options{Rand: rand.New(rand.NewSource(1)), Logger: &nop})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return s
}

func newTurnLog(t *testing.T) *TurnLog {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(context.Background(), db, assets.Migrations()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewTurnLog(db)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)

	if err := st.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Fatal("got a different session back")
	}
	if err := st.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestMemoryStoreRejectsMissingID(t *testing.T) {
	if err := NewMemoryStore().Save(context.Background(), &game.Session{}); err == nil {
		t.Fatal("expected error saving a session without id")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	for i := 0; i < 2; i++ {
		if err := Migrate(context.Background(), db, assets.Migrations()); err != nil {
			t.Fatalf("migrate pass %d: %v", i+1, err)
		}
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 1 {
		t.Fatalf("recorded %d migrations, want 1", n)
	}
}

func TestTurnLogHistoryAndSummary(t *testing.T) {
	ctx := context.Background()
	log := newTurnLog(t)
	s := newSession(t)
	ann, bo := s.Players[0], s.Players[1]
	ann.Secret = game.Code{0, 1, 2, 3}
	bo.Secret = game.Code{4, 5, 6, 7}

	e := s.Engine()
	for _, raw := range []string{"3210", "4567", "0123"} {
		turn, err := e.Submit(raw)
		if err != nil {
			t.Fatalf("submit %q: %v", raw, err)
		}
		if err := log.RecordTurn(ctx, s.ID, turn); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	// A turn from another session must not leak into this one.
	other := newSession(t)
	otherTurn, err := other.Engine().Submit("9999")
	if err != nil {
		t.Fatalf("submit other: %v", err)
	}
	if err := log.RecordTurn(ctx, other.ID, otherTurn); err != nil {
		t.Fatalf("record other: %v", err)
	}

	hist, err := log.History(ctx, s.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("history has %d rows, want 3", len(hist))
	}
	first := TurnRow{Player: "Ann", Round: 1, Guess: "3210", Total: 4, Positional: 0}
	if hist[0] != first {
		t.Fatalf("first row = %+v, want %+v", hist[0], first)
	}
	if !hist[1].Won || hist[1].Player != "Bo" || hist[2].Round != 2 || !hist[2].Won {
		t.Fatalf("unexpected rows: %+v", hist[1:])
	}

	sum, err := log.Summary(ctx, s.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := []PlayerSummary{
		{Player: "Ann", Guesses: 2, BestTotal: 4, BestPositional: 4},
		{Player: "Bo", Guesses: 1, BestTotal: 4, BestPositional: 4},
	}
	if len(sum) != len(want) {
		t.Fatalf("summary has %d rows, want %d", len(sum), len(want))
	}
	for i := range want {
		if sum[i] != want[i] {
			t.Fatalf("summary[%d] = %+v, want %+v", i, sum[i], want[i])
		}
	}
}
