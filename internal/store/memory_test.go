package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/wordscramble/server/internal/game"
)

var anyWord = game.DictionaryFunc(func(word, locale string) bool { return true })

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(anyWord)
	if err := s.Save(ctx, g); err != nil {
		t.Fatal(err)
	}
	snap, err := s.Get(ctx, g.ID())
	if err != nil {
		t.Fatal(err)
	}
	if snap.ID != g.ID() || snap.State != game.StateIdle {
		t.Errorf("snapshot = %+v", snap)
	}
	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, g.ID()); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after delete", s.Len())
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(anyWord)
	_ = s.Save(ctx, g)

	snap, err := s.Update(ctx, g.ID(), func(g *game.Game) error { return g.StartRound("listen") })
	if err != nil {
		t.Fatal(err)
	}
	if snap.State != game.StateActive || snap.RootWord != "listen" {
		t.Errorf("snapshot after update = %+v", snap)
	}

	boom := errors.New("boom")
	if _, err := s.Update(ctx, g.ID(), func(*game.Game) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if _, err := s.Update(ctx, "nope", func(*game.Game) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTickActive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	short := game.New(anyWord, game.WithTimeBudget(2))
	_ = short.StartRound("listen")
	_, _ = short.Submit("silent")
	long := game.New(anyWord, game.WithTimeBudget(10))
	_ = long.StartRound("painters")
	idle := game.New(anyWord, game.WithTimeBudget(2))
	for _, g := range []*game.Game{short, long, idle} {
		_ = s.Save(ctx, g)
	}

	if exp := s.TickActive(ctx); len(exp) != 0 {
		t.Fatalf("first tick expired %v", exp)
	}
	exp := s.TickActive(ctx)
	if len(exp) != 1 {
		t.Fatalf("second tick expired %d rounds, want 1", len(exp))
	}
	want := Expiry{GameID: short.ID(), RootWord: "listen", FinalScore: 6, UsedWords: 1}
	if exp[0] != want {
		t.Errorf("expiry = %+v, want %+v", exp[0], want)
	}
	if snap, _ := s.Get(ctx, long.ID()); snap.TimeRemaining != 8 {
		t.Errorf("long round remaining = %d, want 8", snap.TimeRemaining)
	}
	if snap, _ := s.Get(ctx, idle.ID()); snap.TimeRemaining != 2 || snap.State != game.StateIdle {
		t.Errorf("idle game ticked: %+v", snap)
	}
	// Expired rounds are not ticked again.
	if exp := s.TickActive(ctx); len(exp) != 0 {
		t.Errorf("expired round reported twice: %v", exp)
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	old := game.New(anyWord, game.WithClock(func() time.Time { return base }))
	fresh := game.New(anyWord, game.WithClock(func() time.Time { return base.Add(time.Hour) }))
	_ = s.Save(ctx, old)
	_ = s.Save(ctx, fresh)

	if n := s.Sweep(ctx, base.Add(30*time.Minute)); n != 1 {
		t.Errorf("swept %d, want 1", n)
	}
	if _, err := s.Get(ctx, old.ID()); !errors.Is(err, ErrNotFound) {
		t.Error("old game still present")
	}
	if _, err := s.Get(ctx, fresh.ID()); err != nil {
		t.Error("fresh game removed")
	}
}

func TestConcurrentSubmitAndTick(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(anyWord, game.WithTimeBudget(1000))
	_ = g.StartRound("painters")
	_ = s.Save(ctx, g)

	words := []string{"paint", "pints", "saint", "train", "print", "stain", "rants", "parent"}
	var wg sync.WaitGroup
	for _, w := range words {
		wg.Add(2)
		go func(w string) {
			defer wg.Done()
			_, _ = s.Update(ctx, g.ID(), func(g *game.Game) error {
				_, err := g.Submit(w)
				return err
			})
		}(w)
		go func() {
			defer wg.Done()
			s.TickActive(ctx)
		}()
	}
	wg.Wait()

	snap, _ := s.Get(ctx, g.ID())
	if len(snap.UsedWords) != len(words) {
		t.Errorf("used %d words, want %d", len(snap.UsedWords), len(words))
	}
	if snap.TimeRemaining != 1000-len(words) {
		t.Errorf("remaining = %d, want %d", snap.TimeRemaining, 1000-len(words))
	}
}
