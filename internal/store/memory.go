// internal/store/memory.go
//
// In-memory registry of games.
// A *game.Game is not safe for concurrent use, while HTTP handlers and the
// countdown loop both touch games, so every access goes through this store:
//
//   - Save/Delete add and remove games.
//   - Get returns a Snapshot (a copy), never the live game.
//   - Update runs a callback against the live game under the write lock.
//   - TickActive advances every active round by one tick.
//   - Sweep drops games idle since before a cutoff.
//
// State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordscramble/server/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("store: game not found")

// Expiry reports a round that ran out of time during TickActive.
type Expiry struct {
	GameID     string
	RootWord   string
	FinalScore int
	UsedWords  int
}

// Store defines the registry interface for games.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get returns a snapshot of the game with id.
	Get(ctx context.Context, id string) (game.Snapshot, error)

	// Update calls fn with the live game while holding the lock and
	// returns fn's error. The snapshot reflects the game after fn ran.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) (game.Snapshot, error)

	// Delete removes a game. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// TickActive ticks every active game once and reports the rounds that expired.
	TickActive(ctx context.Context) []Expiry

	// Sweep removes games whose LastActive is before cutoff and returns how many.
	Sweep(ctx context.Context, cutoff time.Time) int

	// Len returns the number of stored games.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games and every game in it
	games map[string]*game.Game // keyed by Game.ID()
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID()] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (game.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g.Snapshot(), nil
	}
	return game.Snapshot{}, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) (game.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return game.Snapshot{}, ErrNotFound
	}
	err := fn(g)
	return g.Snapshot(), err
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) TickActive(ctx context.Context) []Expiry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Expiry
	for id, g := range m.games {
		if g.State() != game.StateActive {
			continue
		}
		res, err := g.Tick()
		if err != nil || !res.Expired {
			continue
		}
		out = append(out, Expiry{
			GameID:     id,
			RootWord:   g.RootWord(),
			FinalScore: res.FinalScore,
			UsedWords:  len(g.UsedWords()),
		})
	}
	return out
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, g := range m.games {
		if g.LastActive().Before(cutoff) {
			delete(m.games, id)
			removed++
		}
	}
	return removed
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
