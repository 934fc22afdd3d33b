// internal/game/engine.go
//
// Core rules engine for a single WordScramble game.
// Responsibilities:
//   - Start rounds on a root word with a fixed time budget.
//   - Validate submitted words in a fixed order (length, identity, duplicate,
//     composability, dictionary) and score accepted ones.
//   - Count the round down one tick at a time: active → expired.
//   - Reset back to idle.
//
// Notes:
//   - A Game is not safe for concurrent use; the store package serializes access.
//   - The dictionary is injected (see Dictionary in types.go).
//   - Lengths are counted in runes, not bytes.

package game

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	// DefaultTimeBudget is the number of ticks a round lasts.
	DefaultTimeBudget = 30
	// DefaultLocale is passed to the dictionary when none is configured.
	DefaultLocale = "en"

	minWordLength = 4
)

// Game holds the state of one player's game across rounds.
type Game struct {
	id         string
	dict       Dictionary
	locale     string
	budget     int // configured time budget, restored on start and reset
	now        func() time.Time
	state      State
	root       string
	used       []string // most recent first
	score      int
	remaining  int
	lastActive time.Time
}

// Option configures a Game at construction time.
type Option func(*Game)

// WithTimeBudget sets the number of ticks per round. Values < 1 are ignored.
func WithTimeBudget(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.budget = n
		}
	}
}

// WithLocale sets the locale passed to the dictionary.
func WithLocale(locale string) Option {
	return func(g *Game) {
		if locale != "" {
			g.locale = locale
		}
	}
}

// WithClock overrides the clock used for the last-activity stamp.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		if now != nil {
			g.now = now
		}
	}
}

// New constructs an idle game with a fresh ID.
func New(dict Dictionary, opts ...Option) *Game {
	g := &Game{
		id:     uuid.NewString(),
		dict:   dict,
		locale: DefaultLocale,
		budget: DefaultTimeBudget,
		now:    time.Now,
		state:  StateIdle,
		used:   []string{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.remaining = g.budget
	g.touch()
	return g
}

// StartRound begins a new round on root, discarding any previous round.
func (g *Game) StartRound(root string) error {
	root = Normalize(root)
	if root == "" {
		return ErrEmptyRoot
	}
	g.root = root
	g.used = []string{}
	g.score = 0
	g.remaining = g.budget
	g.state = StateActive
	g.touch()
	return nil
}

// Submit validates candidate against the current round and, if every check
// passes, records it and adds its points to the score.
//
// Checks run in this order and stop at the first failure:
//  1. too_short:      fewer than 4 letters
//  2. same_as_root:   equal to the root word
//  3. already_used:   accepted earlier this round
//  4. not_composable: needs letters the root doesn't have (counting repeats)
//  5. not_a_word:     unknown to the dictionary
//
// Rejections never mutate the game. The error is non-nil only when no round
// is active.
func (g *Game) Submit(candidate string) (Result, error) {
	if g.state != StateActive {
		return Result{}, ErrRoundNotActive
	}
	word := Normalize(candidate)
	if reason := g.check(word); reason != ReasonNone {
		return Result{Word: word, Reason: reason}, nil
	}

	points := ScorePoints(word)
	g.used = append([]string{word}, g.used...)
	g.score += points
	g.touch()
	return Result{Word: word, Accepted: true, Points: points}, nil
}

// check returns the first failing rule for an already normalized word.
func (g *Game) check(word string) Reason {
	switch {
	case utf8.RuneCountInString(word) < minWordLength:
		return ReasonTooShort
	case word == g.root:
		return ReasonSameAsRoot
	case lo.Contains(g.used, word):
		return ReasonAlreadyUsed
	case !Composable(word, g.root):
		return ReasonNotComposable
	case g.dict == nil || !g.dict.IsKnownWord(word, g.locale):
		return ReasonNotAWord
	}
	return ReasonNone
}

// Tick consumes one unit of the time budget. The tick that brings the budget
// to zero expires the round and reports the final score.
func (g *Game) Tick() (TickOutcome, error) {
	if g.state != StateActive {
		return TickOutcome{Remaining: g.remaining}, ErrRoundNotActive
	}
	g.remaining--
	if g.remaining > 0 {
		return TickOutcome{Remaining: g.remaining}, nil
	}
	g.remaining = 0
	g.state = StateExpired
	return TickOutcome{Expired: true, FinalScore: g.score}, nil
}

// Reset returns the game to idle from any state.
func (g *Game) Reset() {
	g.state = StateIdle
	g.root = ""
	g.used = []string{}
	g.score = 0
	g.remaining = g.budget
	g.touch()
}

func (g *Game) touch() { g.lastActive = g.now() }

// ID returns the game's identifier.
func (g *Game) ID() string { return g.id }

// State returns the current round state.
func (g *Game) State() State { return g.state }

// RootWord returns the current root word ("" when idle).
func (g *Game) RootWord() string { return g.root }

// Score returns the current round's score.
func (g *Game) Score() int { return g.score }

// TimeRemaining returns the ticks left in the round.
func (g *Game) TimeRemaining() int { return g.remaining }

// Locale returns the dictionary locale.
func (g *Game) Locale() string { return g.locale }

// LastActive returns when the game was last started, reset or scored a word.
func (g *Game) LastActive() time.Time { return g.lastActive }

// UsedWords returns the accepted words, most recent first.
func (g *Game) UsedWords() []string { return append([]string{}, g.used...) }

// Snapshot returns a copy of the game's observable state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:            g.id,
		State:         g.state,
		RootWord:      g.root,
		UsedWords:     g.UsedWords(),
		Score:         g.score,
		TimeRemaining: g.remaining,
		Locale:        g.locale,
		LastActive:    g.lastActive,
	}
}

// ScorePoints returns the points for word: (n-3)*2 for more than four
// letters, otherwise 1.
func ScorePoints(word string) int {
	n := utf8.RuneCountInString(Normalize(word))
	if n > 4 {
		return (n - 3) * 2
	}
	return 1
}

// Composable reports whether word can be spelled from root's letters, each
// root letter used at most once.
func Composable(word, root string) bool {
	pool := []rune(root)
	for _, r := range word {
		i := lo.IndexOf(pool, r)
		if i < 0 {
			return false
		}
		pool = append(pool[:i], pool[i+1:]...)
	}
	return true
}

// Normalize lowercases s and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
