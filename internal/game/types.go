// internal/game/types.go
//
// Core type definitions for the WordScramble rules engine.
// Defines:
//   - State: round lifecycle (idle/active/expired).
//   - Reason: why a submitted word was rejected.
//   - Result / TickOutcome: tagged outcomes of Submit and Tick.
//   - Dictionary: the "is this a real word" capability injected into a Game.
//   - Snapshot: a value copy of a game safe to hand across goroutines.

package game

import (
	"errors"
	"time"
)

// State is the lifecycle state of a round.
//   - "idle":    no round running (before the first start, or after Reset).
//   - "active":  round running, submissions and ticks accepted.
//   - "expired": time budget reached zero; only Reset/StartRound move on.
type State string

const (
	StateIdle    State = "idle"
	StateActive  State = "active"
	StateExpired State = "expired"
)

// Reason tags a rejected submission. The zero value means "accepted".
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonTooShort      Reason = "too_short"
	ReasonSameAsRoot    Reason = "same_as_root"
	ReasonAlreadyUsed   Reason = "already_used"
	ReasonNotComposable Reason = "not_composable"
	ReasonNotAWord      Reason = "not_a_word"
)

var (
	// ErrEmptyRoot is returned by StartRound when the root word is blank.
	ErrEmptyRoot = errors.New("game: root word is empty")
	// ErrRoundNotActive is returned by Submit and Tick outside an active round.
	ErrRoundNotActive = errors.New("game: round not active")
)

// Dictionary reports whether word is a real word in the given locale.
// Implementations live in the words (static list) and dictdb (SQLite) packages.
type Dictionary interface {
	IsKnownWord(word, locale string) bool
}

// DictionaryFunc adapts a plain function to Dictionary.
type DictionaryFunc func(word, locale string) bool

// IsKnownWord calls f(word, locale).
func (f DictionaryFunc) IsKnownWord(word, locale string) bool { return f(word, locale) }

// Result is the outcome of a single Submit call.
type Result struct {
	Word     string `json:"word"`             // normalized candidate
	Accepted bool   `json:"accepted"`         // true if added to UsedWords
	Points   int    `json:"points"`           // points awarded (0 when rejected)
	Reason   Reason `json:"reason,omitempty"` // set only when rejected
}

// TickOutcome is the outcome of a single Tick call.
type TickOutcome struct {
	Remaining  int  `json:"remaining"`
	Expired    bool `json:"expired"`
	FinalScore int  `json:"finalScore,omitempty"` // only meaningful when Expired
}

// Snapshot is a read-only copy of a Game.
type Snapshot struct {
	ID            string    `json:"gameId"`
	State         State     `json:"state"`
	RootWord      string    `json:"rootWord"`
	UsedWords     []string  `json:"usedWords"`
	Score         int       `json:"score"`
	TimeRemaining int       `json:"timeRemaining"`
	Locale        string    `json:"locale"`
	LastActive    time.Time `json:"lastActive"`
}
