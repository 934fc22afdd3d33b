// internal/countdown/countdown.go
//
// Time-signal collaborator for the game engine.
// Run delivers one tick per interval to every active round in a store and
// logs each round that runs out of time. Sweep periodically drops games that
// have been left alone for too long. Both loops stop when ctx is cancelled.

package countdown

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/server/internal/store"
)

// Ticker is the part of store.Store that Run drives.
type Ticker interface {
	TickActive(ctx context.Context) []store.Expiry
}

// Sweeper is the part of store.Store that Sweep drives.
type Sweeper interface {
	Sweep(ctx context.Context, cutoff time.Time) int
}

// Run ticks target every interval until ctx is done. onExpire, if non-nil,
// is called for each expired round after it is logged.
func Run(ctx context.Context, interval time.Duration, target Ticker, onExpire func(store.Expiry)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, e := range target.TickActive(ctx) {
				log.Info().
					Str("gameId", e.GameID).
					Str("root", e.RootWord).
					Int("score", e.FinalScore).
					Int("words", e.UsedWords).
					Msg("round expired")
				if onExpire != nil {
					onExpire(e)
				}
			}
		}
	}
}

// Sweep removes games idle for longer than ttl, checking every interval.
func Sweep(ctx context.Context, interval, ttl time.Duration, target Sweeper) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := target.Sweep(ctx, now.Add(-ttl)); n > 0 {
				log.Debug().Int("removed", n).Msg("swept idle games")
			}
		}
	}
}
