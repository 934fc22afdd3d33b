// internal/daily/daily.go
//
// Root word of the day.
// Every player asking for the daily round on the same UTC date gets the same
// root; the salt keeps the sequence unguessable from the public root list.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Schedule maps UTC dates onto a fixed list of root words.
type Schedule struct {
	roots []string
	salt  []byte
}

// NewSchedule returns a schedule over roots. The slice is not copied; callers
// must not modify it afterwards.
func NewSchedule(roots []string, salt string) *Schedule {
	return &Schedule{roots: roots, salt: []byte(salt)}
}

// Len returns the number of roots in rotation.
func (s *Schedule) Len() int { return len(s.roots) }

// Index returns the position of the root for the UTC date of t:
// HMAC-SHA256(salt, YYYY-MM-DD), first 8 bytes, modulo the list length.
// Returns -1 for an empty schedule.
func (s *Schedule) Index(t time.Time) int {
	if len(s.roots) == 0 {
		return -1
	}
	h := hmac.New(sha256.New, s.salt)
	h.Write([]byte(DateKey(t)))
	v := binary.BigEndian.Uint64(h.Sum(nil)[:8])
	return int(v % uint64(len(s.roots)))
}

// RootFor returns the root word for the UTC date of t. ok is false when the
// schedule has no roots.
func (s *Schedule) RootFor(t time.Time) (root string, ok bool) {
	i := s.Index(t)
	if i < 0 {
		return "", false
	}
	return s.roots[i], true
}
