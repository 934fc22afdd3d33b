// internal/dictdb/store.go
//
// SQLite-backed dictionary.
// Responsibilities:
//   - Answer game.Dictionary lookups from the dictionary table.
//   - Bulk-insert words (admin endpoint, initial seed from the embedded list).
//   - Report per-locale counts.
//
// The table is created by the migrations in ./sql (see db.go in package main).

package dictdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// lookupTimeout bounds a single IsKnownWord query.
const lookupTimeout = 2 * time.Second

// Store wraps a *sql.DB holding the dictionary table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore constructs a Store on an already migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db, now: time.Now} }

// IsKnownWord reports whether word is stored for locale.
// Query errors are logged and reported as unknown.
func (s *Store) IsKnownWord(word, locale string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM dictionary WHERE word=? AND locale=?`,
		normalize(word), normalize(locale),
	).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false
	case err != nil:
		log.Warn().Err(err).Str("word", word).Msg("dictionary lookup")
		return false
	}
	return true
}

// Add inserts words for locale, ignoring blanks and words already present.
// Returns the number of rows actually added.
func (s *Store) Add(ctx context.Context, locale string, words ...string) (int, error) {
	locale = normalize(locale)
	list := lo.Uniq(lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = normalize(w)
		return w, w != ""
	}))
	if len(list) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO dictionary(word, locale, added_at) VALUES(?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := s.now().UTC().Format(time.RFC3339)
	added := 0
	for _, w := range list {
		res, err := stmt.ExecContext(ctx, w, locale, now)
		if err != nil {
			return 0, fmt.Errorf("insert %q: %w", w, err)
		}
		n, _ := res.RowsAffected()
		added += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return added, nil
}

// Count returns how many words are stored for locale.
func (s *Store) Count(ctx context.Context, locale string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM dictionary WHERE locale=?`, normalize(locale),
	).Scan(&n)
	return n, err
}

// SeedIfEmpty adds words only when locale has no words yet.
func (s *Store) SeedIfEmpty(ctx context.Context, locale string, words []string) (int, error) {
	n, err := s.Count(ctx, locale)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	return s.Add(ctx, locale, words...)
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
