// internal/words/words.go
//
// Word-source collaborator for the game engine.
//
// Responsibilities:
//   - Load the root word list and the known-word list from environment-provided
//     files or fall back to the embedded defaults in the assets package.
//   - Pick root words: random (crypto/rand) or date-seeded for daily rounds.
//   - Expose the known words as a game.Dictionary (see dictionary.go).
//
// Environment variables:
//   WORDS_START_FILE=/path/to/start.txt       (one root word per line)
//   WORDS_DICT_FILE=/path/to/dictionary.txt   (one known word per line)
//
// Constraints:
//   • Root words must be at least 4 letters a–z; other lines are dropped.
//   • Lists are lowercased and de-duplicated.
//   • Initialization is run once (sync.Once); an empty root list is an error.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/robalobadob/wordscramble/server/assets"
	"github.com/robalobadob/wordscramble/server/internal/daily"
)

// fallbackRoot is used only if RandomRoot is called before Init.
const fallbackRoot = "silkworm"

// Lists holds the loaded word lists.
type Lists struct {
	Roots []string // candidate root words
	Known []string // dictionary words
}

var (
	initOnce   sync.Once
	loaded     Lists
	initialErr error
)

// ErrNoRoots is returned when the root word list ends up empty.
var ErrNoRoots = errors.New("words: root word list is empty")

// Init loads word lists exactly once from WORDS_START_FILE / WORDS_DICT_FILE
// (or the embedded defaults when unset).
func Init() error {
	initOnce.Do(func() {
		loaded, initialErr = Load(os.Getenv("WORDS_START_FILE"), os.Getenv("WORDS_DICT_FILE"))
	})
	return initialErr
}

// Load reads the two lists. An empty path selects the embedded list.
func Load(startPath, dictPath string) (Lists, error) {
	var (
		l   Lists
		err error
	)
	if startPath != "" {
		l.Roots, err = readWordFile(startPath)
	} else {
		l.Roots, err = assets.StartWords()
	}
	if err != nil {
		return Lists{}, fmt.Errorf("load root words: %w", err)
	}
	if dictPath != "" {
		l.Known, err = readWordFile(dictPath)
	} else {
		l.Known, err = assets.DictionaryWords()
	}
	if err != nil {
		return Lists{}, fmt.Errorf("load dictionary: %w", err)
	}

	l.Roots = lo.Uniq(lo.Filter(l.Roots, func(w string, _ int) bool {
		return len(w) >= 4 && isAlpha(w)
	}))
	l.Known = lo.Uniq(l.Known)
	if len(l.Roots) == 0 {
		return Lists{}, ErrNoRoots
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomRoot returns a cryptographically random root word.
func RandomRoot() string {
	return pickRandom(loaded.Roots)
}

// DailyRoot returns the root word for t's UTC date.
func DailyRoot(t time.Time, salt string) string {
	return pickDaily(loaded.Roots, t, salt)
}

func pickRandom(roots []string) string {
	if len(roots) == 0 {
		return fallbackRoot
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roots))))
	if err != nil {
		return roots[0]
	}
	return roots[n.Int64()]
}

func pickDaily(roots []string, t time.Time, salt string) string {
	if root, ok := daily.NewSchedule(roots, salt).RootFor(t); ok {
		return root
	}
	return fallbackRoot
}

// Roots returns the loaded root words.
func Roots() []string { return loaded.Roots }

// Known returns the loaded dictionary words.
func Known() []string { return loaded.Known }

// Stats returns counts of loaded words: (roots, known).
func Stats() (rootCount int, knownCount int) {
	return len(loaded.Roots), len(loaded.Known)
}
