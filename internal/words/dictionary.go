package words

import (
	"strings"

	"github.com/samber/lo"
)

// Static is an in-memory word list satisfying game.Dictionary.
// It answers for a single locale; lookups for any other locale miss.
type Static struct {
	locale string
	set    map[string]struct{}
}

// NewStatic builds a dictionary from list. Entries are lowercased and trimmed.
func NewStatic(list []string, locale string) *Static {
	return &Static{
		locale: locale,
		set: lo.SliceToMap(list, func(w string) (string, struct{}) {
			return strings.ToLower(strings.TrimSpace(w)), struct{}{}
		}),
	}
}

// IsKnownWord reports whether word is in the list for locale.
func (s *Static) IsKnownWord(word, locale string) bool {
	if !strings.EqualFold(locale, s.locale) {
		return false
	}
	_, ok := s.set[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct words.
func (s *Static) Len() int { return len(s.set) }
