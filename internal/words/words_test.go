package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/wordscramble/server/internal/game"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	l, err := Load("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Roots) == 0 || len(l.Known) == 0 {
		t.Fatalf("empty defaults: %d roots, %d known", len(l.Roots), len(l.Known))
	}
	for _, r := range l.Roots {
		if len(r) < 4 || !isAlpha(r) {
			t.Errorf("invalid root %q", r)
		}
	}
}

func TestLoadFromFiles(t *testing.T) {
	start := writeFile(t, "start.txt", "Listen\nlisten\nab\nno-way\n\n# comment\nsilent\n")
	dict := writeFile(t, "dict.txt", "silent\nlines\nSILENT\n")

	l, err := Load(start, dict)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Roots) != 2 || l.Roots[0] != "listen" || l.Roots[1] != "silent" {
		t.Errorf("roots = %q", l.Roots)
	}
	if len(l.Known) != 2 {
		t.Errorf("known = %q", l.Known)
	}
}

func TestLoadErrors(t *testing.T) {
	empty := writeFile(t, "start.txt", "# nothing\nab\n")
	if _, err := Load(empty, ""); !errors.Is(err, ErrNoRoots) {
		t.Errorf("err = %v, want ErrNoRoots", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt"), ""); err == nil {
		t.Error("expected error for missing start file")
	}
	if _, err := Load("", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing dictionary file")
	}
}

func TestPickRandom(t *testing.T) {
	roots := []string{"listen", "silent"}
	for i := 0; i < 20; i++ {
		if w := pickRandom(roots); w != "listen" && w != "silent" {
			t.Fatalf("unexpected root %q", w)
		}
	}
	if pickRandom(nil) != fallbackRoot {
		t.Error("expected fallback for empty list")
	}
}

func TestPickDaily(t *testing.T) {
	roots := []string{"asteroid", "listen", "painters", "relation", "triangle"}
	d := time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC)
	a := pickDaily(roots, d, "salt")
	if b := pickDaily(roots, d.Add(20*time.Hour), "salt"); a != b {
		t.Errorf("same day gave %q and %q", a, b)
	}
	if pickDaily(nil, d, "salt") != fallbackRoot {
		t.Error("expected fallback for empty list")
	}
}

func TestStatic(t *testing.T) {
	var d game.Dictionary = NewStatic([]string{" Silent", "lines"}, "en")
	if !d.IsKnownWord("silent", "en") || !d.IsKnownWord("LINES", "EN") {
		t.Error("expected known words")
	}
	if d.IsKnownWord("tsil", "en") {
		t.Error("unexpected known word")
	}
	if d.IsKnownWord("silent", "fr") {
		t.Error("lookup for another locale must miss")
	}
}

func TestDefaultCoversEmbeddedRoots(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	dict := NewStatic(Known(), "en")
	if dict.Len() == 0 {
		t.Fatal("default dictionary is empty")
	}
	// Every embedded root must leave the player something to find.
	for _, root := range Roots() {
		found := 0
		for _, w := range Known() {
			if len(w) >= 4 && w != root && game.Composable(w, root) {
				found++
			}
		}
		if found < 5 {
			t.Errorf("root %q has only %d playable words", root, found)
		}
	}
}
