package assets

import (
	"strings"
	"testing"
)

func TestReadLines(t *testing.T) {
	in := "# header\n  Listen \n\nSILENT\r\n# trailing comment\n"
	got, err := ReadLines(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "listen" || got[1] != "silent" {
		t.Errorf("ReadLines = %q", got)
	}
}

func TestEmbeddedLists(t *testing.T) {
	roots, err := StartWords()
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) < 50 {
		t.Fatalf("start.txt has only %d roots", len(roots))
	}
	dict, err := DictionaryWords()
	if err != nil {
		t.Fatal(err)
	}
	if len(dict) < len(roots) {
		t.Errorf("dictionary has only %d words", len(dict))
	}
	for _, w := range append(roots, dict...) {
		if strings.HasPrefix(w, "#") || w != strings.ToLower(strings.TrimSpace(w)) {
			t.Errorf("unnormalized entry %q", w)
		}
	}
}
