// Package assets embeds the default word lists so the server runs without
// any files configured.
//
//   - start.txt:      candidate root words, one per line.
//   - dictionary.txt: words accepted by the static dictionary.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed start.txt dictionary.txt
var FS embed.FS

// ReadLines returns the non-blank, non-comment lines of r, trimmed and lowercased.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readFile(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// StartWords returns the embedded root word list.
func StartWords() ([]string, error) {
	return readFile("start.txt")
}

// DictionaryWords returns the embedded dictionary word list.
func DictionaryWords() ([]string, error) {
	return readFile("dictionary.txt")
}
