// Package lexicon loads the static word lists used by the analysis engine:
// stop words for word and n-gram statistics, and abusive terms for toxicity
// counts. Lists are loaded once at startup and are read-only afterwards.
package lexicon

import (
	"bufio"
	"bytes"
	_ "embed"
	"os"
	"strings"

	apperrors "github.com/edgard/chatlens/internal/errors"
)

//go:embed stop_hinglish.txt
var defaultStopWords []byte

//go:embed bad_words.txt
var defaultBadWords []byte

// Lexicon holds the stop-word and bad-word sets.
type Lexicon struct {
	StopWords map[string]struct{}
	BadWords  map[string]struct{}
}

// New builds a lexicon from in-memory lists. Entries are lower-cased.
func New(stopWords, badWords []string) *Lexicon {
	l := &Lexicon{
		StopWords: make(map[string]struct{}, len(stopWords)),
		BadWords:  make(map[string]struct{}, len(badWords)),
	}
	for _, w := range stopWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			l.StopWords[w] = struct{}{}
		}
	}
	for _, w := range badWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			l.BadWords[w] = struct{}{}
		}
	}
	return l
}

// Default returns the lexicon built from the embedded word lists.
func Default() *Lexicon {
	return &Lexicon{
		StopWords: ParseStopWords(defaultStopWords),
		BadWords:  ParseBadWords(defaultBadWords),
	}
}

// Load reads both word lists. An empty path selects the embedded default
// list; a path that cannot be read yields a ResourceError.
func Load(stopWordsPath, badWordsPath string) (*Lexicon, error) {
	stopData, err := readOrDefault(stopWordsPath, defaultStopWords)
	if err != nil {
		return nil, err
	}
	badData, err := readOrDefault(badWordsPath, defaultBadWords)
	if err != nil {
		return nil, err
	}

	return &Lexicon{
		StopWords: ParseStopWords(stopData),
		BadWords:  ParseBadWords(badData),
	}, nil
}

func readOrDefault(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewResourceError(path, err)
	}
	return data, nil
}

// ParseStopWords splits a whitespace-separated stop-word list.
func ParseStopWords(data []byte) map[string]struct{} {
	fields := strings.Fields(string(data))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[strings.ToLower(f)] = struct{}{}
	}
	return set
}

// ParseBadWords reads a newline-separated list, skipping blank and # lines.
func ParseBadWords(data []byte) map[string]struct{} {
	set := make(map[string]struct{})
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[line] = struct{}{}
	}
	return set
}

// IsStopWord reports whether the lower-cased word is a stop word.
func (l *Lexicon) IsStopWord(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.StopWords[word]
	return ok
}

// IsBadWord reports whether the lower-cased word is in the abusive-term list.
func (l *Lexicon) IsBadWord(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.BadWords[word]
	return ok
}
