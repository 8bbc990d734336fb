package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
)

// variationSelector16 requests emoji presentation; gomoji lists most
// text-default emoji (©, ❤) with it appended.
const variationSelector16 = "\ufe0f"

// emojiSet holds every emoji that is a single code point once the
// presentation selector is removed. Multi-rune sequences (flags, ZWJ
// families, skin tones) are counted per component rune, so only their
// standalone members are listed.
var emojiSet = buildEmojiSet(gomoji.AllEmojis())

func buildEmojiSet(all []gomoji.Emoji) map[rune]struct{} {
	set := make(map[rune]struct{}, len(all))
	for _, e := range all {
		s := strings.ReplaceAll(e.Character, variationSelector16, "")
		if utf8.RuneCountInString(s) != 1 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(s)
		set[r] = struct{}{}
	}
	return set
}

// IsEmoji reports whether r is a single-code-point emoji.
func IsEmoji(r rune) bool {
	_, ok := emojiSet[r]
	return ok
}

// Emojis counts every emoji code point in the selection, most frequent first.
func (e *Engine) Emojis(user string) []TermCount {
	c := newCounter()
	for _, r := range e.selectRecords(user) {
		for _, ch := range r.Body {
			if IsEmoji(ch) {
				c.add(string(ch))
			}
		}
	}
	return c.top(0)
}
