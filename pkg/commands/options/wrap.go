package options

import (
	"strings"
	"unicode/utf8"
)

func Wrap80(text string) string {
	return Wrap(text, 80)
}

// Wrap breaks text on word boundaries so no line exceeds width runes.
func Wrap(text string, width int) string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(words[0])
	count := width - utf8.RuneCountInString(words[0])
	for _, word := range words[1:] {
		n := utf8.RuneCountInString(word)
		if n+1 > count {
			b.WriteString("\n")
			count = width - n
		} else {
			b.WriteString(" ")
			count -= 1 + n
		}
		b.WriteString(word)
	}
	return b.String()
}
