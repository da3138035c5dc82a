package textutil

import (
	"strings"
	"unicode/utf8"
)

// SurroundLine places a rule above and below the given line. The rule is the
// fill string repeated and truncated to exactly the line's character length.
// All three lines are newline-terminated.
func SurroundLine(fill, line string) string {
	rule := makeRule(fill, utf8.RuneCountInString(line))
	return rule + "\n" + line + "\n" + rule + "\n"
}

// makeRule repeats fill until it covers width characters, then truncates.
func makeRule(fill string, width int) string {
	if fill == "" || width <= 0 {
		return ""
	}
	fillLen := utf8.RuneCountInString(fill)
	repeated := strings.Repeat(fill, (width+fillLen-1)/fillLen)
	runes := []rune(repeated)
	return string(runes[:width])
}

// Wrap reflows text to the given column width using greedy word wrapping.
// firstIndent prefixes the first line, contIndent every continuation line.
// A single word longer than the usable width is placed on its own line
// without truncation. The result is newline-terminated unless empty.
func Wrap(text string, width int, firstIndent, contIndent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	line := firstIndent
	lineWords := 0

	for _, word := range words {
		candidate := len(line) + len(word)
		if lineWords > 0 {
			candidate++ // separating space
		}
		if lineWords > 0 && candidate > width {
			b.WriteString(line)
			b.WriteByte('\n')
			line = contIndent
			lineWords = 0
		}
		if lineWords > 0 {
			line += " "
		}
		line += word
		lineWords++
	}
	b.WriteString(line)
	b.WriteByte('\n')

	return b.String()
}
