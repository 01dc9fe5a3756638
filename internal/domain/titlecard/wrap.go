// Package titlecard lays out the headline drawn on top of a short.
package titlecard

import (
	"strings"
	"unicode"
)

// Width is the column budget of one title line at fontsize 70 on a 1080px
// wide frame.
const Width = 25

// Wrap greedily fills lines of at most width runes. Whitespace runs are
// collapsed to single break opportunities and words longer than width are
// split across lines, starting in whatever room is left on the current one.
// Leading whitespace is kept on the first line only.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	chunks := split(text)

	var lines []string
	for len(chunks) > 0 {
		var cur []string
		curLen := 0

		if len(lines) > 0 && isSpace(chunks[0]) {
			chunks = chunks[1:]
		}
		for len(chunks) > 0 {
			l := runeLen(chunks[0])
			if curLen+l > width {
				break
			}
			cur = append(cur, chunks[0])
			curLen += l
			chunks = chunks[1:]
		}
		if len(chunks) > 0 && runeLen(chunks[0]) > width {
			room := width - curLen
			if room < 1 {
				room = 1
			}
			r := []rune(chunks[0])
			cur = append(cur, string(r[:room]))
			chunks[0] = string(r[room:])
		}
		if len(cur) > 0 && isSpace(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			lines = append(lines, strings.Join(cur, ""))
		}
	}
	return lines
}

// Render returns the title as it is written to the drawtext text file.
func Render(title string) string {
	return strings.Join(Wrap(title, Width), "\n")
}

// split turns text into alternating word and whitespace chunks. Tabs are
// expanded to 8-column stops and every whitespace rune becomes a space.
func split(text string) []string {
	text = expandTabs(text)
	var chunks []string
	var b strings.Builder
	inSpace := false
	for i, r := range text {
		sp := unicode.IsSpace(r)
		if sp {
			r = ' '
		}
		if i > 0 && sp != inSpace && b.Len() > 0 {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		inSpace = sp
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := 8 - col%8
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

func isSpace(chunk string) bool { return strings.TrimSpace(chunk) == "" }

func runeLen(s string) int { return len([]rune(s)) }
