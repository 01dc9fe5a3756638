// Package markdown turns article sources into the HTML and plain text the
// publishing targets accept.
package markdown

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe()))

func ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StripTitleLine drops the first line when, without its '#' marks, it
// repeats title.
func StripTitleLine(doc, title string) string {
	first, rest, _ := strings.Cut(doc, "\n")
	heading := strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(first), "#", ""))
	if heading != "" && heading == strings.TrimSpace(title) {
		return rest
	}
	return doc
}

var (
	tagRE   = regexp.MustCompile(`<[^<]+?>`)
	blankRE = regexp.MustCompile(`\n\s*\n`)
)

// PlainText renders markdown and strips the markup, keeping paragraph
// breaks as single blank lines.
func PlainText(src string) (string, error) {
	h, err := ToHTML(src)
	if err != nil {
		return "", err
	}
	text := html.UnescapeString(tagRE.ReplaceAllString(h, ""))
	text = blankRE.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}

// Truncate limits s to max runes, ending with "..." when cut.
func Truncate(s string, max int) (string, bool) {
	r := []rune(s)
	if len(r) <= max {
		return s, false
	}
	if max <= 3 {
		return string(r[:max]), true
	}
	return string(r[:max-3]) + "...", true
}
