package subtitles

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pubkit/pubkit/internal/types"
)

var (
	indexLineRE  = regexp.MustCompile(`^\d+$`)
	timingPrefix = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}`)
)

// ParseCues reads the cue blocks of an SRT document. Blocks without a
// parseable timing line are ignored.
func ParseCues(doc string) []types.Cue {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	doc = strings.TrimPrefix(doc, "\ufeff")

	var out []types.Cue
	for _, block := range strings.Split(doc, "\n\n") {
		lines := strings.Split(strings.Trim(block, "\n"), "\n")
		if len(lines) == 0 {
			continue
		}
		var c types.Cue
		i := 0
		if indexLineRE.MatchString(strings.TrimSpace(lines[0])) && len(lines) > 1 {
			c.Index, _ = strconv.Atoi(strings.TrimSpace(lines[0]))
			i++
		}
		m := lenientTimingRE.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		var err error
		if c.Start, err = fromParts(m[1], m[2], m[3], m[4]); err != nil {
			continue
		}
		if c.End, err = fromParts(m[5], m[6], m[7], m[8]); err != nil {
			continue
		}
		for _, l := range lines[i+1:] {
			if strings.TrimSpace(l) != "" {
				c.Lines = append(c.Lines, l)
			}
		}
		out = append(out, c)
	}
	return out
}

// Overlapping returns the cues that are visible at some point in [from, to).
// Zero-length cues never overlap.
func Overlapping(cues []types.Cue, from, to time.Duration) []types.Cue {
	var out []types.Cue
	for _, c := range cues {
		if c.End <= c.Start {
			continue
		}
		if c.End > from && c.Start < to {
			out = append(out, c)
		}
	}
	return out
}

// ToText flattens an SRT document to its spoken text on a single line.
func ToText(doc string) string {
	var parts []string
	for _, l := range strings.Split(doc, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || indexLineRE.MatchString(l) || timingPrefix.MatchString(l) {
			continue
		}
		parts = append(parts, l)
	}
	return strings.Join(parts, " ")
}
