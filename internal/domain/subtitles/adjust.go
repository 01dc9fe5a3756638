package subtitles

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pubkit/pubkit/internal/types"
)

// Mode selects how timing lines that fail to parse are handled.
type Mode int

const (
	// Strict aborts on the first timing line that is not canonical SRT.
	Strict Mode = iota
	// Lenient also accepts '.' as the millisecond separator and copies
	// unparseable timing lines through unchanged.
	Lenient
)

func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

// Stats summarizes one adjustment pass.
type Stats struct {
	Lines    int
	Adjusted int
	Skipped  int
}

var (
	// timingCandidateRE marks lines that are meant as timing lines: a
	// clock-like token right before the arrow. Text lines that merely
	// contain "-->" do not match and are copied untouched.
	timingCandidateRE = regexp.MustCompile(`^\s*\d+:\S*\s*-->`)
	strictTimingRE    = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2}),(\d{3}) --> (\d{2,}):(\d{2}):(\d{2}),(\d{3})`)
	lenientTimingRE   = regexp.MustCompile(`^\s*(\d+):(\d{1,2}):(\d{1,2})[,.](\d{3})\s*-->\s*(\d+):(\d{1,2}):(\d{1,2})[,.](\d{3})`)
)

type lineResult int

const (
	lineCopied lineResult = iota
	lineAdjusted
	lineSkipped
)

// Adjust copies an SRT document from r to w, subtracting offset from both
// bounds of every timing line. Each bound is clamped at zero on its own.
// Every other byte, line terminators included, is preserved.
func Adjust(r io.Reader, w io.Writer, offset time.Duration, mode Mode) (Stats, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	var st Stats
	for {
		line, rerr := br.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return st, fmt.Errorf("read subtitles: %w", rerr)
		}
		if line != "" {
			st.Lines++
			out, res, err := adjustLine(line, offset, mode)
			if err != nil {
				return st, fmt.Errorf("line %d: %w", st.Lines, err)
			}
			switch res {
			case lineAdjusted:
				st.Adjusted++
			case lineSkipped:
				st.Skipped++
			}
			if _, err := bw.WriteString(out); err != nil {
				return st, fmt.Errorf("write subtitles: %w", err)
			}
		}
		if rerr != nil {
			break
		}
	}
	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("write subtitles: %w", err)
	}
	return st, nil
}

// AdjustString is Adjust over in-memory text with a textual offset.
func AdjustString(doc, offset string, mode Mode) (string, Stats, error) {
	off, err := ParseTimestamp(offset)
	if err != nil {
		return "", Stats{}, fmt.Errorf("offset: %w", err)
	}
	var b strings.Builder
	st, err := Adjust(strings.NewReader(doc), &b, off, mode)
	if err != nil {
		return "", st, err
	}
	return b.String(), st, nil
}

// AdjustFile shifts inPath by offset and writes the result to outPath. The
// output is only written once the whole document has been processed.
func AdjustFile(inPath string, offset time.Duration, outPath string, mode Mode) (Stats, error) {
	f, err := os.Open(inPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Stats{}, &types.MissingInputError{Kind: "subtitle file", Path: inPath, Err: err}
		}
		return Stats{}, fmt.Errorf("open subtitles: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	st, err := Adjust(f, &buf, offset, mode)
	if err != nil {
		return st, err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return st, fmt.Errorf("write %s: %w", outPath, err)
	}
	return st, nil
}

func adjustLine(line string, offset time.Duration, mode Mode) (string, lineResult, error) {
	body, eol := splitEOL(line)
	if !timingCandidateRE.MatchString(body) {
		return line, lineCopied, nil
	}
	re := strictTimingRE
	if mode == Lenient {
		re = lenientTimingRE
	}
	loc := re.FindStringSubmatchIndex(body)
	if loc == nil {
		if mode == Strict {
			return "", 0, fmt.Errorf("%w: %q", types.ErrMalformedTimestamp, body)
		}
		return line, lineSkipped, nil
	}
	group := func(i int) string { return body[loc[2*i]:loc[2*i+1]] }

	start, err := fromParts(group(1), group(2), group(3), group(4))
	if err == nil {
		var end time.Duration
		end, err = fromParts(group(5), group(6), group(7), group(8))
		if err == nil {
			// Leading space and the arrow's spacing are kept as written.
			lead, sep := body[:loc[2]], body[loc[9]:loc[10]]
			out := lead + FormatTimestamp(start-offset) + sep + FormatTimestamp(end-offset) + body[loc[1]:] + eol
			return out, lineAdjusted, nil
		}
	}
	if mode == Strict {
		return "", 0, fmt.Errorf("%w: %q: %v", types.ErrMalformedTimestamp, body, err)
	}
	return line, lineSkipped, nil
}

func splitEOL(line string) (body, eol string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
