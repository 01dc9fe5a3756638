package subtitles

import (
	"errors"
	"fmt"
	"strings"
)

const styleFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"

// Canvas is the ASS script resolution (PlayResX/PlayResY).
type Canvas struct {
	Width  int
	Height int
}

// PortraitCanvas matches the 1080x1920 frame the shorts are padded to.
var PortraitCanvas = Canvas{Width: 1080, Height: 1920}

// Style is one row of a [V4+ Styles] section. Flag fields use ASS
// conventions (0 off, -1 on).
type Style struct {
	Name      string
	Font      string
	Size      int
	Primary   string
	Secondary string
	Outline   string
	Back      string

	Bold      int
	Italic    int
	Underline int
	StrikeOut int

	ScaleX  int
	ScaleY  int
	Spacing int
	Angle   int

	BorderStyle  int
	OutlineWidth int
	Shadow       int
	Alignment    int
	MarginL      int
	MarginR      int
	MarginV      int
	Encoding     int
}

// ShortStyle is the bottom-centred caption look burned into shorts: white
// text, black outline, translucent shadow, raised 300px off the bottom edge.
func ShortStyle() Style {
	return Style{
		Name:         "Default",
		Font:         "Arial",
		Size:         36,
		Primary:      "&H00FFFFFF",
		Secondary:    "&H00000000",
		Outline:      "&H00000000",
		Back:         "&H80000000",
		ScaleX:       100,
		ScaleY:       100,
		BorderStyle:  1,
		OutlineWidth: 2,
		Shadow:       2,
		Alignment:    2,
		MarginL:      10,
		MarginR:      10,
		MarginV:      300,
		Encoding:     1,
	}
}

func (s Style) Line() string {
	return fmt.Sprintf("Style: %s,%s,%d,%s,%s,%s,%s,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d",
		sanitizeASS(s.Name), sanitizeASS(s.Font), s.Size,
		s.Primary, s.Secondary, s.Outline, s.Back,
		s.Bold, s.Italic, s.Underline, s.StrikeOut,
		s.ScaleX, s.ScaleY, s.Spacing, s.Angle,
		s.BorderStyle, s.OutlineWidth, s.Shadow, s.Alignment,
		s.MarginL, s.MarginR, s.MarginV, s.Encoding,
	)
}

// Restyle rewrites an ASS script produced by a subtitle converter so that it
// targets canvas and uses exactly the given styles. PlayResX/PlayResY are set
// (or inserted) in [Script Info] and the styles section is rebuilt from
// scratch. Events are left untouched.
func Restyle(doc string, canvas Canvas, styles ...Style) (string, error) {
	if len(styles) == 0 {
		return "", errors.New("ass: at least one style is required")
	}
	eol := "\n"
	if strings.Contains(doc, "\r\n") {
		eol = "\r\n"
	}
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	var hasInfo, hasEvents, hasStyles, hasX, hasY bool
	section := ""
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if isSection(t) {
			section = strings.ToLower(t)
			switch section {
			case "[script info]":
				hasInfo = true
			case "[events]":
				hasEvents = true
			case "[v4+ styles]", "[v4 styles]":
				hasStyles = true
			}
			continue
		}
		if section == "[script info]" {
			hasX = hasX || strings.HasPrefix(t, "PlayResX:")
			hasY = hasY || strings.HasPrefix(t, "PlayResY:")
		}
	}
	if !hasInfo {
		return "", errors.New("ass: missing [Script Info] section")
	}
	if !hasEvents {
		return "", errors.New("ass: missing [Events] section")
	}

	styleBlock := []string{"[V4+ Styles]", styleFormat}
	for _, s := range styles {
		styleBlock = append(styleBlock, s.Line())
	}
	resX := fmt.Sprintf("PlayResX: %d", canvas.Width)
	resY := fmt.Sprintf("PlayResY: %d", canvas.Height)

	out := make([]string, 0, len(lines)+len(styleBlock)+2)
	section = ""
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if isSection(t) {
			section = strings.ToLower(t)
			switch section {
			case "[script info]":
				out = append(out, l)
				if !hasX {
					out = append(out, resX)
				}
				if !hasY {
					out = append(out, resY)
				}
			case "[v4+ styles]", "[v4 styles]":
				out = append(out, styleBlock...)
			case "[events]":
				if !hasStyles {
					out = append(out, styleBlock...)
					out = append(out, "")
				}
				out = append(out, l)
			default:
				out = append(out, l)
			}
			continue
		}
		switch section {
		case "[script info]":
			switch {
			case strings.HasPrefix(t, "PlayResX:"):
				out = append(out, resX)
				continue
			case strings.HasPrefix(t, "PlayResY:"):
				out = append(out, resY)
				continue
			}
		case "[v4+ styles]", "[v4 styles]":
			if t != "" {
				continue
			}
		}
		out = append(out, l)
	}
	return strings.Join(out, eol), nil
}

func isSection(t string) bool {
	return strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]")
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, ",", " ")
	return strings.TrimSpace(s)
}
