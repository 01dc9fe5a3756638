package subtitles

import (
	"strings"
	"testing"
)

const ffmpegASS = "[Script Info]\r\n" +
	"; Script generated by FFmpeg/Lavc60.31.102\r\n" +
	"ScriptType: v4.00+\r\n" +
	"PlayResX: 384\r\n" +
	"PlayResY: 288\r\n" +
	"ScaledBorderAndShadow: yes\r\n" +
	"YCbCr Matrix: None\r\n" +
	"\r\n" +
	"[V4+ Styles]\r\n" +
	"Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\r\n" +
	"Style: Default,Arial,16,&Hffffff,&Hffffff,&H0,&H0,0,0,0,0,100,100,0,0,1,1,0,2,10,10,10,0\r\n" +
	"\r\n" +
	"[Events]\r\n" +
	"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\r\n" +
	"Dialogue: 0,0:00:00.00,0:00:02.50,Default,,0,0,0,,Hello\r\n"

const wantShortStyle = "Style: Default,Arial,36,&H00FFFFFF,&H00000000,&H00000000,&H80000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,300,1"

func TestShortStyle_Line(t *testing.T) {
	if got := ShortStyle().Line(); got != wantShortStyle {
		t.Fatalf("unexpected style line:\n got %s\nwant %s", got, wantShortStyle)
	}
}

func TestRestyle_ReplacesResolutionAndStyles(t *testing.T) {
	t.Parallel()

	got, err := Restyle(ffmpegASS, PortraitCanvas, ShortStyle())
	if err != nil {
		t.Fatalf("restyle: %v", err)
	}
	for _, want := range []string{"PlayResX: 1080\r\n", "PlayResY: 1920\r\n", wantShortStyle + "\r\n", "Dialogue: 0,0:00:00.00,0:00:02.50,Default,,0,0,0,,Hello\r\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	for _, gone := range []string{"PlayResX: 384", "PlayResY: 288", "Arial,16"} {
		if strings.Contains(got, gone) {
			t.Fatalf("stale %q still present:\n%s", gone, got)
		}
	}
	if n := strings.Count(got, "Style: "); n != 1 {
		t.Fatalf("expected exactly one style line, got %d", n)
	}
}

func TestRestyle_Idempotent(t *testing.T) {
	t.Parallel()

	once, err := Restyle(ffmpegASS, PortraitCanvas, ShortStyle())
	if err != nil {
		t.Fatalf("restyle: %v", err)
	}
	twice, err := Restyle(once, PortraitCanvas, ShortStyle())
	if err != nil {
		t.Fatalf("restyle twice: %v", err)
	}
	if once != twice {
		t.Fatalf("restyle not idempotent:\n%s\n---\n%s", once, twice)
	}
}

func TestRestyle_InsertsMissingPieces(t *testing.T) {
	t.Parallel()

	doc := "[Script Info]\nScriptType: v4.00+\n\n[Events]\nFormat: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n"
	got, err := Restyle(doc, PortraitCanvas, ShortStyle())
	if err != nil {
		t.Fatalf("restyle: %v", err)
	}
	want := "[Script Info]\nPlayResX: 1080\nPlayResY: 1920\nScriptType: v4.00+\n\n[V4+ Styles]\n" + styleFormat + "\n" + wantShortStyle + "\n\n[Events]\n"
	if !strings.HasPrefix(got, want) {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestRestyle_RejectsNonASS(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"1\n00:00:01,000 --> 00:00:02,000\nhello\n",
		"[Script Info]\nPlayResX: 384\n",
	}
	for _, doc := range cases {
		if _, err := Restyle(doc, PortraitCanvas, ShortStyle()); err == nil {
			t.Fatalf("expected error for %q", doc)
		}
	}
}
