package markdown

import (
	"strings"
	"testing"
)

func TestStripTitleLine(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, doc, title, want string
	}{
		{"heading matches", "# My Post\n\nBody", "My Post", "\nBody"},
		{"bare line matches", "My Post\nBody", " My Post ", "Body"},
		{"different title", "# Intro\nBody", "My Post", "# Intro\nBody"},
		{"empty doc", "", "My Post", ""},
	}
	for _, tc := range cases {
		if got := StripTitleLine(tc.doc, tc.title); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestToHTML(t *testing.T) {
	t.Parallel()

	got, err := ToHTML("Hello **world**\n\n- a\n- b\n")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<p>Hello <strong>world</strong></p>", "<li>a</li>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	got, err := PlainText("# Title\n\nFish &amp; chips, *hot*.\n\n\n\nSecond [link](https://x.y).\n")
	if err != nil {
		t.Fatal(err)
	}
	want := "Title\nFish & chips, hot.\nSecond link."
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", 3001)
	got, cut := Truncate(long, 3000)
	if !cut || len([]rune(got)) != 3000 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected truncation: cut=%v len=%d", cut, len([]rune(got)))
	}
	if got, cut := Truncate("short", 3000); cut || got != "short" {
		t.Fatalf("short text changed: %q", got)
	}
}
