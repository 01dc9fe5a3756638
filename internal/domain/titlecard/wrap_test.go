package titlecard

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{
			name:  "fits on one line",
			in:    "Short title",
			width: 25,
			want:  []string{"Short title"},
		},
		{
			name:  "greedy fill",
			in:    "How I automated my whole publishing workflow",
			width: 25,
			want:  []string{"How I automated my whole", "publishing workflow"},
		},
		{
			name:  "whitespace runs collapse at breaks",
			in:    "aaaa   bbbb\tcccc\ndddd",
			width: 9,
			want:  []string{"aaaa", "bbbb", "cccc dddd"},
		},
		{
			name:  "long word starts in remaining room",
			in:    "hello supercalifragilisticexpialidocious",
			width: 25,
			want:  []string{"hello supercalifragilisti", "cexpialidocious"},
		},
		{
			name:  "long word alone",
			in:    "abcdefghij",
			width: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
		{
			name:  "empty",
			in:    "   ",
			width: 25,
			want:  nil,
		},
		{
			name:  "runes count not bytes",
			in:    "ñññññ ñññññ",
			width: 5,
			want:  []string{"ñññññ", "ñññññ"},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Wrap(tc.in, tc.width)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Wrap(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	got := Render("How I automated my whole publishing workflow")
	if got != "How I automated my whole\npublishing workflow" {
		t.Fatalf("unexpected render %q", got)
	}
}
