package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pubkit/pubkit/internal/types"
)

type fakeSocial struct {
	unauthorized int // number of leading calls answered with 401
	calls        int
	texts        []string
}

func (f *fakeSocial) Post(_ context.Context, text, _ string) (string, error) {
	f.calls++
	f.texts = append(f.texts, text)
	if f.calls <= f.unauthorized {
		return "", &types.StatusError{Service: "linkedin", Code: 401}
	}
	return "urn:li:share:1", nil
}

type fakeAuth struct{ calls int }

func (f *fakeAuth) Authorize(context.Context) (string, error) {
	f.calls++
	return "tok", nil
}

func writeMarkdown(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "post.md")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPostToSocial_RetriesOnceAfterReauth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		unauthorized int
		force        bool
		wantErr      bool
		wantAuth     int
		wantCalls    int
	}{
		{name: "valid token", wantCalls: 1},
		{name: "expired token", unauthorized: 1, wantAuth: 1, wantCalls: 2},
		{name: "still rejected", unauthorized: 2, wantErr: true, wantAuth: 1, wantCalls: 2},
		{name: "forced auth", force: true, wantAuth: 1, wantCalls: 1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			social := &fakeSocial{unauthorized: tc.unauthorized}
			auth := &fakeAuth{}
			id, err := New(Deps{Social: social, Auth: auth}).PostToSocial(context.Background(), SocialPostInput{
				MarkdownPath: writeMarkdown(t, "# Hi\n\nThere"),
				ForceAuth:    tc.force,
			})
			if tc.wantErr != (err != nil) {
				t.Fatalf("err = %v", err)
			}
			if !tc.wantErr && id != "urn:li:share:1" {
				t.Fatalf("unexpected id %q", id)
			}
			if auth.calls != tc.wantAuth || social.calls != tc.wantCalls {
				t.Fatalf("auth=%d posts=%d", auth.calls, social.calls)
			}
			if social.texts[0] != "Hi\nThere" {
				t.Fatalf("unexpected text %q", social.texts[0])
			}
		})
	}
}

func TestPostToSocial_Truncates(t *testing.T) {
	t.Parallel()

	social := &fakeSocial{}
	_, err := New(Deps{Social: social, Auth: &fakeAuth{}}).PostToSocial(context.Background(), SocialPostInput{
		MarkdownPath: writeMarkdown(t, strings.Repeat("a", 3500)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := social.texts[0]; len(got) != MaxSocialPost || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected length %d", len(got))
	}
}
