package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pubkit/pubkit/internal/types"
)

type fakeImages struct{ req types.ImageRequest }

func (f *fakeImages) Generate(_ context.Context, req types.ImageRequest) ([]byte, error) {
	f.req = req
	return []byte("IMG"), nil
}

func TestGenerateImage_WritesFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "nested", "cover.png")
	gen := &fakeImages{}
	uc := New(Deps{Images: gen})
	if err := uc.GenerateImage(context.Background(), types.ImageRequest{Prompt: "fox", Size: "1024x1024"}, out); err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil || string(b) != "IMG" {
		t.Fatalf("unexpected output %q %v", b, err)
	}
	if err := uc.GenerateImage(context.Background(), types.ImageRequest{Prompt: "  "}, out); err == nil {
		t.Fatalf("expected empty prompt error")
	}
}

type memStore struct {
	objects map[string]string
	types   map[string]string
}

func (m *memStore) Put(_ context.Context, key string, body io.Reader, contentType string) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = string(b)
	m.types[key] = contentType
	return nil
}

func TestArchiveShorts_SkipsTemporaries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"short2.mp4", "short10.mp4", "short1_temp_final.mp4", "temp_title_1.txt", "notes.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store := &memStore{objects: map[string]string{}, types: map[string]string{}}
	keys, err := New(Deps{Store: store}).ArchiveShorts(context.Background(), ArchiveInput{VideoID: "abc", WorkDir: dir, Prefix: "shorts"})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	want := []string{"shorts/abc/short10.mp4", "shorts/abc/short2.mp4"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	if len(store.objects) != 2 || store.types["shorts/abc/short2.mp4"] != "video/mp4" || store.objects["shorts/abc/short2.mp4"] != "short2.mp4" {
		t.Fatalf("unexpected store %v %v", store.objects, store.types)
	}

	_, err = New(Deps{Store: store}).ArchiveShorts(context.Background(), ArchiveInput{VideoID: "abc", WorkDir: filepath.Join(dir, "nope")})
	if !errors.Is(err, types.ErrMissingInput) {
		t.Fatalf("expected missing work dir, got %v", err)
	}
}

type fakeTranscripts struct{}

func (fakeTranscripts) Transcript(context.Context, string, []string) (string, error) {
	return "hello\nthere   general\n\nkenobi\n", nil
}

func TestFetchTranscript_JoinsLines(t *testing.T) {
	t.Parallel()

	got, err := New(Deps{Transcripts: fakeTranscripts{}}).FetchTranscript(context.Background(), "abc", nil)
	if err != nil || got != "hello there general kenobi" {
		t.Fatalf("got %q %v", got, err)
	}
}
