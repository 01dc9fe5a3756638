package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestAdapter(t *testing.T, h http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	a, err := New(context.Background(), srv.Client(), WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	return a
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestSchedule_SendsPrivateStatus(t *testing.T) {
	t.Parallel()

	var body string
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || !strings.HasSuffix(r.URL.Path, "/videos") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("part"); got != "status" {
			t.Errorf("part = %q", got)
		}
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		writeJSON(w, map[string]any{"id": "vid1", "status": map[string]any{"publishAt": "2025-12-07T12:00:00Z"}})
	})

	at := time.Date(2025, 12, 7, 14, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	got, err := a.Schedule(context.Background(), "vid1", at)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if got != "2025-12-07T12:00:00Z" {
		t.Fatalf("unexpected publishAt %q", got)
	}
	for _, want := range []string{`"privacyStatus":"private"`, `"publishAt":"2025-12-07T12:00:00.000Z"`, `"selfDeclaredMadeForKids":false`, `"id":"vid1"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("request body missing %s:\n%s", want, body)
		}
	}
}

func TestAddToPlaylist_ConflictIsNotAnError(t *testing.T) {
	t.Parallel()

	status := http.StatusOK
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/playlistItems") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = io.WriteString(w, `{"id":"item1"}`)
			return
		}
		_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"nope"}}`, status)
	})

	added, err := a.AddToPlaylist(context.Background(), "vid1", "PL1")
	if err != nil || !added {
		t.Fatalf("expected added, got %v %v", added, err)
	}

	status = http.StatusConflict
	added, err = a.AddToPlaylist(context.Background(), "vid1", "PL1")
	if err != nil || added {
		t.Fatalf("409 should report already present, got %v %v", added, err)
	}

	status = http.StatusForbidden
	if _, err := a.AddToPlaylist(context.Background(), "vid1", "PL1"); err == nil {
		t.Fatalf("expected error for 403")
	}
}

func TestFindPlaylist_PagesAndIgnoresCase(t *testing.T) {
	t.Parallel()

	pages := 0
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		pages++
		if r.URL.Query().Get("pageToken") == "" {
			writeJSON(w, map[string]any{
				"items":         []any{map[string]any{"id": "PL1", "snippet": map[string]any{"title": "Other"}}},
				"nextPageToken": "p2",
			})
			return
		}
		writeJSON(w, map[string]any{
			"items": []any{map[string]any{"id": "PL2", "snippet": map[string]any{"title": "Go Shorts"}}},
		})
	})

	id, ok, err := a.FindPlaylist(context.Background(), "go shorts")
	if err != nil || !ok || id != "PL2" {
		t.Fatalf("got %q %v %v", id, ok, err)
	}
	if pages != 2 {
		t.Fatalf("expected 2 page requests, got %d", pages)
	}

	_, ok, err = a.FindPlaylist(context.Background(), "missing")
	if err != nil || ok {
		t.Fatalf("expected not found, got %v %v", ok, err)
	}
}

func TestListUploads(t *testing.T) {
	t.Parallel()

	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/channels"):
			writeJSON(w, map[string]any{"items": []any{map[string]any{
				"contentDetails": map[string]any{"relatedPlaylists": map[string]any{"uploads": "UU1"}},
			}}})
		case strings.HasSuffix(r.URL.Path, "/playlistItems"):
			if r.URL.Query().Get("playlistId") != "UU1" {
				t.Errorf("unexpected playlist %q", r.URL.Query().Get("playlistId"))
			}
			writeJSON(w, map[string]any{"items": []any{
				map[string]any{
					"snippet": map[string]any{"title": "Short #1", "description": "d", "publishedAt": "2025-01-01T00:00:00Z", "resourceId": map[string]any{"videoId": "v1"}},
					"status":  map[string]any{"privacyStatus": "private"},
				},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	vids, err := a.ListUploads(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(vids) != 1 || vids[0].ID != "v1" || vids[0].Privacy != "private" || vids[0].PublishedAt != "2025-01-01T00:00:00Z" {
		t.Fatalf("unexpected videos %+v", vids)
	}
}

func TestExtractCode(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  4/abc  ": "4/abc",
		"http://localhost/?state=s&code=4%2Fxyz&scope=a": "4/xyz",
		"code=c1&state=s": "c1",
	}
	for in, want := range cases {
		if got := ExtractCode(in); got != want {
			t.Fatalf("ExtractCode(%q) = %q, want %q", in, got, want)
		}
	}
}
