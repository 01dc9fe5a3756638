package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pubkit/pubkit/internal/types"
)

func TestResolveSize(t *testing.T) {
	t.Parallel()

	if got, fb, err := ResolveSize("dall-e-3", "1792x1024"); err != nil || fb || got != "1792x1024" {
		t.Fatalf("got %q %v %v", got, fb, err)
	}
	if got, fb, err := ResolveSize("gpt-image-1", "1792x1024"); err != nil || !fb || got != "256x256" {
		t.Fatalf("got %q %v %v", got, fb, err)
	}
	if _, _, err := ResolveSize("dall-e-2", "256x256"); err == nil {
		t.Fatalf("expected unsupported model error")
	}
}

func newTLSAdapter(t *testing.T, h http.HandlerFunc) (*Adapter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewTLSServer(h)
	t.Cleanup(srv.Close)
	a, err := New(Config{
		APIKey:       "sk-test-secret",
		BaseURL:      srv.URL + "/v1",
		AllowedHosts: []string{"127.0.0.1"},
		HTTPClient:   srv.Client(),
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return a, srv
}

func TestGenerate_Base64(t *testing.T) {
	t.Parallel()

	var req map[string]any
	a, _ := newTLSAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		fmt.Fprintf(w, `{"created":1,"data":[{"b64_json":%q}]}`, base64.StdEncoding.EncodeToString([]byte("PNGDATA")))
	})

	b, err := a.Generate(context.Background(), types.ImageRequest{Prompt: "a fox", Size: "999x999"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(b) != "PNGDATA" {
		t.Fatalf("unexpected bytes %q", b)
	}
	if req["model"] != "gpt-image-1" || req["size"] != "256x256" || req["quality"] != "high" {
		t.Fatalf("unexpected request %v", req)
	}
}

func TestGenerate_DownloadsURL(t *testing.T) {
	t.Parallel()

	var base string
	a, srv := newTLSAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/images/generations":
			fmt.Fprintf(w, `{"created":1,"data":[{"url":"%s/files/img.png"}]}`, base)
		case "/files/img.png":
			_, _ = io.WriteString(w, "FROMURL")
		default:
			http.NotFound(w, r)
		}
	})
	base = srv.URL

	b, err := a.Generate(context.Background(), types.ImageRequest{Prompt: "p", Model: "dall-e-3", Size: "1024x1792"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(b) != "FROMURL" {
		t.Fatalf("unexpected bytes %q", b)
	}
}

func TestGenerate_ErrorIsRedacted(t *testing.T) {
	t.Parallel()

	a, _ := newTLSAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"Incorrect API key provided: sk-test-secret","type":"invalid_request_error"}}`)
	})

	_, err := a.Generate(context.Background(), types.ImageRequest{Prompt: "p"})
	if err == nil || strings.Contains(err.Error(), "sk-test-secret") {
		t.Fatalf("expected redacted error, got %v", err)
	}
}

func TestNew_RejectsUntrustedBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{APIKey: "k", BaseURL: "https://evil.example/v1"}); err == nil {
		t.Fatalf("expected base URL rejection")
	}
}

func TestRedactSecrets(t *testing.T) {
	t.Parallel()

	apiKey := "sk-super-secret"
	in := `status 401; Authorization: Bearer sk-super-secret; api_key=sk-super-secret`
	got := redactSecrets(in, apiKey)
	if strings.Contains(got, apiKey) {
		t.Fatalf("expected API key to be redacted, got: %q", got)
	}
	if !strings.Contains(got, "Authorization: [REDACTED]") || !strings.Contains(got, "api_key=[REDACTED]") {
		t.Fatalf("unexpected redaction: %q", got)
	}
}
