// Package wordpress implements ports.Blog on the WordPress REST API with
// application-password basic auth.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pubkit/pubkit/internal/logging"
	"github.com/pubkit/pubkit/internal/types"
)

const requestTimeout = 2 * time.Minute

type Adapter struct {
	baseURL  string
	user     string
	password string
	client   *http.Client
}

func New(baseURL, user, password string) *Adapter {
	return &Adapter{
		baseURL:  strings.TrimRight(baseURL, "/") + "/wp-json/wp/v2",
		user:     user,
		password: password,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// WithHTTPClient swaps the client, mainly for tests.
func (a *Adapter) WithHTTPClient(c *http.Client) *Adapter {
	a.client = c
	return a
}

func (a *Adapter) UploadMedia(ctx context.Context, path string) (int64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, &types.MissingInputError{Kind: "featured image", Path: path, Err: err}
	}
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		ct = "image/png"
	}
	hdr := http.Header{}
	hdr.Set("Content-Type", ct)
	hdr.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))

	var out struct {
		ID int64 `json:"id"`
	}
	if err := a.do(ctx, http.MethodPost, "/media", hdr, bytes.NewReader(b), http.StatusCreated, &out); err != nil {
		return 0, fmt.Errorf("upload media: %w", err)
	}
	return out.ID, nil
}

// FindTerm searches a taxonomy ("categories" or "tags") for an exact,
// case-insensitive name match.
func (a *Adapter) FindTerm(ctx context.Context, taxonomy, name string) (int64, bool, error) {
	var terms []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	path := "/" + url.PathEscape(taxonomy) + "?" + url.Values{"search": {name}}.Encode()
	if err := a.do(ctx, http.MethodGet, path, nil, nil, http.StatusOK, &terms); err != nil {
		return 0, false, fmt.Errorf("search %s: %w", taxonomy, err)
	}
	for _, t := range terms {
		if strings.EqualFold(t.Name, name) {
			return t.ID, true, nil
		}
	}
	return 0, false, nil
}

func (a *Adapter) CreateTag(ctx context.Context, name string) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := a.postJSON(ctx, "/tags", map[string]string{"name": name}, &out); err != nil {
		return 0, fmt.Errorf("create tag %q: %w", name, err)
	}
	return out.ID, nil
}

func (a *Adapter) CreatePost(ctx context.Context, req types.PostRequest) (types.PublishedPost, error) {
	payload := map[string]any{
		"title":      req.Title,
		"content":    req.HTML,
		"status":     req.Status,
		"categories": nonNil(req.CategoryIDs),
		"tags":       nonNil(req.TagIDs),
	}
	if req.Date != "" {
		payload["date"] = req.Date
	}
	if req.FeaturedMedia != 0 {
		payload["featured_media"] = req.FeaturedMedia
	}
	var out types.PublishedPost
	if err := a.postJSON(ctx, "/posts", payload, &out); err != nil {
		return types.PublishedPost{}, fmt.Errorf("create post: %w", err)
	}
	return out, nil
}

func (a *Adapter) postJSON(ctx context.Context, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	return a.do(ctx, http.MethodPost, path, hdr, bytes.NewReader(b), http.StatusCreated, out)
}

func (a *Adapter) do(ctx context.Context, method, path string, hdr http.Header, body io.Reader, want int, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	for k, v := range hdr {
		req.Header[k] = v
	}
	req.SetBasicAuth(a.user, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &types.StatusError{Service: "wordpress", Code: resp.StatusCode, Body: truncate(logging.Redact(string(rb), a.password), 400)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
