// Package linkedin posts member shares through the LinkedIn REST API.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pubkit/pubkit/internal/logging"
	"github.com/pubkit/pubkit/internal/types"
)

const (
	apiVersion     = "202501"
	requestTimeout = 2 * time.Minute
)

// Client implements ports.SocialPoster. The access token is read from the
// credentials file on every Post so a re-authorization takes effect
// immediately.
type Client struct {
	apiBase         string
	credentialsFile string
	http            *http.Client
}

func NewClient(apiBase, credentialsFile string) *Client {
	return &Client{
		apiBase:         strings.TrimRight(apiBase, "/") + "/v2",
		credentialsFile: credentialsFile,
		http:            &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// Post publishes text, with an optional image, and returns the share URN.
func (c *Client) Post(ctx context.Context, text, imagePath string) (string, error) {
	creds, err := LoadCredentials(c.credentialsFile)
	if err != nil {
		return "", err
	}
	token := creds.AccessToken
	if token == "" {
		return "", &types.StatusError{Service: "linkedin", Code: http.StatusUnauthorized, Body: "no access token saved"}
	}

	var info struct {
		Sub string `json:"sub"`
	}
	if _, err := c.do(ctx, token, http.MethodGet, c.apiBase+"/userinfo", nil, false, &info); err != nil {
		return "", fmt.Errorf("get user info: %w", err)
	}
	person := "urn:li:person:" + info.Sub

	var asset string
	if imagePath != "" {
		asset, err = c.uploadImage(ctx, token, person, imagePath)
		if err != nil {
			return "", err
		}
	}

	share := map[string]any{
		"shareCommentary":    map[string]string{"text": text},
		"shareMediaCategory": "NONE",
	}
	if asset != "" {
		share["shareMediaCategory"] = "IMAGE"
		share["media"] = []map[string]string{{"status": "READY", "media": asset}}
	}
	body := map[string]any{
		"author":          person,
		"lifecycleState":  "PUBLISHED",
		"specificContent": map[string]any{"com.linkedin.ugc.ShareContent": share},
		"visibility":      map[string]string{"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC"},
	}
	var out struct {
		ID string `json:"id"`
	}
	hdr, err := c.do(ctx, token, http.MethodPost, c.apiBase+"/ugcPosts", body, true, &out)
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	if out.ID == "" {
		out.ID = hdr.Get("X-RestLi-Id")
	}
	return out.ID, nil
}

func (c *Client) uploadImage(ctx context.Context, token, owner, path string) (string, error) {
	img, err := os.ReadFile(path)
	if err != nil {
		return "", &types.MissingInputError{Kind: "image", Path: path, Err: err}
	}
	reg := map[string]any{
		"registerUploadRequest": map[string]any{
			"recipes": []string{"urn:li:digitalmediaRecipe:feedshare-image"},
			"owner":   owner,
			"serviceRelationships": []map[string]string{{
				"relationshipType": "OWNER",
				"identifier":       "urn:li:userGeneratedContent",
			}},
		},
	}
	var out struct {
		Value struct {
			Asset           string `json:"asset"`
			UploadMechanism map[string]struct {
				UploadURL string `json:"uploadUrl"`
			} `json:"uploadMechanism"`
		} `json:"value"`
	}
	if _, err := c.do(ctx, token, http.MethodPost, c.apiBase+"/assets?action=registerUpload", reg, true, &out); err != nil {
		return "", fmt.Errorf("register image upload: %w", err)
	}
	uploadURL := out.Value.UploadMechanism["com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"].UploadURL
	if uploadURL == "" {
		return "", fmt.Errorf("register image upload: no upload URL in response")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(img))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if _, err := c.send(req, token, nil); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return out.Value.Asset, nil
}

func (c *Client) do(ctx context.Context, token, method, url string, payload any, versioned bool, out any) (http.Header, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if versioned {
		req.Header.Set("LinkedIn-Version", apiVersion)
	}
	return c.send(req, token, out)
}

// send treats an empty 2xx body as success; ugcPosts may answer with only
// an X-RestLi-Id header.
func (c *Client) send(req *http.Request, token string, out any) (http.Header, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.Header, &types.StatusError{Service: "linkedin", Code: resp.StatusCode, Body: logging.Redact(string(rb), token)}
	}
	if out == nil {
		return resp.Header, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return resp.Header, fmt.Errorf("decode response: %w", err)
	}
	return resp.Header, nil
}
