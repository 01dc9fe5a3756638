// Package openai implements ports.ImageGenerator on the OpenAI Images API.
package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/pubkit/pubkit/internal/types"
)

const (
	DefaultModel   = "gpt-image-1"
	requestTimeout = 5 * time.Minute
)

// Sizes lists what each model accepts. The first entry is the fallback.
var Sizes = map[string][]string{
	"gpt-image-1": {"256x256", "512x512", "1024x1024", "1536x1024"},
	"dall-e-3":    {"1024x1024", "1792x1024", "1024x1792"},
}

var quality = map[string]string{
	"gpt-image-1": "high",
	"dall-e-3":    "hd",
}

type Config struct {
	APIKey       string
	BaseURL      string
	AllowedHosts []string
	HTTPClient   *http.Client
	Logf         func(string, ...any)
}

type Adapter struct {
	client *goopenai.Client
	http   *http.Client
	key    string
	logf   func(string, ...any)
}

func New(cfg Config) (*Adapter, error) {
	if err := ValidateBaseURL(cfg.BaseURL, cfg.AllowedHosts); err != nil {
		return nil, err
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: requestTimeout}
	}
	oc := goopenai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = normalizeBaseURL(cfg.BaseURL)
	oc.HTTPClient = hc
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Adapter{client: goopenai.NewClientWithConfig(oc), http: hc, key: cfg.APIKey, logf: logf}, nil
}

// ResolveSize returns size when model supports it and the model's first
// size otherwise. The bool reports a fallback.
func ResolveSize(model, size string) (string, bool, error) {
	sizes, ok := Sizes[model]
	if !ok {
		return "", false, fmt.Errorf("unsupported model: %s", model)
	}
	if slices.Contains(sizes, size) {
		return size, false, nil
	}
	return sizes[0], true, nil
}

func (a *Adapter) Generate(ctx context.Context, req types.ImageRequest) ([]byte, error) {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}
	size, fellBack, err := ResolveSize(model, req.Size)
	if err != nil {
		return nil, err
	}
	if fellBack {
		a.logf("warning: size %q is not supported by %s, using %s", req.Size, model, size)
	}

	resp, err := a.client.CreateImage(ctx, goopenai.ImageRequest{
		Prompt:  req.Prompt,
		Model:   model,
		Size:    size,
		Quality: quality[model],
		N:       1,
	})
	if err != nil {
		return nil, fmt.Errorf("openai image: %s", redactSecrets(err.Error(), a.key))
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("openai image: empty response")
	}
	img := resp.Data[0]
	switch {
	case img.B64JSON != "":
		b, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return b, nil
	case img.URL != "":
		return a.download(ctx, img.URL)
	}
	return nil, errors.New("openai image: response has neither image data nor URL")
}

func (a *Adapter) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &types.StatusError{Service: "image download", Code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)((?:api[_-]?key|x-api-key)\s*[:=]\s*)([^\s,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
