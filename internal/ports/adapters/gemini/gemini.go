// Package gemini implements ports.ImageGenerator with Imagen through the
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/pubkit/pubkit/internal/types"
)

const DefaultModel = "imagen-3.0-generate-002"

type Adapter struct {
	client *genai.Client
}

type Option func(*genai.ClientConfig)

// WithBaseURL overrides the API endpoint, e.g. for a test server.
func WithBaseURL(u string) Option {
	return func(c *genai.ClientConfig) { c.HTTPOptions.BaseURL = u }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *genai.ClientConfig) { c.HTTPClient = h }
}

func New(ctx context.Context, apiKey string, opts ...Option) (*Adapter, error) {
	cfg := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	for _, o := range opts {
		o(cfg)
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Adapter{client: client}, nil
}

func (a *Adapter) Generate(ctx context.Context, req types.ImageRequest) ([]byte, error) {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}
	resp, err := a.client.Models.GenerateImages(ctx, model, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    AspectRatio(req.Size),
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini image: %w", err)
	}
	for _, img := range resp.GeneratedImages {
		if img != nil && img.Image != nil && len(img.Image.ImageBytes) > 0 {
			return img.Image.ImageBytes, nil
		}
	}
	return nil, errors.New("gemini image: no image in response (it may have been filtered)")
}

var aspects = []struct {
	name  string
	ratio float64
}{
	{"1:1", 1},
	{"3:4", 3.0 / 4},
	{"4:3", 4.0 / 3},
	{"9:16", 9.0 / 16},
	{"16:9", 16.0 / 9},
}

// AspectRatio maps a WxH size to the closest ratio Imagen supports. An
// empty or unparseable size gives "1:1".
func AspectRatio(size string) string {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(size)), "x")
	if !ok {
		return "1:1"
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return "1:1"
	}
	want := float64(w) / float64(h)
	best := aspects[0]
	for _, a := range aspects[1:] {
		if math.Abs(math.Log(a.ratio/want)) < math.Abs(math.Log(best.ratio/want)) {
			best = a
		}
	}
	return best.name
}
