package youtube

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	yt "google.golang.org/api/youtube/v3"

	"github.com/pubkit/pubkit/internal/ports/adapters/oauthtoken"
	"github.com/pubkit/pubkit/internal/types"
)

const (
	ScopeManage = yt.YoutubeForceSslScope
	ScopeUpload = yt.YoutubeUploadScope
)

// Prompt shows the consent URL and returns what the user pasted back: the
// bare code or the whole redirect URL.
type Prompt func(authURL string) (string, error)

type AuthConfig struct {
	ClientSecrets string
	TokenFile     string
	Scope         string
	Prompt        Prompt
	Logf          func(string, ...any)
}

// Client returns an HTTP client authorized for the YouTube Data API. A cached
// token is reused and refreshed. Without one the installed-app consent flow
// runs once and the result is cached.
func Client(ctx context.Context, cfg AuthConfig) (*http.Client, error) {
	b, err := os.ReadFile(cfg.ClientSecrets)
	if err != nil {
		return nil, &types.MissingInputError{Kind: "client secrets", Path: cfg.ClientSecrets, Err: err}
	}
	conf, err := google.ConfigFromJSON(b, cfg.Scope)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}

	tok, err := oauthtoken.Load(cfg.TokenFile)
	if err != nil || (!tok.Valid() && tok.RefreshToken == "") {
		if cfg.Prompt == nil {
			return nil, errors.New("youtube: authorization required but no prompt is available")
		}
		tok, err = consent(ctx, conf, cfg.Prompt)
		if err != nil {
			return nil, err
		}
		if err := oauthtoken.Save(cfg.TokenFile, tok); err != nil {
			return nil, err
		}
	}
	ts := oauthtoken.Saving(cfg.TokenFile, tok, conf.TokenSource(ctx, tok), cfg.Logf)
	return oauth2.NewClient(ctx, ts), nil
}

func consent(ctx context.Context, conf *oauth2.Config, prompt Prompt) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	pasted, err := prompt(authURL)
	if err != nil {
		return nil, err
	}
	code := ExtractCode(pasted)
	if code == "" {
		return nil, errors.New("youtube: empty authorization code")
	}
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// ExtractCode accepts either a bare code or the redirect URL (or its query
// string) and returns the code.
func ExtractCode(pasted string) string {
	s := strings.TrimSpace(pasted)
	if !strings.Contains(s, "code=") {
		return s
	}
	q := s
	if i := strings.Index(s, "?"); i >= 0 {
		q = s[i+1:]
	}
	vals, err := url.ParseQuery(q)
	if err != nil {
		return s
	}
	return vals.Get("code")
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
