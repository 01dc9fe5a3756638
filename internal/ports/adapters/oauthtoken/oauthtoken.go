// Package oauthtoken caches OAuth2 tokens in a JSON file between runs.
package oauthtoken

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

func Load(path string) (*oauth2.Token, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", path, err)
	}
	return &tok, nil
}

// Save writes tok with owner-only permissions.
func Save(path string, tok *oauth2.Token) error {
	b, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write token file %s: %w", path, err)
	}
	return os.Chmod(path, 0o600)
}

type savingSource struct {
	path string
	src  oauth2.TokenSource
	logf func(string, ...any)

	mu   sync.Mutex
	last string
}

// Saving returns a TokenSource that writes every newly minted token to path.
// initial is the token already on disk, if any.
func Saving(path string, initial *oauth2.Token, src oauth2.TokenSource, logf func(string, ...any)) oauth2.TokenSource {
	s := &savingSource{path: path, src: src, logf: logf}
	if initial != nil {
		s.last = initial.AccessToken
	}
	return s
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := Save(s.path, tok); err != nil && s.logf != nil {
			s.logf("warning: could not persist refreshed token: %v", err)
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}
