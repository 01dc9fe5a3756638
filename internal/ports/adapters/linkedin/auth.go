package linkedin

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"golang.org/x/oauth2"

	"github.com/pubkit/pubkit/internal/logging"
)

var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://www.linkedin.com/oauth/v2/authorization",
	TokenURL:  "https://www.linkedin.com/oauth/v2/accessToken",
	AuthStyle: oauth2.AuthStyleInParams,
}

var Scopes = []string{"openid", "profile", "w_member_social"}

// Authorizer runs the three-legged OAuth flow through a one-shot local
// callback server and stores the new access token in the credentials file.
type Authorizer struct {
	CredentialsFile string
	RedirectURL     string
	Endpoint        oauth2.Endpoint
	// Open shows the consent page. Defaults to the system browser.
	Open    func(authURL string)
	Logf    func(string, ...any)
	Timeout time.Duration
}

func NewAuthorizer(credentialsFile, redirectURL string, logf func(string, ...any)) *Authorizer {
	return &Authorizer{
		CredentialsFile: credentialsFile,
		RedirectURL:     redirectURL,
		Endpoint:        Endpoint,
		Open:            launcher.Open,
		Logf:            logf,
		Timeout:         5 * time.Minute,
	}
}

type callback struct {
	code string
	err  error
}

func (a *Authorizer) Authorize(ctx context.Context) (string, error) {
	creds, err := LoadCredentials(a.CredentialsFile)
	if err != nil {
		return "", err
	}
	redirect, err := url.Parse(a.RedirectURL)
	if err != nil || redirect.Host == "" {
		return "", fmt.Errorf("invalid redirect URL %q", a.RedirectURL)
	}
	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return "", fmt.Errorf("listen for OAuth callback: %w", err)
	}
	defer ln.Close()
	if redirect.Port() == "0" {
		redirect.Host = ln.Addr().String()
	}

	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     a.Endpoint,
		RedirectURL:  redirect.String(),
		Scopes:       Scopes,
	}
	state, err := randomState()
	if err != nil {
		return "", err
	}

	done := make(chan callback, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(redirect.Path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var cb callback
		switch {
		case q.Get("state") != state:
			cb.err = errors.New("OAuth callback state mismatch")
		case q.Get("code") == "":
			cb.err = fmt.Errorf("authorization failed: %s", q.Get("error_description"))
		default:
			cb.code = q.Get("code")
		}
		if cb.err != nil {
			http.Error(w, "Authorization failed", http.StatusBadRequest)
		} else {
			_, _ = fmt.Fprint(w, "<html><body><h1>Authorization successful!</h1><p>You can close this window and return to the terminal.</p></body></html>")
		}
		select {
		case done <- cb:
		default:
		}
	})
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	authURL := conf.AuthCodeURL(state)
	if a.Logf != nil {
		a.Logf("opening browser for LinkedIn authorization, or visit:\n%s", authURL)
	}
	if a.Open != nil {
		a.Open(authURL)
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var cb callback
	select {
	case cb = <-done:
	case <-waitCtx.Done():
		return "", fmt.Errorf("waiting for LinkedIn authorization: %w", waitCtx.Err())
	}
	if cb.err != nil {
		return "", cb.err
	}

	tok, err := conf.Exchange(ctx, cb.code)
	if err != nil {
		return "", fmt.Errorf("exchange authorization code: %w", err)
	}
	creds.AccessToken = tok.AccessToken
	if err := SaveCredentials(a.CredentialsFile, creds); err != nil {
		return "", err
	}
	if a.Logf != nil {
		a.Logf("access token %s saved to %s", logging.SanitizeToken(tok.AccessToken), a.CredentialsFile)
	}
	return tok.AccessToken, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
