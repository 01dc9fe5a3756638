package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pubkit/pubkit/internal/domain/markdown"
	"github.com/pubkit/pubkit/internal/types"
)

// MaxSocialPost is LinkedIn's character limit for a member share.
const MaxSocialPost = 3000

type SocialPostInput struct {
	MarkdownPath string
	ImagePath    string
	ForceAuth    bool
	Logf         func(string, ...any)
}

// PostToSocial renders a markdown file to plain text and shares it. An
// expired token gets exactly one re-authorization and retry.
func (u Usecase) PostToSocial(ctx context.Context, in SocialPostInput) (string, error) {
	if u.d.Social == nil || u.d.Auth == nil {
		return "", errors.New("social poster is not configured")
	}
	logf := logger(in.Logf)
	if err := RequireFile("markdown", in.MarkdownPath); err != nil {
		return "", err
	}
	if in.ImagePath != "" {
		if err := RequireFile("image", in.ImagePath); err != nil {
			return "", err
		}
	}
	src, err := os.ReadFile(in.MarkdownPath)
	if err != nil {
		return "", err
	}
	text, err := markdown.PlainText(string(src))
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	if n := len([]rune(text)); n > MaxSocialPost {
		logf("warning: text is %d characters, truncating to %d", n, MaxSocialPost)
		text, _ = markdown.Truncate(text, MaxSocialPost)
	}

	if in.ForceAuth {
		if _, err := u.d.Auth.Authorize(ctx); err != nil {
			return "", err
		}
	}
	id, err := u.d.Social.Post(ctx, text, in.ImagePath)
	if types.IsUnauthorized(err) {
		logf("token rejected, re-authorizing")
		if _, err := u.d.Auth.Authorize(ctx); err != nil {
			return "", err
		}
		id, err = u.d.Social.Post(ctx, text, in.ImagePath)
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
