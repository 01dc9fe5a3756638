package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pubkit/pubkit/internal/domain/markdown"
	"github.com/pubkit/pubkit/internal/types"
)

var postStatuses = map[string]bool{"draft": true, "publish": true, "future": true}

// PublishBlog converts a markdown article and posts it. The featured image
// and every term are best effort: failures are logged and the post still
// goes out.
func (u Usecase) PublishBlog(ctx context.Context, post types.BlogPost, logf func(string, ...any)) (types.PublishedPost, error) {
	if u.d.Blog == nil {
		return types.PublishedPost{}, errors.New("blog is not configured")
	}
	logf = logger(logf)
	if post.Status == "" {
		post.Status = "draft"
	}
	if !postStatuses[post.Status] {
		return types.PublishedPost{}, fmt.Errorf("invalid status %q: want draft, publish or future", post.Status)
	}

	body, err := markdown.ToHTML(markdown.StripTitleLine(post.Markdown, post.Title))
	if err != nil {
		return types.PublishedPost{}, fmt.Errorf("render markdown: %w", err)
	}
	req := types.PostRequest{Title: post.Title, HTML: body, Status: post.Status, Date: post.PublishDate}

	if post.ImagePath != "" {
		if _, err := os.Stat(post.ImagePath); err != nil {
			logf("warning: featured image %s not found, posting without it", post.ImagePath)
		} else if id, err := u.d.Blog.UploadMedia(ctx, post.ImagePath); err != nil {
			logf("warning: %v", err)
		} else {
			req.FeaturedMedia = id
		}
	}

	for _, name := range trimmed(post.Categories) {
		id, ok, err := u.d.Blog.FindTerm(ctx, "categories", name)
		switch {
		case err != nil:
			logf("warning: %v", err)
		case !ok:
			logf("warning: category %q not found, skipping", name)
		default:
			req.CategoryIDs = append(req.CategoryIDs, id)
		}
	}

	for _, name := range trimmed(post.Tags) {
		id, ok, err := u.d.Blog.FindTerm(ctx, "tags", name)
		if err == nil && !ok {
			id, err = u.d.Blog.CreateTag(ctx, name)
		}
		if err != nil {
			logf("warning: could not find or create tag %q: %v", name, err)
			continue
		}
		req.TagIDs = append(req.TagIDs, id)
	}

	return u.d.Blog.CreatePost(ctx, req)
}

func trimmed(names []string) []string {
	var out []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
