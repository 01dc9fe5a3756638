package usecase

import (
	"errors"
	"os"

	"github.com/pubkit/pubkit/internal/ports"
	"github.com/pubkit/pubkit/internal/types"
)

// Deps carries the adapters a command needs. Flows only touch the ports they
// use, so callers wire just those.
type Deps struct {
	Media       ports.MediaTool
	Platform    ports.VideoPlatform
	Blog        ports.Blog
	Social      ports.SocialPoster
	Auth        ports.Authorizer
	Images      ports.ImageGenerator
	Store       ports.ObjectStore
	Transcripts ports.Transcripts
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

func nopLogf(string, ...any) {}

func logger(logf func(string, ...any)) func(string, ...any) {
	if logf == nil {
		return nopLogf
	}
	return logf
}

// RequireFile reports a *types.MissingInputError when path is empty, absent
// or a directory.
func RequireFile(kind, path string) error {
	if path == "" {
		return &types.MissingInputError{Kind: kind, Path: path, Err: errors.New("path is empty")}
	}
	st, err := os.Stat(path)
	if err != nil {
		return &types.MissingInputError{Kind: kind, Path: path, Err: err}
	}
	if st.IsDir() {
		return &types.MissingInputError{Kind: kind, Path: path, Err: errors.New("is a directory")}
	}
	return nil
}

func writeFile(path string, b []byte) error {
	return os.WriteFile(path, b, 0o644)
}
