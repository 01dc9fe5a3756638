package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/pubkit/pubkit/internal/types"
)

var finishedShortRE = regexp.MustCompile(`^short\d+\.mp4$`)

type ArchiveInput struct {
	VideoID string
	WorkDir string
	Prefix  string
	Logf    func(string, ...any)
}

// ArchiveShorts uploads every finished short in WorkDir to
// <Prefix>/<VideoID>/<file>. Intermediates are never uploaded.
func (u Usecase) ArchiveShorts(ctx context.Context, in ArchiveInput) ([]string, error) {
	if u.d.Store == nil {
		return nil, errors.New("object store is not configured")
	}
	logf := logger(in.Logf)
	entries, err := os.ReadDir(in.WorkDir)
	if err != nil {
		return nil, &types.MissingInputError{Kind: "work dir", Path: in.WorkDir, Err: err}
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && finishedShortRE.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no finished shorts in %s", in.WorkDir)
	}
	sort.Strings(names)

	var keys []string
	for _, name := range names {
		key := path.Join(in.Prefix, in.VideoID, name)
		if err := u.putFile(ctx, filepath.Join(in.WorkDir, name), key); err != nil {
			return keys, fmt.Errorf("upload %s: %w", name, err)
		}
		logf("uploaded %s", key)
		keys = append(keys, key)
	}
	return keys, nil
}

func (u Usecase) putFile(ctx context.Context, p, key string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()
	return u.d.Store.Put(ctx, key, f, "video/mp4")
}
