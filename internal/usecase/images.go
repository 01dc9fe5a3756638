package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pubkit/pubkit/internal/types"
)

// GenerateImage renders req and writes the bytes to outPath, creating
// parent directories.
func (u Usecase) GenerateImage(ctx context.Context, req types.ImageRequest, outPath string) error {
	if u.d.Images == nil {
		return errors.New("image generator is not configured")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return errors.New("prompt is empty")
	}
	b, err := u.d.Images.Generate(ctx, req)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return writeFile(outPath, b)
}
