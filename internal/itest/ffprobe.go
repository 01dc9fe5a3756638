//go:build integration

package itest

import (
	"context"
	"os"
	"time"

	"github.com/pubkit/pubkit/internal/ports/adapters/ffmpeg"
)

// probeDurationSeconds reads a file's duration through the same adapter the
// pipeline uses.
func probeDurationSeconds(mp4Path string) (float64, error) {
	ffprobe := os.Getenv("FFPROBE_PATH")
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	d, err := ffmpeg.New("ffmpeg", ffprobe).ProbeDuration(ctx, mp4Path)
	if err != nil {
		return 0, err
	}
	return d.Seconds(), nil
}
