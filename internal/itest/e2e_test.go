//go:build integration

package itest

import (
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/pubkit/pubkit/internal/pipeline"
)

const fixtureSRT = `1
00:00:02,000 --> 00:00:04,000
Here is the key idea.

2
00:00:05,000 --> 00:00:07,500
Step one: do this.

3
00:00:09,000 --> 00:00:11,000
Step two: measure results.
`

func writeFixture(t *testing.T, dir string) (video, srt string) {
	t.Helper()
	video = filepath.Join(dir, "input.mp4")
	ff := exec.Command("ffmpeg",
		"-y",
		"-f", "lavfi",
		"-i", "color=c=black:s=1280x720:d=12",
		"-f", "lavfi",
		"-i", "sine=frequency=440:duration=12",
		"-shortest",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		video,
	)
	if b, err := ff.CombinedOutput(); err != nil {
		t.Fatalf("ffmpeg fixture failed: %v\n%s", err, string(b))
	}
	srt = filepath.Join(dir, "input.srt")
	if err := os.WriteFile(srt, []byte(fixtureSRT), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}
	return video, srt
}

func TestE2E_Short(t *testing.T) {
	tmp := t.TempDir()
	video, srt := writeFixture(t, tmp)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg := pipeline.Config{
		VideoID:     "fixture",
		InputVideo:  video,
		Subtitles:   srt,
		Index:       1,
		Start:       "00:00:01",
		End:         "00:00:11",
		Title:       "An integration test short with a long enough title",
		WorkRoot:    tmp,
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		TitleFont:   os.Getenv("PUBKIT_TITLE_FONT"),
		Logf:        t.Logf,
	}
	out, err := pipeline.Run(ctx, cfg)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if out != filepath.Join(tmp, "shorts-fixture", "short1.mp4") {
		t.Fatalf("unexpected output %q", out)
	}

	// 10s window at 2x.
	sec, err := probeDurationSeconds(out)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(sec-5) > 0.5 {
		t.Fatalf("duration = %.2fs, want about 5s", sec)
	}

	entries, err := os.ReadDir(filepath.Dir(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("intermediates left behind: %v", names)
	}
}
