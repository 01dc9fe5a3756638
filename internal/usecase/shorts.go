package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pubkit/pubkit/internal/domain/subtitles"
	"github.com/pubkit/pubkit/internal/domain/titlecard"
	"github.com/pubkit/pubkit/internal/types"
)

const speedFactor = 2.0

type ShortInput struct {
	Job     types.ClipJob
	WorkDir string

	SubtitleMode       subtitles.Mode
	KeepTempsOnFailure bool
	Logf               func(format string, args ...any)
}

type ShortResult struct {
	Output string
	Cues   int
}

// shortFiles names every artifact of one clip inside the work directory.
type shortFiles struct {
	title     string
	srt       string
	ass       string
	cut       string
	padded    string
	subtitled string
	spedup    string
	final     string

	output string
}

func newShortFiles(dir string, n int) shortFiles {
	p := func(format string) string { return filepath.Join(dir, fmt.Sprintf(format, n)) }
	return shortFiles{
		title:     p("temp_title_%d.txt"),
		srt:       p("short%d_temp_sub.srt"),
		ass:       p("short%d_temp_sub.ass"),
		cut:       p("short%d_temp_cut.mp4"),
		padded:    p("short%d_temp_padded.mp4"),
		subtitled: p("short%d_temp_subtitled.mp4"),
		spedup:    p("short%d_temp_spedup.mp4"),
		final:     p("short%d_temp_final.mp4"),
		output:    p("short%d.mp4"),
	}
}

func (f shortFiles) temps() []string {
	return []string{f.title, f.srt, f.ass, f.cut, f.padded, f.subtitled, f.spedup, f.final}
}

// ValidateJob checks everything that can be checked before an external tool
// runs.
func ValidateJob(job types.ClipJob) error {
	if err := RequireFile("source video", job.SourceVideo); err != nil {
		return err
	}
	if err := RequireFile("subtitle file", job.Subtitles); err != nil {
		return err
	}
	if job.Index < 1 {
		return fmt.Errorf("short number must be >= 1, got %d", job.Index)
	}
	if job.Start < 0 {
		return fmt.Errorf("start must be >= 0, got %s", subtitles.FormatTimestamp(job.Start))
	}
	if job.End <= job.Start {
		return fmt.Errorf("end %s must be after start %s",
			subtitles.FormatTimestamp(job.End), subtitles.FormatTimestamp(job.Start))
	}
	return nil
}

// Short renders one vertical clip to <WorkDir>/short<n>.mp4. Intermediates
// are removed on every exit path unless KeepTempsOnFailure is set and the
// run failed. The final file only appears once every step has succeeded.
func (u Usecase) Short(ctx context.Context, in ShortInput) (res ShortResult, err error) {
	logf := logger(in.Logf)
	if u.d.Media == nil {
		return ShortResult{}, errors.New("short: media tool is not configured")
	}
	job := in.Job
	if err := ValidateJob(job); err != nil {
		return ShortResult{}, err
	}
	if err := os.MkdirAll(in.WorkDir, 0o755); err != nil {
		return ShortResult{}, fmt.Errorf("create work dir: %w", err)
	}

	files := newShortFiles(in.WorkDir, job.Index)
	defer func() {
		if err != nil && in.KeepTempsOnFailure {
			logf("short %d failed, intermediates kept in %s", job.Index, in.WorkDir)
			return
		}
		removeFiles(files.temps(), logf)
	}()

	srcDur, err := u.d.Media.ProbeDuration(ctx, job.SourceVideo)
	if err != nil {
		return ShortResult{}, err
	}
	if srcDur > 0 && job.Start >= srcDur {
		return ShortResult{}, fmt.Errorf("clip start %s is beyond source duration %s",
			subtitles.FormatTimestamp(job.Start), subtitles.FormatTimestamp(srcDur))
	}

	logf("[1/8] title")
	if err := writeFile(files.title, []byte(titlecard.Render(job.Title))); err != nil {
		return ShortResult{}, fmt.Errorf("write title: %w", err)
	}

	logf("[2/8] shift subtitles by %s (%s)", subtitles.FormatTimestamp(job.Start), in.SubtitleMode)
	st, err := subtitles.AdjustFile(job.Subtitles, job.Start, files.srt, in.SubtitleMode)
	if err != nil {
		return ShortResult{}, fmt.Errorf("adjust subtitles: %w", err)
	}
	if st.Skipped > 0 {
		logf("skipped %d unparseable timing lines", st.Skipped)
	}
	shifted, err := os.ReadFile(files.srt)
	if err != nil {
		return ShortResult{}, fmt.Errorf("read shifted subtitles: %w", err)
	}
	visible := subtitles.Overlapping(subtitles.ParseCues(string(shifted)), 0, job.End-job.Start)
	if len(visible) == 0 {
		logf("warning: no subtitle cue falls inside the clip window")
	}

	logf("[3/8] convert subtitles to ASS")
	if err := u.d.Media.ConvertSubtitles(ctx, files.srt, files.ass); err != nil {
		return ShortResult{}, err
	}
	if err := restyleFile(files.ass); err != nil {
		return ShortResult{}, err
	}

	logf("[4/8] trim %s-%s", subtitles.FormatTimestamp(job.Start), subtitles.FormatTimestamp(job.End))
	if err := u.d.Media.Trim(ctx, job.SourceVideo, job.Start, job.End, files.cut); err != nil {
		return ShortResult{}, err
	}
	logf("[5/8] pad to 1080x1920")
	if err := u.d.Media.PadPortrait(ctx, files.cut, files.padded); err != nil {
		return ShortResult{}, err
	}
	logf("[6/8] burn subtitles")
	if err := u.d.Media.BurnSubtitles(ctx, files.padded, files.ass, files.subtitled); err != nil {
		return ShortResult{}, err
	}
	logf("[7/8] speed up %.1fx", speedFactor)
	if err := u.d.Media.SpeedUp(ctx, files.subtitled, speedFactor, files.spedup); err != nil {
		return ShortResult{}, err
	}
	logf("[8/8] draw title")
	if err := u.d.Media.DrawTitle(ctx, files.spedup, files.title, files.final); err != nil {
		return ShortResult{}, err
	}
	if err := os.Rename(files.final, files.output); err != nil {
		return ShortResult{}, fmt.Errorf("publish %s: %w", files.output, err)
	}
	logf("short written: %s", files.output)
	return ShortResult{Output: files.output, Cues: len(visible)}, nil
}

func restyleFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ass: %w", err)
	}
	out, err := subtitles.Restyle(string(b), subtitles.PortraitCanvas, subtitles.ShortStyle())
	if err != nil {
		return err
	}
	return writeFile(path, []byte(out))
}

func removeFiles(paths []string, logf func(string, ...any)) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logf("cleanup %s: %v", p, err)
		}
	}
}
