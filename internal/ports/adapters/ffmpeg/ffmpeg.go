package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"github.com/pubkit/pubkit/internal/types"
)

// Runner executes a binary and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

type Adapter struct {
	ffmpeg   string
	ffprobe  string
	fontFile string
	run      Runner
	logf     func(format string, args ...any)
}

type Option func(*Adapter)

// WithFontFile sets the TrueType file used for the title overlay. Without it
// drawtext resolves "Arial" through fontconfig.
func WithFontFile(path string) Option {
	return func(a *Adapter) { a.fontFile = path }
}

func WithRunner(r Runner) Option {
	return func(a *Adapter) { a.run = r }
}

func WithLogf(logf func(format string, args ...any)) Option {
	return func(a *Adapter) { a.logf = logf }
}

func New(ffmpegPath, ffprobePath string, opts ...Option) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	a := &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath, run: execRunner, logf: func(string, ...any) {}}
	for _, o := range opts {
		o(a)
	}
	return a
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (a *Adapter) ConvertSubtitles(ctx context.Context, inSRT, outASS string) error {
	args := ffmpeggo.Input(inSRT).Output(outASS).OverWriteOutput().GetArgs()
	return a.ffmpegStep(ctx, "convert subtitles", args)
}

func (a *Adapter) Trim(ctx context.Context, inVideo string, start, end time.Duration, out string) error {
	args := ffmpeggo.
		Input(inVideo, ffmpeggo.KwArgs{"ss": fmtTimestamp(start), "to": fmtTimestamp(end)}).
		Output(out, ffmpeggo.KwArgs{"c:v": "libx264", "c:a": "aac", "b:a": "128k"}).
		OverWriteOutput().
		GetArgs()
	return a.ffmpegStep(ctx, "trim", args)
}

func (a *Adapter) PadPortrait(ctx context.Context, in, out string) error {
	args := []string{
		"-y",
		"-i", in,
		"-filter_complex", "[0:v]scale=1080:-2,pad=1080:1920:-1:(1920-ih)/2:color=black[v]",
		"-map", "[v]",
		"-map", "0:a",
		out,
	}
	return a.ffmpegStep(ctx, "pad", args)
}

func (a *Adapter) BurnSubtitles(ctx context.Context, in, ass, out string) error {
	args := []string{
		"-y",
		"-i", in,
		"-vf", "subtitles=filename=" + escapeFilterPath(ass),
		"-c:a", "copy",
		out,
	}
	return a.ffmpegStep(ctx, "burn subtitles", args)
}

func (a *Adapter) SpeedUp(ctx context.Context, in string, factor float64, out string) error {
	if factor <= 0 {
		return fmt.Errorf("ffmpeg speed up: factor must be > 0, got %v", factor)
	}
	f := strconv.FormatFloat(factor, 'f', 1, 64)
	args := []string{
		"-y",
		"-i", in,
		"-filter_complex", fmt.Sprintf("[0:v]setpts=PTS/%s[v];[0:a]atempo=%s[a]", f, f),
		"-map", "[v]",
		"-map", "[a]",
		out,
	}
	return a.ffmpegStep(ctx, "speed up", args)
}

func (a *Adapter) DrawTitle(ctx context.Context, in, titleFile, out string) error {
	font := "font=Arial"
	if a.fontFile != "" {
		font = "fontfile=" + escapeFilterPath(a.fontFile)
	}
	filter := fmt.Sprintf("drawtext=textfile=%s:%s:fontsize=70:fontcolor=yellow:x=(w-text_w)/2:y=100",
		escapeFilterPath(titleFile), font)
	args := []string{
		"-y",
		"-i", in,
		"-filter_complex", filter,
		"-c:a", "copy",
		out,
	}
	return a.ffmpegStep(ctx, "draw title", args)
}

func (a *Adapter) ProbeDuration(ctx context.Context, in string) (time.Duration, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		in,
	}
	a.logf("exec %s %s", a.ffprobe, strings.Join(args, " "))
	b, err := a.run(ctx, a.ffprobe, args...)
	if err != nil {
		return 0, &types.ToolError{Tool: "ffprobe", Step: "duration", Args: args, Output: string(b), Err: err}
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func (a *Adapter) ffmpegStep(ctx context.Context, step string, args []string) error {
	a.logf("exec %s %s", a.ffmpeg, strings.Join(args, " "))
	b, err := a.run(ctx, a.ffmpeg, args...)
	if err != nil {
		return &types.ToolError{Tool: "ffmpeg", Step: step, Args: args, Output: string(b), Err: err}
	}
	return nil
}

// fmtTimestamp renders d the way ffmpeg's -ss/-to expect (HH:MM:SS.mmm).
func fmtTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3_600_000, ms/60_000%60, ms/1000%60, ms%1000)
}

var (
	// Unescaped by the filter's option parser.
	optionEscaper = strings.NewReplacer(`\`, `\\`, `:`, `\:`, `'`, `\'`)
	// Unescaped first, by the filtergraph parser.
	graphEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `[`, `\[`, `]`, `\]`, `,`, `\,`, `;`, `\;`)
)

// escapeFilterPath escapes p for use as an option value inside a
// -vf/-filter_complex graph, which ffmpeg unescapes twice.
func escapeFilterPath(p string) string {
	return graphEscaper.Replace(optionEscaper.Replace(p))
}
