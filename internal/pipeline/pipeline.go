package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pubkit/pubkit/internal/domain/subtitles"
	"github.com/pubkit/pubkit/internal/ports"
	"github.com/pubkit/pubkit/internal/ports/adapters/ffmpeg"
	"github.com/pubkit/pubkit/internal/types"
	"github.com/pubkit/pubkit/internal/usecase"
)

// Config is one short as given on the command line.
type Config struct {
	VideoID    string
	InputVideo string
	Subtitles  string
	Index      int
	Start      string
	End        string
	Title      string

	// WorkRoot is the directory that holds shorts-<video_id>. Defaults to ".".
	WorkRoot string

	KeepTempsOnFailure bool
	StrictSubtitles    bool
	Logf               func(format string, args ...any)

	FFmpegPath  string
	FFprobePath string
	TitleFont   string
}

// Job parses and validates the config into a clip job. No external tool is
// touched.
func (c Config) Job() (types.ClipJob, error) {
	if err := ValidateVideoID(c.VideoID); err != nil {
		return types.ClipJob{}, err
	}
	start, err := subtitles.ParseTimestamp(c.Start)
	if err != nil {
		return types.ClipJob{}, fmt.Errorf("start: %w", err)
	}
	end, err := subtitles.ParseTimestamp(c.End)
	if err != nil {
		return types.ClipJob{}, fmt.Errorf("end: %w", err)
	}
	job := types.ClipJob{
		VideoID:     c.VideoID,
		SourceVideo: c.InputVideo,
		Subtitles:   c.Subtitles,
		Index:       c.Index,
		Start:       start,
		End:         end,
		Title:       c.Title,
	}
	return job, usecase.ValidateJob(job)
}

func (c Config) Validate() error {
	_, err := c.Job()
	return err
}

// WorkDir is where shorts for videoID are assembled.
func WorkDir(root, videoID string) string {
	if root == "" {
		root = "."
	}
	return filepath.Join(root, "shorts-"+videoID)
}

// ValidateVideoID rejects IDs that would escape the work root.
func ValidateVideoID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return errors.New("video id is empty")
	case id == "." || id == "..", strings.ContainsAny(id, `/\`):
		return fmt.Errorf("video id %q must be a single path segment", id)
	}
	return nil
}

func Run(ctx context.Context, cfg Config) (string, error) {
	job, err := cfg.Job()
	if err != nil {
		return "", err
	}
	uc := newUsecase(cfg)
	res, err := uc.Short(ctx, shortInput(cfg, job))
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// LoadPlan reads a YAML shorts plan. Relative source and subtitle paths are
// resolved against the plan's directory.
func LoadPlan(path string) (types.ShortsPlan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.ShortsPlan{}, &types.MissingInputError{Kind: "shorts plan", Path: path, Err: err}
	}
	var plan types.ShortsPlan
	if err := yaml.Unmarshal(b, &plan); err != nil {
		return types.ShortsPlan{}, fmt.Errorf("parse plan %s: %w", path, err)
	}
	if len(plan.Shorts) == 0 {
		return types.ShortsPlan{}, fmt.Errorf("plan %s lists no shorts", path)
	}
	base := filepath.Dir(path)
	for _, p := range []*string{&plan.Source, &plan.Subtitles} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return plan, nil
}

// PlanConfigs expands a plan into one Config per short, copying the shared
// settings from base.
func PlanConfigs(plan types.ShortsPlan, base Config) []Config {
	out := make([]Config, 0, len(plan.Shorts))
	for i, s := range plan.Shorts {
		c := base
		c.VideoID = plan.VideoID
		c.InputVideo = plan.Source
		c.Subtitles = plan.Subtitles
		c.Index = s.Index
		if c.Index == 0 {
			c.Index = i + 1
		}
		c.Start = s.StartTime
		c.End = s.EndTime
		c.Title = s.Title
		out = append(out, c)
	}
	return out
}

// RunPlan validates every short up front, then renders them in order and
// stops at the first failure.
func RunPlan(ctx context.Context, plan types.ShortsPlan, base Config) ([]string, error) {
	cfgs := PlanConfigs(plan, base)
	jobs := make([]types.ClipJob, len(cfgs))
	seen := map[int]bool{}
	for i, c := range cfgs {
		job, err := c.Job()
		if err != nil {
			return nil, fmt.Errorf("short %d: %w", c.Index, err)
		}
		if seen[job.Index] {
			return nil, fmt.Errorf("short %d: duplicate short number", job.Index)
		}
		seen[job.Index] = true
		jobs[i] = job
	}

	uc := newUsecase(base)
	var outputs []string
	for i, job := range jobs {
		res, err := uc.Short(ctx, shortInput(cfgs[i], job))
		if err != nil {
			return outputs, fmt.Errorf("short %d: %w", job.Index, err)
		}
		outputs = append(outputs, res.Output)
	}
	return outputs, nil
}

func newUsecase(cfg Config) usecase.Usecase {
	var opts []ffmpeg.Option
	if cfg.TitleFont != "" {
		opts = append(opts, ffmpeg.WithFontFile(cfg.TitleFont))
	}
	if cfg.Logf != nil {
		opts = append(opts, ffmpeg.WithLogf(cfg.Logf))
	}
	media := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, opts...)
	return usecase.New(usecase.Deps{Media: media})
}

func shortInput(cfg Config, job types.ClipJob) usecase.ShortInput {
	mode := subtitles.Lenient
	if cfg.StrictSubtitles {
		mode = subtitles.Strict
	}
	return usecase.ShortInput{
		Job:                job,
		WorkDir:            WorkDir(cfg.WorkRoot, job.VideoID),
		SubtitleMode:       mode,
		KeepTempsOnFailure: cfg.KeepTempsOnFailure,
		Logf:               cfg.Logf,
	}
}

// ensure adapters implement ports
var _ ports.MediaTool = (*ffmpeg.Adapter)(nil)
