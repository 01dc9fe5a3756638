package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pubkit/pubkit/internal/pipeline"
)

type shortFlags struct {
	workRoot        string
	keepTemps       bool
	strictSubtitles bool
}

func newShortCmd(a *app) *cobra.Command {
	var f shortFlags
	cmd := &cobra.Command{
		Use:   "short <video_id> <input_video> <srt> <short_number> <start> <end> <title>",
		Short: "Render one vertical short with burned-in subtitles and a title",
		Args:  cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShort(cmd, a, f, args)
		},
	}
	cmd.PersistentFlags().StringVar(&f.workRoot, "work-root", a.cfg.WorkRoot, "Directory that holds shorts-<video_id>")
	cmd.PersistentFlags().BoolVar(&f.keepTemps, "keep-temps-on-failure", false, "Keep intermediates when a step fails")
	cmd.PersistentFlags().BoolVar(&f.strictSubtitles, "strict-subtitles", false, "Fail on malformed subtitle timing lines")

	cmd.AddCommand(&cobra.Command{
		Use:   "batch <plan.yaml>",
		Short: "Render every short listed in a YAML plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, a, f, args[0])
		},
	})
	return cmd
}

func (a *app) baseShortConfig(f shortFlags) pipeline.Config {
	return pipeline.Config{
		WorkRoot:           f.workRoot,
		KeepTempsOnFailure: f.keepTemps,
		StrictSubtitles:    f.strictSubtitles,
		Logf:               a.logf(),

		FFmpegPath:  a.cfg.FFmpegPath,
		FFprobePath: a.cfg.FFprobePath,
		TitleFont:   a.cfg.TitleFont,
	}
}

func runShort(cmd *cobra.Command, a *app, f shortFlags, args []string) error {
	n, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("short number %q must be an integer", args[3])
	}
	absIn, err := filepath.Abs(args[1])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), shortTimeout)
	defer cancel()

	cfg := a.baseShortConfig(f)
	cfg.VideoID = args[0]
	cfg.InputVideo = absIn
	cfg.Subtitles = args[2]
	cfg.Index = n
	cfg.Start = args[4]
	cfg.End = args[5]
	cfg.Title = args[6]

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	out, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runBatch(cmd *cobra.Command, a *app, f shortFlags, planPath string) error {
	plan, err := pipeline.LoadPlan(planPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), shortTimeout)
	defer cancel()

	outs, err := pipeline.RunPlan(ctx, plan, a.baseShortConfig(f))
	for _, o := range outs {
		fmt.Fprintln(cmd.OutOrStdout(), o)
	}
	return err
}
