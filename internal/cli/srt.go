package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pubkit/pubkit/internal/domain/subtitles"
	"github.com/pubkit/pubkit/internal/usecase"
)

func newSrtCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "srt",
		Short: "SubRip subtitle tools",
	}

	var strict bool
	adjust := &cobra.Command{
		Use:   "adjust <in.srt> <offset> <out.srt>",
		Short: "Shift every cue earlier by offset (H:M:S[,mmm]), clamping at zero",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			off, err := subtitles.ParseTimestamp(args[1])
			if err != nil {
				return fmt.Errorf("offset: %w", err)
			}
			mode := subtitles.Lenient
			if strict {
				mode = subtitles.Strict
			}
			st, err := subtitles.AdjustFile(args[0], off, args[2], mode)
			if err != nil {
				return err
			}
			a.log.Info("subtitles adjusted", "out", args[2], "cues", st.Adjusted, "skipped", st.Skipped)
			return nil
		},
	}
	adjust.Flags().BoolVar(&strict, "strict", false, "Fail on the first malformed timing line")

	text := &cobra.Command{
		Use:   "text <in.srt> <out.txt>",
		Short: "Extract the spoken text as one paragraph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := usecase.RequireFile("subtitle file", args[0]); err != nil {
				return err
			}
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], []byte(subtitles.ToText(string(b))), 0o644); err != nil {
				return err
			}
			a.log.Info("text written", "out", args[1])
			return nil
		},
	}

	cmd.AddCommand(adjust, text)
	return cmd
}
