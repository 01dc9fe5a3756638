package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pubkit/pubkit/internal/pipeline"
	"github.com/pubkit/pubkit/internal/ports/adapters/s3store"
	"github.com/pubkit/pubkit/internal/ports/adapters/transcript"
	"github.com/pubkit/pubkit/internal/usecase"
)

func newArchiveCmd(a *app) *cobra.Command {
	s3cfg := a.cfg.S3
	var workRoot string
	cmd := &cobra.Command{
		Use:   "archive <video_id>",
		Short: "Upload finished shorts to S3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]
			if err := pipeline.ValidateVideoID(videoID); err != nil {
				return err
			}
			if err := s3cfg.Validate(); err != nil {
				return err
			}
			ctx, cancel := apiContext(cmd)
			defer cancel()
			store, err := s3store.New(ctx, s3store.Config{
				Bucket:       s3cfg.Bucket,
				Region:       s3cfg.Region,
				Profile:      s3cfg.Profile,
				UsePathStyle: s3cfg.UsePathStyle,
				Endpoint:     s3cfg.Endpoint,
			})
			if err != nil {
				return fmt.Errorf("s3: %w", err)
			}
			keys, err := usecase.New(usecase.Deps{Store: store}).ArchiveShorts(ctx, usecase.ArchiveInput{
				VideoID: videoID,
				WorkDir: pipeline.WorkDir(workRoot, videoID),
				Prefix:  s3cfg.Prefix,
				Logf:    a.logf(),
			})
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s\n", s3cfg.Bucket, k)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&s3cfg.Bucket, "bucket", s3cfg.Bucket, "Target bucket")
	cmd.Flags().StringVar(&s3cfg.Prefix, "prefix", s3cfg.Prefix, "Key prefix")
	cmd.Flags().StringVar(&workRoot, "work-root", a.cfg.WorkRoot, "Directory that holds shorts-<video_id>")
	return cmd
}

func newTranscriptCmd(a *app) *cobra.Command {
	var (
		languages []string
		out       string
	)
	cmd := &cobra.Command{
		Use:   "transcript <video_id>",
		Short: "Fetch a video's captions as plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := apiContext(cmd)
			defer cancel()
			text, err := usecase.New(usecase.Deps{Transcripts: transcript.New()}).FetchTranscript(ctx, args[0], languages)
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if err := os.WriteFile(out, []byte(text+"\n"), 0o644); err != nil {
				return err
			}
			a.log.Info("transcript written", "path", out)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&languages, "languages", []string{"en"}, "Preferred caption languages, in order")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}
