package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pubkit/pubkit/internal/domain/schedule"
	"github.com/pubkit/pubkit/internal/logging"
	"github.com/pubkit/pubkit/internal/ports/adapters/youtube"
	"github.com/pubkit/pubkit/internal/types"
	"github.com/pubkit/pubkit/internal/usecase"
)

func newYouTubeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "youtube",
		Short: "Upload, schedule and update YouTube videos",
	}
	cmd.AddCommand(
		newYouTubeUploadCmd(a),
		newYouTubeUpdateCmd(a),
		newYouTubeThumbnailCmd(a),
		newYouTubeScheduleCmd(a),
	)
	return cmd
}

func (a *app) youtube(ctx context.Context, scope, tokenFile string) (usecase.Usecase, error) {
	client, err := youtube.Client(ctx, youtube.AuthConfig{
		ClientSecrets: a.cfg.YouTube.ClientSecrets,
		TokenFile:     tokenFile,
		Scope:         scope,
		Prompt: func(authURL string) (string, error) {
			return a.prompt("Open this URL, approve access, then paste the code or the final URL:\n" + authURL)
		},
		Logf: a.logf(),
	})
	if err != nil {
		return usecase.Usecase{}, err
	}
	platform, err := youtube.New(ctx, client, youtube.WithLogf(logging.Debugf(a.log)))
	if err != nil {
		return usecase.Usecase{}, err
	}
	return usecase.New(usecase.Deps{Platform: platform}), nil
}

func newYouTubeUploadCmd(a *app) *cobra.Command {
	var v types.VideoUpload
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a video (private by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := usecase.RequireFile("video", v.Path); err != nil {
				return err
			}
			ctx, cancel := apiContext(cmd)
			defer cancel()
			uc, err := a.youtube(ctx, youtube.ScopeUpload, a.cfg.YouTube.UploadTokenFile)
			if err != nil {
				return err
			}
			url, err := uc.UploadVideo(ctx, v, a.logf())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
	cmd.Flags().StringVar(&v.Path, "file", "", "Video file to upload")
	cmd.Flags().StringVar(&v.Title, "title", "", "Video title")
	cmd.Flags().StringVar(&v.Description, "description", "", "Video description")
	cmd.Flags().StringVar(&v.CategoryID, "category", usecase.DefaultCategory, "Numeric video category")
	cmd.Flags().StringVar(&v.Privacy, "privacy", usecase.DefaultPrivacy, "private, unlisted or public")
	cmd.Flags().StringSliceVar(&v.Tags, "tags", nil, "Comma-separated tags")
	for _, f := range []string{"file", "title", "description"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newYouTubeUpdateCmd(a *app) *cobra.Command {
	var (
		videoID   string
		when      string
		playlists []string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Schedule a video and/or add it to playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.UpdateVideoInput{VideoID: videoID, Playlists: playlists, Logf: a.logf()}
			if when != "" {
				at, err := schedule.ParseStart(when)
				if err != nil {
					return err
				}
				in.PublishAt = &at
			}
			if in.PublishAt == nil && len(in.Playlists) == 0 {
				return errors.New("nothing to do: pass --schedule or --playlists")
			}
			ctx, cancel := apiContext(cmd)
			defer cancel()
			uc, err := a.youtube(ctx, youtube.ScopeManage, a.cfg.YouTube.TokenFile)
			if err != nil {
				return err
			}
			return uc.UpdateVideo(ctx, in)
		},
	}
	cmd.Flags().StringVar(&videoID, "video-id", "", "Video to update")
	cmd.Flags().StringVar(&when, "schedule", "", "Release time, e.g. 2025-12-25T10:00:00Z")
	cmd.Flags().StringArrayVar(&playlists, "playlists", nil, "Playlist name or ID (repeatable)")
	_ = cmd.MarkFlagRequired("video-id")
	return cmd
}

func newYouTubeThumbnailCmd(a *app) *cobra.Command {
	var videoID, thumb string
	cmd := &cobra.Command{
		Use:   "thumbnail",
		Short: "Replace a video's thumbnail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := usecase.RequireFile("thumbnail", thumb); err != nil {
				return err
			}
			ctx, cancel := apiContext(cmd)
			defer cancel()
			uc, err := a.youtube(ctx, youtube.ScopeManage, a.cfg.YouTube.TokenFile)
			if err != nil {
				return err
			}
			url, err := uc.SetThumbnail(ctx, videoID, thumb)
			if err != nil {
				return err
			}
			a.log.Info("thumbnail updated", "video", videoID, "url", url)
			return nil
		},
	}
	cmd.Flags().StringVar(&videoID, "video-id", "", "Video to update")
	cmd.Flags().StringVar(&thumb, "thumbnail", "", "Image file")
	_ = cmd.MarkFlagRequired("video-id")
	_ = cmd.MarkFlagRequired("thumbnail")
	return cmd
}

func newYouTubeScheduleCmd(a *app) *cobra.Command {
	var (
		in    usecase.ScheduleChannelInput
		start string
	)
	cmd := &cobra.Command{
		Use:   "schedule-channel",
		Short: "Space out release dates for uploads matching a query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if start != "" {
				at, err := schedule.ParseStart(start)
				if err != nil {
					return err
				}
				in.Start = &at
			}
			if in.IntervalDays < 1 {
				return fmt.Errorf("--interval must be >= 1, got %d", in.IntervalDays)
			}
			in.Logf = a.logf()
			ctx, cancel := apiContext(cmd)
			defer cancel()
			uc, err := a.youtube(ctx, youtube.ScopeManage, a.cfg.YouTube.TokenFile)
			if err != nil {
				return err
			}
			res, err := uc.ScheduleChannel(ctx, in)
			if res.Applied {
				a.log.Info("schedule applied", "videos", len(res.Slots), "failed", res.Failed)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&in.Query, "query", "", "Text to match in title or description")
	cmd.Flags().StringVar(&start, "start-date", "", "First release time, e.g. 2025-12-07T12:00:00")
	cmd.Flags().IntVar(&in.IntervalDays, "interval", 1, "Days between releases")
	cmd.Flags().StringArrayVar(&in.Playlists, "playlists", nil, "Playlist name or ID (repeatable)")
	cmd.Flags().BoolVar(&in.Confirm, "confirm", false, "Apply the schedule (default is a dry run)")
	cmd.Flags().BoolVar(&in.IncludePublic, "include-public", false, "Include already public videos")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}
