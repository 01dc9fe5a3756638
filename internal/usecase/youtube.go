package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pubkit/pubkit/internal/domain/schedule"
	"github.com/pubkit/pubkit/internal/types"
)

const (
	DefaultCategory = "28"
	DefaultPrivacy  = "private"
)

func (u Usecase) platform() error {
	if u.d.Platform == nil {
		return errors.New("video platform is not configured")
	}
	return nil
}

// UploadVideo uploads a local file and returns the watch URL.
func (u Usecase) UploadVideo(ctx context.Context, v types.VideoUpload, logf func(string, ...any)) (string, error) {
	if err := u.platform(); err != nil {
		return "", err
	}
	if err := RequireFile("video", v.Path); err != nil {
		return "", err
	}
	if v.CategoryID == "" {
		v.CategoryID = DefaultCategory
	}
	if v.Privacy == "" {
		v.Privacy = DefaultPrivacy
	}
	logger(logf)("uploading %s (%s, category %s)", v.Path, v.Privacy, v.CategoryID)
	id, err := u.d.Platform.Upload(ctx, v)
	if err != nil {
		return "", err
	}
	return "https://www.youtube.com/watch?v=" + id, nil
}

func (u Usecase) SetThumbnail(ctx context.Context, videoID, imagePath string) (string, error) {
	if err := u.platform(); err != nil {
		return "", err
	}
	if err := RequireFile("thumbnail", imagePath); err != nil {
		return "", err
	}
	return u.d.Platform.SetThumbnail(ctx, videoID, imagePath)
}

// ResolvePlaylists maps playlist names to IDs. A ref that names no playlist
// is assumed to already be an ID.
func (u Usecase) ResolvePlaylists(ctx context.Context, refs []string, logf func(string, ...any)) ([]string, error) {
	logf = logger(logf)
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, ok, err := u.d.Platform.FindPlaylist(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			logf("no playlist named %q, assuming it is an ID", ref)
			id = ref
		}
		out = append(out, id)
	}
	return out, nil
}

type UpdateVideoInput struct {
	VideoID   string
	PublishAt *time.Time
	Playlists []string
	Logf      func(string, ...any)
}

// UpdateVideo schedules a video and/or adds it to playlists. A failed
// playlist insert does not stop the others.
func (u Usecase) UpdateVideo(ctx context.Context, in UpdateVideoInput) error {
	if err := u.platform(); err != nil {
		return err
	}
	if in.PublishAt == nil && len(in.Playlists) == 0 {
		return errors.New("nothing to do: pass --schedule or --playlists")
	}
	logf := logger(in.Logf)
	if in.PublishAt != nil {
		at, err := u.d.Platform.Schedule(ctx, in.VideoID, *in.PublishAt)
		if err != nil {
			return err
		}
		logf("scheduled %s for %s", in.VideoID, at)
	}
	if len(in.Playlists) == 0 {
		return nil
	}
	ids, err := u.ResolvePlaylists(ctx, in.Playlists, logf)
	if err != nil {
		return err
	}
	return u.addToPlaylists(ctx, in.VideoID, ids, logf)
}

func (u Usecase) addToPlaylists(ctx context.Context, videoID string, playlistIDs []string, logf func(string, ...any)) error {
	var errs []error
	for _, pid := range playlistIDs {
		added, err := u.d.Platform.AddToPlaylist(ctx, videoID, pid)
		switch {
		case err != nil:
			logf("warning: %v", err)
			errs = append(errs, err)
		case added:
			logf("added %s to playlist %s", videoID, pid)
		default:
			logf("%s is already in playlist %s", videoID, pid)
		}
	}
	return errors.Join(errs...)
}

type ScheduleChannelInput struct {
	Query         string
	Start         *time.Time
	IntervalDays  int
	Playlists     []string
	Confirm       bool
	IncludePublic bool
	Logf          func(string, ...any)
}

type ScheduleChannelResult struct {
	Videos  []types.ChannelVideo
	Slots   []schedule.Slot
	Applied bool
	Failed  int
}

// ScheduleChannel finds uploads matching Query and spaces their release
// dates IntervalDays apart from Start. Without Start it only lists. Without
// Confirm it only plans. Per-video failures are logged and counted and the
// run continues.
func (u Usecase) ScheduleChannel(ctx context.Context, in ScheduleChannelInput) (ScheduleChannelResult, error) {
	var res ScheduleChannelResult
	if err := u.platform(); err != nil {
		return res, err
	}
	logf := logger(in.Logf)

	all, err := u.d.Platform.ListUploads(ctx)
	if err != nil {
		return res, err
	}
	res.Videos = schedule.Select(schedule.Match(all, in.Query), in.IncludePublic)
	if len(res.Videos) == 0 {
		logf("no videos match %q", in.Query)
		return res, nil
	}
	for _, v := range res.Videos {
		logf("[%s] %s - %s (%s)", v.Privacy, v.PublishedAt, v.Title, v.ID)
	}
	if in.Start == nil {
		logf("pass --start-date and --confirm to schedule these videos")
		return res, nil
	}

	res.Slots, err = schedule.Plan(res.Videos, *in.Start, in.IntervalDays)
	if err != nil {
		return res, err
	}
	for _, s := range res.Slots {
		logf("%s -> %s", s.Video.ID, schedule.FormatPublishAt(s.At))
	}
	if !in.Confirm {
		logf("dry run complete, pass --confirm to apply")
		return res, nil
	}

	playlistIDs, err := u.ResolvePlaylists(ctx, in.Playlists, logf)
	if err != nil {
		return res, err
	}
	res.Applied = true
	for _, s := range res.Slots {
		failed := false
		if _, err := u.d.Platform.Schedule(ctx, s.Video.ID, s.At); err != nil {
			logf("warning: %v", err)
			failed = true
		} else {
			logf("scheduled %s for %s", s.Video.ID, schedule.FormatPublishAt(s.At))
		}
		if err := u.addToPlaylists(ctx, s.Video.ID, playlistIDs, logf); err != nil {
			failed = true
		}
		if failed {
			res.Failed++
		}
	}
	if res.Failed > 0 {
		return res, fmt.Errorf("%d of %d videos had errors", res.Failed, len(res.Slots))
	}
	return res, nil
}
