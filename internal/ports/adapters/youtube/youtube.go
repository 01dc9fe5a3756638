// Package youtube implements ports.VideoPlatform on the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/pubkit/pubkit/internal/domain/schedule"
	"github.com/pubkit/pubkit/internal/types"
)

const pageSize = 50

type Adapter struct {
	svc  *yt.Service
	logf func(string, ...any)
}

type Option func(*settings)

type settings struct {
	endpoint string
	logf     func(string, ...any)
}

// WithEndpoint points the client at another base URL, e.g. a test server.
func WithEndpoint(u string) Option { return func(s *settings) { s.endpoint = u } }

func WithLogf(logf func(string, ...any)) Option { return func(s *settings) { s.logf = logf } }

func New(ctx context.Context, client *http.Client, opts ...Option) (*Adapter, error) {
	s := settings{logf: func(string, ...any) {}}
	for _, o := range opts {
		o(&s)
	}
	clientOpts := []option.ClientOption{option.WithHTTPClient(client)}
	if s.endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(s.endpoint))
	}
	svc, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &Adapter{svc: svc, logf: s.logf}, nil
}

func (a *Adapter) Upload(ctx context.Context, v types.VideoUpload) (string, error) {
	f, err := os.Open(v.Path)
	if err != nil {
		return "", &types.MissingInputError{Kind: "video", Path: v.Path, Err: err}
	}
	defer f.Close()

	video := &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:       v.Title,
			Description: v.Description,
			Tags:        v.Tags,
			CategoryId:  v.CategoryID,
		},
		Status: &yt.VideoStatus{PrivacyStatus: v.Privacy},
	}
	call := a.svc.Videos.Insert([]string{"snippet", "status"}, video).
		Media(f).
		ProgressUpdater(func(current, total int64) {
			if total > 0 {
				a.logf("uploaded %d%%", current*100/total)
			}
		}).
		Context(ctx)
	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("upload video: %w", err)
	}
	return resp.Id, nil
}

// Schedule makes the video private with a release time. publishAt is only
// honoured for private videos, so both fields go in one update.
func (a *Adapter) Schedule(ctx context.Context, videoID string, at time.Time) (string, error) {
	video := &yt.Video{
		Id: videoID,
		Status: &yt.VideoStatus{
			PrivacyStatus:           "private",
			PublishAt:               schedule.FormatPublishAt(at),
			SelfDeclaredMadeForKids: false,
			ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
		},
	}
	resp, err := a.svc.Videos.Update([]string{"status"}, video).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("schedule %s: %w", videoID, err)
	}
	if resp.Status == nil {
		return "", nil
	}
	return resp.Status.PublishAt, nil
}

var errStop = errors.New("stop paging")

func (a *Adapter) FindPlaylist(ctx context.Context, name string) (string, bool, error) {
	var id string
	err := a.svc.Playlists.List([]string{"snippet"}).Mine(true).MaxResults(pageSize).
		Pages(ctx, func(resp *yt.PlaylistListResponse) error {
			for _, p := range resp.Items {
				if p.Snippet != nil && strings.EqualFold(p.Snippet.Title, name) {
					id = p.Id
					return errStop
				}
			}
			return nil
		})
	if err != nil && !errors.Is(err, errStop) {
		return "", false, fmt.Errorf("list playlists: %w", err)
	}
	return id, id != "", nil
}

// AddToPlaylist reports false without error when the video is already in
// the playlist.
func (a *Adapter) AddToPlaylist(ctx context.Context, videoID, playlistID string) (bool, error) {
	item := &yt.PlaylistItem{
		Snippet: &yt.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &yt.ResourceId{Kind: "youtube#video", VideoId: videoID},
		},
	}
	_, err := a.svc.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do()
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusConflict {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("add %s to playlist %s: %w", videoID, playlistID, err)
	}
	return true, nil
}

func (a *Adapter) SetThumbnail(ctx context.Context, videoID, imagePath string) (string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return "", &types.MissingInputError{Kind: "thumbnail", Path: imagePath, Err: err}
	}
	defer f.Close()

	resp, err := a.svc.Thumbnails.Set(videoID).Media(f).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("set thumbnail for %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Default == nil {
		return "", nil
	}
	return resp.Items[0].Default.Url, nil
}

// ListUploads returns every video in the channel's uploads playlist.
func (a *Adapter) ListUploads(ctx context.Context) ([]types.ChannelVideo, error) {
	ch, err := a.svc.Channels.List([]string{"contentDetails"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get channel: %w", err)
	}
	if len(ch.Items) == 0 || ch.Items[0].ContentDetails == nil || ch.Items[0].ContentDetails.RelatedPlaylists == nil {
		return nil, errors.New("no channel found for the authorized account")
	}
	uploads := ch.Items[0].ContentDetails.RelatedPlaylists.Uploads

	var out []types.ChannelVideo
	err = a.svc.PlaylistItems.List([]string{"snippet", "status"}).PlaylistId(uploads).MaxResults(pageSize).
		Pages(ctx, func(resp *yt.PlaylistItemListResponse) error {
			for _, it := range resp.Items {
				if it.Snippet == nil || it.Snippet.ResourceId == nil {
					continue
				}
				v := types.ChannelVideo{
					ID:          it.Snippet.ResourceId.VideoId,
					Title:       it.Snippet.Title,
					Description: it.Snippet.Description,
					PublishedAt: it.Snippet.PublishedAt,
				}
				if it.Status != nil {
					v.Privacy = it.Status.PrivacyStatus
				}
				out = append(out, v)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return out, nil
}
