package ports

import (
	"context"
	"io"
	"time"

	"github.com/pubkit/pubkit/internal/types"
)

// MediaTool runs the encoder steps of the shorts pipeline. Every method
// writes exactly one output file and fails with *types.ToolError on a
// non-zero exit.
type MediaTool interface {
	ConvertSubtitles(ctx context.Context, inSRT, outASS string) error
	Trim(ctx context.Context, inVideo string, start, end time.Duration, out string) error
	PadPortrait(ctx context.Context, in, out string) error
	BurnSubtitles(ctx context.Context, in, ass, out string) error
	SpeedUp(ctx context.Context, in string, factor float64, out string) error
	DrawTitle(ctx context.Context, in, titleFile, out string) error
	ProbeDuration(ctx context.Context, in string) (time.Duration, error)
}

type VideoPlatform interface {
	Upload(ctx context.Context, v types.VideoUpload) (string, error)
	Schedule(ctx context.Context, videoID string, at time.Time) (string, error)
	FindPlaylist(ctx context.Context, name string) (string, bool, error)
	AddToPlaylist(ctx context.Context, videoID, playlistID string) (bool, error)
	SetThumbnail(ctx context.Context, videoID, imagePath string) (string, error)
	ListUploads(ctx context.Context) ([]types.ChannelVideo, error)
}

type Blog interface {
	UploadMedia(ctx context.Context, path string) (int64, error)
	FindTerm(ctx context.Context, taxonomy, name string) (int64, bool, error)
	CreateTag(ctx context.Context, name string) (int64, error)
	CreatePost(ctx context.Context, p types.PostRequest) (types.PublishedPost, error)
}

// SocialPoster publishes a text post with an optional image.
type SocialPoster interface {
	Post(ctx context.Context, text, imagePath string) (string, error)
}

// Authorizer obtains a fresh access token, typically through a browser
// consent flow.
type Authorizer interface {
	Authorize(ctx context.Context) (string, error)
}

type ImageGenerator interface {
	Generate(ctx context.Context, req types.ImageRequest) ([]byte, error)
}

type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
}

type Transcripts interface {
	Transcript(ctx context.Context, videoID string, languages []string) (string, error)
}
