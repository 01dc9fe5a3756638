// Package transcript fetches YouTube captions as plain text.
package transcript

import (
	"context"
	"fmt"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_formatters"
)

type fetcher interface {
	GetFormattedTranscripts(videoID string, languages []string, preserveFormatting bool) (string, error)
}

type Adapter struct {
	client fetcher
}

func New() *Adapter {
	formatter := yt_transcript_formatters.NewTextFormatter(
		yt_transcript_formatters.WithTimestamps(false),
		yt_transcript_formatters.WithLanguageCode(false),
	)
	return &Adapter{client: yt_transcript.NewClient(yt_transcript.WithFormatter(formatter))}
}

// Transcript returns the first available caption track among languages.
// The underlying client is not cancellable, so ctx is only checked up
// front.
func (a *Adapter) Transcript(ctx context.Context, videoID string, languages []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	text, err := a.client.GetFormattedTranscripts(videoID, languages, false)
	if err != nil {
		return "", fmt.Errorf("fetch transcript for %s: %w", videoID, err)
	}
	return text, nil
}
