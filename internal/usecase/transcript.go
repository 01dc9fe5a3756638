package usecase

import (
	"context"
	"errors"
	"strings"
)

// FetchTranscript returns a video's captions as one line of plain text.
func (u Usecase) FetchTranscript(ctx context.Context, videoID string, languages []string) (string, error) {
	if u.d.Transcripts == nil {
		return "", errors.New("transcript source is not configured")
	}
	text, err := u.d.Transcripts.Transcript(ctx, videoID, languages)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(text), " "), nil
}
