// Package schedule plans release dates for a batch of channel uploads.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/pubkit/pubkit/internal/types"
)

// PublishAtLayout is the RFC 3339 shape the YouTube API accepts for
// status.publishAt.
const PublishAtLayout = "2006-01-02T15:04:05.000Z"

type Slot struct {
	Video types.ChannelVideo
	At    time.Time
}

// Match keeps videos whose title or description contains query,
// ignoring case.
func Match(videos []types.ChannelVideo, query string) []types.ChannelVideo {
	q := strings.ToLower(query)
	var out []types.ChannelVideo
	for _, v := range videos {
		if strings.Contains(strings.ToLower(v.Title), q) || strings.Contains(strings.ToLower(v.Description), q) {
			out = append(out, v)
		}
	}
	return out
}

// Select applies the listing rules: drop public videos unless asked, then
// order oldest upload first.
func Select(videos []types.ChannelVideo, includePublic bool) []types.ChannelVideo {
	out := make([]types.ChannelVideo, 0, len(videos))
	for _, v := range videos {
		if v.Privacy == "public" && !includePublic {
			continue
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt < out[j].PublishedAt })
	return out
}

// Plan spaces videos intervalDays apart starting at start.
func Plan(videos []types.ChannelVideo, start time.Time, intervalDays int) ([]Slot, error) {
	if intervalDays < 1 {
		return nil, fmt.Errorf("interval must be >= 1 day, got %d", intervalDays)
	}
	out := make([]Slot, len(videos))
	for i, v := range videos {
		out[i] = Slot{Video: v, At: start.AddDate(0, 0, i*intervalDays)}
	}
	return out, nil
}

// ParseStart accepts the loose date formats people type on the command
// line. Times without a zone are taken as UTC.
func ParseStart(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func FormatPublishAt(t time.Time) string {
	return t.UTC().Format(PublishAtLayout)
}

// FormatPostDate renders t as the naive wall-clock time the WordPress REST
// API expects in a post's date field.
func FormatPostDate(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
