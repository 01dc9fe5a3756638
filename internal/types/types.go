package types

import "time"

// Cue is one subtitle entry. Index is 0 when the block carries no numeric
// index line.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Lines []string
}

// ClipJob describes one short cut from a source video.
type ClipJob struct {
	VideoID     string
	SourceVideo string
	Subtitles   string
	Index       int
	Start       time.Duration
	End         time.Duration
	Title       string
}

// ShortsPlan is the on-disk description of several clips cut from one source.
type ShortsPlan struct {
	VideoID   string      `yaml:"videoId"`
	Source    string      `yaml:"source"`
	Subtitles string      `yaml:"subtitles"`
	Shorts    []PlanShort `yaml:"shorts"`
}

type PlanShort struct {
	Index     int    `yaml:"index,omitempty"`
	StartTime string `yaml:"startTime"`
	EndTime   string `yaml:"endTime"`
	Title     string `yaml:"title"`
}

type ChannelVideo struct {
	ID          string
	Title       string
	Description string
	PublishedAt string
	Privacy     string
}

type VideoUpload struct {
	Path        string
	Title       string
	Description string
	CategoryID  string
	Privacy     string
	Tags        []string
}

type BlogPost struct {
	Title       string
	Markdown    string
	ImagePath   string
	Categories  []string
	Tags        []string
	PublishDate string
	Status      string
}

// PostRequest is what the blog adapter sends to the CMS after term
// resolution.
type PostRequest struct {
	Title         string
	HTML          string
	Status        string
	Date          string
	CategoryIDs   []int64
	TagIDs        []int64
	FeaturedMedia int64
}

type PublishedPost struct {
	ID   int64
	Link string
}

type ImageRequest struct {
	Prompt string
	Model  string
	Size   string
}
