package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pubkit/pubkit/internal/types"
)

type scheduled struct {
	id string
	at time.Time
}

type fakePlatform struct {
	uploads   []types.ChannelVideo
	playlists map[string]string // lower-case name -> id
	present   map[string]bool   // videoID/playlistID already linked
	failOn    map[string]bool   // video IDs whose schedule fails

	uploaded  []types.VideoUpload
	scheduled []scheduled
	added     []string
}

func (f *fakePlatform) Upload(_ context.Context, v types.VideoUpload) (string, error) {
	f.uploaded = append(f.uploaded, v)
	return "new123", nil
}

func (f *fakePlatform) Schedule(_ context.Context, id string, at time.Time) (string, error) {
	if f.failOn[id] {
		return "", errors.New("quota exceeded")
	}
	f.scheduled = append(f.scheduled, scheduled{id: id, at: at})
	return at.UTC().Format(time.RFC3339), nil
}

func (f *fakePlatform) FindPlaylist(_ context.Context, name string) (string, bool, error) {
	id, ok := f.playlists[strings.ToLower(name)]
	return id, ok, nil
}

func (f *fakePlatform) AddToPlaylist(_ context.Context, videoID, playlistID string) (bool, error) {
	key := videoID + "/" + playlistID
	if f.present[key] {
		return false, nil
	}
	f.added = append(f.added, key)
	return true, nil
}

func (f *fakePlatform) SetThumbnail(_ context.Context, videoID, _ string) (string, error) {
	return "https://i.ytimg.com/vi/" + videoID + "/default.jpg", nil
}

func (f *fakePlatform) ListUploads(context.Context) ([]types.ChannelVideo, error) {
	return f.uploads, nil
}

func channelFixture() *fakePlatform {
	return &fakePlatform{
		uploads: []types.ChannelVideo{
			{ID: "v2", Title: "Short 2 | abc", PublishedAt: "2025-01-02T00:00:00Z", Privacy: "private"},
			{ID: "v1", Title: "Short 1 | ABC", PublishedAt: "2025-01-01T00:00:00Z", Privacy: "unlisted"},
			{ID: "v3", Title: "Short 3 | abc", PublishedAt: "2025-01-03T00:00:00Z", Privacy: "public"},
			{ID: "zz", Title: "Other", PublishedAt: "2025-01-01T00:00:00Z", Privacy: "private"},
		},
		playlists: map[string]string{"shorts": "PLshorts"},
		present:   map[string]bool{},
		failOn:    map[string]bool{},
	}
}

func TestScheduleChannel_ListOnlyAndDryRun(t *testing.T) {
	t.Parallel()

	p := channelFixture()
	uc := New(Deps{Platform: p})

	res, err := uc.ScheduleChannel(context.Background(), ScheduleChannelInput{Query: "abc", IntervalDays: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Videos) != 2 || res.Videos[0].ID != "v1" || res.Slots != nil {
		t.Fatalf("unexpected listing %+v", res)
	}

	start := time.Date(2025, 12, 7, 12, 0, 0, 0, time.UTC)
	res, err = uc.ScheduleChannel(context.Background(), ScheduleChannelInput{Query: "abc", Start: &start, IntervalDays: 3})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if res.Applied || len(res.Slots) != 2 || !res.Slots[1].At.Equal(start.AddDate(0, 0, 3)) {
		t.Fatalf("unexpected plan %+v", res)
	}
	if len(p.scheduled) != 0 {
		t.Fatalf("dry run touched the platform: %+v", p.scheduled)
	}
}

func TestScheduleChannel_Confirm(t *testing.T) {
	t.Parallel()

	p := channelFixture()
	p.present["v2/PLshorts"] = true
	start := time.Date(2025, 12, 7, 12, 0, 0, 0, time.UTC)

	res, err := New(Deps{Platform: p}).ScheduleChannel(context.Background(), ScheduleChannelInput{
		Query:         "ABC",
		Start:         &start,
		IntervalDays:  1,
		Playlists:     []string{"Shorts", "PLraw"},
		Confirm:       true,
		IncludePublic: true,
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !res.Applied || len(res.Slots) != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
	want := []scheduled{{"v1", start}, {"v2", start.AddDate(0, 0, 1)}, {"v3", start.AddDate(0, 0, 2)}}
	if !reflect.DeepEqual(p.scheduled, want) {
		t.Fatalf("scheduled = %+v", p.scheduled)
	}
	wantAdded := []string{"v1/PLshorts", "v1/PLraw", "v2/PLraw", "v3/PLshorts", "v3/PLraw"}
	if !reflect.DeepEqual(p.added, wantAdded) {
		t.Fatalf("added = %v", p.added)
	}
}

func TestScheduleChannel_ContinuesPastFailures(t *testing.T) {
	t.Parallel()

	p := channelFixture()
	p.failOn["v1"] = true
	start := time.Date(2025, 12, 7, 12, 0, 0, 0, time.UTC)

	res, err := New(Deps{Platform: p}).ScheduleChannel(context.Background(), ScheduleChannelInput{
		Query: "abc", Start: &start, IntervalDays: 1, Confirm: true,
	})
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("expected summary error, got %v", err)
	}
	if res.Failed != 1 || len(p.scheduled) != 1 || p.scheduled[0].id != "v2" {
		t.Fatalf("unexpected result %+v / %+v", res, p.scheduled)
	}
}

func TestUpdateVideo(t *testing.T) {
	t.Parallel()

	p := channelFixture()
	uc := New(Deps{Platform: p})
	if err := uc.UpdateVideo(context.Background(), UpdateVideoInput{VideoID: "v1"}); err == nil {
		t.Fatalf("expected error without any action")
	}

	at := time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC)
	if err := uc.UpdateVideo(context.Background(), UpdateVideoInput{VideoID: "v1", PublishAt: &at, Playlists: []string{"shorts"}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(p.scheduled) != 1 || !reflect.DeepEqual(p.added, []string{"v1/PLshorts"}) {
		t.Fatalf("unexpected calls %+v %v", p.scheduled, p.added)
	}
}

func TestUploadVideo_Defaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "v.mp4")
	if err := os.WriteFile(path, []byte("mp4"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := channelFixture()
	url, err := New(Deps{Platform: p}).UploadVideo(context.Background(), types.VideoUpload{Path: path, Title: "t"}, nil)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://www.youtube.com/watch?v=new123" {
		t.Fatalf("unexpected url %q", url)
	}
	if got := p.uploaded[0]; got.CategoryID != "28" || got.Privacy != "private" {
		t.Fatalf("defaults not applied: %+v", got)
	}

	_, err = New(Deps{Platform: p}).UploadVideo(context.Background(), types.VideoUpload{Path: path + ".nope"}, nil)
	if !errors.Is(err, types.ErrMissingInput) {
		t.Fatalf("expected missing input, got %v", err)
	}
}
