// Package folders regroups per-video output directories (blog-<id>,
// cuts-<id>, shorts-<id>) under one dated parent per video.
package folders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/djherbis/times"
)

// Kinds in reference priority order: the first present one dates the group.
var Kinds = []string{"blog", "cuts", "shorts"}

type Move struct {
	Src string
	Dst string
}

type Group struct {
	VideoID   string
	Reference string
	Created   time.Time
	Target    string
	Moves     []Move
}

type Report struct {
	Groups []Group
	Moved  int
	Failed int
}

type Organizer struct {
	Root   string
	DryRun bool

	// Created returns the creation time of a directory. Defaults to
	// CreationTime.
	Created func(path string) (time.Time, error)
	Logf    func(format string, args ...any)
}

// CreationTime prefers the filesystem birth time and falls back to mtime.
func CreationTime(path string) (time.Time, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	if ts.HasBirthTime() {
		return ts.BirthTime(), nil
	}
	return ts.ModTime(), nil
}

// TargetName is <yy-dd-mm>-<id> in local time.
func TargetName(created time.Time, videoID string) string {
	return created.Local().Format("06-02-01") + "-" + videoID
}

// Scan maps video id to kind to directory name for every matching
// directory directly under root.
func Scan(root string) (map[string]map[string]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}
	groups := map[string]map[string]string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		for _, kind := range Kinds {
			id, ok := strings.CutPrefix(e.Name(), kind+"-")
			if !ok || id == "" {
				continue
			}
			if groups[id] == nil {
				groups[id] = map[string]string{}
			}
			groups[id][kind] = e.Name()
			break
		}
	}
	return groups, nil
}

// Plan computes the moves without touching the filesystem. Groups whose
// reference directory cannot be dated are logged and left out.
func (o Organizer) Plan() ([]Group, error) {
	root := o.root()
	created := o.Created
	if created == nil {
		created = CreationTime
	}
	logf := o.logf()

	byID, err := Scan(root)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Group
	for _, id := range ids {
		comps := byID[id]
		g := Group{VideoID: id}
		for _, kind := range Kinds {
			if dir, ok := comps[kind]; ok {
				g.Reference = dir
				break
			}
		}
		t, err := created(filepath.Join(root, g.Reference))
		if err != nil {
			logf("error getting date for %s: %v", g.Reference, err)
			continue
		}
		g.Created = t
		g.Target = TargetName(t, id)
		for _, kind := range Kinds {
			if dir, ok := comps[kind]; ok {
				g.Moves = append(g.Moves, Move{Src: dir, Dst: filepath.Join(g.Target, kind)})
			}
		}
		out = append(out, g)
	}
	return out, nil
}

// Run applies the plan. A failed move is reported and the rest continue.
func (o Organizer) Run() (Report, error) {
	groups, err := o.Plan()
	if err != nil {
		return Report{}, err
	}
	root := o.root()
	logf := o.logf()
	rep := Report{Groups: groups}
	for _, g := range groups {
		logf("processing group for video_id: %s -> %s", g.VideoID, g.Target)
		if o.DryRun {
			logf("  [dry run] would create directory: %s", g.Target)
			for _, m := range g.Moves {
				logf("  [dry run] would move %s -> %s", m.Src, m.Dst)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Join(root, g.Target), 0o755); err != nil {
			logf("  error creating %s: %v", g.Target, err)
			rep.Failed += len(g.Moves)
			continue
		}
		for _, m := range g.Moves {
			if err := move(filepath.Join(root, m.Src), filepath.Join(root, m.Dst)); err != nil {
				logf("  error moving %s to %s: %v", m.Src, m.Dst, err)
				rep.Failed++
				continue
			}
			logf("  moved %s -> %s", m.Src, m.Dst)
			rep.Moved++
		}
	}
	return rep, nil
}

func move(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("destination %s already exists", dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}

func (o Organizer) root() string {
	if o.Root == "" {
		return "."
	}
	return o.Root
}

func (o Organizer) logf() func(string, ...any) {
	if o.Logf == nil {
		return func(string, ...any) {}
	}
	return o.Logf
}
