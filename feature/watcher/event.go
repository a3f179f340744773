package watcher

import (
	"asset-cache/core/assets"

	"github.com/fsnotify/fsnotify"
)

// Status is what happened to a file.
type Status int

const (
	Created Status = iota
	Modified
	Removed
	Renamed
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Event is a file change expressed in asset keys.
type Event struct {
	// Path is the key of the file that changed.
	Path string
	// Key is the asset the file belongs to. Compiled artifacts map to their source.
	Key string
	// OldPath and OldKey are set for renames.
	OldPath string
	OldKey  string
	Status  Status
	// Initial marks events of the startup listing.
	Initial bool
}

// NewEvent builds the event of path.
func NewEvent(path string, status Status) Event {
	key, _ := assets.SourceKey(path)
	return Event{Path: path, Key: key, Status: status}
}

// NewRenameEvent builds the event of a file moved from oldPath to path.
func NewRenameEvent(oldPath, path string) Event {
	e := NewEvent(path, Renamed)
	e.OldPath = oldPath
	e.OldKey, _ = assets.SourceKey(oldPath)
	return e
}

// IsCompiled reports whether the changed file is a compiled artifact.
func (e Event) IsCompiled() bool {
	return e.Path != e.Key
}

// change is a coalesced filesystem change on OS paths.
type change struct {
	path    string
	oldPath string
	status  Status
}

// coalesce folds a batch of raw events into one change per path, in first-seen order.
// A rename followed by a create in the same batch is paired into a single rename.
func coalesce(raw []fsnotify.Event) []change {
	var (
		order   []string
		byPath  = make(map[string]*change)
		renamed []string
	)
	set := func(path string, c change) {
		if _, ok := byPath[path]; !ok {
			order = append(order, path)
		}
		byPath[path] = &c
	}

	for _, e := range raw {
		prev, seen := byPath[e.Name]
		switch {
		case e.Has(fsnotify.Rename):
			renamed = append(renamed, e.Name)
			set(e.Name, change{path: e.Name, status: Removed})
		case e.Has(fsnotify.Remove):
			set(e.Name, change{path: e.Name, status: Removed})
		case e.Has(fsnotify.Create):
			if len(renamed) > 0 {
				old := renamed[0]
				renamed = renamed[1:]
				delete(byPath, old)
				set(e.Name, change{path: e.Name, oldPath: old, status: Renamed})
				continue
			}
			if seen && prev.status == Removed {
				set(e.Name, change{path: e.Name, status: Modified})
				continue
			}
			set(e.Name, change{path: e.Name, status: Created})
		case e.Has(fsnotify.Write):
			if seen && prev.status != Removed {
				continue
			}
			set(e.Name, change{path: e.Name, status: Modified})
		}
	}

	out := make([]change, 0, len(byPath))
	emitted := make(map[string]bool, len(byPath))
	for _, path := range order {
		c, ok := byPath[path]
		if !ok || emitted[path] {
			continue
		}
		emitted[path] = true
		out = append(out, *c)
	}
	return out
}
