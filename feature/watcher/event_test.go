package watcher

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func ev(name string, op fsnotify.Op) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: op}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name string
		raw  []fsnotify.Event
		want []change
	}{
		{
			name: "create then writes is one create",
			raw:  []fsnotify.Event{ev("/a.txt", fsnotify.Create), ev("/a.txt", fsnotify.Write), ev("/a.txt", fsnotify.Write)},
			want: []change{{path: "/a.txt", status: Created}},
		},
		{
			name: "write is a modification",
			raw:  []fsnotify.Event{ev("/a.txt", fsnotify.Write), ev("/a.txt", fsnotify.Chmod)},
			want: []change{{path: "/a.txt", status: Modified}},
		},
		{
			name: "remove",
			raw:  []fsnotify.Event{ev("/a.txt", fsnotify.Write), ev("/a.txt", fsnotify.Remove)},
			want: []change{{path: "/a.txt", status: Removed}},
		},
		{
			name: "remove then create is a modification",
			raw:  []fsnotify.Event{ev("/a.txt", fsnotify.Remove), ev("/a.txt", fsnotify.Create)},
			want: []change{{path: "/a.txt", status: Modified}},
		},
		{
			name: "rename pairs with the next create",
			raw:  []fsnotify.Event{ev("/a.txt", fsnotify.Rename), ev("/b.txt", fsnotify.Create)},
			want: []change{{path: "/b.txt", oldPath: "/a.txt", status: Renamed}},
		},
		{
			name: "unpaired rename is a removal",
			raw:  []fsnotify.Event{ev("/a.txt", fsnotify.Rename), ev("/c.txt", fsnotify.Write)},
			want: []change{{path: "/a.txt", status: Removed}, {path: "/c.txt", status: Modified}},
		},
		{
			name: "order of first appearance",
			raw: []fsnotify.Event{
				ev("/z.txt", fsnotify.Write),
				ev("/a.txt", fsnotify.Create),
				ev("/z.txt", fsnotify.Write),
			},
			want: []change{{path: "/z.txt", status: Modified}, {path: "/a.txt", status: Created}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coalesce(tt.raw))
		})
	}
}

func TestNewEvent(t *testing.T) {
	e := NewEvent("app:/compiled/t/a.png.asset", Modified)
	assert.Equal(t, "app:/data/t/a.png", e.Key)
	assert.True(t, e.IsCompiled())

	e = NewRenameEvent("app:/data/a.png", "app:/data/b.png")
	assert.Equal(t, "app:/data/a.png", e.OldKey)
	assert.Equal(t, "app:/data/b.png", e.Key)
	assert.False(t, e.IsCompiled())
	assert.Equal(t, "renamed", e.Status.String())
}
