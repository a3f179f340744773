package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorage_Unload(t *testing.T) {
	m, _ := setupManager(t, 2)
	s := GetStorage[texture](m)

	for _, key := range []string{"app:/data/a/1.png", "app:/data/a/2.png", "app:/data/b/3.png", "engine:/data/4.png"} {
		Load[texture](m, key, LoadStandard)
	}
	assert.Equal(t, 4, s.Len())

	tests := []struct {
		name    string
		unload  func() int
		removed int
		left    []string
	}{
		{"Single", func() int { return s.UnloadSingle("app:/data/b/3.png") }, 1, []string{"app:/data/a/1.png", "app:/data/a/2.png", "engine:/data/4.png"}},
		{"SingleMissing", func() int { return s.UnloadSingle("app:/data/b/3.png") }, 0, []string{"app:/data/a/1.png", "app:/data/a/2.png", "engine:/data/4.png"}},
		{"Group", func() int { return s.UnloadGroup("app:/data/a") }, 2, []string{"engine:/data/4.png"}},
		{"Condition", func() int {
			return s.UnloadWithCondition(func(h Handle[texture]) bool { return h.Name() == "4" })
		}, 1, []string{}},
		{"AllEmpty", s.UnloadAll, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.removed, tt.unload())
			assert.Equal(t, tt.left, s.Keys())
		})
	}
}

func TestStorage_GetGroupAlwaysHasSentinel(t *testing.T) {
	m, _ := setupManager(t, 1)
	s := GetStorage[texture](m)

	got := s.GetGroup("app:/nothing")
	assert.Len(t, got, 1)
	assert.True(t, got[0].Equal(s.Empty()))
	assert.Equal(t, "texture", s.Kind())
}
