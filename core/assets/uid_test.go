package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUIDPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    UIDPolicy
		wantErr bool
	}{
		{"", UIDRandom, false},
		{"random", UIDRandom, false},
		{" Deterministic ", UIDDeterministic, false},
		{"legacy", UIDLegacy, false},
		{"sequential", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUIDPolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUIDGenerator(t *testing.T) {
	t.Run("Random", func(t *testing.T) {
		g := NewUIDGenerator(UIDRandom)
		assert.NotEqual(t, g.Generate("app:/data/a.png"), g.Generate("app:/data/a.png"))
	})

	t.Run("Deterministic", func(t *testing.T) {
		g := NewUIDGenerator(UIDDeterministic)
		assert.Equal(t, g.Generate("app:/data/a.png"), g.Generate("APP:/data//a.png"))
		assert.NotEqual(t, g.Generate("app:/data/a.png"), g.Generate("app:/data/b.png"))
	})

	t.Run("Legacy", func(t *testing.T) {
		g := NewUIDGenerator(UIDLegacy)
		assert.Equal(t, g.Generate("app:/data/scene"), g.Generate("app:/data/scene"))
		assert.NotEqual(t, g.Generate("app:/data/a.png"), g.Generate("app:/data/a.png"))
	})
}
