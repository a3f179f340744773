package kinds

import (
	"context"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Material describes a shader with its texture bindings and parameters.
type Material struct {
	Name     string             `toml:"name" json:"name"`
	Shader   string             `toml:"shader" json:"shader"`
	Textures map[string]string  `toml:"textures" json:"textures,omitempty"`
	Params   map[string]float64 `toml:"params" json:"params,omitempty"`
}

// MaterialExtensions are routed to the material kind.
var MaterialExtensions = []string{".mat", ".toml"}

// DecodeMaterial parses a TOML material definition.
func DecodeMaterial(ctx context.Context, key string, r io.Reader) (*Material, error) {
	var m Material
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse material: %w", err)
	}
	if m.Shader == "" {
		return nil, fmt.Errorf("material %s has no shader", key)
	}
	return &m, nil
}

// Dependencies returns the keys of the shader and textures referenced by m, shader first.
func (m *Material) Dependencies() []string {
	deps := []string{m.Shader}
	for _, slot := range sortedKeys(m.Textures) {
		deps = append(deps, m.Textures[slot])
	}
	return deps
}
