package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/atlas"
	"github.com/gogpu/batch/shader"
)

// Scene is a list of renderables to classify, loaded from YAML.
type Scene struct {
	Atlas   AtlasConfig `yaml:"atlas"`
	Shaders []string    `yaml:"shaders"` // Program names, each compiled separately
	Objects []Object    `yaml:"objects"`
}

// AtlasConfig mirrors atlas.Config; zero fields keep the defaults.
type AtlasConfig struct {
	Size     int `yaml:"size"`
	CellSize int `yaml:"cell_size"`
	Padding  int `yaml:"padding"`
}

// Object is one renderable in the scene.
type Object struct {
	Name     string            `yaml:"name"`
	Format   Format            `yaml:"format"`
	Static   bool              `yaml:"static"`
	Indexed  bool              `yaml:"indexed"`
	Shader   string            `yaml:"shader"`
	Textures []batch.TextureID `yaml:"textures"` // By unit, starting at 0
}

// Format wraps batch.Format for YAML unmarshaling.
type Format batch.Format

// UnmarshalYAML implements yaml.Unmarshaler for Format. It accepts either
// a "|"-separated string or a sequence of flag names.
func (f *Format) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if value.Kind == yaml.SequenceNode {
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		s = strings.Join(names, "|")
	} else if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := batch.ParseFormat(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*f = Format(parsed)
	return nil
}

var errUnknownShader = errors.New("unknown shader")

// LoadScene loads a scene from a YAML file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return ParseScene(data)
}

// ParseScene parses a YAML scene and checks shader references.
func ParseScene(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}

	known := make(map[string]bool, len(scene.Shaders))
	for _, s := range scene.Shaders {
		known[s] = true
	}
	for i, o := range scene.Objects {
		if o.Name == "" {
			scene.Objects[i].Name = fmt.Sprintf("object%d", i)
		}
		if !known[o.Shader] {
			return nil, fmt.Errorf("object %q: %w %q", scene.Objects[i].Name, errUnknownShader, o.Shader)
		}
		if len(o.Textures) > batch.MaxTextureUnits {
			return nil, fmt.Errorf("object %q: %w: %d textures",
				scene.Objects[i].Name, batch.ErrInvalidTextureUnit, len(o.Textures))
		}
	}
	return &scene, nil
}

// AtlasConfig returns the atlas configuration with defaults applied.
func (s *Scene) AtlasConfig() atlas.Config {
	cfg := atlas.DefaultConfig()
	if s.Atlas.Size != 0 {
		cfg.Size = s.Atlas.Size
	}
	if s.Atlas.CellSize != 0 {
		cfg.CellSize = s.Atlas.CellSize
	}
	if s.Atlas.Padding != 0 {
		cfg.Padding = s.Atlas.Padding
	}
	return cfg
}

// Program is a vertex and fragment shader pair.
type Program struct {
	Vertex, Fragment *shader.Module
}

// Renderables builds the scene's renderables. Objects sharing a shader
// name share the same program and therefore the same shader identity.
func (s *Scene) Renderables(programs map[string]Program) []*batch.Object {
	out := make([]*batch.Object, 0, len(s.Objects))
	for _, o := range s.Objects {
		p := programs[o.Shader]
		obj := &batch.Object{
			Format:   batch.Format(o.Format),
			Static:   o.Static,
			Vertex:   p.Vertex,
			Fragment: p.Fragment,
			Indexed:  o.Indexed,
		}
		copy(obj.Textures[:], o.Textures)
		out = append(out, obj)
	}
	return out
}
