// Package tileset loads the sprite lookup that maps autotile names to
// positions inside a tileset atlas.
package tileset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/solis/internal/engine/texture"
)

// ErrInvalidLookup is returned for lookup files that fail validation.
var ErrInvalidLookup = errors.New("invalid tileset lookup")

//go:embed tileset.schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("tileset.schema.json", schemaJSON)

// Point is a pixel position inside the atlas.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// File is the on-disk lookup format.
type File struct {
	TileWidth   int              `yaml:"tile_width"`
	TileHeight  int              `yaml:"tile_height"`
	Atlas       string           `yaml:"atlas,omitempty"`
	AtlasWidth  int              `yaml:"atlas_width,omitempty"`
	AtlasHeight int              `yaml:"atlas_height,omitempty"`
	Tiles       map[string]Point `yaml:"tiles"`
}

// Lookup resolves sprite names to atlas pixel positions.
type Lookup struct {
	tileWidth   int
	tileHeight  int
	atlasWidth  int
	atlasHeight int
	atlasPath   string
	tiles       map[string]Point
}

// Load reads, validates and resolves a lookup file. Atlas dimensions come
// from the file when given, otherwise from the atlas image header.
func Load(path string) (*Lookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if l.atlasPath != "" && !filepath.IsAbs(l.atlasPath) {
		l.atlasPath = filepath.Join(filepath.Dir(path), l.atlasPath)
	}
	if l.atlasWidth == 0 || l.atlasHeight == 0 {
		if l.atlasPath == "" {
			return nil, fmt.Errorf("%s: %w: atlas size unknown, set atlas or atlas_width/atlas_height", path, ErrInvalidLookup)
		}
		w, h, err := texture.Size(l.atlasPath)
		if err != nil {
			return nil, fmt.Errorf("%s: reading atlas: %w", path, err)
		}
		l.atlasWidth, l.atlasHeight = w, h
	}
	return l, nil
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Lookup, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse validates YAML lookup data against the schema and decodes it.
// Atlas dimensions stay zero when the data does not set them.
func Parse(data []byte) (*Lookup, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLookup, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLookup, err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLookup, err)
	}
	return FromFile(f), nil
}

// FromFile builds a lookup from already-decoded data.
func FromFile(f File) *Lookup {
	tiles := make(map[string]Point, len(f.Tiles))
	for name, p := range f.Tiles {
		tiles[name] = p
	}
	return &Lookup{
		tileWidth:   f.TileWidth,
		tileHeight:  f.TileHeight,
		atlasWidth:  f.AtlasWidth,
		atlasHeight: f.AtlasHeight,
		atlasPath:   f.Atlas,
		tiles:       tiles,
	}
}

// Position returns the atlas pixel position of the named sprite.
func (l *Lookup) Position(name string) (x, y float32, ok bool) {
	p, ok := l.tiles[name]
	if !ok {
		return 0, 0, false
	}
	return float32(p.X), float32(p.Y), true
}

// TileWidth returns the sprite width in pixels.
func (l *Lookup) TileWidth() int { return l.tileWidth }

// TileHeight returns the sprite height in pixels.
func (l *Lookup) TileHeight() int { return l.tileHeight }

// AtlasWidth returns the atlas width in pixels.
func (l *Lookup) AtlasWidth() int { return l.atlasWidth }

// AtlasHeight returns the atlas height in pixels.
func (l *Lookup) AtlasHeight() int { return l.atlasHeight }

// AtlasPath returns the atlas image path, empty for the built-in layout.
func (l *Lookup) AtlasPath() string { return l.atlasPath }

// Names returns the sprite names in sorted order.
func (l *Lookup) Names() []string {
	names := make([]string, 0, len(l.tiles))
	for name := range l.tiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File returns the lookup in its on-disk form.
func (l *Lookup) File() File {
	f := File{
		TileWidth:   l.tileWidth,
		TileHeight:  l.tileHeight,
		Atlas:       l.atlasPath,
		AtlasWidth:  l.atlasWidth,
		AtlasHeight: l.atlasHeight,
		Tiles:       make(map[string]Point, len(l.tiles)),
	}
	for name, p := range l.tiles {
		f.Tiles[name] = p
	}
	return f
}

// Default returns the built-in 64x64 atlas layout with 16px sprites.
func Default() *Lookup {
	return FromFile(File{
		TileWidth:   16,
		TileHeight:  16,
		AtlasWidth:  64,
		AtlasHeight: 64,
		Tiles: map[string]Point{
			"CornerTL":   {0, 48},
			"TopEdge":    {16, 48},
			"CornerTR":   {32, 48},
			"CurveTL":    {48, 48},
			"LeftEdge":   {0, 32},
			"Grass":      {16, 32},
			"RightEdge":  {32, 32},
			"CurveTR":    {48, 32},
			"CornerBL":   {0, 16},
			"BottomEdge": {16, 16},
			"CornerBR":   {32, 16},
			"CurveBL":    {48, 16},
			"CurveBR":    {0, 0},
		},
	})
}
