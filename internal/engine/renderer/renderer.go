// Package renderer draws terrain chunks and their decorations with OpenGL.
package renderer

import (
	_ "embed"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/solis/internal/engine/camera"
	"github.com/Faultbox/solis/internal/engine/debug"
	"github.com/Faultbox/solis/internal/engine/shader"
	"github.com/Faultbox/solis/internal/logger"
	"github.com/Faultbox/solis/internal/terrain"
	"github.com/Faultbox/solis/pkg/math"
)

//go:embed shaders/chunk.vert
var vertexSource string

//go:embed shaders/chunk.frag
var fragmentSource string

// Config holds renderer configuration.
type Config struct {
	Width       int
	Height      int
	ClearColor  math.Color
	Decorations DecorationSizes
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

func (m *gpuMesh) delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	*m = gpuMesh{}
}

type chunkEntry struct {
	chunk *terrain.Chunk
	mesh  gpuMesh
}

// Renderer owns the GPU copies of chunk meshes.
// Must be created after the OpenGL context.
type Renderer struct {
	config  Config
	program *shader.Program
	atlas   uint32

	chunks   map[terrain.Coord]*chunkEntry
	decor    quadBatch
	decorM   gpuMesh
	overlay  gpuMesh
	overlayV []float32
}

// New initializes OpenGL, compiles the chunk shader and uploads the atlas.
func New(cfg Config, atlas *image.RGBA) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{
		config: cfg,
		chunks: make(map[terrain.Coord]*chunkEntry),
	}

	var err error
	r.program, err = shader.New(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("chunk shader: %w", err)
	}
	r.atlas = uploadAtlas(atlas)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

func uploadAtlas(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	pix := flipRows(img)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))

	// Nearest keeps neighbouring sprites from bleeding into each other.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	logger.Debug("atlas uploaded", zap.Int("width", w), zap.Int("height", h))
	return tex
}

// Close releases every GPU resource.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, e := range r.chunks {
		e.mesh.delete()
	}
	r.decorM.delete()
	r.overlay.delete()
	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Sync uploads chunks that are new or were reloaded and frees the meshes
// of chunks no longer in the list.
func (r *Renderer) Sync(chunks []*terrain.Chunk) {
	live := make(map[terrain.Coord]bool, len(chunks))
	changed := false
	for _, ch := range chunks {
		c := ch.Coord()
		live[c] = true
		e, ok := r.chunks[c]
		if ok && e.chunk == ch {
			continue
		}
		if !ok {
			e = &chunkEntry{}
			r.chunks[c] = e
		}
		e.chunk = ch
		r.uploadChunk(e)
		changed = true
	}
	for c, e := range r.chunks {
		if !live[c] {
			e.mesh.delete()
			delete(r.chunks, c)
			changed = true
		}
	}
	if changed {
		r.rebuildDecorations(chunks)
	}
}

// Refresh re-uploads a chunk whose mesh was regenerated in place.
func (r *Renderer) Refresh(ch *terrain.Chunk) {
	if e, ok := r.chunks[ch.Coord()]; ok {
		r.uploadChunk(e)
	}
}

func (r *Renderer) uploadChunk(e *chunkEntry) {
	m := e.chunk.Mesh()
	upload(&e.mesh, interleave(m), m.Triangles, gl.STATIC_DRAW)
}

func (r *Renderer) rebuildDecorations(chunks []*terrain.Chunk) {
	r.decor.reset()
	for _, ch := range chunks {
		for _, d := range ch.Decorations() {
			r.decor.addDecoration(d, r.config.Decorations)
		}
	}
	upload(&r.decorM, r.decor.vertices, r.decor.indices, gl.DYNAMIC_DRAW)
}

// upload writes vertices and indices into m, creating its buffers on first use.
func upload(m *gpuMesh, vertices []float32, indices []uint32, usage uint32) {
	if m.vao == 0 {
		gl.GenVertexArrays(1, &m.vao)
		gl.GenBuffers(1, &m.vbo)
		gl.GenBuffers(1, &m.ebo)

		gl.BindVertexArray(m.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)

		stride := int32(floatsPerVertex * 4)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 5*4)
		gl.EnableVertexAttribArray(2)
	} else {
		gl.BindVertexArray(m.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	}

	m.count = int32(len(indices))
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), usage)
	}
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), usage)
	}
	gl.BindVertexArray(0)
}

// Draw renders every visible chunk and the decorations.
func (r *Renderer) Draw(cam *camera.Camera) {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4("uProjection", cam.Projection(r.config.Width, r.config.Height))
	r.program.SetInt("uAtlas", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)

	lo, hi := cam.Visible(r.config.Width, r.config.Height)
	r.program.SetInt("uTextured", 1)
	for _, e := range r.chunks {
		if !e.chunk.Visible() || e.mesh.count == 0 {
			continue
		}
		off := e.chunk.ViewPosition()
		if !overlaps(e.chunk.Mesh().Bounds, off, lo, hi) {
			continue
		}
		r.program.SetVec2("uOffset", mgl32.Vec2{off.X, off.Y})
		gl.BindVertexArray(e.mesh.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, e.mesh.count, gl.UNSIGNED_INT, 0)
	}

	if r.decorM.count > 0 {
		r.program.SetInt("uTextured", 0)
		r.program.SetVec2("uOffset", mgl32.Vec2{})
		gl.BindVertexArray(r.decorM.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, r.decorM.count, gl.UNSIGNED_INT, 0)
	}

	if n := int32(len(r.overlayV) / floatsPerVertex); n > 0 {
		r.program.SetInt("uTextured", 0)
		r.program.SetVec2("uOffset", mgl32.Vec2{})
		gl.BindVertexArray(r.overlay.vao)
		gl.DrawArrays(gl.LINES, 0, n)
	}
	gl.BindVertexArray(0)
}

// SetOverlay replaces the debug line overlay. Nil clears it.
func (r *Renderer) SetOverlay(lines []debug.Line) {
	r.overlayV = lineVertices(r.overlayV[:0], lines)
	upload(&r.overlay, r.overlayV, nil, gl.DYNAMIC_DRAW)
}

// ReadPixels returns the current framebuffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// overlaps reports whether local bounds b placed at off intersect [lo, hi].
func overlaps(b terrain.Bounds, off, lo, hi math.Vec2) bool {
	if b.Empty() {
		return false
	}
	return b.Max.X+off.X >= lo.X && b.Min.X+off.X <= hi.X &&
		b.Max.Y+off.Y >= lo.Y && b.Min.Y+off.Y <= hi.Y
}
