// Package hud draws screen-space panels and text over the terrain view.
package hud

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/solis/internal/engine/shader"
)

//go:embed shaders/hud.vert
var vertexSource string

//go:embed shaders/hud.frag
var fragmentSource string

type buffer struct {
	vao, vbo uint32
}

func newBuffer() buffer {
	var b buffer
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)
	return b
}

func (b *buffer) draw(vertices []float32) {
	n := vertexCount(vertices)
	if n == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, n)
}

func (b *buffer) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
	}
	*b = buffer{}
}

// Renderer flushes a Batch to the screen.
// Must be created after the OpenGL context.
type Renderer struct {
	*Batch

	program *shader.Program
	font    uint32
	solid   buffer
	text    buffer
	width   int
	height  int
}

// New compiles the HUD shader and uploads the font atlas.
func New(width, height int) (*Renderer, error) {
	program, err := shader.New(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("hud shader: %w", err)
	}
	f := NewFont()
	r := &Renderer{
		Batch:   NewBatch(f),
		program: program,
		solid:   newBuffer(),
		text:    newBuffer(),
		width:   width,
		height:  height,
	}

	img := f.Image()
	gl.GenTextures(1, &r.font)
	gl.BindTexture(gl.TEXTURE_2D, r.font)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return r, nil
}

// Resize updates the projection size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Flush draws the queued panels then the text, and resets the batch.
func (r *Renderer) Flush() {
	r.program.Use()
	r.program.SetMat4("uProjection", mgl32.Ortho2D(0, float32(r.width), float32(r.height), 0))
	r.program.SetInt("uFont", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.font)

	r.program.SetInt("uTextured", 0)
	r.solid.draw(r.Batch.solid)
	r.program.SetInt("uTextured", 1)
	r.text.draw(r.Batch.text)

	gl.BindVertexArray(0)
	r.Reset()
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.solid.delete()
	r.text.delete()
	if r.font != 0 {
		gl.DeleteTextures(1, &r.font)
		r.font = 0
	}
	r.program.Delete()
}
