package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// QuadVertex is the vertex layout of Quad: clip-space position at
// attribute location 0 and texture coordinate at location 1.
type QuadVertex struct {
	Pos      [2]float32
	TexCoord [2]float32
}

var quadVertices = [4]QuadVertex{
	{Pos: [2]float32{-1, -1}, TexCoord: [2]float32{0, 0}},
	{Pos: [2]float32{1, -1}, TexCoord: [2]float32{1, 0}},
	{Pos: [2]float32{1, 1}, TexCoord: [2]float32{1, 1}},
	{Pos: [2]float32{-1, 1}, TexCoord: [2]float32{0, 1}},
}

var quadIndices = [6]uint16{0, 1, 2, 2, 3, 0}

// Quad is a fullscreen quad for drawing with whatever program is active.
type Quad struct {
	vao, vbo uint32
	ebo      uint32
}

// NewQuad uploads the quad geometry.
func NewQuad() *Quad {
	q := &Quad{}

	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)

	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*int(unsafe.Sizeof(QuadVertex{})),
		gl.Ptr(&quadVertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &q.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*2,
		gl.Ptr(&quadIndices[0]), gl.STATIC_DRAW)

	stride := int32(unsafe.Sizeof(QuadVertex{}))

	// Position attribute
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// TexCoord attribute
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(QuadVertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return q
}

// Draw draws the quad with the currently bound program.
func (q *Quad) Draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_SHORT, 0)
	gl.BindVertexArray(0)
}

// Delete releases OpenGL resources.
func (q *Quad) Delete() {
	if q.ebo != 0 {
		gl.DeleteBuffers(1, &q.ebo)
	}
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
	}
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
	}
}
