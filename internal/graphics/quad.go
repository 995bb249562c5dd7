package graphics

import "github.com/go-gl/gl/v4.1-core/gl"

// QuadMesh is an indexed unit square over [0,1]², scaled and offset in the
// vertex shader.
type QuadMesh struct {
	vao, vbo, ebo uint32
}

var (
	quadVertices = []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}
	quadIndices = []uint32{0, 1, 2, 0, 2, 3}
)

func NewQuadMesh() *QuadMesh {
	q := &QuadMesh{}
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.GenBuffers(1, &q.ebo)

	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, gl.Ptr(quadIndices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	return q
}

func (q *QuadMesh) Draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (q *QuadMesh) Destroy() {
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
	}
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
	}
	if q.ebo != 0 {
		gl.DeleteBuffers(1, &q.ebo)
	}
	*q = QuadMesh{}
}
