// Package render compiles a fractal program into a draw pipeline and
// renders frames with it.
package render

import "errors"

// ErrContextUnavailable is returned when no usable OpenGL context could be
// created or initialised.
var ErrContextUnavailable = errors.New("graphics context unavailable")

// Context is the subset of a graphics API the pipeline needs.
// Implementations must be used from the thread owning the context.
type Context interface {
	// BuildProgram compiles and links a vertex/fragment pair. Errors carry
	// the compiler or linker log.
	BuildProgram(vertexSource, fragmentSource string) (uint32, error)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	// NewVertexArray uploads vertices to a static buffer and describes them
	// to attrib as tightly packed pairs of floats.
	NewVertexArray(attrib uint32, vertices []float32) uint32

	Viewport(width, height int)
	Clear()
	UseProgram(program uint32)
	BindVertexArray(vao uint32)
	DrawTriangles(first, count int32)

	Uniform1iv(location int32, v []int32)
	Uniform1fv(location int32, v []float32)
	Uniform2fv(location int32, v []float32)
	Uniform4fv(location int32, v []float32)
	Uniform1dv(location int32, v []float64)
	Uniform2dv(location int32, v []float64)
}
