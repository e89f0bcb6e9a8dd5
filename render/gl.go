package render

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// GLContext implements Context on the OpenGL context current on the calling
// thread.
type GLContext struct{}

var _ Context = (*GLContext)(nil)

// NewGLContext loads the OpenGL function pointers for the current context.
// The error wraps ErrContextUnavailable if there is no usable context.
func NewGLContext(debug bool) (*GLContext, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: gl.Init: %v", ErrContextUnavailable, err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	if version == "" {
		return nil, fmt.Errorf("%w: no current OpenGL context", ErrContextUnavailable)
	}
	Logger().Info("OpenGL context",
		"version", version,
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	if debug {
		gl.Enable(gl.DEBUG_OUTPUT)
		gl.DebugMessageCallback(glDebugMessage, nil)
	}
	gl.Disable(gl.DITHER)

	return &GLContext{}, nil
}

func (*GLContext) BuildProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.BindFragDataLocation(program, 0, gl.Str("outputColor\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(program, l, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%v shader failed to compile: %v", shaderName(shaderType), strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}

func shaderName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return "unknown"
}

func (*GLContext) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (*GLContext) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*GLContext) NewVertexArray(attrib uint32, vertices []float32) uint32 {
	var vao, vbo uint32

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(attrib)
	gl.VertexAttribPointerWithOffset(attrib, 2, gl.FLOAT, false, 2*4, 0)

	return vao
}

func (*GLContext) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (*GLContext) Clear() {
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (*GLContext) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*GLContext) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (*GLContext) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (*GLContext) Uniform1iv(location int32, v []int32) {
	gl.Uniform1iv(location, int32(len(v)), &v[0])
}

func (*GLContext) Uniform1fv(location int32, v []float32) {
	gl.Uniform1fv(location, int32(len(v)), &v[0])
}

func (*GLContext) Uniform2fv(location int32, v []float32) {
	gl.Uniform2fv(location, int32(len(v)/2), &v[0])
}

func (*GLContext) Uniform4fv(location int32, v []float32) {
	gl.Uniform4fv(location, int32(len(v)/4), &v[0])
}

func (*GLContext) Uniform1dv(location int32, v []float64) {
	gl.Uniform1dv(location, int32(len(v)), &v[0])
}

func (*GLContext) Uniform2dv(location int32, v []float64) {
	gl.Uniform2dv(location, int32(len(v)/2), &v[0])
}
