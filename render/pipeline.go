package render

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandel/programs"
)

const (
	vertexAttrib = "vert"

	// two triangles
	quadVertices = 6
)

// Pipeline is a compiled program with its vertex state and uniform
// locations. It is created once by Setup and is immutable afterwards.
type Pipeline struct {
	ctx              Context
	name             string
	program          uint32
	vao              uint32
	uniformLocations map[string]int32
}

// Setup builds program on ctx and uploads a quad covering width x height
// pixels. It must run once before any frame is rendered; the quad is not
// rebuilt when the window is resized.
func Setup(ctx Context, program programs.Program, width, height float32) (*Pipeline, error) {
	if ctx == nil {
		return nil, ErrContextUnavailable
	}

	glProgram, err := ctx.BuildProgram(program.VertexShader, program.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", program.Name, err)
	}

	attrib := ctx.AttribLocation(glProgram, vertexAttrib)
	if attrib < 0 {
		return nil, fmt.Errorf("building %s: vertex shader has no %q input", program.Name, vertexAttrib)
	}

	p := &Pipeline{
		ctx:              ctx,
		name:             program.Name,
		program:          glProgram,
		uniformLocations: make(map[string]int32),
	}

	t := reflect.TypeOf(programs.Uniforms{})
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("uniform")
		loc := ctx.UniformLocation(glProgram, name)
		Logger().Debug("uniform location", "program", program.Name, "uniform", name, "location", loc)
		if loc >= 0 {
			p.uniformLocations[name] = loc
		}
	}

	p.vao = ctx.NewVertexArray(uint32(attrib), Quad(width, height))

	Logger().Info("pipeline ready", "program", program.Name, "width", width, "height", height)
	return p, nil
}

// Quad returns the six vertices of two triangles covering a width x height
// pixel area.
func Quad(width, height float32) []float32 {
	return []float32{
		0, 0,
		width, 0,
		0, height,
		0, height,
		width, 0,
		width, height,
	}
}

func (p *Pipeline) Name() string {
	return p.name
}

// Render draws one frame into a width x height surface. The caller queries
// the surface size for every frame. Resolution and Palette in uniforms are
// filled in by Render.
func (p *Pipeline) Render(width, height int, uniforms programs.Uniforms) {
	uniforms.Resolution = mgl32.Vec2{float32(width), float32(height)}
	uniforms.Palette = programs.PaletteVec4()

	p.ctx.Viewport(width, height)
	p.ctx.Clear()
	p.ctx.UseProgram(p.program)
	p.ctx.BindVertexArray(p.vao)
	p.loadUniforms(&uniforms)
	p.ctx.DrawTriangles(0, quadVertices)
}

var (
	vec2Type   = reflect.TypeOf(mgl32.Vec2{})
	vec4Type   = reflect.TypeOf(mgl32.Vec4{})
	dvec2Type  = reflect.TypeOf(mgl64.Vec2{})
	int32Type  = reflect.TypeOf(int32(0))
	floatType  = reflect.TypeOf(float32(0))
	doubleType = reflect.TypeOf(float64(0))
)

func (p *Pipeline) loadUniforms(uniforms *programs.Uniforms) {
	v := reflect.ValueOf(uniforms).Elem()
	for i := 0; i < v.NumField(); i++ {
		loc, ok := p.uniformLocations[v.Type().Field(i).Tag.Get("uniform")]
		if !ok {
			continue
		}

		f := v.Field(i)
		ptr := f.Addr().UnsafePointer()
		count := 1

	SwitchElem:
		switch f.Type() {
		case vec2Type:
			p.ctx.Uniform2fv(loc, unsafe.Slice((*float32)(ptr), 2*count))
			continue
		case vec4Type:
			p.ctx.Uniform4fv(loc, unsafe.Slice((*float32)(ptr), 4*count))
			continue
		case dvec2Type:
			p.ctx.Uniform2dv(loc, unsafe.Slice((*float64)(ptr), 2*count))
			continue
		case int32Type:
			p.ctx.Uniform1iv(loc, unsafe.Slice((*int32)(ptr), count))
			continue
		case floatType:
			p.ctx.Uniform1fv(loc, unsafe.Slice((*float32)(ptr), count))
			continue
		case doubleType:
			p.ctx.Uniform1dv(loc, unsafe.Slice((*float64)(ptr), count))
			continue
		}

		if f.Kind() == reflect.Array {
			count = f.Len()
			f = f.Index(0)
			goto SwitchElem
		}

		Logger().Warn("unsupported uniform type", "type", f.Type())
	}
}
