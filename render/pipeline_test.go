package render

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandel/programs"
)

// fakeContext records calls instead of talking to a GPU.
type fakeContext struct {
	buildErr  error
	attribs   map[string]int32
	uniforms  map[string]int32
	calls     []string
	builds    int
	arrays    int
	vertices  []float32
	attrib    uint32
	uploads   map[int32][]float64
	viewportW int
	viewportH int
}

func newFakeContext(uniformNames ...string) *fakeContext {
	f := &fakeContext{
		attribs:  map[string]int32{"vert": 0},
		uniforms: make(map[string]int32),
		uploads:  make(map[int32][]float64),
	}
	for i, name := range uniformNames {
		f.uniforms[name] = int32(i)
	}
	return f
}

func (f *fakeContext) BuildProgram(vertexSource, fragmentSource string) (uint32, error) {
	f.calls = append(f.calls, "build")
	f.builds++
	if f.buildErr != nil {
		return 0, f.buildErr
	}
	return 7, nil
}

func (f *fakeContext) AttribLocation(program uint32, name string) int32 {
	if loc, ok := f.attribs[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeContext) UniformLocation(program uint32, name string) int32 {
	if loc, ok := f.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeContext) NewVertexArray(attrib uint32, vertices []float32) uint32 {
	f.calls = append(f.calls, "vertexArray")
	f.arrays++
	f.attrib = attrib
	f.vertices = slices.Clone(vertices)
	return 3
}

func (f *fakeContext) Viewport(width, height int) {
	f.calls = append(f.calls, "viewport")
	f.viewportW, f.viewportH = width, height
}

func (f *fakeContext) Clear()                     { f.calls = append(f.calls, "clear") }
func (f *fakeContext) UseProgram(program uint32)  { f.calls = append(f.calls, fmt.Sprint("use ", program)) }
func (f *fakeContext) BindVertexArray(vao uint32) { f.calls = append(f.calls, fmt.Sprint("bind ", vao)) }

func (f *fakeContext) DrawTriangles(first, count int32) {
	f.calls = append(f.calls, fmt.Sprintf("draw %d %d", first, count))
}

func (f *fakeContext) upload(loc int32, v []float64) {
	f.calls = append(f.calls, "uniform")
	f.uploads[loc] = v
}

func (f *fakeContext) Uniform1iv(loc int32, v []int32)   { f.upload(loc, convert(v)) }
func (f *fakeContext) Uniform1fv(loc int32, v []float32) { f.upload(loc, convert(v)) }
func (f *fakeContext) Uniform2fv(loc int32, v []float32) { f.upload(loc, convert(v)) }
func (f *fakeContext) Uniform4fv(loc int32, v []float32) { f.upload(loc, convert(v)) }
func (f *fakeContext) Uniform1dv(loc int32, v []float64) { f.upload(loc, slices.Clone(v)) }
func (f *fakeContext) Uniform2dv(loc int32, v []float64) { f.upload(loc, slices.Clone(v)) }

func convert[T int32 | float32](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

var mandelbrotUniforms = []string{"u_resolution", "u_zoom", "u_center", "u_palette"}

func TestSetupNilContext(t *testing.T) {
	if _, err := Setup(nil, programs.Mandelbrot, 800, 600); !errors.Is(err, ErrContextUnavailable) {
		t.Errorf("Setup(nil) error = %v, want ErrContextUnavailable", err)
	}
}

func TestSetupBuildError(t *testing.T) {
	ctx := newFakeContext()
	ctx.buildErr = errors.New("fragment shader failed to compile: 0:12: syntax error")

	_, err := Setup(ctx, programs.Mandelbrot, 800, 600)
	if !errors.Is(err, ctx.buildErr) {
		t.Fatalf("Setup error = %v, want wrapped build error", err)
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("error %q lost the compiler log", err)
	}
	if ctx.arrays != 0 {
		t.Errorf("vertex array allocated after a failed build")
	}
}

func TestSetupMissingAttribute(t *testing.T) {
	ctx := newFakeContext()
	delete(ctx.attribs, "vert")

	if _, err := Setup(ctx, programs.Mandelbrot, 800, 600); err == nil {
		t.Error("Setup succeeded without a vertex attribute")
	}
}

func TestSetupUploadsQuad(t *testing.T) {
	ctx := newFakeContext(mandelbrotUniforms...)
	ctx.attribs["vert"] = 2

	if _, err := Setup(ctx, programs.Mandelbrot, 800, 600); err != nil {
		t.Fatal(err)
	}

	want := []float32{
		0, 0,
		800, 0,
		0, 600,
		0, 600,
		800, 0,
		800, 600,
	}
	if !slices.Equal(ctx.vertices, want) {
		t.Errorf("vertices = %v, want %v", ctx.vertices, want)
	}
	if ctx.attrib != 2 {
		t.Errorf("vertex array attrib = %d, want 2", ctx.attrib)
	}
	if !slices.Equal(ctx.calls, []string{"build", "vertexArray"}) {
		t.Errorf("setup calls = %v", ctx.calls)
	}
}

func TestRenderSequence(t *testing.T) {
	ctx := newFakeContext(mandelbrotUniforms...)
	p, err := Setup(ctx, programs.Mandelbrot, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	ctx.calls = nil

	p.Render(1024, 768, programs.Uniforms{Zoom: 2, Center: mgl64.Vec2{-0.5, 0}})

	want := []string{
		"viewport",
		"clear",
		"use 7",
		"bind 3",
		"uniform",
		"uniform",
		"uniform",
		"uniform",
		"draw 0 6",
	}
	if !slices.Equal(ctx.calls, want) {
		t.Errorf("render calls = %v, want %v", ctx.calls, want)
	}
	if ctx.viewportW != 1024 || ctx.viewportH != 768 {
		t.Errorf("viewport = %dx%d, want 1024x768", ctx.viewportW, ctx.viewportH)
	}
}

func TestRenderUniformValues(t *testing.T) {
	ctx := newFakeContext(mandelbrotUniforms...)
	p, err := Setup(ctx, programs.Mandelbrot, 800, 600)
	if err != nil {
		t.Fatal(err)
	}

	p.Render(640, 480, programs.Uniforms{Zoom: 0.25, Center: mgl64.Vec2{-0.75, 0.1}})

	tests := []struct {
		name string
		want []float64
	}{
		{"u_resolution", []float64{640, 480}},
		{"u_zoom", []float64{0.25}},
		{"u_center", []float64{-0.75, 0.1}},
	}
	for _, tt := range tests {
		if got := ctx.uploads[ctx.uniforms[tt.name]]; !slices.Equal(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	palette := ctx.uploads[ctx.uniforms["u_palette"]]
	if len(palette) != 12*4 {
		t.Fatalf("u_palette has %d floats, want 48", len(palette))
	}
	if !slices.Equal(palette[:4], []float64{1, 0, 0, 1}) {
		t.Errorf("u_palette[0] = %v, want red", palette[:4])
	}
}

func TestRenderSkipsUndeclaredUniforms(t *testing.T) {
	ctx := newFakeContext("u_resolution", "u_mod_val", "u_multi")
	p, err := Setup(ctx, programs.Ripple, 800, 600)
	if err != nil {
		t.Fatal(err)
	}

	p.Render(800, 600, programs.Uniforms{ModVal: 17, Multi: 1.5, Zoom: 9})

	if len(ctx.uploads) != 3 {
		t.Errorf("uploaded %d uniforms, want 3: %v", len(ctx.uploads), ctx.uploads)
	}
	if got := ctx.uploads[ctx.uniforms["u_mod_val"]]; !slices.Equal(got, []float64{17}) {
		t.Errorf("u_mod_val = %v, want [17]", got)
	}
	if got := ctx.uploads[ctx.uniforms["u_multi"]]; !slices.Equal(got, []float64{1.5}) {
		t.Errorf("u_multi = %v, want [1.5]", got)
	}
}

func TestRenderAllocatesNothing(t *testing.T) {
	ctx := newFakeContext(mandelbrotUniforms...)
	p, err := Setup(ctx, programs.Mandelbrot, 800, 600)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 100 {
		p.Render(800+i, 600, programs.Uniforms{Zoom: 2})
	}

	if ctx.builds != 1 || ctx.arrays != 1 {
		t.Errorf("builds = %d, vertex arrays = %d after 100 frames, want 1 and 1", ctx.builds, ctx.arrays)
	}
	if ctx.viewportW != 899 {
		t.Errorf("last viewport width = %d, want 899", ctx.viewportW)
	}
}

func TestQuad(t *testing.T) {
	q := Quad(3, 5)
	if len(q) != 12 {
		t.Fatalf("len(Quad) = %d, want 12", len(q))
	}

	// Both triangles together cover the rectangle exactly once.
	area := func(v []float32) float32 {
		a := (v[2]-v[0])*(v[5]-v[1]) - (v[4]-v[0])*(v[3]-v[1])
		if a < 0 {
			a = -a
		}
		return a / 2
	}
	if got := area(q[:6]) + area(q[6:]); got != 15 {
		t.Errorf("quad area = %v, want 15", got)
	}
}
