package programs

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNoCPUImplementation = errors.New("program does not have a CPU implementation")
	ErrUnknownProgram      = errors.New("unknown program")
)

//go:embed shaders/default.vert
var defaultVertexShader string

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

func NewProgram(p Program) error {
	for _, existing := range programs {
		if existing.Name == p.Name {
			return fmt.Errorf("program %q already registered", p.Name)
		}
	}
	programs = append(programs, p)
	return nil
}

// Lookup finds a registered program by name.
func Lookup(name string) (Program, error) {
	for _, p := range programs {
		if p.Name == name {
			return p, nil
		}
	}
	return Program{}, fmt.Errorf("%w %q", ErrUnknownProgram, name)
}

func Names() []string {
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name
	}
	return names
}

var programs []Program

// PixelFunc evaluates one pixel on the CPU exactly as the fragment shader
// would. pos is in window pixels with the origin at the bottom left, the
// same space as gl_FragCoord.
type PixelFunc func(uniforms Uniforms, pos mgl64.Vec2) color.RGBA

type Program struct {
	Name           string
	VertexShader   string
	FragmentShader string
	GetPixel       PixelFunc
}

// GetImage returns a width x height CPU rendering of the program.
// uniforms.Resolution is overwritten with the image size.
func (p *Program) GetImage(uniforms Uniforms, width, height int) (Image, error) {
	if p.GetPixel == nil {
		return nil, ErrNoCPUImplementation
	}

	uniforms.Resolution[0] = float32(width)
	uniforms.Resolution[1] = float32(height)

	return &programImage{
		uniforms:  uniforms,
		bounds:    image.Rect(0, 0, width, height),
		pixelFunc: p.GetPixel,
	}, nil
}

type Image interface {
	GetPixel(mgl64.Vec2) color.RGBA
	Bounds() image.Rectangle
}

type programImage struct {
	uniforms  Uniforms
	bounds    image.Rectangle
	pixelFunc PixelFunc
}

func (i *programImage) GetPixel(pos mgl64.Vec2) color.RGBA {
	return i.pixelFunc(i.uniforms, pos)
}

func (i *programImage) Bounds() image.Rectangle {
	return i.bounds
}
