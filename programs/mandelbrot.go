package programs

import (
	_ "embed"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxIterations caps the escape-time loop; points still bounded after this
// many steps are treated as members of the set.
const MaxIterations = 1000

//go:embed shaders/mandelbrot.frag
var mandelbrotFragment string

var Mandelbrot = Program{
	Name:           "mandelbrot",
	VertexShader:   defaultVertexShader,
	FragmentShader: mandelbrotFragment,
	GetPixel: func(uniforms Uniforms, pos mgl64.Vec2) color.RGBA {
		resolution := mgl64.Vec2{float64(uniforms.Resolution[0]), float64(uniforms.Resolution[1])}
		c := PixelToComplex(pos, resolution, uniforms.Zoom, uniforms.Center)
		return MandelbrotColour(EscapeIterations(c))
	},
}

func init() {
	NewProgram(Mandelbrot)
}

// PixelToComplex maps a window position in pixels (origin bottom left) to
// the point of the complex plane it shows. The vertical extent of the window
// always spans zoom units.
func PixelToComplex(pos, resolution mgl64.Vec2, zoom float64, center mgl64.Vec2) complex128 {
	scale := resolution[1] / zoom
	return complex(
		(pos[0]-resolution[0]/2)/scale+center[0],
		(pos[1]-resolution[1]/2)/scale+center[1],
	)
}

// EscapeIterations returns the step at which z -> z*z + c, starting from
// z = c, leaves the radius 2 disc, or MaxIterations if it never does.
func EscapeIterations(c complex128) int {
	constReal, constImag := real(c), imag(c)
	re, im := constReal, constImag
	re2, im2 := re*re, im*im

	for i := 0; i < MaxIterations; i++ {
		im = (re+re)*im + constImag
		re = re2 - im2 + constReal
		re2 = re * re
		im2 = im * im

		if re2+im2 > 4 {
			return i
		}
	}
	return MaxIterations
}

// MandelbrotColour colours an escape count.
func MandelbrotColour(iterations int) color.RGBA {
	if iterations >= MaxIterations {
		return NullColour
	}
	return Colour(iterations)
}
