package programs

import (
	_ "embed"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed shaders/ripple.frag
var rippleFragment string

var Ripple = Program{
	Name:           "ripple",
	VertexShader:   defaultVertexShader,
	FragmentShader: rippleFragment,
	GetPixel: func(uniforms Uniforms, pos mgl64.Vec2) color.RGBA {
		value := RippleValue(
			int(math.Floor(pos[0])),
			int(math.Floor(pos[1])),
			int(uniforms.Resolution[0])/2,
			int(uniforms.Resolution[1])/2,
			float64(uniforms.Multi),
		)
		return RippleColour(value, int(uniforms.ModVal))
	},
}

func init() {
	NewProgram(Ripple)
}

// RippleValue is the product of the pixel's distances to the centre (cx, cy),
// scaled by the square of the animation phase.
func RippleValue(x, y, cx, cy int, multi float64) float64 {
	dx := math.Abs(float64(x-cx)) + 1
	dy := math.Abs(float64(y-cy)) + 1
	return dx * dy * multi * multi / 100
}

// RippleColour folds value into a period of modVal colours. Bands past the
// end of the palette are black.
func RippleColour(value float64, modVal int) color.RGBA {
	if modVal <= 0 {
		return NullColour
	}

	i := int(math.Mod(math.Floor(value), float64(modVal)))
	if i < 0 || i >= colours {
		return NullColour
	}
	return Palette[i]
}
