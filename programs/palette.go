package programs

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

const colours = 12

// Palette is the fixed colour cycle shared by every program.
// Escape counts index it modulo its length.
var Palette = [colours]color.RGBA{
	colornames.Red,
	colornames.Orangered,
	colornames.Orange,
	colornames.Gold,
	colornames.Yellow,
	colornames.Yellowgreen,
	colornames.Green,
	colornames.Darkcyan,
	colornames.Blue,
	colornames.Slateblue,
	colornames.Purple,
	colornames.Mediumvioletred,
}

var NullColour = color.RGBA{A: 0xff}

// Colour returns the palette entry for i, wrapping every 12 entries.
func Colour(i int) color.RGBA {
	i %= colours
	if i < 0 {
		i += colours
	}
	return Palette[i]
}

// PaletteVec4 returns the palette as normalized RGBA vectors, the layout
// the fragment shaders expect for u_palette.
func PaletteVec4() [colours]mgl32.Vec4 {
	var v [colours]mgl32.Vec4
	for i, c := range Palette {
		v[i] = mgl32.Vec4{
			float32(c.R) / 255,
			float32(c.G) / 255,
			float32(c.B) / 255,
			float32(c.A) / 255,
		}
	}
	return v
}
