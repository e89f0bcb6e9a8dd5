package programs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Uniforms is the parameter block pushed to the fragment stage every frame.
// Fields are matched to GLSL uniforms by their tag; a program that does not
// declare a uniform simply ignores the value.
type Uniforms struct {
	Resolution mgl32.Vec2          `uniform:"u_resolution"`
	Zoom       float64             `uniform:"u_zoom"`
	Center     mgl64.Vec2          `uniform:"u_center"`
	ModVal     int32               `uniform:"u_mod_val"`
	Multi      float32             `uniform:"u_multi"`
	Palette    [colours]mgl32.Vec4 `uniform:"u_palette"`
}
