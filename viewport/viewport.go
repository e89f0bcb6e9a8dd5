// Package viewport holds the interactive state of a fractal view and the
// input handling that changes it.
package viewport

import "github.com/go-gl/mathgl/mgl64"

const (
	DefaultZoom = 2

	// PanFactor is the fraction of the visible height moved per pan key.
	PanFactor = 0.1

	// ZoomFactor is applied geometrically per zoom key.
	ZoomFactor = 1.1
)

var DefaultCenter = mgl64.Vec2{-0.5, 0}

// Key is an input symbol understood by the Controller.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyZoomIn
	KeyZoomOut
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyZoomIn:
		return "zoom in"
	case KeyZoomOut:
		return "zoom out"
	default:
		return "none"
	}
}

// Viewport is the region of the complex plane on screen.
// Zoom is the height of the visible region, Center its midpoint.
type Viewport struct {
	Zoom   float64
	Center mgl64.Vec2
}

func New() *Viewport {
	return &Viewport{
		Zoom:   DefaultZoom,
		Center: DefaultCenter,
	}
}

// Apply changes the viewport for k. It reports false, leaving the viewport
// untouched, if k is not a navigation key.
func (v *Viewport) Apply(k Key) bool {
	step := PanFactor * v.Zoom

	switch k {
	case KeyUp:
		v.Center[1] += step
	case KeyDown:
		v.Center[1] -= step
	case KeyLeft:
		v.Center[0] -= step
	case KeyRight:
		v.Center[0] += step
	case KeyZoomIn:
		v.Zoom /= ZoomFactor
	case KeyZoomOut:
		v.Zoom *= ZoomFactor
	default:
		return false
	}
	return true
}

// Controller applies input to a Viewport and redraws after every change.
type Controller struct {
	view   *Viewport
	render func(Viewport)
}

func NewController(view *Viewport, render func(Viewport)) *Controller {
	return &Controller{
		view:   view,
		render: render,
	}
}

// HandleKey applies k and, if it was recognised, renders once before
// returning.
func (c *Controller) HandleKey(k Key) bool {
	if !c.view.Apply(k) {
		return false
	}

	c.render(*c.view)
	return true
}

func (c *Controller) Viewport() Viewport {
	return *c.view
}
