package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gotk3/gotk3/gdk"
	"github.com/stewi1014/glmandel/viewport"
)

func gdkKey(keyval uint) viewport.Key {
	switch keyval {
	case gdk.KEY_Up:
		return viewport.KeyUp
	case gdk.KEY_Down:
		return viewport.KeyDown
	case gdk.KEY_Left:
		return viewport.KeyLeft
	case gdk.KEY_Right:
		return viewport.KeyRight
	case gdk.KEY_w:
		return viewport.KeyZoomIn
	case gdk.KEY_s:
		return viewport.KeyZoomOut
	}
	return viewport.KeyNone
}

// glfwKey maps arrows by key code and letters by the character the key
// produces in the current layout.
func glfwKey(key glfw.Key, scancode int) viewport.Key {
	switch key {
	case glfw.KeyUp:
		return viewport.KeyUp
	case glfw.KeyDown:
		return viewport.KeyDown
	case glfw.KeyLeft:
		return viewport.KeyLeft
	case glfw.KeyRight:
		return viewport.KeyRight
	}

	switch glfw.GetKeyName(key, scancode) {
	case "w":
		return viewport.KeyZoomIn
	case "s":
		return viewport.KeyZoomOut
	}
	return viewport.KeyNone
}
