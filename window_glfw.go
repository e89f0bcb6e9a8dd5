package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/glmandel/programs"
	"github.com/stewi1014/glmandel/render"
	"github.com/stewi1014/glmandel/viewport"
)

func glfwMain(ctx context.Context, opts options) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: glfw.Init: %v", render.ErrContextUnavailable, err)
	}
	defer glfw.Terminate()

	window, err := NewGLFWWindow(opts)
	if err != nil {
		return err
	}
	defer window.Destroy()

	if opts.animated() {
		return window.animate(ctx)
	}
	return window.navigate(ctx)
}

func NewGLFWWindow(opts options) (*GLFWWindow, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	if opts.debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	width, height := opts.width, opts.height
	if width <= 0 || height <= 0 {
		width, height = 1200, 800
		if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
			mode := monitor.GetVideoMode()
			width = int(float32(mode.Width) * .6)
			height = int(float32(mode.Height) * .6)
		}
	}

	window, err := glfw.CreateWindow(width, height, "GLMandel "+opts.program.Name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: glfw.CreateWindow: %v", render.ErrContextUnavailable, err)
	}

	w := &GLFWWindow{
		Window: window,
	}

	w.MakeContextCurrent()
	if opts.animated() {
		// the frame timer paces the animation, not the display
		glfw.SwapInterval(0)
	} else {
		glfw.SwapInterval(1)
	}

	glctx, err := render.NewGLContext(opts.debug)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	fbWidth, fbHeight := w.GetFramebufferSize()
	w.pipeline, err = render.Setup(glctx, opts.program, float32(fbWidth), float32(fbHeight))
	if err != nil {
		window.Destroy()
		return nil, err
	}

	return w, nil
}

type GLFWWindow struct {
	*glfw.Window
	pipeline *render.Pipeline
	uniforms programs.Uniforms
}

// draw renders one frame at the framebuffer's current size and presents it.
func (w *GLFWWindow) draw() {
	width, height := w.GetFramebufferSize()
	w.pipeline.Render(width, height, w.uniforms)
	w.SwapBuffers()
}

func (w *GLFWWindow) navigate(ctx context.Context) error {
	controller := viewport.NewController(viewport.New(), func(v viewport.Viewport) {
		w.uniforms.Zoom = v.Zoom
		w.uniforms.Center = v.Center
		w.draw()
	})
	view := controller.Viewport()
	w.uniforms.Zoom = view.Zoom
	w.uniforms.Center = view.Center

	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		k := glfwKey(key, scancode)
		if controller.HandleKey(k) {
			slog.Debug("key", "key", k, "viewport", controller.Viewport())
		}
	})
	w.SetRefreshCallback(func(*glfw.Window) {
		w.draw()
	})

	w.draw()
	for !w.ShouldClose() {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		glfw.WaitEventsTimeout(0.1)
	}
	return nil
}

func (w *GLFWWindow) animate(ctx context.Context) error {
	animator := viewport.NewAnimator(viewport.NewAnimation(), func(a viewport.Animation) {
		w.uniforms.ModVal = int32(a.ModVal)
		w.uniforms.Multi = float32(a.Multi)
		w.draw()
	})

	ticker := time.NewTicker(viewport.FramePeriod)
	defer ticker.Stop()

	for !w.ShouldClose() {
		select {
		case <-ticker.C:
			animator.Frame()
		case <-ctx.Done():
			return context.Cause(ctx)
		}
		glfw.PollEvents()
	}
	return nil
}
