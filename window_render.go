package main

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandel/programs"
	"github.com/stewi1014/glmandel/render"
	"github.com/stewi1014/glmandel/viewport"
)

func gtkMain(ctx context.Context, opts options) error {
	gtk.Init(nil)
	app, err := gtk.ApplicationNew(appID, glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	app.Connect("activate", func() {
		client, listener := NewPipeListener()

		renderWindow := NewRenderWindow(app, opts, client, appContext, appQuit)
		if renderWindow == nil {
			return
		}
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})

		statusWindow := NewStatusWindow(app, opts.program, listener, appContext, appQuit)
		if statusWindow == nil {
			return
		}
		statusWindow.Connect("destroy", func() {
			listener.Close()
		})
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()
	app.Run(nil)
	return context.Cause(appContext)
}

func NewRenderWindow(
	app *gtk.Application,
	opts options,
	conn net.Conn,
	ctx context.Context,
	quit func(error),
) *RenderWindow {
	var err error
	w := &RenderWindow{
		opts:        opts,
		ctx:         ctx,
		quit:        quit,
		sendMessage: make(chan statusMessage, 1),
	}

	go w.handleSend(conn)

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetTitle("GLMandel " + opts.program.Name)
	if opts.width > 0 && opts.height > 0 {
		w.SetDefaultSize(opts.width, opts.height)
	} else {
		w.SetDefaultSize(getWindowSize())
	}

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.SetHasDepthBuffer(true)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)

	if opts.animated() {
		w.animator = viewport.NewAnimator(viewport.NewAnimation(), w.renderAnimation)
		w.renderAnimation(w.animator.Animation())
	} else {
		w.controller = viewport.NewController(viewport.New(), w.renderViewport)
		w.renderViewport(w.controller.Viewport())
		w.gla.SetCanFocus(true)
		w.gla.SetEvents(int(gdk.KEY_PRESS_MASK))
		w.gla.Connect("key-press-event", w.keyPress)
	}

	w.Add(w.gla)
	w.ShowAll()
	w.gla.GrabFocus()

	return w
}

func getWindowSize() (width, height int) {
	width = 1200
	height = 800

	display, err := gdk.DisplayGetDefault()
	if err != nil {
		return
	}

	monitor, err := display.GetPrimaryMonitor()
	if err != nil {
		return
	}

	width = int(float32(monitor.GetGeometry().GetWidth()) * .6)
	height = int(float32(monitor.GetGeometry().GetHeight()) * .6)
	return
}

type RenderWindow struct {
	*gtk.ApplicationWindow
	gla  *gtk.GLArea
	opts options

	ctx  context.Context
	quit func(error)

	glctx      *render.GLContext
	pipeline   *render.Pipeline
	controller *viewport.Controller
	animator   *viewport.Animator
	uniforms   programs.Uniforms

	sendMessage chan statusMessage
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	if err := gla.GetError(); err != nil {
		w.fail(fmt.Errorf("%w: %v", render.ErrContextUnavailable, err))
		return
	}

	var err error
	w.glctx, err = render.NewGLContext(w.opts.debug)
	if err != nil {
		w.fail(err)
		return
	}

	if w.animator != nil {
		glib.TimeoutAdd(uint((viewport.FramePeriod+time.Millisecond/2)/time.Millisecond), func() bool {
			if w.ctx.Err() != nil {
				return false
			}
			w.animator.Frame()
			return true
		})
	}
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) bool {
	if w.glctx == nil {
		return false
	}

	width, height := w.surfaceSize()

	// The pipeline is built on the first frame, when the area has its real size.
	if w.pipeline == nil {
		pipeline, err := render.Setup(w.glctx, w.opts.program, float32(width), float32(height))
		if err != nil {
			w.glctx = nil
			w.fail(err)
			return false
		}
		w.pipeline = pipeline
	}

	gla.AttachBuffers()
	w.pipeline.Render(width, height, w.uniforms)
	return true
}

// surfaceSize is the drawable size in device pixels.
func (w *RenderWindow) surfaceSize() (width, height int) {
	scale := w.gla.GetScaleFactor()
	return w.gla.GetAllocatedWidth() * scale, w.gla.GetAllocatedHeight() * scale
}

func (w *RenderWindow) keyPress(gla *gtk.GLArea, event *gdk.Event) bool {
	key := gdk.EventKeyNewFromEvent(event)
	k := gdkKey(key.KeyVal())
	if k == viewport.KeyNone {
		return false
	}

	w.controller.HandleKey(k)
	slog.Debug("key", "key", k, "viewport", w.controller.Viewport())
	return true
}

func (w *RenderWindow) renderViewport(v viewport.Viewport) {
	w.uniforms.Zoom = v.Zoom
	w.uniforms.Center = v.Center
	w.queueRender(statusMessage{Program: w.opts.program.Name, Viewport: v})
}

func (w *RenderWindow) renderAnimation(a viewport.Animation) {
	w.uniforms.ModVal = int32(a.ModVal)
	w.uniforms.Multi = float32(a.Multi)
	w.queueRender(statusMessage{Program: w.opts.program.Name, Animation: a})
}

func (w *RenderWindow) queueRender(msg statusMessage) {
	if w.gla != nil {
		w.gla.QueueRender()
	}
	w.publish(msg)
}

// publish hands msg to the sender, replacing any message not yet sent.
func (w *RenderWindow) publish(msg statusMessage) {
	for {
		select {
		case w.sendMessage <- msg:
			return
		default:
		}

		select {
		case <-w.sendMessage:
		default:
		}
	}
}

func (w *RenderWindow) fail(err error) {
	slog.Error("render window", "err", err)
	glib.IdleAdd(func() {
		NewErrorDialog(w.ApplicationWindow, err)
		w.quit(err)
	})
}

func (w *RenderWindow) handleSend(conn net.Conn) {
	enc := gob.NewEncoder(conn)
	defer conn.Close()

	for {
		select {
		case msg := <-w.sendMessage:
			err := enc.Encode(&msg)
			if err != nil {
				if w.ctx.Err() == nil && !errors.Is(err, io.ErrClosedPipe) {
					slog.Warn("status stream closed", "err", err)
				}
				return
			}
		case <-w.ctx.Done():
			return
		}
	}
}
