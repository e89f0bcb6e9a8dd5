package main

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandel/programs"
	"github.com/stewi1014/glmandel/viewport"
)

const (
	thumbnailWidth  = 240
	thumbnailHeight = 160
)

// statusMessage is the state snapshot the render window streams to the
// status window after every change.
type statusMessage struct {
	Program   string
	Viewport  viewport.Viewport
	Animation viewport.Animation
}

func (m statusMessage) String() string {
	if m.Animation.ModVal != 0 {
		return fmt.Sprintf("%s\nphase %.2f\nperiod %d", m.Program, m.Animation.Multi, m.Animation.ModVal)
	}
	return fmt.Sprintf("%s\nzoom %.6g\ncenter %.10g, %.10g",
		m.Program, m.Viewport.Zoom, m.Viewport.Center[0], m.Viewport.Center[1])
}

func (m statusMessage) uniforms() programs.Uniforms {
	return programs.Uniforms{
		Zoom:   m.Viewport.Zoom,
		Center: m.Viewport.Center,
		ModVal: int32(m.Animation.ModVal),
		Multi:  float32(m.Animation.Multi),
	}
}

func NewStatusWindow(
	app *gtk.Application,
	program programs.Program,
	listener net.Listener,
	ctx context.Context,
	quit func(error),
) *StatusWindow {
	var err error
	w := &StatusWindow{
		program: program,
		quit:    quit,
	}
	w.ctx, w.close = context.WithCancel(ctx)

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetTitle("GLMandel Status")
	w.SetDefaultSize(thumbnailWidth+40, thumbnailHeight+120)

	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 8)
	if err != nil {
		quit(fmt.Errorf("gtk.BoxNew: %w", err))
		return nil
	}

	w.label, err = gtk.LabelNew(program.Name)
	if err != nil {
		quit(fmt.Errorf("gtk.LabelNew: %w", err))
		return nil
	}
	w.label.SetSelectable(true)

	w.thumbnail, err = gtk.ImageNew()
	if err != nil {
		quit(fmt.Errorf("gtk.ImageNew: %w", err))
		return nil
	}

	box.PackStart(w.thumbnail, false, false, 0)
	box.PackStart(w.label, false, false, 0)
	w.Add(box)
	w.Connect("destroy", w.close)
	w.ShowAll()

	go w.handleReceive(listener)

	return w
}

type StatusWindow struct {
	*gtk.ApplicationWindow
	label     *gtk.Label
	thumbnail *gtk.Image
	program   programs.Program

	ctx   context.Context
	close context.CancelFunc
	quit  func(error)

	// only touched on the GTK main loop
	rendering bool
	pending   *statusMessage
}

func (w *StatusWindow) handleReceive(listener net.Listener) {
	conn, err := listener.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	context.AfterFunc(w.ctx, func() {
		conn.Close()
	})

	dec := gob.NewDecoder(conn)
	for {
		var msg statusMessage
		err := dec.Decode(&msg)
		if err != nil {
			if w.ctx.Err() == nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
				slog.Warn("status stream", "err", err)
			}
			return
		}

		glib.IdleAdd(func() {
			w.update(msg)
		})
	}
}

func (w *StatusWindow) update(msg statusMessage) {
	if w.ctx.Err() != nil {
		return
	}
	w.label.SetText(msg.String())

	w.pending = &msg
	if !w.rendering {
		w.renderThumbnail()
	}
}

// renderThumbnail draws the latest pending state on the CPU in the
// background. Updates that arrive meanwhile collapse into one re-render.
func (w *StatusWindow) renderThumbnail() {
	msg := *w.pending
	w.pending = nil
	w.rendering = true

	go func() {
		img, err := thumbnail(w.ctx, w.program, msg.uniforms())

		glib.IdleAdd(func() {
			w.rendering = false
			if w.ctx.Err() != nil {
				return
			}

			if err == nil {
				err = w.setThumbnail(img)
			}
			if err != nil {
				slog.Warn("thumbnail", "err", err)
			}

			if w.pending != nil {
				w.renderThumbnail()
			}
		})
	}()
}

func thumbnail(ctx context.Context, program programs.Program, uniforms programs.Uniforms) (*image.RGBA, error) {
	img, err := program.GetImage(uniforms, thumbnailWidth, thumbnailHeight)
	if err != nil {
		return nil, err
	}

	return programs.Buffer(ctx, programs.ToImage(programs.AntiAlias9x(img, 1.0/3)))
}

func (w *StatusWindow) setThumbnail(img *image.RGBA) error {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	pixbuf, err := gdk.PixbufNew(gdk.COLORSPACE_RGB, true, 8, width, height)
	if err != nil {
		return fmt.Errorf("gdk.PixbufNew: %w", err)
	}

	pixels := pixbuf.GetPixels()
	stride := pixbuf.GetRowstride()
	for y := 0; y < height; y++ {
		copy(pixels[y*stride:y*stride+width*4], img.Pix[y*img.Stride:y*img.Stride+width*4])
	}

	w.thumbnail.SetFromPixbuf(pixbuf)
	return nil
}
