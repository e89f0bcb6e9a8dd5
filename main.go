package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/stewi1014/glmandel/programs"
	"github.com/stewi1014/glmandel/render"
)

const appID = "com.github.stewi1014.glmandel"

type options struct {
	program programs.Program
	width   int
	height  int
	debug   bool
}

// animated reports whether the program is driven by the frame timer rather
// than by keyboard input.
func (o options) animated() bool {
	return o.program.Name == programs.Ripple.Name
}

func init() {
	// GTK and GLFW both need the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		programName = flag.String("program", programs.Mandelbrot.Name,
			"program to render: "+strings.Join(programs.Names(), ", "))
		frontend = flag.String("frontend", "gtk", "window system: gtk or glfw")
		width    = flag.Int("width", 0, "initial window width, 0 sizes from the primary monitor")
		height   = flag.Int("height", 0, "initial window height, 0 sizes from the primary monitor")
		debug    = flag.Bool("debug", false, "log debug output, including OpenGL debug messages")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger)

	program, err := programs.Lookup(*programName)
	if err != nil {
		logger.Error("invalid -program", "err", err)
		os.Exit(2)
	}

	opts := options{
		program: program,
		width:   *width,
		height:  *height,
		debug:   *debug,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *frontend, opts); err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, render.ErrContextUnavailable) {
			logger.Error("no usable OpenGL 4.6 context", "err", err)
		} else {
			logger.Error("exiting", "err", err)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, frontend string, opts options) error {
	slog.Info("starting", "program", opts.program.Name, "frontend", frontend)

	switch frontend {
	case "gtk":
		return gtkMain(ctx, opts)
	case "glfw":
		return glfwMain(ctx, opts)
	default:
		return fmt.Errorf("unknown frontend %q", frontend)
	}
}
