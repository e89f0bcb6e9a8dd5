package programs

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime/debug"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// AntiAlias9x samples 9 positions for each sampled position,
// returning the average colour.
//
// offset is the distance in pixels between neighbouring samples.
func AntiAlias9x(img Image, offset float64) Image {
	return &antialias9xImage{
		Image:  img,
		offset: offset,
	}
}

type antialias9xImage struct {
	Image
	offset float64
}

func (i *antialias9xImage) GetPixel(pos mgl64.Vec2) color.RGBA {
	var r, g, b, a int
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			c := i.Image.GetPixel(mgl64.Vec2{
				pos[0] + float64(dx)*i.offset,
				pos[1] + float64(dy)*i.offset,
			})
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
			a += int(c.A)
		}
	}
	return color.RGBA{
		R: uint8(r / 9),
		G: uint8(g / 9),
		B: uint8(b / 9),
		A: uint8(a / 9),
	}
}

// ToImage adapts img to image.Image. Pixels are sampled at their centres and
// rows are flipped, so row 0 of the result is the top of the window.
func ToImage(img Image) image.Image {
	return &imageImage{Image: img}
}

type imageImage struct {
	Image
}

func (i *imageImage) At(x, y int) color.Color {
	b := i.Bounds()
	return i.GetPixel(mgl64.Vec2{
		float64(x) + .5,
		float64(b.Max.Y-1-y+b.Min.Y) + .5,
	})
}

func (i *imageImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (i *imageImage) Opaque() bool {
	return true
}

const chunkSize = 50

// Buffer renders img into a new RGBA image, one goroutine per column chunk.
// It returns early with the context's error if ctx is cancelled.
func Buffer(ctx context.Context, img image.Image) (*image.RGBA, error) {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var wg sync.WaitGroup
	for chunkMin := bounds.Min.X; chunkMin < bounds.Max.X; chunkMin += chunkSize {
		chunkMax := min(chunkMin+chunkSize, bounds.Max.X)

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer catchPanic(cancel)

			for x := chunkMin; x < chunkMax; x++ {
				if ctx.Err() != nil {
					return
				}

				for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
					dst.Set(x, y, img.At(x, y))
				}
			}
		}()
	}

	wg.Wait()

	if err := context.Cause(ctx); err != nil {
		return nil, err
	}
	return dst, nil
}

func catchPanic(cancel context.CancelCauseFunc) {
	if v := recover(); v != nil {
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", v)
		}
		cancel(fmt.Errorf("%w\n%v", err, string(debug.Stack())))
	}
}
