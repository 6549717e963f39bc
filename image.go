package termviz

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/charmbracelet/x/mosaic"
	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/soniakeys/quant/median"
	xdraw "golang.org/x/image/draw"
)

// ImagePixels flattens an image.Image into the row-major RGBA buffer the
// protocol encoders consume.
func ImagePixels(img image.Image) ([]RGBA, int, int) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	pixels := make([]RGBA, w*h)
	for i := range pixels {
		o := i * 4
		pixels[i] = RGBA{
			R: rgba.Pix[o],
			G: rgba.Pix[o+1],
			B: rgba.Pix[o+2],
			A: rgba.Pix[o+3],
		}
	}
	return pixels, w, h
}

// ResizeImage scales an image to the given pixel dimensions with
// approximate bilinear interpolation.
func ResizeImage(img image.Image, width, height int) image.Image {
	if img == nil || width <= 0 || height <= 0 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// QuantizeImage derives a palette of at most maxColors entries from the
// image's color population using median-cut quantization.
func QuantizeImage(img image.Image, maxColors int) color.Palette {
	if maxColors <= 0 {
		maxColors = 256
	}
	return median.Quantizer(maxColors).Palette(img).ColorPalette()
}

// DitherImage applies Floyd-Steinberg dithering against the given palette.
func DitherImage(img image.Image, palette color.Palette) image.Image {
	if img == nil || len(palette) == 0 {
		return img
	}
	d := dither.NewDitherer(palette)
	d.Matrix = dither.FloydSteinberg
	return d.Dither(img)
}

// RenderImage routes an image.Image through the same selection pipeline as
// canvases: graphics protocols transmit the (resized) pixels, everything
// else degrades to a half-block mosaic sized in character cells.
func (e *Engine) RenderImage(img image.Image, opts RenderOptions) (string, error) {
	if img == nil {
		return "", fmt.Errorf("image cannot be nil")
	}
	caps := e.detector.Capabilities()
	selected := SelectRenderer(SelectConfig{
		Force:     opts.Protocol,
		Preferred: opts.Preferred,
		Minimum:   opts.Minimum,
	}, caps)

	cols, rows := opts.Width, opts.Height
	if cols <= 0 {
		cols = caps.Width
	}
	if rows <= 0 {
		rows = caps.Height
	}

	if !selected.Graphics() {
		m := mosaic.New().Width(cols).Height(rows)
		return m.Render(img), nil
	}
	if !selected.Satisfiable(caps) {
		return GraphicsUnsupported, nil
	}

	ratio := opts.PixelRatio.orDefault(defaultGraphicsRatio)
	pixels, w, h := ImagePixels(ResizeImage(img, cols*ratio.X, rows*ratio.Y))

	switch selected {
	case RendererKitty:
		return e.finish(selected, EncodeKitty(pixels, w, h, KittyOptions{
			ImageID:   opts.KittyID,
			Placement: true,
		}), nil)
	case RendererITerm2:
		return e.finish(selected, EncodeITerm2(pixels, w, h, ITerm2Options{
			Name:                opts.ImageName,
			PreserveAspectRatio: opts.PreserveAspectRatio,
		}), nil)
	default:
		return e.finish(selected, EncodeSixel(pixels, w, h, opts.SixelOpts), nil)
	}
}
