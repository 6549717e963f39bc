package termviz

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// KittyOptions tunes the kitty-style chunked raw-pixel transfer.
type KittyOptions struct {
	// ImageID identifies the transfer; zero picks a random 32-bit id.
	ImageID uint32
	// Placement adds C=1 so the image is placed inline at the cursor.
	Placement bool
	// ChunkSize overrides the per-escape payload size (base64 characters).
	ChunkSize int
}

// EncodeKitty turns a row-major RGBA buffer into a sequence of kitty
// graphics escapes. The raw interleaved RGBA bytes are base64-encoded as a
// whole and the resulting text is split into fixed-size chunks: the first
// escape carries the full metadata, later ones only the continuation flag,
// and every chunk except the last has m=1.
func EncodeKitty(pixels []RGBA, width, height int, opts KittyOptions) string {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("termviz: negative kitty dimensions %dx%d", width, height))
	}
	if len(pixels) != width*height {
		panic(fmt.Sprintf("termviz: pixel buffer length %d does not match %dx%d", len(pixels), width, height))
	}

	raw := make([]byte, 0, len(pixels)*4)
	for _, px := range pixels {
		raw = append(raw, px.R, px.G, px.B, px.A)
	}

	id := opts.ImageID
	for id == 0 {
		id = rand.Uint32()
	}

	chunks := SplitChunks(Base64Encode(raw), opts.ChunkSize)
	if len(chunks) == 0 {
		chunks = []string{""}
	}

	var sb strings.Builder
	for i, chunk := range chunks {
		more := 1
		if i == len(chunks)-1 {
			more = 0
		}
		sb.WriteString("\x1b_G")
		if i == 0 {
			fmt.Fprintf(&sb, "a=T,f=32,s=%d,v=%d,i=%d", width, height, id)
			if opts.Placement {
				sb.WriteString(",C=1")
			}
			fmt.Fprintf(&sb, ",m=%d", more)
		} else {
			fmt.Fprintf(&sb, "m=%d", more)
		}
		sb.WriteByte(';')
		sb.WriteString(chunk)
		sb.WriteString("\x1b\\")
	}
	return sb.String()
}

// kittyRenderer rasterizes a canvas and transmits it with the kitty
// protocol, placed inline.
type kittyRenderer struct{}

func (r *kittyRenderer) Type() RendererType {
	return RendererKitty
}

func (r *kittyRenderer) Render(c *Canvas, caps *TerminalCapabilities, opts RenderOptions) (string, error) {
	pixels, w, h := CanvasPixels(c, opts.PixelRatio, opts.Background)
	return EncodeKitty(pixels, w, h, KittyOptions{
		ImageID:   opts.KittyID,
		Placement: true,
	}), nil
}
