package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// Canvas is the mutable pixel buffer shared by the pipeline stages.
type Canvas struct {
	img   *image.NRGBA
	alpha bool
}

// New allocates a width x height canvas. Opaque canvases start white,
// transparent ones start with every channel at zero.
func New(width, height int, transparent bool) *Canvas {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if !transparent {
		for i := range img.Pix {
			img.Pix[i] = 0xff
		}
	}
	return &Canvas{img: img, alpha: transparent}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

// HasAlpha reports whether the canvas carries a meaningful alpha channel.
func (c *Canvas) HasAlpha() bool { return c.alpha }

// Channels returns 4 for RGBA canvases and 3 for RGB canvases.
func (c *Canvas) Channels() int {
	if c.alpha {
		return 4
	}
	return 3
}

// Image returns the underlying buffer. Callers may write to it in place.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// At returns the pixel at (x, y).
func (c *Canvas) At(x, y int) color.NRGBA { return c.img.NRGBAAt(x, y) }

// Replace swaps in a buffer produced by a stage. The new buffer must have the
// same dimensions; RGB canvases get their alpha re-asserted to 255.
func (c *Canvas) Replace(img *image.NRGBA) error {
	if img.Rect.Dx() != c.Width() || img.Rect.Dy() != c.Height() {
		return fmt.Errorf("canvas size changed from %dx%d to %dx%d",
			c.Width(), c.Height(), img.Rect.Dx(), img.Rect.Dy())
	}
	if img.Rect.Min != (image.Point{}) {
		img = &image.NRGBA{Pix: img.Pix, Stride: img.Stride, Rect: image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy())}
	}
	c.img = img
	if !c.alpha {
		c.SetOpaque()
	}
	return nil
}

// SetOpaque forces alpha to 255 on every pixel.
func (c *Canvas) SetOpaque() {
	w, h := c.Width(), c.Height()
	for y := 0; y < h; y++ {
		row := c.img.Pix[y*c.img.Stride : y*c.img.Stride+w*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	img := image.NewNRGBA(c.img.Rect)
	copy(img.Pix, c.img.Pix)
	return &Canvas{img: img, alpha: c.alpha}
}

// EncodePNG writes the canvas as PNG. The encoder picks an RGB color type for
// fully opaque content and RGBA otherwise.
func (c *Canvas) EncodePNG(w io.Writer) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	return enc.Encode(w, c.img)
}

// PNG returns the encoded canvas.
func (c *Canvas) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
