// Package overlay stamps a rotated word onto a design.
package overlay

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/teeforge/pkg/core/canvas"
	"github.com/matzehuels/teeforge/pkg/core/palette"
	"github.com/matzehuels/teeforge/pkg/core/seed"
	"github.com/matzehuels/teeforge/pkg/fonts"
)

// Words is the overlay vocabulary.
var Words = []string{"VIBE", "RAW", "WAVE", "BOLD", "MOTION", "EDGE"}

const (
	MinAlpha = 160
	MaxAlpha = 220
	MaxAngle = 25

	// MinSizeFrac and MaxSizeFrac bound the font size as a fraction of the
	// shorter canvas side.
	MinSizeFrac = 0.08
	MaxSizeFrac = 0.18
)

// FaceLoader resolves a font face of a given pixel size. It must not fail.
type FaceLoader interface {
	Face(size float64) (font.Face, fonts.Source)
}

// Text describes one overlay.
type Text struct {
	Word   string
	Color  color.RGBA
	Alpha  uint8
	Size   int
	Anchor image.Point
	// Angle is the counter-clockwise rotation in degrees.
	Angle int
	Font  fonts.Source
}

// Random draws an overlay for a width x height canvas.
func Random(rng *rand.Rand, width, height int, pal palette.Palette) Text {
	t := Text{Word: seed.Choice(rng, Words)}
	t.Color = pal.Pick(rng)
	t.Alpha = uint8(seed.IntRange(rng, MinAlpha, MaxAlpha))
	t.Size = int(float64(min(width, height)) * seed.Uniform(rng, MinSizeFrac, MaxSizeFrac))
	w, h := float64(width), float64(height)
	t.Anchor = image.Pt(
		seed.IntRange(rng, int(0.1*w), int(0.8*w)),
		seed.IntRange(rng, int(0.1*h), int(0.8*h)),
	)
	t.Angle = seed.IntRange(rng, -MaxAngle, MaxAngle)
	return t
}

// Apply draws a random overlay onto c and returns what was drawn.
func Apply(c *canvas.Canvas, pal palette.Palette, rng *rand.Rand, loader FaceLoader) Text {
	t := Random(rng, c.Width(), c.Height(), pal)
	face, src := loader.Face(float64(t.Size))
	t.Font = src
	Draw(c, t, face)
	return t
}

// Draw renders t on a transparent layer, rotates the layer about the anchor
// and composites it over c. The top-left of the text sits at the anchor.
func Draw(c *canvas.Canvas, t Text, face font.Face) {
	layer := gg.NewContext(c.Width(), c.Height())
	layer.SetFontFace(face)
	layer.SetRGBA255(int(t.Color.R), int(t.Color.G), int(t.Color.B), int(t.Alpha))

	ax, ay := float64(t.Anchor.X), float64(t.Anchor.Y)
	layer.RotateAbout(gg.Radians(float64(-t.Angle)), ax, ay)
	ascent := float64(face.Metrics().Ascent.Ceil())
	layer.DrawString(t.Word, ax, ay+ascent)

	over(c.Image(), layer.Image().(*image.RGBA))
	if !c.HasAlpha() {
		c.SetOpaque()
	}
}

// over composites a premultiplied layer onto a non-premultiplied canvas of the
// same size. Pixels the layer does not cover are left untouched.
func over(dst *image.NRGBA, src *image.RGBA) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < h; y++ {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		di := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		for x := 0; x < w; x, si, di = x+1, si+4, di+4 {
			sa := float64(src.Pix[si+3]) / 255
			if sa == 0 {
				continue
			}
			da := float64(dst.Pix[di+3]) / 255
			keep := da * (1 - sa)
			oa := sa + keep
			for k := 0; k < 3; k++ {
				v := (float64(src.Pix[si+k]) + float64(dst.Pix[di+k])*keep) / oa
				dst.Pix[di+k] = uint8(min(v+0.5, 255))
			}
			dst.Pix[di+3] = uint8(min(oa*255+0.5, 255))
		}
	}
}
