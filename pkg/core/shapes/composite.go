package shapes

import (
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/teeforge/pkg/core/canvas"
	"github.com/matzehuels/teeforge/pkg/core/palette"
)

// Composite draws layers random shapes onto c.
func Composite(c *canvas.Canvas, pal palette.Palette, layers int, rng *rand.Rand) error {
	if layers <= 0 {
		return nil
	}
	list := make([]Shape, layers)
	for i := range list {
		list[i] = Random(rng, c.Width(), c.Height(), pal)
	}
	return Draw(c, list...)
}

// Draw paints the given shapes onto c in order.
func Draw(c *canvas.Canvas, list ...Shape) error {
	if len(list) == 0 {
		return nil
	}
	dc := gg.NewContextForImage(c.Image())
	for _, s := range list {
		s.draw(dc)
	}
	return c.Replace(imaging.Clone(dc.Image()))
}
