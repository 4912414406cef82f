package effects

import (
	"github.com/disintegration/imaging"

	"github.com/matzehuels/teeforge/pkg/core/canvas"
)

// Upscale is the supersampling factor of the antialiasing finisher.
const Upscale = 1.5

// Smooth upsamples c by 1.5 with a bicubic filter and downsamples it back with
// Lanczos.
func Smooth(c *canvas.Canvas) error {
	w, h := c.Width(), c.Height()
	big := imaging.Resize(c.Image(), int(float64(w)*Upscale), int(float64(h)*Upscale), imaging.CatmullRom)
	return c.Replace(imaging.Resize(big, w, h, imaging.Lanczos))
}
