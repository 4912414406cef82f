package effects

import (
	"math/rand/v2"

	"github.com/matzehuels/teeforge/pkg/core/canvas"
)

const (
	// MinStrength and MaxStrength bound the noise blend strength drawn per run.
	MinStrength = 0.15
	MaxStrength = 0.35
)

// BlendChannel mixes one channel value with a noise sample:
// (1-strength)*v + strength*n in float32, clamped to [0, 255] and truncated.
func BlendChannel(v uint8, n float32, strength float64) uint8 {
	out := float32(1-strength)*float32(v) + float32(strength)*n
	switch {
	case out <= 0:
		return 0
	case out >= 255:
		return 255
	}
	return uint8(out)
}

// BlendNoise mixes a uniform noise field into the color channels. Noise is
// drawn row by row, three samples per pixel. Alpha is copied through.
func BlendNoise(c *canvas.Canvas, strength float64, rng *rand.Rand) {
	img := c.Image()
	w, h := c.Width(), c.Height()
	for y := 0; y < h; y++ {
		i := img.PixOffset(0, y)
		for x := 0; x < w; x, i = x+1, i+4 {
			for k := 0; k < 3; k++ {
				n := float32(rng.Float64() * 255)
				img.Pix[i+k] = BlendChannel(img.Pix[i+k], n, strength)
			}
		}
	}
}
