package shapes

import (
	"image"
	"math/rand/v2"

	"github.com/matzehuels/teeforge/pkg/core/palette"
	"github.com/matzehuels/teeforge/pkg/core/seed"
)

const (
	// MinAlpha and MaxAlpha bound the opacity of filled shapes.
	MinAlpha = 100
	MaxAlpha = 200

	// MinSizeFrac and MaxSizeFrac bound the shape size as a fraction of the
	// shorter canvas side.
	MinSizeFrac = 0.05
	MaxSizeFrac = 0.35
)

// Random draws one layer for a width x height canvas. pal must be non-empty.
//
// Draw order: color, alpha, kind, center, size, then the kind-specific
// parameters.
func Random(rng *rand.Rand, width, height int, pal palette.Palette) Shape {
	b := Base{Color: pal.Pick(rng)}
	b.Alpha = uint8(seed.IntRange(rng, MinAlpha, MaxAlpha))
	kind := seed.Choice(rng, Kinds)
	b.Center = image.Pt(seed.IntRange(rng, 0, width), seed.IntRange(rng, 0, height))
	m := float64(min(width, height))
	b.Size = seed.IntRange(rng, int(MinSizeFrac*m), int(MaxSizeFrac*m))

	switch kind {
	case KindCircle:
		return Circle{b}
	case KindSquare:
		return Square{b}
	case KindRect:
		w2 := float64(b.Size) * seed.Uniform(rng, 0.6, 1.6)
		h2 := float64(b.Size) * seed.Uniform(rng, 0.4, 1.4)
		cx, cy := float64(b.Center.X), float64(b.Center.Y)
		return Rect{
			Base: b,
			Min:  image.Pt(int(cx-w2), int(cy-h2)),
			Max:  image.Pt(int(cx+w2), int(cy+h2)),
		}
	case KindPoly:
		n := seed.IntRange(rng, 3, 8)
		return Poly{Base: b, Points: polygon(rng, b.Center, b.Size, n)}
	default:
		from := image.Pt(seed.IntRange(rng, 0, width), seed.IntRange(rng, 0, height))
		to := image.Pt(seed.IntRange(rng, 0, width), seed.IntRange(rng, 0, height))
		return Line{Base: b, From: from, To: to, Width: seed.IntRange(rng, 2, 8)}
	}
}
