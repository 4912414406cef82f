package effects

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand/v2"

	"golang.org/x/image/vector"

	"github.com/matzehuels/teeforge/pkg/core/canvas"
	"github.com/matzehuels/teeforge/pkg/core/palette"
	"github.com/matzehuels/teeforge/pkg/core/seed"
)

const (
	MinSplashes  = 6
	MaxSplashes  = 14
	MinThickness = 2
	MaxThickness = 10

	// capSteps is the number of segments approximating each round cap.
	capSteps = 12
)

// Segment is one splash stroke.
type Segment struct {
	From, To  image.Point
	Color     color.RGBA
	Thickness int
}

// Splash draws 6 to 14 antialiased strokes straight into the color channels.
func Splash(c *canvas.Canvas, pal palette.Palette, rng *rand.Rand) {
	n := seed.IntRange(rng, MinSplashes, MaxSplashes)
	w, h := c.Width(), c.Height()
	for i := 0; i < n; i++ {
		from := image.Pt(seed.IntRange(rng, 0, w-1), seed.IntRange(rng, 0, h-1))
		to := image.Pt(seed.IntRange(rng, 0, w-1), seed.IntRange(rng, 0, h-1))
		col := pal.Pick(rng)
		thickness := seed.IntRange(rng, MinThickness, MaxThickness)
		Stroke(c, Segment{From: from, To: to, Color: col, Thickness: thickness})
	}
}

// Stroke writes one segment with round caps. Coverage blends the old color
// toward the stroke color; alpha is left alone.
func Stroke(c *canvas.Canvas, s Segment) {
	r := math.Max(float64(s.Thickness)/2, 0.5)
	x1, y1 := float64(s.From.X)+0.5, float64(s.From.Y)+0.5
	x2, y2 := float64(s.To.X)+0.5, float64(s.To.Y)+0.5

	area := image.Rect(
		int(math.Floor(math.Min(x1, x2)-r)), int(math.Floor(math.Min(y1, y2)-r)),
		int(math.Ceil(math.Max(x1, x2)+r)), int(math.Ceil(math.Max(y1, y2)+r)),
	).Intersect(c.Bounds())
	if area.Empty() {
		return
	}

	z := vector.NewRasterizer(area.Dx(), area.Dy())
	z.DrawOp = draw.Src
	stadium(z, x1-float64(area.Min.X), y1-float64(area.Min.Y), x2-float64(area.Min.X), y2-float64(area.Min.Y), r)
	mask := image.NewAlpha(image.Rect(0, 0, area.Dx(), area.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	img := c.Image()
	line := [3]float64{float64(s.Color.R), float64(s.Color.G), float64(s.Color.B)}
	for y := 0; y < area.Dy(); y++ {
		for x := 0; x < area.Dx(); x++ {
			a := mask.Pix[y*mask.Stride+x]
			if a == 0 {
				continue
			}
			cov := float64(a) / 255
			i := img.PixOffset(area.Min.X+x, area.Min.Y+y)
			for k := 0; k < 3; k++ {
				img.Pix[i+k] = uint8(math.Round(float64(img.Pix[i+k])*(1-cov) + line[k]*cov))
			}
		}
	}
}

// stadium adds the outline of a thick segment with round caps: a half circle
// around the start, the far side, a half circle around the end.
func stadium(z *vector.Rasterizer, x1, y1, x2, y2, r float64) {
	theta := math.Atan2(y2-y1, x2-x1)
	first := true
	arc := func(cx, cy, from float64) {
		for i := 0; i <= capSteps; i++ {
			a := from + math.Pi*float64(i)/capSteps
			px, py := float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a))
			if first {
				z.MoveTo(px, py)
				first = false
			} else {
				z.LineTo(px, py)
			}
		}
	}
	arc(x1, y1, theta+math.Pi/2)
	arc(x2, y2, theta-math.Pi/2)
	z.ClosePath()
}
