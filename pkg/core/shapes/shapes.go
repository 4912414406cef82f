package shapes

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/fogleman/gg"

	"github.com/matzehuels/teeforge/pkg/core/seed"
)

// Kind tags a shape variant.
type Kind int

const (
	KindCircle Kind = iota
	KindSquare
	KindRect
	KindPoly
	KindLine
)

// Kinds lists every variant in the order used for random selection.
var Kinds = []Kind{KindCircle, KindSquare, KindRect, KindPoly, KindLine}

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindSquare:
		return "square"
	case KindRect:
		return "rect"
	case KindPoly:
		return "poly"
	case KindLine:
		return "line"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is one layer. The set of implementations is closed.
type Shape interface {
	Kind() Kind
	draw(dc *gg.Context)
}

// Base holds the parameters every layer draws before its kind-specific ones.
type Base struct {
	Center image.Point
	Size   int
	Color  color.RGBA
	Alpha  uint8
}

func (b Base) fill() color.RGBA {
	return color.RGBA{R: b.Color.R, G: b.Color.G, B: b.Color.B, A: b.Alpha}
}

// Circle is a disc of radius Size around Center.
type Circle struct{ Base }

// Square covers the box Center ± Size.
type Square struct{ Base }

// Rect covers the inclusive box Min..Max.
type Rect struct {
	Base
	Min, Max image.Point
}

// Poly is a closed polygon around Center.
type Poly struct {
	Base
	Points []image.Point
}

// Line is an opaque stroke between two points. Base.Alpha is drawn but unused.
type Line struct {
	Base
	From, To image.Point
	Width    int
}

func (Circle) Kind() Kind { return KindCircle }
func (Square) Kind() Kind { return KindSquare }
func (Rect) Kind() Kind   { return KindRect }
func (Poly) Kind() Kind   { return KindPoly }
func (Line) Kind() Kind   { return KindLine }

// Pixel (x, y) covers [x, x+1); geometry is shifted by half a pixel so
// integer coordinates land on pixel centers.
const half = 0.5

func setColor(dc *gg.Context, c color.RGBA) {
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}

func (s Circle) draw(dc *gg.Context) {
	setColor(dc, s.fill())
	dc.DrawCircle(float64(s.Center.X)+half, float64(s.Center.Y)+half, float64(s.Size)+half)
	dc.Fill()
}

func (s Square) draw(dc *gg.Context) {
	box(dc, s.Center.Sub(image.Pt(s.Size, s.Size)), s.Center.Add(image.Pt(s.Size, s.Size)), s.fill())
}

func (s Rect) draw(dc *gg.Context) {
	box(dc, s.Min, s.Max, s.fill())
}

// box fills the inclusive pixel range min..max.
func box(dc *gg.Context, lo, hi image.Point, c color.RGBA) {
	if hi.X < lo.X || hi.Y < lo.Y {
		return
	}
	setColor(dc, c)
	dc.DrawRectangle(float64(lo.X), float64(lo.Y), float64(hi.X-lo.X+1), float64(hi.Y-lo.Y+1))
	dc.Fill()
}

func (s Poly) draw(dc *gg.Context) {
	if len(s.Points) < 3 {
		return
	}
	setColor(dc, s.fill())
	for i, p := range s.Points {
		x, y := float64(p.X)+half, float64(p.Y)+half
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.Fill()
}

func (s Line) draw(dc *gg.Context) {
	c := s.Color
	c.A = 0xff
	setColor(dc, c)
	dc.SetLineWidth(float64(s.Width))
	dc.SetLineCap(gg.LineCapButt)
	dc.DrawLine(float64(s.From.X)+half, float64(s.From.Y)+half, float64(s.To.X)+half, float64(s.To.Y)+half)
	dc.Stroke()
}

// polygon places n vertices at evenly spaced angles with jitter and a
// per-vertex radius.
func polygon(rng *rand.Rand, center image.Point, size, n int) []image.Point {
	pts := make([]image.Point, n)
	for i := range pts {
		ang := 2*math.Pi*float64(i)/float64(n) + seed.Uniform(rng, -0.2, 0.2)
		r := float64(size) * seed.Uniform(rng, 0.6, 1.2)
		pts[i] = image.Pt(
			int(float64(center.X)+r*math.Cos(ang)),
			int(float64(center.Y)+r*math.Sin(ang)),
		)
	}
	return pts
}
