// Package palette builds color palettes from color-harmony strategies.
//
// A palette is generated once per design from the general random stream and
// is read-only afterwards. Non-random strategies share one base hue and one
// saturation/value pair; hue offsets are fixed per strategy and wrap modulo 1.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/teeforge/pkg/core/seed"
	"github.com/matzehuels/teeforge/pkg/errors"
)

// Strategy names a color-harmony rule.
type Strategy string

const (
	Random        Strategy = "random"
	Complementary Strategy = "complementary"
	Triadic       Strategy = "triadic"
	Analogous     Strategy = "analogous"
	Monochrome    Strategy = "monochrome"
)

// Strategies lists every strategy in display order.
var Strategies = []Strategy{Random, Complementary, Triadic, Analogous, Monochrome}

// AnalogousOffsets are the hue offsets of the analogous strategy.
var AnalogousOffsets = []float64{-0.08, -0.04, 0.0, 0.04, 0.08}

// MonochromeValues are the value levels of the monochrome strategy.
var MonochromeValues = []float64{0.35, 0.55, 0.75, 0.9}

// ParseStrategy validates a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if string(s) == name {
			return s, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidPalette,
		"invalid palette strategy: %q (must be one of: random, complementary, triadic, analogous, monochrome)", name)
}

// Palette is an ordered, non-empty list of opaque colors.
type Palette []color.RGBA

// Hex returns the colors as #rrggbb strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		cf, _ := colorful.MakeColor(c)
		out[i] = cf.Hex()
	}
	return out
}

// FromHex parses #rrggbb strings back into a palette.
func FromHex(hexes []string) (Palette, error) {
	out := make(Palette, len(hexes))
	for i, h := range hexes {
		cf, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette color %d: %w", i, err)
		}
		r, g, b := cf.RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return out, nil
}

// Option configures [Build].
type Option func(*config)

type config struct {
	baseHue    float64
	hasBaseHue bool
}

// WithBaseHue fixes the base hue (in [0,1)) instead of drawing it.
func WithBaseHue(h float64) Option {
	return func(c *config) {
		c.baseHue = wrap(h)
		c.hasBaseHue = true
	}
}

// Build draws a palette for the strategy from rng. Unknown strategies fall
// back to [Random]; validate names with [ParseStrategy] at the boundary.
func Build(rng *rand.Rand, strategy Strategy, opts ...Option) Palette {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	h := cfg.baseHue
	if !cfg.hasBaseHue {
		h = rng.Float64()
	}
	s := 0.7 + 0.3*rng.Float64()
	v := 0.8 + 0.2*rng.Float64()

	switch strategy {
	case Complementary:
		return Palette{HSV(h, s, v), HSV(wrap(h+0.5), s, v)}
	case Triadic:
		return Palette{HSV(h, s, v), HSV(wrap(h+1.0/3), s, v), HSV(wrap(h+2.0/3), s, v)}
	case Analogous:
		p := make(Palette, len(AnalogousOffsets))
		for i, o := range AnalogousOffsets {
			p[i] = HSV(wrap(h+o), s, v)
		}
		return p
	case Monochrome:
		p := make(Palette, len(MonochromeValues))
		for i, mv := range MonochromeValues {
			p[i] = HSV(h, s, mv)
		}
		return p
	default:
		p := make(Palette, 5)
		for i := range p {
			rh := rng.Float64()
			rs := 0.6 + 0.4*rng.Float64()
			rv := 0.6 + 0.4*rng.Float64()
			p[i] = HSV(rh, rs, rv)
		}
		return p
	}
}

// HSV converts hue, saturation and value in [0,1] to an opaque color.
// Each channel is x*255 truncated toward zero.
func HSV(h, s, v float64) color.RGBA {
	r, g, b := hsvToRGB(h, s, v)
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

// hsvToRGB is the sextant algorithm; float operations are kept in this exact
// order so truncated channels match byte for byte.
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	if s == 0.0 {
		return v, v, v
	}
	i := int(h * 6.0)
	f := (h * 6.0) - float64(i)
	p := v * (1.0 - s)
	q := v * (1.0 - s*f)
	t := v * (1.0 - s*(1.0-f))
	switch i % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// wrap reduces h into [0,1) with a floored modulo.
func wrap(h float64) float64 {
	m := math.Mod(h, 1.0)
	if m < 0 {
		m += 1.0
	}
	return m
}

// String implements fmt.Stringer for log output.
func (p Palette) String() string {
	return fmt.Sprint(p.Hex())
}

// Pick returns a uniformly chosen palette color.
func (p Palette) Pick(rng *rand.Rand) color.RGBA {
	return seed.Choice(rng, p)
}
