// Package pipeline runs the design generator end to end.
//
// The pipeline is a fixed sequence of stages, each consuming the canvas the
// previous one produced:
//
//  1. Base: allocate and fill the canvas (solid, stripes, gradients, noise)
//  2. Palette: build the color list from a harmony strategy
//  3. Shapes: composite the translucent shape layers
//  4. Lines: optional antialiased line splashes
//  5. Noise: optional noise blend into the color channels
//  6. Text: optional rotated word overlay
//  7. Antialias: optional supersample-and-reduce finish
//
// All randomness comes from the streams of one resolved seed, so the same
// seed and options always give the same PNG bytes. [Generate] runs the
// stages; a [Runner] adds seed resolution, caching and logging on top and
// is what the CLI and the HTTP server use.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Seed = "42"
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.PNG, 0o644)
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/teeforge/pkg/cache"
	"github.com/matzehuels/teeforge/pkg/core/canvas"
	"github.com/matzehuels/teeforge/pkg/core/effects"
	"github.com/matzehuels/teeforge/pkg/core/overlay"
	"github.com/matzehuels/teeforge/pkg/core/palette"
	"github.com/matzehuels/teeforge/pkg/core/seed"
	"github.com/matzehuels/teeforge/pkg/core/shapes"
	"github.com/matzehuels/teeforge/pkg/errors"
	"github.com/matzehuels/teeforge/pkg/fonts"
	"github.com/matzehuels/teeforge/pkg/observability"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Studio and Server
// =============================================================================

const (
	// DefaultWidth and DefaultHeight are the canvas size in pixels.
	DefaultWidth  = 3000
	DefaultHeight = 3600

	// DefaultLayers is the number of shape layers.
	DefaultLayers = 12

	// DefaultPalette is the default color-harmony strategy.
	DefaultPalette = palette.Random

	// DefaultStyle is the default base style.
	DefaultStyle = canvas.RadialGradient
)

// Input bounds enforced by the CLI, studio and server.
const (
	MinDimension = 512
	MaxDimension = 8000
	MinLayers    = 0
	MaxLayers    = 25
)

// Stage names reported in [Stats] and to observability hooks.
const (
	StageBase      = "base"
	StagePalette   = "palette"
	StageShapes    = "shapes"
	StageLines     = "lines"
	StageNoise     = "noise"
	StageText      = "text"
	StageAntialias = "antialias"
	StageEncode    = "encode"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options holds every control of one generation.
// It serializes to JSON for the server and to TOML for presets.
type Options struct {
	// Seed is free-form text; see [seed.Resolve]. Empty means random.
	Seed string `json:"seed,omitempty" toml:"seed,omitempty"`

	Width       int    `json:"width" toml:"width"`
	Height      int    `json:"height" toml:"height"`
	Transparent bool   `json:"transparent" toml:"transparent"`
	Palette     string `json:"palette" toml:"palette"`
	Style       string `json:"style" toml:"style"`
	Layers      int    `json:"layers" toml:"layers"`

	// Optional passes
	Text      bool `json:"text" toml:"text"`
	Lines     bool `json:"lines" toml:"lines"`
	Noise     bool `json:"noise" toml:"noise"`
	Antialias bool `json:"antialias" toml:"antialias"`

	// FontPaths are tried in order for the text overlay before the
	// embedded font. Empty means [fonts.DefaultPaths].
	FontPaths []string `json:"font_paths,omitempty" toml:"font_paths,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`
}

// DefaultOptions returns the controls of a fresh form: random seed, default
// size, style and palette, every optional pass enabled.
func DefaultOptions() Options {
	return Options{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Palette:   string(DefaultPalette),
		Style:     string(DefaultStyle),
		Layers:    DefaultLayers,
		Text:      true,
		Lines:     true,
		Noise:     true,
		Antialias: true,
	}
}

// SetDefaults fills zero-valued size, palette and style. Layers and the pass
// toggles have meaningful zero values and are left alone.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Palette == "" {
		o.Palette = string(DefaultPalette)
	}
	if o.Style == "" {
		o.Style = string(DefaultStyle)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks what the pipeline itself needs: known enums, positive
// dimensions and a non-negative layer count.
func (o *Options) Validate() error {
	if _, err := palette.ParseStrategy(o.Palette); err != nil {
		return err
	}
	if _, err := canvas.ParseStyle(o.Style); err != nil {
		return err
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidDimensions,
			"canvas size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Layers < 0 {
		return errors.New(errors.ErrCodeInvalidLayers, "layers must not be negative, got %d", o.Layers)
	}
	return nil
}

// ValidateBounds applies the input-boundary limits on top of [Options.Validate]:
// width and height in [512, 8000], layers in [0, 25].
func (o *Options) ValidateBounds() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateRange(errors.ErrCodeInvalidDimensions, "width", o.Width, MinDimension, MaxDimension); err != nil {
		return err
	}
	if err := errors.ValidateRange(errors.ErrCodeInvalidDimensions, "height", o.Height, MinDimension, MaxDimension); err != nil {
		return err
	}
	return errors.ValidateRange(errors.ErrCodeInvalidLayers, "layers", o.Layers, MinLayers, MaxLayers)
}

// ResolveSeed resolves the seed text.
func (o *Options) ResolveSeed() (seed.Seed, seed.Source) {
	return seed.Resolve(o.Seed)
}

// DesignKeyOpts returns the cache key components of the options.
func (o *Options) DesignKeyOpts() cache.DesignKeyOpts {
	return cache.DesignKeyOpts{
		Width:       o.Width,
		Height:      o.Height,
		Transparent: o.Transparent,
		Palette:     o.Palette,
		Style:       o.Style,
		Layers:      o.Layers,
		Text:        o.Text,
		Lines:       o.Lines,
		Noise:       o.Noise,
		Antialias:   o.Antialias,
		Fonts:       o.fontPaths(),
	}
}

func (o *Options) fontPaths() []string {
	if len(o.FontPaths) == 0 {
		return fonts.DefaultPaths
	}
	return o.FontPaths
}

// =============================================================================
// Design - Pipeline Output
// =============================================================================

// Design is the in-memory result of one pipeline run.
type Design struct {
	Seed    seed.Seed
	Canvas  *canvas.Canvas
	Palette palette.Palette

	// NoiseStrength is the blend strength drawn for the noise pass, zero if
	// the pass was off.
	NoiseStrength float64

	// Text is the overlay that was drawn, nil if the pass was off.
	Text *overlay.Text

	Stats Stats
}

// Stats records stage timings of a run.
type Stats struct {
	Stages []StageTiming
	Total  time.Duration
}

// StageTiming is the wall time of one stage.
type StageTiming struct {
	Name     string
	Duration time.Duration
}

// Generate runs every stage for seed s. It never touches the network or the
// file system, apart from reading font files. ctx is only passed to hooks.
func Generate(ctx context.Context, s seed.Seed, opts Options) (*Design, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	strategy, _ := palette.ParseStrategy(opts.Palette)
	style, _ := canvas.ParseStyle(opts.Style)

	streams := s.Streams()
	d := &Design{Seed: s}
	hooks := observability.Pipeline()
	start := time.Now()

	stage := func(name string, fn func() error) error {
		t := time.Now()
		if err := fn(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "stage %s", name)
		}
		elapsed := time.Since(t)
		d.Stats.Stages = append(d.Stats.Stages, StageTiming{Name: name, Duration: elapsed})
		hooks.OnStageComplete(ctx, name, elapsed)
		opts.Logger.Debug("stage complete", "stage", name, "duration", elapsed)
		return nil
	}

	steps := []struct {
		name    string
		enabled bool
		fn      func() error
	}{
		{StageBase, true, func() error {
			d.Canvas = canvas.Base(opts.Width, opts.Height, style, opts.Transparent, streams)
			return nil
		}},
		{StagePalette, true, func() error {
			d.Palette = palette.Build(streams.General, strategy)
			return nil
		}},
		{StageShapes, true, func() error {
			return shapes.Composite(d.Canvas, d.Palette, opts.Layers, streams.General)
		}},
		{StageLines, opts.Lines, func() error {
			effects.Splash(d.Canvas, d.Palette, streams.General)
			return nil
		}},
		{StageNoise, opts.Noise, func() error {
			d.NoiseStrength = seed.Uniform(streams.General, effects.MinStrength, effects.MaxStrength)
			effects.BlendNoise(d.Canvas, d.NoiseStrength, streams.Array)
			return nil
		}},
		{StageText, opts.Text, func() error {
			loader := fonts.Loader{Paths: opts.fontPaths(), Logger: opts.Logger}
			txt := overlay.Apply(d.Canvas, d.Palette, streams.General, loader)
			d.Text = &txt
			return nil
		}},
		{StageAntialias, opts.Antialias, func() error {
			return effects.Smooth(d.Canvas)
		}},
	}

	for _, step := range steps {
		if !step.enabled {
			continue
		}
		if err := stage(step.name, step.fn); err != nil {
			return nil, err
		}
	}

	d.Stats.Total = time.Since(start)
	return d, nil
}

// PreviewPalette returns the palette a run with seed s would use, without
// rendering. The base stage's draws from the general stream do not depend on
// the canvas size, so replaying it on a single pixel leaves the stream where
// the palette stage finds it.
func PreviewPalette(s seed.Seed, paletteName, styleName string) (palette.Palette, error) {
	strategy, err := palette.ParseStrategy(paletteName)
	if err != nil {
		return nil, err
	}
	style, err := canvas.ParseStyle(styleName)
	if err != nil {
		return nil, err
	}
	streams := s.Streams()
	canvas.Base(1, 1, style, false, streams)
	return palette.Build(streams.General, strategy), nil
}
