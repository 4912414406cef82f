package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/teeforge/pkg/core/seed"
	"github.com/matzehuels/teeforge/pkg/errors"
	"github.com/matzehuels/teeforge/pkg/observability"
)

// small returns options sized for fast tests with every pass off.
func small(w, h int) Options {
	return Options{Width: w, Height: h, Palette: "monochrome", Style: "solid"}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Width != 3000 || o.Height != 3600 || o.Layers != 12 {
		t.Errorf("size/layers = %dx%d/%d", o.Width, o.Height, o.Layers)
	}
	if o.Palette != "random" || o.Style != "radial_gradient" {
		t.Errorf("palette/style = %s/%s", o.Palette, o.Style)
	}
	if !o.Text || !o.Lines || !o.Noise || !o.Antialias {
		t.Error("every optional pass should default to on")
	}
	if o.Transparent || o.Seed != "" {
		t.Error("transparency off and empty seed by default")
	}
	if err := o.ValidateBounds(); err != nil {
		t.Errorf("defaults should pass bounds: %v", err)
	}
}

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.Width != DefaultWidth || o.Height != DefaultHeight {
		t.Errorf("size = %dx%d", o.Width, o.Height)
	}
	if o.Palette != string(DefaultPalette) || o.Style != string(DefaultStyle) {
		t.Errorf("palette/style = %s/%s", o.Palette, o.Style)
	}
	if o.Layers != 0 {
		t.Errorf("layers = %d, zero layers must survive defaults", o.Layers)
	}
	if o.Logger == nil {
		t.Error("logger should default to a discard logger")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		code   errors.Code
	}{
		{"valid", func(*Options) {}, ""},
		{"tiny canvas is fine", func(o *Options) { o.Width, o.Height = 1, 1 }, ""},
		{"unknown palette", func(o *Options) { o.Palette = "neon" }, errors.ErrCodeInvalidPalette},
		{"unknown style", func(o *Options) { o.Style = "plaid" }, errors.ErrCodeInvalidStyle},
		{"zero width", func(o *Options) { o.Width = 0 }, errors.ErrCodeInvalidDimensions},
		{"negative height", func(o *Options) { o.Height = -5 }, errors.ErrCodeInvalidDimensions},
		{"negative layers", func(o *Options) { o.Layers = -1 }, errors.ErrCodeInvalidLayers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := small(64, 64)
			tt.mutate(&o)
			err := o.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		layers        int
		code          errors.Code
	}{
		{"minimum", 512, 512, 0, ""},
		{"maximum", 8000, 8000, 25, ""},
		{"narrow", 511, 600, 3, errors.ErrCodeInvalidDimensions},
		{"tall", 600, 8001, 3, errors.ErrCodeInvalidDimensions},
		{"too many layers", 600, 600, 26, errors.ErrCodeInvalidLayers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			o.Width, o.Height, o.Layers = tt.width, tt.height, tt.layers
			err := o.ValidateBounds()
			if tt.code == "" && err != nil {
				t.Errorf("ValidateBounds() = %v", err)
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Errorf("ValidateBounds() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDesignKeyOpts(t *testing.T) {
	o := DefaultOptions()
	k := o.DesignKeyOpts()
	if k.Width != o.Width || k.Layers != o.Layers || !k.Antialias {
		t.Errorf("DesignKeyOpts() = %+v", k)
	}
	if len(k.Fonts) != 1 || k.Fonts[0] != "Arial.ttf" {
		t.Errorf("fonts = %v, want default path list", k.Fonts)
	}
}

// Seed 42, solid, monochrome, no layers, every pass off: a white RGB canvas.
func TestGenerateBlankScenario(t *testing.T) {
	s, _ := seed.Resolve("42")
	d, err := Generate(context.Background(), s, small(512, 512))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if d.Canvas.Channels() != 3 {
		t.Errorf("channels = %d, want 3", d.Canvas.Channels())
	}
	if d.Canvas.Width() != 512 || d.Canvas.Height() != 512 {
		t.Errorf("size = %dx%d", d.Canvas.Width(), d.Canvas.Height())
	}
	for i, b := range d.Canvas.Image().Pix {
		if b != 255 {
			t.Fatalf("byte %d = %d, want 255", i, b)
		}
	}
	if len(d.Palette) != 4 {
		t.Errorf("monochrome palette has %d colors", len(d.Palette))
	}
	if d.Text != nil || d.NoiseStrength != 0 {
		t.Error("disabled passes should leave no trace")
	}
}

func TestGenerateTransparency(t *testing.T) {
	tests := []struct {
		style string
		alpha uint8
	}{
		{"solid", 0},
		{"vertical_stripes", 255},
		{"radial_gradient", 255},
		{"linear_gradient", 255},
		{"noise", 255},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			o := small(48, 32)
			o.Style = tt.style
			o.Transparent = true
			d, err := Generate(context.Background(), 3, o)
			if err != nil {
				t.Fatal(err)
			}
			if d.Canvas.Channels() != 4 {
				t.Errorf("channels = %d, want 4", d.Canvas.Channels())
			}
			pix := d.Canvas.Image().Pix
			for i := 3; i < len(pix); i += 4 {
				if pix[i] != tt.alpha {
					t.Fatalf("alpha = %d, want %d", pix[i], tt.alpha)
				}
			}
		})
	}
}

func TestGenerateStages(t *testing.T) {
	o := small(96, 96)
	o.Layers = 3
	d, err := Generate(context.Background(), 1, o)
	if err != nil {
		t.Fatal(err)
	}
	assertStages(t, d.Stats.Stages, StageBase, StagePalette, StageShapes)

	o.Text, o.Lines, o.Noise, o.Antialias = true, true, true, true
	d, err = Generate(context.Background(), 1, o)
	if err != nil {
		t.Fatal(err)
	}
	assertStages(t, d.Stats.Stages, StageBase, StagePalette, StageShapes, StageLines, StageNoise, StageText, StageAntialias)
	if d.NoiseStrength < 0.15 || d.NoiseStrength >= 0.35 {
		t.Errorf("noise strength = %f", d.NoiseStrength)
	}
	if d.Text == nil {
		t.Error("text pass should report its overlay")
	}
}

func assertStages(t *testing.T, got []StageTiming, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("stages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("stage %d = %s, want %s", i, got[i].Name, want[i])
		}
	}
}

func TestGenerateRejectsInvalid(t *testing.T) {
	o := small(64, 64)
	o.Style = "plaid"
	if _, err := Generate(context.Background(), 1, o); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("Generate() = %v, want INVALID_STYLE", err)
	}
}

type stageRecorder struct {
	observability.NoopPipelineHooks
	stages []string
	done   int
}

func (r *stageRecorder) OnStageComplete(_ context.Context, stage string, _ time.Duration) {
	r.stages = append(r.stages, stage)
}

func (r *stageRecorder) OnGenerateComplete(context.Context, uint32, int, time.Duration, error) {
	r.done++
}

func TestGenerateEmitsHooks(t *testing.T) {
	rec := &stageRecorder{}
	observability.SetPipelineHooks(rec)
	defer observability.Reset()

	if _, err := Generate(context.Background(), 5, small(32, 32)); err != nil {
		t.Fatal(err)
	}
	if len(rec.stages) != 3 || rec.stages[0] != StageBase {
		t.Errorf("hooked stages = %v", rec.stages)
	}
}

func TestPreviewPaletteMatchesGenerate(t *testing.T) {
	styles := []string{"solid", "vertical_stripes", "radial_gradient", "linear_gradient", "noise"}
	for _, style := range styles {
		t.Run(style, func(t *testing.T) {
			opts := small(64, 48)
			opts.Style = style
			opts.Palette = "triadic"

			d, err := Generate(context.Background(), seed.Seed(314), opts)
			if err != nil {
				t.Fatal(err)
			}
			got, err := PreviewPalette(seed.Seed(314), opts.Palette, opts.Style)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != d.Palette.String() {
				t.Errorf("PreviewPalette = %v, Generate used %v", got, d.Palette)
			}
		})
	}
}

func TestPreviewPaletteRejectsUnknown(t *testing.T) {
	if _, err := PreviewPalette(1, "neon", "solid"); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("palette error = %v", err)
	}
	if _, err := PreviewPalette(1, "random", "plaid"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("style error = %v", err)
	}
}
