package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/teeforge/pkg/errors"
	"github.com/matzehuels/teeforge/pkg/pipeline"
)

func TestPresetRoundTrip(t *testing.T) {
	in := pipeline.DefaultOptions()
	in.Seed = "summer drop"
	in.Width = 1200
	in.Palette = "analogous"
	in.Noise = false
	in.FontPaths = []string{"/fonts/Inter.ttf"}

	data, err := encodePreset(in)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "p.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := loadPreset(path)
	if err != nil {
		t.Fatalf("loadPreset: %v", err)
	}
	if out.Seed != in.Seed || out.Width != in.Width || out.Height != in.Height ||
		out.Palette != in.Palette || out.Noise || !out.Text ||
		len(out.FontPaths) != 1 || out.FontPaths[0] != "/fonts/Inter.ttf" {
		t.Errorf("round trip = %+v", out)
	}
}

func TestLoadPresetKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	if err := os.WriteFile(path, []byte("layers = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := loadPreset(path)
	if err != nil {
		t.Fatal(err)
	}
	def := pipeline.DefaultOptions()
	if opts.Layers != 0 || opts.Width != def.Width || opts.Style != def.Style || !opts.Antialias {
		t.Errorf("opts = %+v", opts)
	}
}

func TestLoadPresetErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "none.toml"), errors.ErrCodeFileNotFound},
		{"syntax", write("bad.toml", "width = = 3"), errors.ErrCodeInvalidPreset},
		{"unknown key", write("typo.toml", "widht = 800\n"), errors.ErrCodeInvalidPreset},
		{"wrong type", write("type.toml", "width = \"wide\"\n"), errors.ErrCodeInvalidPreset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadPreset(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestPresetInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teeforge.toml")
	ctx := context.Background()

	if err := execute(ctx, []string{"preset", "init", path}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := execute(ctx, []string{"preset", "init", path}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init = %v, want refusal", err)
	}
	if err := execute(ctx, []string{"preset", "init", "--force", path}); err != nil {
		t.Errorf("forced init: %v", err)
	}
	if err := execute(ctx, []string{"preset", "show", path}); err != nil {
		t.Errorf("show: %v", err)
	}

	opts, err := loadPreset(path)
	if err != nil {
		t.Fatal(err)
	}
	def := pipeline.DefaultOptions()
	if opts.Width != def.Width || opts.Layers != def.Layers || opts.Palette != def.Palette {
		t.Errorf("init wrote %+v", opts)
	}
}

func TestPresetShowRejectsOutOfBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	if err := os.WriteFile(path, []byte("width = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := execute(context.Background(), []string{"preset", "show", path})
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("error = %v", err)
	}
}

func TestOverrideChanged(t *testing.T) {
	flags := generateFlags{opts: pipeline.DefaultOptions()}
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().IntVar(&flags.opts.Width, "width", pipeline.DefaultWidth, "")
	cmd.Flags().BoolVar(&flags.opts.Noise, "noise", true, "")
	if err := cmd.Flags().Parse([]string{"--noise=false"}); err != nil {
		t.Fatal(err)
	}

	preset := pipeline.DefaultOptions()
	preset.Width = 900
	preset.Noise = true

	got := overrideChanged(cmd, preset, flags.opts)
	if got.Width != 900 {
		t.Errorf("unset flag overrode preset width: %d", got.Width)
	}
	if got.Noise {
		t.Error("explicit --noise=false did not override preset")
	}
}
