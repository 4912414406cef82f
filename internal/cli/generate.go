package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/teeforge/pkg/core/canvas"
	"github.com/matzehuels/teeforge/pkg/core/palette"
	"github.com/matzehuels/teeforge/pkg/errors"
	"github.com/matzehuels/teeforge/pkg/pipeline"
)

// generateFlags holds the raw flag values of the generate command.
type generateFlags struct {
	opts   pipeline.Options
	output string
	config string
	cache  cacheFlags
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	flags := generateFlags{opts: pipeline.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a design to a PNG file",
		Long: `Render a design and write it as tshirt_style_<seed>.png.

The seed may be any text: integers are used directly (reduced modulo 2^32),
anything else is hashed, and an empty seed draws a random one. The resolved
seed is printed before rendering, so a random design can be reproduced.`,
		Example: `  teeforge generate --seed 42
  teeforge generate --seed "summer drop" --palette triadic --style noise
  teeforge generate --config preset.toml --output out/design.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd, opts, flags.output, flags.cache)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.opts.Seed, "seed", "", "seed text (empty for random)")
	f.IntVar(&flags.opts.Width, "width", pipeline.DefaultWidth, "image width in pixels")
	f.IntVar(&flags.opts.Height, "height", pipeline.DefaultHeight, "image height in pixels")
	f.BoolVar(&flags.opts.Transparent, "transparent", false, "transparent background (RGBA output)")
	f.StringVar(&flags.opts.Palette, "palette", string(pipeline.DefaultPalette), "palette strategy: "+joinNames(palette.Strategies))
	f.StringVar(&flags.opts.Style, "style", string(pipeline.DefaultStyle), "base style: "+joinNames(canvas.Styles))
	f.IntVar(&flags.opts.Layers, "layers", pipeline.DefaultLayers, "number of shape layers")
	f.BoolVar(&flags.opts.Text, "text", true, "add a rotated word overlay")
	f.BoolVar(&flags.opts.Lines, "lines", true, "add line splashes")
	f.BoolVar(&flags.opts.Noise, "noise", true, "blend noise into the colors")
	f.BoolVar(&flags.opts.Antialias, "antialias", true, "smooth the final image")
	f.StringSliceVar(&flags.opts.FontPaths, "font", nil, "TrueType font files to try for the overlay (default Arial.ttf)")
	f.StringVarP(&flags.output, "output", "o", "", "output file (default tshirt_style_<seed>.png)")
	f.StringVarP(&flags.config, "config", "c", "", "TOML preset; explicit flags override it")
	addCacheFlags(cmd, &flags.cache)

	_ = cmd.RegisterFlagCompletionFunc("palette", completeNames(palette.Strategies))
	_ = cmd.RegisterFlagCompletionFunc("style", completeNames(canvas.Styles))

	return cmd
}

// resolve merges the preset (if any) with the flags the user set explicitly
// and validates the result against the input bounds.
func (g *generateFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	opts := g.opts
	if g.config != "" {
		preset, err := loadPreset(g.config)
		if err != nil {
			return opts, err
		}
		opts = overrideChanged(cmd, preset, g.opts)
	}

	if err := opts.ValidateBounds(); err != nil {
		return opts, err
	}
	for _, p := range opts.FontPaths {
		if err := errors.ValidateFontPath(p); err != nil {
			return opts, err
		}
	}
	if g.output != "" {
		if err := errors.ValidateOutputPath(g.output); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// overrideChanged copies every flag the user set on the command line from
// flagOpts onto base.
func overrideChanged(cmd *cobra.Command, base, flagOpts pipeline.Options) pipeline.Options {
	changed := cmd.Flags().Changed
	if changed("seed") {
		base.Seed = flagOpts.Seed
	}
	if changed("width") {
		base.Width = flagOpts.Width
	}
	if changed("height") {
		base.Height = flagOpts.Height
	}
	if changed("transparent") {
		base.Transparent = flagOpts.Transparent
	}
	if changed("palette") {
		base.Palette = flagOpts.Palette
	}
	if changed("style") {
		base.Style = flagOpts.Style
	}
	if changed("layers") {
		base.Layers = flagOpts.Layers
	}
	if changed("text") {
		base.Text = flagOpts.Text
	}
	if changed("lines") {
		base.Lines = flagOpts.Lines
	}
	if changed("noise") {
		base.Noise = flagOpts.Noise
	}
	if changed("antialias") {
		base.Antialias = flagOpts.Antialias
	}
	if changed("font") {
		base.FontPaths = flagOpts.FontPaths
	}
	return base
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts pipeline.Options, output string, cf cacheFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return err
	}
	defer runner.Close()

	// Resolve and show the seed first so a random design can be reproduced
	// even if rendering is interrupted.
	s, src := runner.ResolveSeed(opts.Seed)
	printKeyValue("Seed", StyleNumber.Render(s.String())+StyleDim.Render(" ("+src.String()+")"))

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %dx%d design...", opts.Width, opts.Height))
	spinner.Start()
	res, err := runner.Run(ctx, s, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		output = res.Filename
	}
	if err := os.WriteFile(output, res.PNG, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	logger.Debug("wrote design", "path", output, "bytes", len(res.PNG))

	printSuccess("Design generated")
	printFile(output)
	printDesignStats(res)
	if len(res.Stats.Stages) > 0 && logger.GetLevel() <= LogDebug {
		printStageTimings(res.Stats)
	}
	return nil
}

// joinNames formats enum values for flag help.
func joinNames[T ~string](names []T) string {
	return strings.Join(stringNames(names), ", ")
}

// completeNames offers enum values for shell completion.
func completeNames[T ~string](names []T) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return stringNames(names), cobra.ShellCompDirectiveNoFileComp
	}
}
