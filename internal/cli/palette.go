package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/teeforge/pkg/core/canvas"
	"github.com/matzehuels/teeforge/pkg/core/palette"
	"github.com/matzehuels/teeforge/pkg/core/seed"
	"github.com/matzehuels/teeforge/pkg/pipeline"
)

// paletteCommand creates the palette preview command.
func (c *CLI) paletteCommand() *cobra.Command {
	var (
		seedText string
		style    string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "palette [strategy]",
		Short: "Preview the palette of a seed",
		Long: `Print the palette a design would use as color swatches, without
rendering. The palette depends on the seed, the strategy and the base style.`,
		Example: `  teeforge palette triadic --seed 42
  teeforge palette --all --seed "summer drop"`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: stringNames(palette.Strategies),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, src := seed.Resolve(seedText)
			printKeyValue("Seed", StyleNumber.Render(s.String())+StyleDim.Render(" ("+src.String()+")"))
			printKeyValue("Style", style)
			printNewline()

			if all {
				for _, strategy := range palette.Strategies {
					p, err := pipeline.PreviewPalette(s, string(strategy), style)
					if err != nil {
						return err
					}
					fmt.Println(StyleDim.Render(fmt.Sprintf("%-14s", strategy)) + renderSwatchRow(p))
				}
				return nil
			}

			strategy := string(pipeline.DefaultPalette)
			if len(args) == 1 {
				strategy = args[0]
			}
			p, err := pipeline.PreviewPalette(s, strategy, style)
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render(strategy))
			fmt.Println(renderSwatches(p))
			return nil
		},
	}

	cmd.Flags().StringVar(&seedText, "seed", "", "seed text (empty for random)")
	cmd.Flags().StringVar(&style, "style", string(pipeline.DefaultStyle), "base style: "+joinNames(canvas.Styles))
	cmd.Flags().BoolVar(&all, "all", false, "show every strategy for the seed")
	_ = cmd.RegisterFlagCompletionFunc("style", completeNames(canvas.Styles))

	return cmd
}

func stringNames[T ~string](names []T) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
