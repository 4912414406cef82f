package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/teeforge/pkg/core/seed"
)

// seedCommand creates the seed command.
func (c *CLI) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [text]",
		Short: "Show how seed text resolves",
		Long: `Show the seed a piece of text resolves to, how it was derived and the
file name of the resulting design. Without text a random seed is drawn.`,
		Example: `  teeforge seed 42
  teeforge seed -- -1
  teeforge seed "hello world"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				text = args[0]
			}
			s, src := seed.Resolve(text)
			printKeyValue("Seed", StyleNumber.Render(s.String()))
			printKeyValue("Source", src.String())
			printKeyValue("Filename", s.Filename())
			return nil
		},
	}
}
