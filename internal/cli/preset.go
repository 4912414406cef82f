package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/teeforge/pkg/errors"
	"github.com/matzehuels/teeforge/pkg/pipeline"
)

// defaultPresetFile is written by "preset init" when no path is given.
const defaultPresetFile = "teeforge.toml"

// presetCommand creates the preset command.
func (c *CLI) presetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Write and inspect TOML presets",
		Long: `Presets store generation settings as TOML. Pass one to generate with
--config; flags given on the command line override the preset.`,
	}

	cmd.AddCommand(c.presetInitCommand())
	cmd.AddCommand(c.presetShowCommand())

	return cmd
}

// presetInitCommand creates the "preset init" subcommand.
func (c *CLI) presetInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a preset with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPresetFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}

			data, err := encodePreset(pipeline.DefaultOptions())
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write preset: %w", err)
			}

			printSuccess("Preset written")
			printFile(path)
			printNextStep("Generate with it", "teeforge generate --config "+path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// presetShowCommand creates the "preset show" subcommand.
func (c *CLI) presetShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print the effective settings of a preset",
		Long: `Load a preset, fill unset keys with defaults, validate it and print the
result as TOML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPresetFile
			if len(args) == 1 {
				path = args[0]
			}
			opts, err := loadPreset(path)
			if err != nil {
				return err
			}
			if err := opts.ValidateBounds(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPreset, err, "preset %s", path)
			}

			data, err := encodePreset(opts)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			if opts.Seed == "" {
				printWarning("No seed set: every run draws a random seed")
			}
			return nil
		},
	}
}

// loadPreset decodes a TOML preset over the default options. Unknown keys
// are rejected so typos do not silently fall back to defaults.
func loadPreset(path string) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return opts, errors.New(errors.ErrCodeFileNotFound, "preset not found: %s", path)
		}
		return opts, fmt.Errorf("stat preset: %w", err)
	}

	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse preset %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return opts, errors.New(errors.ErrCodeInvalidPreset, "preset %s has unknown keys: %v", path, undecoded)
	}
	return opts, nil
}

// encodePreset renders options as TOML.
func encodePreset(opts pipeline.Options) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# teeforge preset\n")
	if err := toml.NewEncoder(&buf).Encode(opts); err != nil {
		return nil, fmt.Errorf("encode preset: %w", err)
	}
	return buf.Bytes(), nil
}
