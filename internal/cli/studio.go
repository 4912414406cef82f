package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/teeforge/pkg/core/canvas"
	"github.com/matzehuels/teeforge/pkg/core/palette"
	"github.com/matzehuels/teeforge/pkg/core/seed"
	"github.com/matzehuels/teeforge/pkg/errors"
	"github.com/matzehuels/teeforge/pkg/pipeline"
)

// Studio styles
var (
	studioSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	studioNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	studioDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	studioErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// dimensionStep is the width/height change per arrow key press.
const dimensionStep = 100

// studioCommand creates the interactive studio command.
func (c *CLI) studioCommand() *cobra.Command {
	var (
		outDir string
		config string
		cf     cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "studio",
		Short: "Interactive control panel in the terminal",
		Long: `Adjust every generation setting with the keyboard and render designs
into a directory. The resolved seed is shown before each render.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts := pipeline.DefaultOptions()
			if config != "" {
				var err error
				if opts, err = loadPreset(config); err != nil {
					return err
				}
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			runner, err := c.newRunner(ctx, cf)
			if err != nil {
				return err
			}
			defer runner.Close()

			// The TUI owns the terminal; keep the logger quiet meanwhile.
			level := c.Logger.GetLevel()
			c.Logger.SetLevel(log.FatalLevel)
			defer c.Logger.SetLevel(level)

			render := func(s seed.Seed, opts pipeline.Options) (string, *pipeline.Result, error) {
				res, err := runner.Run(ctx, s, opts)
				if err != nil {
					return "", nil, err
				}
				path := filepath.Join(outDir, res.Filename)
				if err := os.WriteFile(path, res.PNG, 0o644); err != nil {
					return "", nil, fmt.Errorf("write %s: %w", path, err)
				}
				return path, res, nil
			}

			final, err := tea.NewProgram(newStudioModel(opts, render), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(studioModel); ok && m.lastFile != "" {
				printSuccess("Last design")
				printFile(m.lastFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output-dir", "o", ".", "directory for rendered designs")
	cmd.Flags().StringVarP(&config, "config", "c", "", "TOML preset to start from")
	addCacheFlags(cmd, &cf)
	return cmd
}

// =============================================================================
// studioModel - Interactive settings panel
// =============================================================================

// Field indices of the settings panel, in display order.
const (
	fieldSeed = iota
	fieldWidth
	fieldHeight
	fieldTransparent
	fieldPalette
	fieldStyle
	fieldLayers
	fieldText
	fieldLines
	fieldNoise
	fieldAntialias
	numFields
)

var fieldLabels = [numFields]string{
	"Seed", "Width", "Height", "Transparent", "Palette", "Style",
	"Layers", "Text overlay", "Line splashes", "Noise", "Antialias",
}

// renderFunc renders a design and returns the written path.
type renderFunc func(s seed.Seed, opts pipeline.Options) (string, *pipeline.Result, error)

// renderedMsg reports the end of a background render.
type renderedMsg struct {
	path string
	res  *pipeline.Result
	err  error
}

type studioModel struct {
	opts   pipeline.Options
	cursor int
	render renderFunc

	busy     bool
	seed     seed.Seed
	source   seed.Source
	resolved bool

	lastFile string
	last     *pipeline.Result
	err      error
}

func newStudioModel(opts pipeline.Options, render renderFunc) studioModel {
	return studioModel{opts: opts, render: render}
}

func (m studioModel) Init() tea.Cmd {
	return nil
}

func (m studioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderedMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.lastFile = msg.path
			m.last = msg.res
		}
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "shift+tab":
			m.cursor = (m.cursor + numFields - 1) % numFields
			return m, nil
		case "down", "tab":
			m.cursor = (m.cursor + 1) % numFields
			return m, nil
		case "enter":
			return m.startRender()
		}

		if m.cursor == fieldSeed {
			return m.editSeed(msg), nil
		}

		switch key {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.adjust(-1)
		case "right", "l", " ":
			m.adjust(1)
		}
	}
	return m, nil
}

// editSeed applies a key press to the seed text field.
func (m studioModel) editSeed(msg tea.KeyMsg) studioModel {
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(m.opts.Seed); len(r) > 0 {
			m.opts.Seed = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.opts.Seed = ""
	case tea.KeySpace:
		m.opts.Seed += " "
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if unicode.IsPrint(r) {
				m.opts.Seed += string(r)
			}
		}
	}
	m.resolved = false
	return m
}

// adjust moves the selected setting one step in direction dir.
func (m *studioModel) adjust(dir int) {
	o := &m.opts
	switch m.cursor {
	case fieldWidth:
		o.Width = clampInt(o.Width+dir*dimensionStep, pipeline.MinDimension, pipeline.MaxDimension)
	case fieldHeight:
		o.Height = clampInt(o.Height+dir*dimensionStep, pipeline.MinDimension, pipeline.MaxDimension)
	case fieldLayers:
		o.Layers = clampInt(o.Layers+dir, pipeline.MinLayers, pipeline.MaxLayers)
	case fieldPalette:
		o.Palette = string(cycle(palette.Strategies, palette.Strategy(o.Palette), dir))
	case fieldStyle:
		o.Style = string(cycle(canvas.Styles, canvas.Style(o.Style), dir))
	case fieldTransparent:
		o.Transparent = !o.Transparent
	case fieldText:
		o.Text = !o.Text
	case fieldLines:
		o.Lines = !o.Lines
	case fieldNoise:
		o.Noise = !o.Noise
	case fieldAntialias:
		o.Antialias = !o.Antialias
	}
}

// startRender resolves the seed, shows it and renders in the background.
func (m studioModel) startRender() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if err := m.opts.ValidateBounds(); err != nil {
		m.err = err
		return m, nil
	}

	m.seed, m.source = seed.Resolve(m.opts.Seed)
	m.resolved = true
	m.busy = true
	m.err = nil

	s, opts, render := m.seed, m.opts, m.render
	return m, func() tea.Msg {
		path, res, err := render(s, opts)
		return renderedMsg{path: path, res: res, err: err}
	}
}

func (m studioModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Teeforge Studio"))
	b.WriteString("\n")
	b.WriteString(studioDimStyle.Render("↑/↓ select  ←/→ change  space toggle  ⏎ render  esc quit"))
	b.WriteString("\n\n")

	rows := make([][]string, numFields)
	for i := 0; i < numFields; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows[i] = []string{cursor, fieldLabels[i], m.fieldValue(i)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == m.cursor {
				return studioSelectedStyle
			}
			if col == 1 {
				return studioDimStyle
			}
			return studioNormalStyle
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	if m.resolved {
		b.WriteString("Seed " + StyleNumber.Render(m.seed.String()) +
			studioDimStyle.Render(" ("+m.source.String()+") → "+m.seed.Filename()))
		b.WriteString("\n")
	}

	switch {
	case m.busy:
		b.WriteString(StyleHighlight.Render("Rendering..."))
	case m.err != nil:
		b.WriteString(studioErrorStyle.Render(iconError + " " + errors.UserMessage(m.err)))
	case m.lastFile != "":
		b.WriteString(StyleSuccess.Render(iconSuccess+" wrote "+m.lastFile) + "  ")
		if m.last != nil {
			b.WriteString(renderSwatchRow(m.last.Palette))
		}
	}
	b.WriteString("\n")

	return b.String()
}

func (m studioModel) fieldValue(i int) string {
	o := m.opts
	switch i {
	case fieldSeed:
		if o.Seed == "" && m.cursor != fieldSeed {
			return studioDimStyle.Render("random")
		}
		if m.cursor == fieldSeed {
			return o.Seed + "█"
		}
		return o.Seed
	case fieldWidth:
		return strconv.Itoa(o.Width)
	case fieldHeight:
		return strconv.Itoa(o.Height)
	case fieldLayers:
		return strconv.Itoa(o.Layers)
	case fieldPalette:
		return o.Palette
	case fieldStyle:
		return o.Style
	case fieldTransparent:
		return onOff(o.Transparent)
	case fieldText:
		return onOff(o.Text)
	case fieldLines:
		return onOff(o.Lines)
	case fieldNoise:
		return onOff(o.Noise)
	case fieldAntialias:
		return onOff(o.Antialias)
	}
	return ""
}

// =============================================================================
// Helpers
// =============================================================================

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// cycle returns the item dir steps away from cur, wrapping around. An
// unknown cur starts from the first item.
func cycle[T comparable](items []T, cur T, dir int) T {
	idx := 0
	for i, it := range items {
		if it == cur {
			idx = i
			break
		}
	}
	n := len(items)
	return items[((idx+dir)%n+n)%n]
}
