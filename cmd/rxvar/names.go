package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"rxvar/internal/config"
	"rxvar/internal/constants"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Show the generated identifiers for the current configuration",
	Args:  cobra.NoArgs,
	RunE:  runNames,
}

func init() {
	namesCmd.Flags().Bool("minify", false, "force state-name minification on or off")
	namesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type namesPayload struct {
	EnvMode string                `json:"env_mode"`
	Config  string                `json:"config,omitempty"`
	Vars    constants.CompileVars `json:"vars"`
	Imports []string              `json:"event_imports"`
	Hook    string                `json:"event_hook"`
}

func runNames(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	var ov config.Overrides
	if cmd.Flags().Changed("minify") {
		minify, err := cmd.Flags().GetBool("minify")
		if err != nil {
			return fmt.Errorf("failed to get minify flag: %w", err)
		}
		ov.MinifyStates = &minify
	}
	cfg, err := loadConfig(cmd, ov)
	if err != nil {
		return err
	}

	cat := constants.NewCatalogue(cfg.Compile)
	payload := namesPayload{
		EnvMode: cfg.Compile.EnvMode,
		Config:  cfg.Path,
		Vars:    cat.Vars,
		Imports: cat.Imports.Events.ImportLines(),
		Hook:    cat.Hooks.Events,
	}
	switch strings.ToLower(format) {
	case "pretty":
		renderNamesPretty(cmd.OutOrStdout(), payload)
		return nil
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderNamesPretty(out io.Writer, p namesPayload) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	rows := [][2]string{
		{"env mode", p.EnvMode},
		{"minify states", fmt.Sprint(p.Vars.MinifyStates)},
		{"on load state", p.Vars.OnLoadInternalState},
		{"on load handler", p.Vars.OnLoadInternal},
		{"update vars state", p.Vars.UpdateVarsInternalState},
		{"update vars handler", p.Vars.UpdateVarsInternal},
		{"exception state", p.Vars.FrontendExceptionState},
		{"exception state path", p.Vars.FrontendExceptionStateFull},
		{"events hook", p.Hook},
	}
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}

	title := "generated identifiers"
	if p.Config != "" {
		title += " (" + p.Config + ")"
	}
	fmt.Fprintln(out, titleStyle.Render(title))
	for _, r := range rows {
		fmt.Fprintf(out, "  %s  %s\n", keyStyle.Width(width).Render(r[0]), valueStyle.Render(r[1]))
	}
	fmt.Fprintln(out, titleStyle.Render("event imports"))
	for _, line := range p.Imports {
		fmt.Fprintf(out, "  %s\n", line)
	}
}
