package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	"actionsperf.ai/cli/internal/interfaces/di"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// newConfigCommand creates the config command group.
func newConfigCommand(container *di.Container, flags *RootFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}

	configCmd.AddCommand(newConfigShowCommand(container, flags))
	configCmd.AddCommand(newConfigPathCommand(container))
	configCmd.AddCommand(newConfigExplainCommand(container, flags))

	return configCmd
}

// newConfigShowCommand creates the show subcommand.
func newConfigShowCommand(container *di.Container, flags *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show every resolved setting with its provenance",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolve(cmd.Context(), container, flags)
			if err != nil {
				return printResolveFailure(cmd, err)
			}

			printResolved(cmd, resolved)
			return nil
		},
	}
}

func printResolved(cmd *cobra.Command, resolved *configdomain.Resolved) {
	cmd.Println(headerStyle.Render("Resolved configuration") + sourceStyle.Render(" ("+resolved.ID()+")"))
	for _, key := range resolved.Keys() {
		v, _ := resolved.Lookup(key)
		origin := v.Source
		if v.SourcePath != "" && v.SourcePath != v.Source {
			origin = fmt.Sprintf("%s %s", v.Source, v.SourcePath)
		}
		cmd.Printf("%s=%v %s\n", keyStyle.Render(key), v.Typed, sourceStyle.Render("["+origin+"]"))
	}
	for _, w := range resolved.Warnings() {
		cmd.Println(warningStyle.Render("warning: " + w.String()))
	}
}

// printResolveFailure renders an aggregate resolution error as a
// structured report and passes the error back for the exit code.
func printResolveFailure(cmd *cobra.Command, err error) error {
	resolveErr, ok := err.(*configdomain.ResolveError)
	if !ok {
		return err
	}

	// The structured report below is the user-facing output; keep
	// cobra from printing the raw error on top of it.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	errs := resolveErr.Errors()
	cmd.PrintErrln(errorStyle.Render(fmt.Sprintf("Configuration is invalid: %d problem(s)", len(errs))))
	for _, d := range resolveErr.Diagnostics {
		line := "  " + d.String()
		if d.Severity == configdomain.SeverityWarning {
			cmd.PrintErrln(warningStyle.Render(line))
		} else {
			cmd.PrintErrln(errorStyle.Render(line))
		}
	}
	return err
}

// newConfigPathCommand creates the path subcommand.
func newConfigPathCommand(container *di.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file search paths and the profile table path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("Config file search paths (later wins):")
			for _, p := range container.ConfigSearchPaths() {
				cmd.Printf("  %s\n", p)
			}
			cmd.Printf("Profile table: %s\n", container.ProfileTablePath())
			return nil
		},
	}
}

// newConfigExplainCommand creates the explain subcommand.
func newConfigExplainCommand(container *di.Container, flags *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain KEY",
		Short: "Show a setting's definition, constraint, and winning source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			def, ok := container.Registry.Lookup(key)
			if !ok {
				return fmt.Errorf("unknown setting %s (known: %s)", key, strings.Join(container.Registry.Names(), ", "))
			}

			resolved, err := resolve(cmd.Context(), container, flags)
			if err != nil {
				return printResolveFailure(cmd, err)
			}

			v, _ := resolved.Lookup(key)
			cmd.Println(headerStyle.Render(key))
			cmd.Printf("  %s\n", def.Desc)
			cmd.Printf("  kind:    %s\n", def.Kind)
			switch def.Kind {
			case configdomain.KindInt:
				cmd.Printf("  range:   %d-%d\n", def.Min, def.Max)
			case configdomain.KindEnum:
				cmd.Printf("  one of:  %s\n", strings.Join(def.Enum, ", "))
			}
			cmd.Printf("  default: %s\n", def.Default)
			cmd.Printf("  value:   %v\n", v.Typed)
			source, path := resolved.Provenance(key)
			if path != "" && path != source {
				cmd.Printf("  source:  %s (%s)\n", source, path)
			} else {
				cmd.Printf("  source:  %s\n", source)
			}
			return nil
		},
	}
}
