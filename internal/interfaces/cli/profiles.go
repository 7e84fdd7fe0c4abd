package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	configinfra "actionsperf.ai/cli/internal/infrastructure/config"
	"actionsperf.ai/cli/internal/interfaces/di"
)

// newProfilesCommand creates the profiles command group.
func newProfilesCommand(container *di.Container, flags *RootFlags) *cobra.Command {
	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "List and inspect configuration profiles",
	}

	profilesCmd.AddCommand(newProfilesListCommand(container))
	profilesCmd.AddCommand(newProfilesShowCommand(container))

	return profilesCmd
}

// newProfilesListCommand creates the list subcommand.
func newProfilesListCommand(container *di.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every known profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, diags := configinfra.LoadProfileTable(container.ProfileTablePath())
			for _, d := range diags {
				if d.Severity == configdomain.SeverityError {
					return fmt.Errorf("%s", d.String())
				}
				cmd.PrintErrln(warningStyle.Render("warning: " + d.String()))
			}

			cmd.Println(headerStyle.Render("Profiles"))
			for _, name := range table.Names() {
				p, _ := table.Lookup(name)
				line := "  " + keyStyle.Render(name)
				if len(p.Inherits) > 0 {
					line += sourceStyle.Render(" (inherits " + strings.Join(p.Inherits, ", ") + ")")
				}
				cmd.Println(line)
			}
			return nil
		},
	}
}

// newProfilesShowCommand creates the show subcommand, printing the
// fully expanded assignment set of one profile.
func newProfilesShowCommand(container *di.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a profile's expanded assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, diags := configinfra.LoadProfileTable(container.ProfileTablePath())
			for _, d := range diags {
				if d.Severity == configdomain.SeverityError {
					return fmt.Errorf("%s", d.String())
				}
			}

			expander := configinfra.NewProfileExpander(table, configdomain.PriorityProfile)
			snap, expandDiags := expander.Expand(args[0])
			for _, d := range expandDiags {
				if d.Severity == configdomain.SeverityError {
					return fmt.Errorf("%s", d.String())
				}
			}

			cmd.Println(headerStyle.Render(args[0]))
			keys := make([]string, 0, len(snap))
			for k := range snap {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				e := snap[k]
				cmd.Printf("  %s=%s %s\n", keyStyle.Render(k), e.Value, sourceStyle.Render("["+e.SourcePath+"]"))
			}
			if len(keys) == 0 {
				cmd.Println(sourceStyle.Render("  (no assignments, defaults apply)"))
			}
			return nil
		},
	}
}
