package cli

import (
	"github.com/spf13/cobra"

	"actionsperf.ai/cli/internal/interfaces/di"
)

// newValidateCommand creates the validate command: one full resolution
// pass whose only output is the complete diagnostic report.
func newValidateCommand(container *di.Container, flags *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration without running anything",
		Long: `Run a full configuration resolution and report every problem found
in one pass: syntax errors, unknown keys, out-of-range values, and
violated dependency rules. Exits non-zero if any blocking problem
exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolve(cmd.Context(), container, flags)
			if err != nil {
				return printResolveFailure(cmd, err)
			}

			cmd.Println(headerStyle.Render("Configuration is valid"))
			for _, w := range resolved.Warnings() {
				cmd.Println(warningStyle.Render("warning: " + w.String()))
			}
			cmd.Printf("%d settings resolved (profile selector: %q)\n", len(resolved.Keys()), activeProfileName(flags))
			return nil
		},
	}
}

func activeProfileName(flags *RootFlags) string {
	if name := activeProfile(flags); name != "" {
		return name
	}
	return "default"
}
