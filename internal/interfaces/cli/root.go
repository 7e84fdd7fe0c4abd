package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	configports "actionsperf.ai/cli/internal/core/ports/config"
	configinfra "actionsperf.ai/cli/internal/infrastructure/config"
	"actionsperf.ai/cli/internal/interfaces/di"
)

// profileEnvVar selects the active profile when no --profile flag is
// given.
const profileEnvVar = "APF_PROFILE"

// RootFlags holds the persistent flags shared by every subcommand.
type RootFlags struct {
	ConfigFile  string
	Profile     string
	Overrides   []string
	EnvFirst    bool
	UnknownKeys string
	Debug       bool
}

// NewRootCommand creates the apf root command.
func NewRootCommand(container *di.Container, version string) *cobra.Command {
	flags := &RootFlags{}

	rootCmd := &cobra.Command{
		Use:   "apf",
		Short: "ActionsPerf - GitHub Actions performance analysis",
		Long: `ActionsPerf (apf) analyzes the performance of GitHub Actions
workflows: benchmark runs, load tests, and regression reports.

Every subcommand starts from one resolved configuration, merged from
defaults, the active profile, config files, environment variables and
explicit --set overrides, in that order of precedence.`,
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			container.SetDebug(flags.Debug)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "explicit config file (default: search paths)")
	pf.StringVar(&flags.Profile, "profile", "", "active profile (default: $APF_PROFILE, then \"default\")")
	pf.StringArrayVar(&flags.Overrides, "set", nil, "override a setting, KEY=value (repeatable)")
	pf.BoolVar(&flags.EnvFirst, "env-first", false, "let the config file override environment variables")
	pf.StringVar(&flags.UnknownKeys, "unknown-keys", "error", "unknown key policy: error or warn")
	pf.BoolVar(&flags.Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newConfigCommand(container, flags))
	rootCmd.AddCommand(newProfilesCommand(container, flags))
	rootCmd.AddCommand(newValidateCommand(container, flags))
	rootCmd.AddCommand(newDashboardCommand(container, flags))

	return rootCmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, container *di.Container, version string) int {
	rootCmd := NewRootCommand(container, version)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if _, ok := err.(*configdomain.ResolveError); !ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// activeProfile applies the selector chain: --profile flag, then the
// APF_PROFILE environment variable, then the baseline default.
func activeProfile(flags *RootFlags) string {
	if flags.Profile != "" {
		return flags.Profile
	}
	return os.Getenv(profileEnvVar)
}

// buildSources assembles the loaders for one resolution pass from the
// persistent flags.
func buildSources(container *di.Container, flags *RootFlags) (configinfra.Sources, []configdomain.Diagnostic) {
	policy := configdomain.EnvOverFile
	if flags.EnvFirst {
		policy = configdomain.FileOverEnv
	}

	table, tableDiags := configinfra.LoadProfileTable(container.ProfileTablePath())

	var loaders []configports.Loader
	if flags.ConfigFile != "" {
		loaders = append(loaders, configinfra.NewFileLoader(flags.ConfigFile, policy.FilePriority()))
	} else {
		for _, path := range container.ConfigSearchPaths() {
			loaders = append(loaders, configinfra.NewSearchedFileLoader(path, policy.FilePriority()))
		}
	}
	loaders = append(loaders, configinfra.NewEnvLoader(container.Registry, policy.EnvPriority()))
	loaders = append(loaders, configinfra.NewOverrideLoader(flags.Overrides, configdomain.PriorityOverride))

	return configinfra.Sources{
		ProfileName: activeProfile(flags),
		Expander:    configinfra.NewProfileExpander(table, configdomain.PriorityProfile),
		Loaders:     loaders,
	}, tableDiags
}

// resolve runs one full resolution pass for a subcommand.
func resolve(ctx context.Context, container *di.Container, flags *RootFlags) (*configdomain.Resolved, error) {
	unknown := configinfra.UnknownKeyError
	if flags.UnknownKeys == "warn" {
		unknown = configinfra.UnknownKeyWarn
	}

	sources, tableDiags := buildSources(container, flags)
	for _, d := range tableDiags {
		if d.Severity == configdomain.SeverityError {
			return nil, &configdomain.ResolveError{Diagnostics: tableDiags}
		}
	}

	resolver := configinfra.NewResolver(container.Registry, container.Validator, unknown, container.Logger)
	return resolver.Resolve(ctx, sources)
}
