package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	"actionsperf.ai/cli/internal/interfaces/di"
)

func clearSettingEnv(t *testing.T) {
	t.Helper()
	for _, name := range configdomain.DefaultRegistry().Names() {
		if v, ok := os.LookupEnv(name); ok {
			t.Setenv(name, v)
			os.Unsetenv(name)
		}
	}
}

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	container := di.NewContainer()
	cmd := NewRootCommand(container, "test")

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestActiveProfile_SelectorChain(t *testing.T) {
	t.Setenv(profileEnvVar, "")
	os.Unsetenv(profileEnvVar)

	assert.Equal(t, "", activeProfile(&RootFlags{}), "empty selector falls back to the default profile")
	assert.Equal(t, "PROD_LARGE", activeProfile(&RootFlags{Profile: "PROD_LARGE"}))

	t.Setenv(profileEnvVar, "CI_FAST")
	assert.Equal(t, "CI_FAST", activeProfile(&RootFlags{}))
	assert.Equal(t, "PROD_LARGE", activeProfile(&RootFlags{Profile: "PROD_LARGE"}), "the flag beats the environment selector")
}

func TestBuildSources_Composition(t *testing.T) {
	container := di.NewContainer()

	sources, _ := buildSources(container, &RootFlags{ConfigFile: "explicit.conf"})
	require.Len(t, sources.Loaders, 3, "explicit file, environment, overrides")
	assert.NotNil(t, sources.Expander)

	searched, _ := buildSources(container, &RootFlags{})
	assert.Greater(t, len(searched.Loaders), len(sources.Loaders)-1, "search paths replace the explicit file")
}

func TestValidateCommand_CleanRun(t *testing.T) {
	clearSettingEnv(t)

	stdout, _, err := runCommand(t, "validate", "--set", "MAX_PARALLEL_JOBS=8")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")
}

func TestValidateCommand_ReportsEveryProblem(t *testing.T) {
	clearSettingEnv(t)

	_, stderr, err := runCommand(t, "validate",
		"--set", "MAX_PARALLEL_JOBS=99",
		"--set", "LOG_LEVEL=verbose")
	require.Error(t, err)
	assert.Contains(t, stderr, "OUT_OF_RANGE")
	assert.Contains(t, stderr, "INVALID_ENUM")
}

func TestValidateCommand_MissingExplicitConfig(t *testing.T) {
	clearSettingEnv(t)

	_, stderr, err := runCommand(t, "validate", "--config", "/nonexistent/apf.conf")
	require.Error(t, err)
	assert.Contains(t, stderr, "FILE_NOT_FOUND")
}

func TestConfigExplain_UnknownKey(t *testing.T) {
	_, _, err := runCommand(t, "config", "explain", "NOT_A_SETTING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting NOT_A_SETTING")
	assert.Contains(t, err.Error(), "MAX_PARALLEL_JOBS", "the error lists the known settings")
}

func TestConfigShow_PrintsProvenance(t *testing.T) {
	clearSettingEnv(t)

	stdout, _, err := runCommand(t, "config", "show", "--set", "CACHE_TTL=7200")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CACHE_TTL")
	assert.Contains(t, stdout, "override")
	assert.Contains(t, stdout, "default")
}

func TestProfilesList_AlwaysHasDefault(t *testing.T) {
	stdout, _, err := runCommand(t, "profiles", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "default")
}

func TestUnknownKeysFlag_WarnMode(t *testing.T) {
	clearSettingEnv(t)
	t.Setenv("APF_PROFILE", "")
	os.Unsetenv("APF_PROFILE")

	// In warn mode a misspelled override is reported but not fatal.
	stdout, _, err := runCommand(t, "validate", "--unknown-keys", "warn", "--set", "MAX_PRALLEL_JOBS=8")
	require.NoError(t, err)
	assert.Contains(t, stdout, "UNKNOWN_KEY")
}
