package configinfra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
)

func TestEnvLoader_ReadsOnlyTheSettingNamespace(t *testing.T) {
	clearSettingEnv(t)
	t.Setenv("CACHE_TTL", "7200")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SOME_UNRELATED_VAR", "ignored")

	loader := NewEnvLoader(configdomain.DefaultRegistry(), configdomain.PriorityEnvironment)
	snap, diags := loader.Load(context.Background())

	assert.Empty(t, diags)
	require.Len(t, snap, 2, "absent settings are omitted, foreign variables never read")
	assert.Equal(t, "7200", snap["CACHE_TTL"].Value)
	assert.Equal(t, "DEBUG", snap["LOG_LEVEL"].Value)

	e := snap["CACHE_TTL"]
	assert.Equal(t, configdomain.SourceEnvironment, e.Source)
	assert.Equal(t, "CACHE_TTL", e.SourcePath)
}

func TestEnvLoader_EmptyValueStillCounts(t *testing.T) {
	clearSettingEnv(t)
	t.Setenv("LOG_LEVEL", "")

	loader := NewEnvLoader(configdomain.DefaultRegistry(), configdomain.PriorityEnvironment)
	snap, _ := loader.Load(context.Background())

	e, ok := snap["LOG_LEVEL"]
	require.True(t, ok, "a set-but-empty variable is still an override")
	assert.Equal(t, "", e.Value)
}

func TestOverrideLoader_SplitsPairs(t *testing.T) {
	loader := NewOverrideLoader([]string{"MAX_PARALLEL_JOBS=16", "GITHUB_API_URL=https://ghe.example.com=api"}, configdomain.PriorityOverride)
	snap, diags := loader.Load(context.Background())

	assert.Empty(t, diags)
	assert.Equal(t, "16", snap["MAX_PARALLEL_JOBS"].Value)
	assert.Equal(t, "https://ghe.example.com=api", snap["GITHUB_API_URL"].Value, "only the first '=' splits")
}

func TestOverrideLoader_MalformedPair(t *testing.T) {
	loader := NewOverrideLoader([]string{"MAX_PARALLEL_JOBS", "=5"}, configdomain.PriorityOverride)
	snap, diags := loader.Load(context.Background())

	assert.Empty(t, snap)
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, configdomain.DiagSyntaxError, d.Kind)
		assert.Equal(t, configdomain.SourceOverride, d.Source)
	}
}

func TestOverrideLoaderFromMap(t *testing.T) {
	loader := NewOverrideLoaderFromMap(map[string]string{"REPORT_FORMAT": "JSON"}, configdomain.PriorityOverride)
	snap, diags := loader.Load(context.Background())

	assert.Empty(t, diags)
	assert.Equal(t, "JSON", snap["REPORT_FORMAT"].Value)
}
