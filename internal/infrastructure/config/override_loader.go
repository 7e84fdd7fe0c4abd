package configinfra

import (
	"context"
	"fmt"
	"strings"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	configports "actionsperf.ai/cli/internal/core/ports/config"
)

// OverrideLoader carries explicit KEY=value overrides, e.g. repeated
// --set flags or programmatic assignments. Pairs arrive already split
// from any file, so no grammar beyond the single '=' split applies.
type OverrideLoader struct {
	pairs    []string
	priority int
}

func NewOverrideLoader(pairs []string, priority int) *OverrideLoader {
	return &OverrideLoader{pairs: pairs, priority: priority}
}

// NewOverrideLoaderFromMap wraps programmatic overrides.
func NewOverrideLoaderFromMap(values map[string]string, priority int) *OverrideLoader {
	pairs := make([]string, 0, len(values))
	for k, v := range values {
		pairs = append(pairs, k+"="+v)
	}
	return &OverrideLoader{pairs: pairs, priority: priority}
}

func (l *OverrideLoader) Name() string { return "override" }

func (l *OverrideLoader) Load(ctx context.Context) (configdomain.Snapshot, []configdomain.Diagnostic) {
	snap := make(configdomain.Snapshot)
	var diags []configdomain.Diagnostic

	for _, pair := range l.pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			diags = append(diags, configdomain.Diagnostic{
				Kind:     configdomain.DiagSyntaxError,
				Severity: configdomain.SeverityError,
				Source:   configdomain.SourceOverride,
				Value:    pair,
				Hint:     "overrides take the form KEY=value",
			})
			continue
		}
		snap[key] = configdomain.Entry{
			Key:        key,
			Value:      value,
			Source:     configdomain.SourceOverride,
			SourcePath: fmt.Sprintf("--set %s", key),
			Priority:   l.priority,
		}
	}

	return snap, diags
}

var _ configports.Loader = (*OverrideLoader)(nil)
