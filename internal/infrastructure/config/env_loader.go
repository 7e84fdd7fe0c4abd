package configinfra

import (
	"context"
	"os"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	configports "actionsperf.ai/cli/internal/core/ports/config"
)

// EnvLoader reads the process environment. Only names present in the
// setting registry are considered; absent variables are simply omitted.
type EnvLoader struct {
	registry *configdomain.Registry
	priority int
}

func NewEnvLoader(registry *configdomain.Registry, priority int) *EnvLoader {
	return &EnvLoader{registry: registry, priority: priority}
}

func (l *EnvLoader) Name() string { return "environment" }

// Load builds a snapshot from exported variables matching the setting
// namespace, verbatim. A set-but-empty variable still counts as set.
func (l *EnvLoader) Load(ctx context.Context) (configdomain.Snapshot, []configdomain.Diagnostic) {
	snap := make(configdomain.Snapshot)
	for _, name := range l.registry.Names() {
		if v, ok := os.LookupEnv(name); ok {
			snap[name] = configdomain.Entry{
				Key:        name,
				Value:      v,
				Source:     configdomain.SourceEnvironment,
				SourcePath: name,
				Priority:   l.priority,
			}
		}
	}
	return snap, nil
}

var _ configports.Loader = (*EnvLoader)(nil)
