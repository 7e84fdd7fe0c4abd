package configports

import (
	"context"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
)

// Loader reads raw key/value pairs from one input source. Loaders never
// fail hard: every problem is returned as a diagnostic so the resolver
// can aggregate the complete problem set in one pass.
type Loader interface {
	Name() string
	Load(ctx context.Context) (configdomain.Snapshot, []configdomain.Diagnostic)
}

// Expander resolves a named profile, including its inheritance chain,
// into a flat snapshot.
type Expander interface {
	Expand(name string) (configdomain.Snapshot, []configdomain.Diagnostic)
}

// Validator turns raw entries into typed values and checks cross-field
// dependency rules over the fully typed result.
type Validator interface {
	ValidateEntry(def configdomain.Definition, e configdomain.Entry) (configdomain.Value, *configdomain.Diagnostic)
	ValidateDependencies(values map[string]configdomain.Value) []configdomain.Diagnostic
}
