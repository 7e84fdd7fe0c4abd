package configinfra

import (
	"context"
	"fmt"
	"log/slog"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	profiledomain "actionsperf.ai/cli/internal/core/domain/profile"
	configports "actionsperf.ai/cli/internal/core/ports/config"
)

// UnknownKeyPolicy decides whether keys absent from the registry abort
// resolution or are tolerated as warnings (forward compatibility: a
// newer config file against an older build).
type UnknownKeyPolicy int

const (
	UnknownKeyError UnknownKeyPolicy = iota
	UnknownKeyWarn
)

// Sources names everything one resolution pass reads. Each call builds
// its own Sources, so concurrent resolutions never share merge state.
type Sources struct {
	// ProfileName is the active profile; empty selects the default.
	ProfileName string
	Expander    configports.Expander

	// Loaders in any order; precedence is carried by entry priorities,
	// so read order never changes the outcome.
	Loaders []configports.Loader
}

// Resolver merges defaults, the active profile, files, the environment
// and explicit overrides into one validated, immutable configuration.
type Resolver struct {
	registry  *configdomain.Registry
	validator configports.Validator
	unknown   UnknownKeyPolicy
	logger    *slog.Logger
}

func NewResolver(registry *configdomain.Registry, validator configports.Validator, unknown UnknownKeyPolicy, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{registry: registry, validator: validator, unknown: unknown, logger: logger}
}

// Resolve runs one full pass: read sources, expand the profile, merge
// by precedence, validate everything, and either return the immutable
// result or a ResolveError carrying the complete diagnostic set.
// Resolution holds no shared state, so cancelling simply abandons the
// pass; there is nothing to roll back.
func (r *Resolver) Resolve(ctx context.Context, sources Sources) (*configdomain.Resolved, error) {
	phase := configdomain.PhaseInit
	var diags []configdomain.Diagnostic

	// READING_SOURCES: every loader runs to completion and reports all
	// of its problems; nothing short-circuits here.
	phase = configdomain.PhaseReadingSources
	r.logger.Debug("resolving configuration", "phase", phase.String())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshots := make([]configdomain.Snapshot, 0, len(sources.Loaders))
	for _, loader := range sources.Loaders {
		snap, loaderDiags := loader.Load(ctx)
		diags = append(diags, loaderDiags...)
		snapshots = append(snapshots, snap)
		r.logger.Debug("read source", "source", loader.Name(), "keys", len(snap), "diagnostics", len(loaderDiags))
	}

	// EXPANDING_PROFILES: a detected cycle is the one condition that
	// stops its own expansion early, but diagnostics gathered so far
	// are still reported alongside it.
	phase = configdomain.PhaseExpandingProfiles
	r.logger.Debug("resolving configuration", "phase", phase.String())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if sources.Expander != nil {
		name := sources.ProfileName
		if name == "" {
			name = profiledomain.DefaultProfileName
		}
		snap, profileDiags := sources.Expander.Expand(name)
		diags = append(diags, profileDiags...)
		snapshots = append(snapshots, snap)
		r.logger.Debug("expanded profile", "profile", name, "keys", len(snap))
	}

	// MERGING: defaults first for total coverage, then every snapshot
	// by priority. Unknown keys are reported per occurrence and never
	// silently merged.
	phase = configdomain.PhaseMerging
	r.logger.Debug("resolving configuration", "phase", phase.String())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := r.registry.Defaults()
	for _, snap := range snapshots {
		known := make(configdomain.Snapshot, len(snap))
		for key, e := range snap {
			if _, ok := r.registry.Lookup(key); !ok {
				diags = append(diags, r.unknownKeyDiagnostic(e))
				continue
			}
			known[key] = e
		}
		merged.Merge(known)
	}

	// VALIDATING: every key is checked and every failure collected, so
	// a single pass reports the complete problem set.
	phase = configdomain.PhaseValidating
	r.logger.Debug("resolving configuration", "phase", phase.String())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values := make(map[string]configdomain.Value, r.registry.Len())
	fieldErrors := 0
	for _, name := range r.registry.Names() {
		def, _ := r.registry.Lookup(name)
		entry := merged[name]
		value, diag := r.validator.ValidateEntry(def, entry)
		if diag != nil {
			diags = append(diags, *diag)
			fieldErrors++
			continue
		}
		values[name] = value
	}

	// Dependency rules need the complete typed map, so they only run
	// when every individual field validated.
	if fieldErrors == 0 {
		diags = append(diags, r.validator.ValidateDependencies(values)...)
	}

	var warnings []configdomain.Diagnostic
	fatal := false
	for _, d := range diags {
		if d.Severity == configdomain.SeverityError {
			fatal = true
		} else {
			warnings = append(warnings, d)
		}
	}

	if fatal {
		phase = configdomain.PhaseFailed
		r.logger.Debug("resolution finished", "phase", phase.String(), "diagnostics", len(diags))
		return nil, &configdomain.ResolveError{Diagnostics: diags}
	}

	phase = configdomain.PhaseResolved
	resolved := configdomain.NewResolved(values, warnings)
	r.logger.Debug("resolution finished", "phase", phase.String(), "id", resolved.ID(), "warnings", len(warnings))
	return resolved, nil
}

func (r *Resolver) unknownKeyDiagnostic(e configdomain.Entry) configdomain.Diagnostic {
	severity := configdomain.SeverityError
	hint := fmt.Sprintf("%s is not a known setting; remove it or update the tool", e.Key)
	if r.unknown == UnknownKeyWarn {
		severity = configdomain.SeverityWarning
		hint = fmt.Sprintf("%s is not a known setting and was ignored", e.Key)
	}
	return configdomain.Diagnostic{
		Kind:     configdomain.DiagUnknownKey,
		Severity: severity,
		Key:      e.Key,
		Source:   e.Source,
		Value:    e.Value,
		Hint:     hint,
	}
}
