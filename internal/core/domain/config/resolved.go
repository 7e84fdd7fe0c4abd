package configdomain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Value is one resolved setting: its definition, the raw string that won
// the merge, the typed value it validated to, and where it came from.
type Value struct {
	Def        Definition
	Raw        string
	Typed      any
	Source     string
	SourcePath string
}

// Resolved is the immutable result of one resolution pass. Every key in
// the registry is present exactly once (defaults guarantee total
// coverage), so downstream consumers may treat every lookup of a known
// key as always present. Safe for unsynchronized concurrent reads.
type Resolved struct {
	id         string
	resolvedAt time.Time
	values     map[string]Value
	warnings   []Diagnostic
}

// NewResolved builds a resolved configuration from validated values and
// any non-fatal warnings gathered along the way. The maps and slices are
// copied so the result cannot be mutated through the inputs.
func NewResolved(values map[string]Value, warnings []Diagnostic) *Resolved {
	vs := make(map[string]Value, len(values))
	for k, v := range values {
		vs[k] = v
	}
	ws := make([]Diagnostic, len(warnings))
	copy(ws, warnings)
	return &Resolved{
		id:         uuid.NewString(),
		resolvedAt: time.Now().UTC(),
		values:     vs,
		warnings:   ws,
	}
}

// ID returns the unique identifier of this resolution pass, used to
// correlate reports produced by downstream collaborators.
func (r *Resolved) ID() string { return r.id }

// ResolvedAt returns when this configuration was produced.
func (r *Resolved) ResolvedAt() time.Time { return r.resolvedAt }

// Keys returns every resolved setting name in sorted order.
func (r *Resolved) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the full resolved value for key.
func (r *Resolved) Lookup(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Values returns a copy of the resolved value map. Two resolutions from
// identical sources produce equal value maps.
func (r *Resolved) Values() map[string]Value {
	out := make(map[string]Value, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Int returns the typed value of an integer setting, or zero for an
// unknown key.
func (r *Resolved) Int(key string) int {
	if v, ok := r.values[key]; ok {
		if i, ok := v.Typed.(int); ok {
			return i
		}
	}
	return 0
}

// Bool returns the typed value of a boolean setting.
func (r *Resolved) Bool(key string) bool {
	if v, ok := r.values[key]; ok {
		if b, ok := v.Typed.(bool); ok {
			return b
		}
	}
	return false
}

// String returns the typed value of a string or enum setting.
func (r *Resolved) String(key string) string {
	if v, ok := r.values[key]; ok {
		if s, ok := v.Typed.(string); ok {
			return s
		}
	}
	return ""
}

// Path returns the typed value of a path setting.
func (r *Resolved) Path(key string) string { return r.String(key) }

// Provenance returns the origin of the winning value for key, e.g.
// "default", "environment" or "file" plus the concrete source path.
func (r *Resolved) Provenance(key string) (source, sourcePath string) {
	if v, ok := r.values[key]; ok {
		return v.Source, v.SourcePath
	}
	return "", ""
}

// Warnings returns the non-fatal diagnostics attached to this
// resolution, such as skipped optional files or tolerated unknown keys.
func (r *Resolved) Warnings() []Diagnostic {
	out := make([]Diagnostic, len(r.warnings))
	copy(out, r.warnings)
	return out
}
