package configdomain

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the declared type of a setting.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindEnum
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindPath:
		return "path"
	default:
		return "unknown"
	}
}

// Definition is the static schema entry for one setting: its kind, its
// constraints, and the default every resolution starts from.
type Definition struct {
	Name string
	Kind Kind

	// Min and Max are inclusive bounds, used only for KindInt.
	Min int
	Max int

	// Enum lists the permitted literals, used only for KindEnum.
	Enum []string

	// Default is the raw (untyped) default value.
	Default string

	// Desc is a one-line description used in remediation hints.
	Desc string
}

// Hint returns the remediation hint for a value that failed this
// definition's constraint.
func (d Definition) Hint() string {
	switch d.Kind {
	case KindInt:
		return fmt.Sprintf("set %s between %d and %d", d.Name, d.Min, d.Max)
	case KindBool:
		return fmt.Sprintf("set %s to true or false (lowercase)", d.Name)
	case KindEnum:
		return fmt.Sprintf("set %s to one of: %s", d.Name, strings.Join(d.Enum, ", "))
	default:
		return fmt.Sprintf("set %s to a valid %s", d.Name, d.Kind)
	}
}

// Registry is the process-wide table of setting definitions. It is built
// once at startup and read-only afterwards, so concurrent reads need no
// locking.
type Registry struct {
	defs  map[string]Definition
	names []string
}

// NewRegistry builds a registry from the given definitions. Duplicate
// names and definitions without a default are rejected.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("definition with empty name")
		}
		if _, ok := r.defs[d.Name]; ok {
			return nil, fmt.Errorf("duplicate definition %s", d.Name)
		}
		if d.Default == "" && d.Kind != KindString && d.Kind != KindPath {
			return nil, fmt.Errorf("definition %s has no default", d.Name)
		}
		r.defs[d.Name] = d
		r.names = append(r.names, d.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// MustNewRegistry is NewRegistry for static tables assembled at startup.
func MustNewRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the definition for name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns every defined setting name in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int { return len(r.names) }

// Defaults returns a snapshot holding every definition's default value.
// This is the lowest-precedence source, so every resolution starts with
// total key coverage.
func (r *Registry) Defaults() Snapshot {
	snap := make(Snapshot, len(r.defs))
	for name, d := range r.defs {
		snap[name] = Entry{
			Key:      name,
			Value:    d.Default,
			Source:   SourceDefault,
			Priority: PriorityDefault,
		}
	}
	return snap
}
