// Package profiledomain models named, inheritable bundles of setting
// assignments. Profiles are declarative data, not executable code: a
// profile lists its parents and its own assignments, and expansion is a
// graph traversal performed by the infrastructure layer.
package profiledomain

import (
	"fmt"
	"sort"
)

// DefaultProfileName is the baseline profile used when no selector is
// present.
const DefaultProfileName = "default"

// Profile is a named bundle of raw setting assignments plus the parents
// it inherits from. Parents are applied before the profile's own
// assignments.
type Profile struct {
	Name     string
	Inherits []string
	Settings map[string]string
}

// Table holds every known profile. It is loaded once and immutable
// afterwards.
type Table struct {
	profiles map[string]Profile
	names    []string
}

// NewTable builds a table from the given profiles. A baseline "default"
// profile is added implicitly if absent, so selecting no profile is
// always valid.
func NewTable(profiles ...Profile) (*Table, error) {
	t := &Table{profiles: make(map[string]Profile, len(profiles)+1)}
	for _, p := range profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile with empty name")
		}
		if _, ok := t.profiles[p.Name]; ok {
			return nil, fmt.Errorf("duplicate profile %s", p.Name)
		}
		t.profiles[p.Name] = p
		t.names = append(t.names, p.Name)
	}
	if _, ok := t.profiles[DefaultProfileName]; !ok {
		t.profiles[DefaultProfileName] = Profile{Name: DefaultProfileName}
		t.names = append(t.names, DefaultProfileName)
	}
	sort.Strings(t.names)
	return t, nil
}

// Lookup returns the profile with the given name.
func (t *Table) Lookup(name string) (Profile, bool) {
	p, ok := t.profiles[name]
	return p, ok
}

// Names returns every known profile name in sorted order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}
