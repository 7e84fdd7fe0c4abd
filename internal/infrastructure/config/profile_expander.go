package configinfra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	profiledomain "actionsperf.ai/cli/internal/core/domain/profile"
	configports "actionsperf.ai/cli/internal/core/ports/config"
)

// profilesFileDTO mirrors the on-disk YAML profile table:
//
//	profiles:
//	  PROD_BASE:
//	    settings:
//	      LOG_LEVEL: WARN
//	  PROD_LARGE:
//	    inherits: [PROD_BASE]
//	    settings:
//	      MAX_PARALLEL_JOBS: 16
type profilesFileDTO struct {
	Profiles map[string]profileDTO `yaml:"profiles"`
}

type profileDTO struct {
	Inherits []string       `yaml:"inherits"`
	Settings map[string]any `yaml:"settings"`
}

// LoadProfileTable reads a YAML profile table from path. A missing file
// yields an empty table (only the implicit default profile) and a
// FILE_ABSENT warning.
func LoadProfileTable(path string) (*profiledomain.Table, []configdomain.Diagnostic) {
	source := fmt.Sprintf("file:%s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			table, _ := profiledomain.NewTable()
			return table, []configdomain.Diagnostic{{
				Kind:     configdomain.DiagFileAbsent,
				Severity: configdomain.SeverityWarning,
				Source:   source,
				Hint:     "no profile table at this path, only the default profile is available",
			}}
		}
		table, _ := profiledomain.NewTable()
		return table, []configdomain.Diagnostic{{
			Kind:     configdomain.DiagPermissionDenied,
			Severity: configdomain.SeverityError,
			Source:   source,
			Hint:     err.Error(),
		}}
	}

	var dto profilesFileDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		table, _ := profiledomain.NewTable()
		return table, []configdomain.Diagnostic{{
			Kind:     configdomain.DiagSyntaxError,
			Severity: configdomain.SeverityError,
			Source:   source,
			Hint:     fmt.Sprintf("profile table is not valid YAML: %v", err),
		}}
	}

	profiles := make([]profiledomain.Profile, 0, len(dto.Profiles))
	for name, p := range dto.Profiles {
		settings := make(map[string]string, len(p.Settings))
		for k, v := range p.Settings {
			settings[k] = fmt.Sprintf("%v", v)
		}
		profiles = append(profiles, profiledomain.Profile{
			Name:     name,
			Inherits: p.Inherits,
			Settings: settings,
		})
	}

	table, err := profiledomain.NewTable(profiles...)
	if err != nil {
		empty, _ := profiledomain.NewTable()
		return empty, []configdomain.Diagnostic{{
			Kind:     configdomain.DiagSyntaxError,
			Severity: configdomain.SeverityError,
			Source:   source,
			Hint:     err.Error(),
		}}
	}
	return table, nil
}

// ProfileExpander flattens a named profile and its inheritance chain
// into one snapshot.
type ProfileExpander struct {
	table    *profiledomain.Table
	priority int
}

func NewProfileExpander(table *profiledomain.Table, priority int) *ProfileExpander {
	return &ProfileExpander{table: table, priority: priority}
}

// Expand walks the parent chain depth-first, applying base profiles
// before each child's own assignments, so for any key the most derived
// assignment wins. A profile already on the current path is a
// CIRCULAR_PROFILE error naming the full cycle; continuing past one
// would never terminate, so expansion stops there.
func (e *ProfileExpander) Expand(name string) (configdomain.Snapshot, []configdomain.Diagnostic) {
	snap := make(configdomain.Snapshot)
	diags := e.walk(name, nil, snap)
	return snap, diags
}

func (e *ProfileExpander) walk(name string, path []string, snap configdomain.Snapshot) []configdomain.Diagnostic {
	for _, seen := range path {
		if seen == name {
			cycle := append(path, name)
			return []configdomain.Diagnostic{{
				Kind:     configdomain.DiagCircularProfile,
				Severity: configdomain.SeverityError,
				Source:   configdomain.SourceProfile,
				Value:    strings.Join(cycle, " -> "),
				Hint:     "break the inheritance cycle between these profiles",
			}}
		}
	}

	p, ok := e.table.Lookup(name)
	if !ok {
		return []configdomain.Diagnostic{{
			Kind:     configdomain.DiagUnknownProfile,
			Severity: configdomain.SeverityError,
			Source:   configdomain.SourceProfile,
			Value:    name,
			Hint:     fmt.Sprintf("known profiles: %s", strings.Join(e.table.Names(), ", ")),
		}}
	}

	var diags []configdomain.Diagnostic
	path = append(path, name)
	for _, parent := range p.Inherits {
		parentDiags := e.walk(parent, path, snap)
		diags = append(diags, parentDiags...)
		for _, d := range parentDiags {
			if d.Kind == configdomain.DiagCircularProfile {
				// A detected cycle invalidates the whole expansion.
				return diags
			}
		}
	}

	for key, value := range p.Settings {
		snap[key] = configdomain.Entry{
			Key:        key,
			Value:      value,
			Source:     configdomain.SourceProfile,
			SourcePath: fmt.Sprintf("profile:%s", name),
			Priority:   e.priority,
		}
	}

	return diags
}

var _ configports.Expander = (*ProfileExpander)(nil)
