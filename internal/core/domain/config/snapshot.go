package configdomain

// Source origin tags, recorded on every entry and surfaced as provenance.
const (
	SourceDefault     = "default"
	SourceProfile     = "profile"
	SourceFile        = "file"
	SourceEnvironment = "environment"
	SourceOverride    = "override"
)

// Source priorities. Lower number indicates higher priority, so an
// explicit override always wins and a default always loses. File and
// environment priorities are assigned through a PrecedencePolicy because
// their relative order is a policy decision, not a law.
const (
	PriorityOverride    = 1
	PriorityEnvironment = 2
	PriorityFile        = 3
	PriorityProfile     = 4
	PriorityDefault     = 5
)

// PrecedencePolicy decides whether environment variables override the
// config file or the other way around. EnvOverFile is the default.
type PrecedencePolicy int

const (
	// EnvOverFile: default < profile < file < environment < override.
	EnvOverFile PrecedencePolicy = iota
	// FileOverEnv: default < profile < environment < file < override.
	FileOverEnv
)

// FilePriority returns the merge priority of file sources under p.
func (p PrecedencePolicy) FilePriority() int {
	if p == FileOverEnv {
		return PriorityEnvironment
	}
	return PriorityFile
}

// EnvPriority returns the merge priority of the environment under p.
func (p PrecedencePolicy) EnvPriority() int {
	if p == FileOverEnv {
		return PriorityFile
	}
	return PriorityEnvironment
}

// Entry represents a single raw configuration value with provenance and
// priority. Values are untyped strings until validation.
type Entry struct {
	Key        string
	Value      string
	Source     string
	SourcePath string
	Priority   int
}

// Snapshot is a collection of raw entries keyed by setting name. Each
// resolution pass builds its own snapshots; they are never shared across
// calls.
type Snapshot map[string]Entry

// Merge merges another snapshot into this one respecting priority
// (lower number indicates higher priority). Ties go to the incoming
// entry, so within one priority level later sources win.
func (s Snapshot) Merge(other Snapshot) {
	for k, e := range other {
		if existing, ok := s[k]; !ok || e.Priority <= existing.Priority {
			s[k] = e
		}
	}
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, e := range s {
		out[k] = e
	}
	return out
}
