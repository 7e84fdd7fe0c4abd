package configdomain

import (
	"fmt"
	"strings"
)

// DiagnosticKind identifies one class of resolution problem.
type DiagnosticKind string

const (
	DiagFileNotFound        DiagnosticKind = "FILE_NOT_FOUND"
	DiagPermissionDenied    DiagnosticKind = "PERMISSION_DENIED"
	DiagSyntaxError         DiagnosticKind = "SYNTAX_ERROR"
	DiagUnknownProfile      DiagnosticKind = "UNKNOWN_PROFILE"
	DiagCircularProfile     DiagnosticKind = "CIRCULAR_PROFILE"
	DiagUnknownKey          DiagnosticKind = "UNKNOWN_KEY"
	DiagOutOfRange          DiagnosticKind = "OUT_OF_RANGE"
	DiagNotNumeric          DiagnosticKind = "NOT_NUMERIC"
	DiagInvalidBoolean      DiagnosticKind = "INVALID_BOOLEAN"
	DiagInvalidEnum         DiagnosticKind = "INVALID_ENUM"
	DiagDependencyViolation DiagnosticKind = "DEPENDENCY_VIOLATION"

	// DiagFileAbsent records that an optional (searched, not explicitly
	// requested) config file was skipped. Always a warning: it lets
	// callers tell "used a safe default" apart from "never checked".
	DiagFileAbsent DiagnosticKind = "FILE_ABSENT"
)

// Severity splits diagnostics into blocking errors and informational
// warnings. Warnings never prevent a resolution from succeeding.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one resolution problem: what went wrong, on which key,
// from which source, and how to fix it.
type Diagnostic struct {
	Kind     DiagnosticKind
	Severity Severity
	Key      string
	Source   string
	Value    string
	Line     int
	Column   int
	Hint     string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Kind))
	if d.Key != "" {
		fmt.Fprintf(&b, " %s", d.Key)
		if d.Value != "" {
			fmt.Fprintf(&b, "=%s", d.Value)
		}
	}
	if d.Source != "" {
		fmt.Fprintf(&b, " (%s", d.Source)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
			if d.Column > 0 {
				fmt.Fprintf(&b, ":%d", d.Column)
			}
		}
		b.WriteString(")")
	}
	if d.Hint != "" {
		fmt.Fprintf(&b, ": %s", d.Hint)
	}
	return b.String()
}

// ResolveError aggregates every diagnostic produced by one resolution
// pass, so a single failed run reports the complete problem set instead
// of forcing a fix-one-rerun-fix-next loop.
type ResolveError struct {
	Diagnostics []Diagnostic
}

func (e *ResolveError) Error() string {
	n := 0
	for _, d := range e.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "configuration resolution failed with %d problem(s):", n)
	for _, d := range e.Diagnostics {
		if d.Severity != SeverityError {
			continue
		}
		b.WriteString("\n  ")
		b.WriteString(d.String())
	}
	return b.String()
}

// Errors returns only the blocking diagnostics.
func (e *ResolveError) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range e.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Phase tracks where a resolution pass currently is. FAILED and RESOLVED
// are terminal; no transition skips VALIDATING.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseReadingSources
	PhaseExpandingProfiles
	PhaseMerging
	PhaseValidating
	PhaseResolved
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "INIT"
	case PhaseReadingSources:
		return "READING_SOURCES"
	case PhaseExpandingProfiles:
		return "EXPANDING_PROFILES"
	case PhaseMerging:
		return "MERGING"
	case PhaseValidating:
		return "VALIDATING"
	case PhaseResolved:
		return "RESOLVED"
	case PhaseFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
