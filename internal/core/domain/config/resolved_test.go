package configdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testValues() map[string]Value {
	return map[string]Value{
		"MAX_PARALLEL_JOBS": {
			Def:    Definition{Name: "MAX_PARALLEL_JOBS", Kind: KindInt, Min: 1, Max: 32, Default: "4"},
			Raw:    "8",
			Typed:  8,
			Source: SourceFile, SourcePath: "apf.conf:MAX_PARALLEL_JOBS",
		},
		"ADAPTIVE_TUNING": {
			Def:    Definition{Name: "ADAPTIVE_TUNING", Kind: KindBool, Default: "false"},
			Raw:    "true",
			Typed:  true,
			Source: SourceEnvironment, SourcePath: "ADAPTIVE_TUNING",
		},
		"LOG_LEVEL": {
			Def:    Definition{Name: "LOG_LEVEL", Kind: KindEnum, Enum: []string{"DEBUG", "INFO", "WARN", "ERROR"}, Default: "INFO"},
			Raw:    "INFO",
			Typed:  "INFO",
			Source: SourceDefault,
		},
	}
}

func TestResolved_TypedAccessors(t *testing.T) {
	r := NewResolved(testValues(), nil)

	assert.Equal(t, 8, r.Int("MAX_PARALLEL_JOBS"))
	assert.True(t, r.Bool("ADAPTIVE_TUNING"))
	assert.Equal(t, "INFO", r.String("LOG_LEVEL"))

	// Unknown or mistyped keys return zero values.
	assert.Equal(t, 0, r.Int("NOPE"))
	assert.Equal(t, 0, r.Int("LOG_LEVEL"))
	assert.False(t, r.Bool("LOG_LEVEL"))
}

func TestResolved_Provenance(t *testing.T) {
	r := NewResolved(testValues(), nil)

	source, path := r.Provenance("MAX_PARALLEL_JOBS")
	assert.Equal(t, SourceFile, source)
	assert.Equal(t, "apf.conf:MAX_PARALLEL_JOBS", path)

	source, _ = r.Provenance("LOG_LEVEL")
	assert.Equal(t, SourceDefault, source)
}

func TestResolved_Immutability(t *testing.T) {
	input := testValues()
	warnings := []Diagnostic{{Kind: DiagFileAbsent, Severity: SeverityWarning}}
	r := NewResolved(input, warnings)

	// Mutating the inputs after construction changes nothing.
	input["MAX_PARALLEL_JOBS"] = Value{Typed: 99}
	warnings[0].Kind = DiagUnknownKey
	assert.Equal(t, 8, r.Int("MAX_PARALLEL_JOBS"))
	assert.Equal(t, DiagFileAbsent, r.Warnings()[0].Kind)

	// Mutating the outputs changes nothing either.
	r.Values()["MAX_PARALLEL_JOBS"] = Value{Typed: 99}
	r.Warnings()[0] = Diagnostic{Kind: DiagUnknownKey}
	assert.Equal(t, 8, r.Int("MAX_PARALLEL_JOBS"))
	assert.Equal(t, DiagFileAbsent, r.Warnings()[0].Kind)
}

func TestResolved_KeysSortedAndIDsUnique(t *testing.T) {
	a := NewResolved(testValues(), nil)
	b := NewResolved(testValues(), nil)

	assert.Equal(t, []string{"ADAPTIVE_TUNING", "LOG_LEVEL", "MAX_PARALLEL_JOBS"}, a.Keys())
	require.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID(), "each resolution pass gets its own ID")
	assert.False(t, a.ResolvedAt().IsZero())
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Kind:   DiagOutOfRange,
		Key:    "CACHE_TTL",
		Value:  "30",
		Source: SourceEnvironment,
		Hint:   "must be 60-86400; set CACHE_TTL between 60 and 86400",
	}
	assert.Equal(t, "OUT_OF_RANGE CACHE_TTL=30 (environment): must be 60-86400; set CACHE_TTL between 60 and 86400", d.String())

	syntax := Diagnostic{Kind: DiagSyntaxError, Source: "file:apf.conf", Line: 3, Column: 7, Hint: "no spaces allowed before '='"}
	assert.Equal(t, "SYNTAX_ERROR (file:apf.conf:3:7): no spaces allowed before '='", syntax.String())
}

func TestResolveError_CountsOnlyBlocking(t *testing.T) {
	err := &ResolveError{Diagnostics: []Diagnostic{
		{Kind: DiagOutOfRange, Severity: SeverityError, Key: "CACHE_TTL"},
		{Kind: DiagFileAbsent, Severity: SeverityWarning},
		{Kind: DiagSyntaxError, Severity: SeverityError},
	}}

	assert.Len(t, err.Errors(), 2)
	assert.Contains(t, err.Error(), "2 problem(s)")
	assert.NotContains(t, err.Error(), "FILE_ABSENT")
}
