package configinfra

import (
	"fmt"
	"strconv"

	"github.com/expr-lang/expr"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	configports "actionsperf.ai/cli/internal/core/ports/config"
)

// Validator checks raw entries against their definitions and evaluates
// cross-field dependency rules. Validation is pure: no state is read or
// written beyond the inputs.
type Validator struct {
	rules []configdomain.Rule
}

func NewValidator(rules []configdomain.Rule) *Validator {
	return &Validator{rules: rules}
}

// ValidateEntry parses and checks one raw entry against its definition.
// On success it returns the typed value; on failure a diagnostic naming
// the key, the offending source, and a remediation hint.
func (v *Validator) ValidateEntry(def configdomain.Definition, e configdomain.Entry) (configdomain.Value, *configdomain.Diagnostic) {
	fail := func(kind configdomain.DiagnosticKind, hint string) (configdomain.Value, *configdomain.Diagnostic) {
		return configdomain.Value{}, &configdomain.Diagnostic{
			Kind:     kind,
			Severity: configdomain.SeverityError,
			Key:      def.Name,
			Source:   e.Source,
			Value:    e.Value,
			Hint:     hint,
		}
	}

	var typed any
	switch def.Kind {
	case configdomain.KindInt:
		n, err := strconv.Atoi(e.Value)
		if err != nil {
			return fail(configdomain.DiagNotNumeric, def.Hint())
		}
		if n < def.Min || n > def.Max {
			return fail(configdomain.DiagOutOfRange,
				fmt.Sprintf("must be %d-%d; %s", def.Min, def.Max, def.Hint()))
		}
		typed = n

	case configdomain.KindBool:
		// Only the exact literals are accepted; "True", "1" and "yes"
		// are not booleans here.
		switch e.Value {
		case "true":
			typed = true
		case "false":
			typed = false
		default:
			return fail(configdomain.DiagInvalidBoolean, def.Hint())
		}

	case configdomain.KindEnum:
		found := false
		for _, lit := range def.Enum {
			if e.Value == lit {
				found = true
				break
			}
		}
		if !found {
			return fail(configdomain.DiagInvalidEnum, def.Hint())
		}
		typed = e.Value

	default:
		typed = e.Value
	}

	return configdomain.Value{
		Def:        def,
		Raw:        e.Value,
		Typed:      typed,
		Source:     e.Source,
		SourcePath: e.SourcePath,
	}, nil
}

// ValidateDependencies evaluates every cross-field rule over the fully
// typed value map. Rules only run once all individual fields have
// validated, so expressions can rely on their keys being typed.
func (v *Validator) ValidateDependencies(values map[string]configdomain.Value) []configdomain.Diagnostic {
	env := make(map[string]any, len(values))
	for name, val := range values {
		env[name] = val.Typed
	}

	var diags []configdomain.Diagnostic
	for _, rule := range v.rules {
		program, err := expr.Compile(rule.Expression, expr.Env(env), expr.AsBool())
		if err != nil {
			diags = append(diags, v.ruleDiagnostic(rule, values,
				fmt.Sprintf("rule %s did not compile: %v", rule.Name, err)))
			continue
		}
		out, err := expr.Run(program, env)
		if err != nil {
			diags = append(diags, v.ruleDiagnostic(rule, values,
				fmt.Sprintf("rule %s failed to evaluate: %v", rule.Name, err)))
			continue
		}
		if ok, _ := out.(bool); !ok {
			diags = append(diags, v.ruleDiagnostic(rule, values, rule.Hint))
		}
	}
	return diags
}

func (v *Validator) ruleDiagnostic(rule configdomain.Rule, values map[string]configdomain.Value, hint string) configdomain.Diagnostic {
	// Blame the highest-precedence contributor among the involved keys.
	key, source := rule.Keys[0], ""
	for _, k := range rule.Keys {
		if val, ok := values[k]; ok && val.Source != configdomain.SourceDefault {
			key, source = k, val.Source
			break
		}
	}
	return configdomain.Diagnostic{
		Kind:     configdomain.DiagDependencyViolation,
		Severity: configdomain.SeverityError,
		Key:      joinKeys(rule.Keys),
		Source:   source,
		Value:    valueOf(values, key),
		Hint:     hint,
	}
}

func joinKeys(keys []string) string {
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += "+"
		}
		out += k
	}
	return out
}

func valueOf(values map[string]configdomain.Value, key string) string {
	if v, ok := values[key]; ok {
		return v.Raw
	}
	return ""
}

var _ configports.Validator = (*Validator)(nil)
