package configinfra

import (
	"context"
	"fmt"
	"os"
	"strings"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	configports "actionsperf.ai/cli/internal/core/ports/config"
)

// FileLoader reads one line-oriented KEY=value config file.
//
// Grammar: '#'-prefixed lines and blank lines are ignored; keys are
// UPPER_SNAKE identifiers; no spaces are permitted around '='; values
// containing spaces must be double-quoted. Anything else is a
// SYNTAX_ERROR with a line/column hint.
//
// An explicitly requested file that is missing is a FILE_NOT_FOUND
// error. A file that was merely searched for (explicit=false) is skipped
// with a FILE_ABSENT warning so callers can tell "used a safe default"
// apart from "never checked".
type FileLoader struct {
	path     string
	explicit bool
	priority int
}

// NewFileLoader loads the file a caller named explicitly, e.g. via a
// --config flag.
func NewFileLoader(path string, priority int) *FileLoader {
	return &FileLoader{path: path, explicit: true, priority: priority}
}

// NewSearchedFileLoader loads a file from a default search location;
// its absence is not an error.
func NewSearchedFileLoader(path string, priority int) *FileLoader {
	return &FileLoader{path: path, explicit: false, priority: priority}
}

func (l *FileLoader) Name() string { return "file" }

// Load reads and parses the file. Every malformed line yields its own
// diagnostic; well-formed lines are still collected so one bad line does
// not hide the rest of the file.
func (l *FileLoader) Load(ctx context.Context) (configdomain.Snapshot, []configdomain.Diagnostic) {
	snap := make(configdomain.Snapshot)
	source := fmt.Sprintf("file:%s", l.path)

	data, err := os.ReadFile(l.path)
	if err != nil {
		switch {
		case os.IsNotExist(err) && !l.explicit:
			return snap, []configdomain.Diagnostic{{
				Kind:     configdomain.DiagFileAbsent,
				Severity: configdomain.SeverityWarning,
				Source:   source,
				Hint:     "no config file at this search path, defaults apply",
			}}
		case os.IsNotExist(err):
			return snap, []configdomain.Diagnostic{{
				Kind:     configdomain.DiagFileNotFound,
				Severity: configdomain.SeverityError,
				Source:   source,
				Hint:     fmt.Sprintf("create %s or drop the --config flag", l.path),
			}}
		case os.IsPermission(err):
			return snap, []configdomain.Diagnostic{{
				Kind:     configdomain.DiagPermissionDenied,
				Severity: configdomain.SeverityError,
				Source:   source,
				Hint:     fmt.Sprintf("fix read permissions on %s", l.path),
			}}
		default:
			return snap, []configdomain.Diagnostic{{
				Kind:     configdomain.DiagPermissionDenied,
				Severity: configdomain.SeverityError,
				Source:   source,
				Hint:     err.Error(),
			}}
		}
	}

	var diags []configdomain.Diagnostic
	for i, line := range strings.Split(string(data), "\n") {
		lineNo := i + 1
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		key, value, diag := parseAssignment(line)
		if diag != nil {
			diag.Source = source
			diag.Line = lineNo
			diags = append(diags, *diag)
			continue
		}

		snap[key] = configdomain.Entry{
			Key:        key,
			Value:      value,
			Source:     configdomain.SourceFile,
			SourcePath: fmt.Sprintf("%s:%s", l.path, key),
			Priority:   l.priority,
		}
	}

	return snap, diags
}

// parseAssignment parses one KEY=value line. The returned diagnostic
// carries the column of the offending character; the caller fills in
// source and line.
func parseAssignment(line string) (key, value string, diag *configdomain.Diagnostic) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", "", &configdomain.Diagnostic{
			Kind:     configdomain.DiagSyntaxError,
			Severity: configdomain.SeverityError,
			Column:   1,
			Hint:     "expected a KEY=value assignment",
		}
	}

	key = line[:eq]
	if key == "" {
		return "", "", &configdomain.Diagnostic{
			Kind:     configdomain.DiagSyntaxError,
			Severity: configdomain.SeverityError,
			Column:   1,
			Hint:     "missing key before '='",
		}
	}
	if strings.HasSuffix(key, " ") || strings.HasSuffix(key, "\t") {
		return "", "", &configdomain.Diagnostic{
			Kind:     configdomain.DiagSyntaxError,
			Severity: configdomain.SeverityError,
			Column:   eq,
			Hint:     "no spaces allowed before '='",
		}
	}
	if col, ok := invalidKeyColumn(key); !ok {
		return "", "", &configdomain.Diagnostic{
			Kind:     configdomain.DiagSyntaxError,
			Severity: configdomain.SeverityError,
			Key:      key,
			Column:   col,
			Hint:     "keys must be UPPER_SNAKE_CASE identifiers",
		}
	}

	value = line[eq+1:]
	if strings.HasPrefix(value, " ") || strings.HasPrefix(value, "\t") {
		return "", "", &configdomain.Diagnostic{
			Kind:     configdomain.DiagSyntaxError,
			Severity: configdomain.SeverityError,
			Key:      key,
			Column:   eq + 2,
			Hint:     "no spaces allowed after '='",
		}
	}

	if strings.HasPrefix(value, `"`) {
		if len(value) < 2 || !strings.HasSuffix(value, `"`) {
			return "", "", &configdomain.Diagnostic{
				Kind:     configdomain.DiagSyntaxError,
				Severity: configdomain.SeverityError,
				Key:      key,
				Column:   len(line),
				Hint:     "unterminated quoted value",
			}
		}
		return key, value[1 : len(value)-1], nil
	}

	if strings.ContainsAny(value, " \t") {
		return "", "", &configdomain.Diagnostic{
			Kind:     configdomain.DiagSyntaxError,
			Severity: configdomain.SeverityError,
			Key:      key,
			Column:   eq + 2 + strings.IndexAny(value, " \t"),
			Hint:     "quote values containing spaces",
		}
	}

	return key, value, nil
}

// invalidKeyColumn reports whether key is a well-formed setting name,
// and if not, the 1-based column of the first bad character.
func invalidKeyColumn(key string) (int, bool) {
	for i, r := range key {
		switch {
		case r >= 'A' && r <= 'Z':
		case r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return 1, false
			}
		default:
			return i + 1, false
		}
	}
	return 0, true
}

var _ configports.Loader = (*FileLoader)(nil)
