package lint

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityMeta marks informational findings.
	SeverityMeta Severity = iota

	// SeverityWarning marks findings the user should address.
	SeverityWarning

	// SeverityError marks findings that make the document invalid.
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityMeta:
		return "meta"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// SeverityFromRaw maps a worker severity code to a Severity class.
// Workers report 1 for warnings and 2 for errors; anything else is
// informational.
func SeverityFromRaw(raw int) Severity {
	switch raw {
	case 1:
		return SeverityWarning
	case 2:
		return SeverityError
	default:
		return SeverityMeta
	}
}

// Position is a zero-based line and character offset in a document.
type Position struct {
	Line      int
	Character int
}

// Range is a span between two positions.
type Range struct {
	Start Position
	End   Position
}

// SentinelPosition anchors diagnostics that describe a configuration
// problem rather than a location in the document.
var SentinelPosition = Position{Line: -1, Character: -1}

// Diagnostic is one lint finding.
type Diagnostic struct {
	// Range is the span the finding applies to.
	Range Range

	// Message is the human-readable description.
	Message string

	// Severity classifies the finding.
	Severity Severity

	// RuleURL optionally links to the rule's documentation.
	RuleURL string
}

// NewConfigProblem builds the single diagnostic used to surface a
// configuration error. It is anchored at the sentinel position to
// signal "configuration problem, not a content problem".
func NewConfigProblem(message string) Diagnostic {
	return Diagnostic{
		Range:    Range{Start: SentinelPosition, End: SentinelPosition},
		Message:  message,
		Severity: SeverityError,
	}
}

// FormatDiagnostic formats a diagnostic for display.
func FormatDiagnostic(d Diagnostic) string {
	var sb strings.Builder

	sb.WriteString("[")
	sb.WriteString(d.Severity.String())
	sb.WriteString("] ")
	sb.WriteString(d.Message)

	return sb.String()
}

// FormatDiagnosticWithLocation formats a diagnostic with file location.
func FormatDiagnosticWithLocation(path string, d Diagnostic) string {
	return fmt.Sprintf("%s:%d:%d: %s",
		path,
		d.Range.Start.Line+1,      // Convert to 1-based
		d.Range.Start.Character+1, // Convert to 1-based
		FormatDiagnostic(d),
	)
}
