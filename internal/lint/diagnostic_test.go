package lint

import (
	"strings"
	"testing"
)

func TestSeverityFromRaw(t *testing.T) {
	tests := []struct {
		raw  int
		want Severity
	}{
		{1, SeverityWarning},
		{2, SeverityError},
		{0, SeverityMeta},
		{3, SeverityMeta},
		{-1, SeverityMeta},
	}

	for _, tt := range tests {
		if got := SeverityFromRaw(tt.raw); got != tt.want {
			t.Errorf("SeverityFromRaw(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityMeta, "meta"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewConfigProblem(t *testing.T) {
	d := NewConfigProblem("unable to parse config")

	if d.Severity != SeverityError {
		t.Errorf("Severity = %v, want error", d.Severity)
	}
	if d.Range.Start != SentinelPosition || d.Range.End != SentinelPosition {
		t.Errorf("Range = %+v, want sentinel anchors", d.Range)
	}
	if d.Message != "unable to parse config" {
		t.Errorf("Message = %q", d.Message)
	}
}

func TestFormatDiagnosticWithLocation(t *testing.T) {
	d := Diagnostic{
		Range:    Range{Start: Position{Line: 2, Character: 4}},
		Message:  "element not closed (close-order)",
		Severity: SeverityError,
	}

	got := FormatDiagnosticWithLocation("/proj/a.html", d)
	if !strings.HasPrefix(got, "/proj/a.html:3:5: ") {
		t.Errorf("got %q, want 1-based line:col prefix", got)
	}
	if !strings.Contains(got, "[error]") {
		t.Errorf("got %q, want severity tag", got)
	}
}
