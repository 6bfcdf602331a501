package lint

import "context"

// Request carries one document to the lint backend. Offsets in the
// returned findings are absolute rune indices into Text.
type Request struct {
	// Text is the full document content.
	Text string `json:"text"`

	// FilePath is the document's path, used for reporting and for
	// staleness checks on the response.
	FilePath string `json:"filePath"`

	// Generation is the configuration generation the request was
	// issued under.
	Generation int64 `json:"generation"`

	// Config is the active project configuration, or nil when the
	// project has none.
	Config map[string]any `json:"config,omitempty"`
}

// Finding is one raw result from the lint backend.
type Finding struct {
	// Start is the absolute rune offset where the finding begins.
	Start int `json:"start"`

	// End is the absolute rune offset where the finding ends.
	End int `json:"end"`

	// Message describes the finding.
	Message string `json:"message"`

	// RuleID identifies the rule that produced the finding.
	RuleID string `json:"ruleId"`

	// Severity is the raw severity code (1 warning, 2 error).
	Severity int `json:"severity"`

	// RuleURL optionally links to the rule's documentation.
	RuleURL string `json:"ruleUrl,omitempty"`
}

// Backend is the boundary to the validation engine. Implementations
// must honor ctx cancellation.
type Backend interface {
	// Lint validates a document and returns raw findings in document
	// order. An empty slice means no problems.
	Lint(ctx context.Context, req Request) ([]Finding, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, req Request) ([]Finding, error)

// Lint implements Backend.
func (f BackendFunc) Lint(ctx context.Context, req Request) ([]Finding, error) {
	return f(ctx, req)
}
