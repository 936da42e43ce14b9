package model

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type DiagnosticKind string

const (
	DiagUnresolvedField DiagnosticKind = "unresolved_field"
	DiagRowsDropped     DiagnosticKind = "rows_dropped"
	DiagEmptyDataset    DiagnosticKind = "empty_dataset"
	DiagBlocked         DiagnosticKind = "blocked"
)

// Diagnostic — структурированная проблема схемы, которую нужно показать оператору.
type Diagnostic struct {
	Severity   Severity       `json:"severity"`
	Kind       DiagnosticKind `json:"kind"`
	Role       Role           `json:"role"`
	Field      Field          `json:"field,omitempty"`
	Keywords   []string       `json:"keywords,omitempty"`
	Available  []string       `json:"available,omitempty"`
	Suggestion string         `json:"suggestion,omitempty"`
	Count      int            `json:"count,omitempty"`
	Message    string         `json:"message"`
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s/%s", d.Severity, d.Role, d.Kind)
	if d.Field != "" {
		fmt.Fprintf(&b, " field=%s", d.Field)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}
